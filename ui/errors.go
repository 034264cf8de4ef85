package ui

import "errors"

// UI package errors.
var (
	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("ui: invalid configuration")

	// ErrClientRequired indicates a client is required.
	ErrClientRequired = errors.New("ui: client required")
)
