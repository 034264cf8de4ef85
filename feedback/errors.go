package feedback

import "errors"

var (
	// ErrMissingRunID is returned when rating a message whose run id was never captured
	ErrMissingRunID = errors.New("feedback: run id is required")

	// ErrScoreOutOfRange is returned for raw scores outside the 5-point scale
	ErrScoreOutOfRange = errors.New("feedback: score out of range")

	// ErrDispatchFailed wraps a sink failure
	ErrDispatchFailed = errors.New("feedback: dispatch failed")
)
