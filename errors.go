package agentrelay

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrInvalidConfig is returned when the client configuration is invalid
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNoAssistant is returned when the service has no system assistant
	ErrNoAssistant = errors.New("no system assistant found")

	// ErrInvalidThreadID is returned when resuming with a malformed thread id
	ErrInvalidThreadID = errors.New("invalid thread id")

	// =========================================================================
	// Session errors
	// =========================================================================

	// ErrRunInFlight is returned when a session already has an unfinished run
	ErrRunInFlight = errors.New("a run is already in flight")

	// ErrEmptyPrompt is returned when submitting a blank prompt
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrUnknownRun is returned when rating a run that produced no reply in
	// the session's conversation
	ErrUnknownRun = errors.New("run not found in conversation")

	// ErrSessionClosed is returned when using a session after Close
	ErrSessionClosed = errors.New("session closed")

	// ErrNoSession is returned when a context carries no session
	ErrNoSession = errors.New("agentrelay: no session in context")

	// =========================================================================
	// Language errors
	// =========================================================================

	// ErrUnknownLanguage is returned when a language code is not registered
	ErrUnknownLanguage = errors.New("unknown language")
)

// RelayError represents an error with additional context
type RelayError struct {
	Op       string         // Operation that failed
	Err      error          // Underlying error
	ThreadID string         // Thread ID if applicable
	Context  map[string]any // Additional context
}

// Error implements the error interface
func (e *RelayError) Error() string {
	if e.ThreadID != "" {
		return fmt.Sprintf("%s (thread=%s): %v", e.Op, e.ThreadID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error
func (e *RelayError) Unwrap() error {
	return e.Err
}

// WithContext adds additional context to the error
func (e *RelayError) WithContext(key string, value any) *RelayError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// NewRelayError creates a new RelayError
func NewRelayError(op string, err error) *RelayError {
	return &RelayError{
		Op:  op,
		Err: err,
	}
}

// NewRelayErrorWithThread creates a new RelayError with thread ID
func NewRelayErrorWithThread(op string, threadID string, err error) *RelayError {
	return &RelayError{
		Op:       op,
		Err:      err,
		ThreadID: threadID,
	}
}
