package remote

import "errors"

var (
	// ErrUnexpectedStatus is returned for non-2xx responses
	ErrUnexpectedStatus = errors.New("remote: unexpected status")

	// ErrNotEventStream is returned when a run stream is not served as text/event-stream
	ErrNotEventStream = errors.New("remote: response is not an event stream")

	// ErrRunFailed is returned when the service reports an error inside a run stream
	ErrRunFailed = errors.New("remote: run failed")
)
