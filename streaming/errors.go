package streaming

import "errors"

// ErrInterpreterPanic wraps a panic raised while applying a stream event
var ErrInterpreterPanic = errors.New("stream interpreter panic")
