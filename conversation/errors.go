package conversation

import "errors"

// ErrNotEmpty is returned when restoring into a log that already has messages
var ErrNotEmpty = errors.New("conversation: log is not empty")
