package remote

import (
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go/packages/ssestream"
	"github.com/tidwall/gjson"
	"github.com/youssefsiam38/agentrelay/streaming"
)

const (
	eventError = "error"
	eventEnd   = "end"
)

// RunStream adapts the server-sent events of a run to streaming.Source.
// An "error" event ends iteration with ErrRunFailed; an "end" event ends it
// normally.
type RunStream struct {
	decoder ssestream.Decoder
	current streaming.RawEvent
	err     error
	done    bool
}

func newRunStream(resp *http.Response) *RunStream {
	return newRunStreamFromDecoder(ssestream.NewDecoder(resp))
}

func newRunStreamFromDecoder(decoder ssestream.Decoder) *RunStream {
	return &RunStream{decoder: decoder}
}

// Next advances to the next event
func (s *RunStream) Next() bool {
	if s.done || s.decoder == nil {
		return false
	}

	if !s.decoder.Next() {
		s.done = true
		if err := s.decoder.Err(); err != nil {
			s.err = err
		}
		return false
	}

	event := s.decoder.Event()
	switch event.Type {
	case eventError:
		s.done = true
		s.err = fmt.Errorf("%w: %s", ErrRunFailed, errorMessage(event.Data))
		return false
	case eventEnd:
		s.done = true
		return false
	}

	s.current = streaming.RawEvent{Event: event.Type, Data: event.Data}
	return true
}

// Current returns the event read by the last successful Next
func (s *RunStream) Current() streaming.RawEvent {
	return s.current
}

// Err returns the failure that ended the stream, if any
func (s *RunStream) Err() error {
	return s.err
}

// Close releases the response body
func (s *RunStream) Close() error {
	if s.decoder == nil {
		return nil
	}
	return s.decoder.Close()
}

// errorMessage extracts a readable message from an error event payload
// such as {"error": "ValueError", "message": "..."}.
func errorMessage(data []byte) string {
	doc := gjson.ParseBytes(data)
	if msg := doc.Get("message").String(); msg != "" {
		if kind := doc.Get("error").String(); kind != "" {
			return kind + ": " + msg
		}
		return msg
	}
	if kind := doc.Get("error").String(); kind != "" {
		return kind
	}
	if len(data) == 0 {
		return "unknown error"
	}
	return string(data)
}
