package streaming

import (
	"encoding/json"
	"time"

	"github.com/youssefsiam38/agentrelay/types"
)

// ErrorPrefix starts the content of a message finalized after a stream failure.
const ErrorPrefix = "An error occurred: "

// RunState is the evolving assistant reply of a single run
type RunState struct {
	RunID       string
	CurrentNode string
	Text        string
	Artifact    json.RawMessage
}

// Apply folds one event into the run state. The second return value
// reports whether the visible text changed and the UI should repaint.
func Apply(state RunState, event Event) (RunState, bool) {
	switch e := event.(type) {
	case *MetadataEvent:
		// The first run id wins for the whole run.
		if state.RunID == "" {
			state.RunID = e.RunID
		}

	case *NodeEvent:
		state.CurrentNode = e.Node

	case *MessageDeltaEvent:
		if e.ContentType != ContentTypeText || e.Content == "" {
			return state, false
		}
		// Deltas are cumulative: the latest one replaces the text.
		state.Text = e.Content
		return state, true

	case *ArtifactEvent:
		state.Artifact = e.Payload

	default:
		// Ignore no-op and unknown events
	}

	return state, false
}

// Result is a finalized run
type Result struct {
	Message  types.Message
	Artifact json.RawMessage
	Err      error
}

// Accumulator accumulates classified events into a complete assistant reply
type Accumulator struct {
	state RunState
	now   func() time.Time
}

// NewAccumulator creates a new run accumulator
func NewAccumulator() *Accumulator {
	return &Accumulator{now: time.Now}
}

// Apply folds an event into the accumulator and reports whether to repaint
func (a *Accumulator) Apply(event Event) bool {
	next, repaint := Apply(a.state, event)
	a.state = next
	return repaint
}

// State returns the current run state.
// This can be called at any time to get the partial reply.
func (a *Accumulator) State() RunState {
	return a.state
}

// Finalize produces the assistant message after the stream is exhausted
func (a *Accumulator) Finalize() Result {
	return Result{
		Message: types.Message{
			Role:      types.RoleAssistant,
			Content:   a.state.Text,
			RunID:     a.state.RunID,
			CreatedAt: a.now(),
		},
		Artifact: a.state.Artifact,
	}
}

// Fail finalizes the run early after a stream failure. The run id captured
// so far is kept; partial text and any artifact are dropped.
func (a *Accumulator) Fail(err error) Result {
	return Result{
		Message: types.Message{
			Role:      types.RoleAssistant,
			Content:   ErrorPrefix + err.Error(),
			RunID:     a.state.RunID,
			CreatedAt: a.now(),
		},
		Err: err,
	}
}
