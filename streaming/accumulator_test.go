package streaming

import (
	"errors"
	"strings"
	"testing"

	"github.com/youssefsiam38/agentrelay/types"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		state       RunState
		event       Event
		wantState   RunState
		wantRepaint bool
	}{
		{
			name:      "metadata sets run id",
			event:     &MetadataEvent{RunID: "run-1"},
			wantState: RunState{RunID: "run-1"},
		},
		{
			name:      "metadata never reassigns run id",
			state:     RunState{RunID: "run-1"},
			event:     &MetadataEvent{RunID: "run-2"},
			wantState: RunState{RunID: "run-1"},
		},
		{
			name:      "node event sets current node",
			event:     &NodeEvent{Node: "agent"},
			wantState: RunState{CurrentNode: "agent"},
		},
		{
			name:        "text delta replaces text",
			state:       RunState{Text: "Hel"},
			event:       &MessageDeltaEvent{Content: "Hello", ContentType: ContentTypeText},
			wantState:   RunState{Text: "Hello"},
			wantRepaint: true,
		},
		{
			name:      "empty text delta is ignored",
			state:     RunState{Text: "Hello"},
			event:     &MessageDeltaEvent{Content: "", ContentType: ContentTypeText},
			wantState: RunState{Text: "Hello"},
		},
		{
			name:      "tool delta is ignored",
			state:     RunState{Text: "Hello"},
			event:     &MessageDeltaEvent{Content: "tool trace", ContentType: ContentTypeTool},
			wantState: RunState{Text: "Hello"},
		},
		{
			name:      "noop changes nothing",
			state:     RunState{RunID: "run-1", Text: "x"},
			event:     &NoopEvent{},
			wantState: RunState{RunID: "run-1", Text: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, repaint := Apply(tt.state, tt.event)
			if repaint != tt.wantRepaint {
				t.Errorf("repaint = %v, want %v", repaint, tt.wantRepaint)
			}
			if got.RunID != tt.wantState.RunID || got.Text != tt.wantState.Text || got.CurrentNode != tt.wantState.CurrentNode {
				t.Errorf("state = %+v, want %+v", got, tt.wantState)
			}
		})
	}
}

func TestApply_ArtifactDoesNotRepaint(t *testing.T) {
	got, repaint := Apply(RunState{}, &ArtifactEvent{Payload: []byte(`{"a":1}`)})
	if repaint {
		t.Error("artifact must not trigger a repaint")
	}
	if string(got.Artifact) != `{"a":1}` {
		t.Errorf("Artifact = %s", got.Artifact)
	}
}

func TestAccumulator_Finalize(t *testing.T) {
	acc := NewAccumulator()
	acc.Apply(&MetadataEvent{RunID: "run-1"})
	acc.Apply(&MessageDeltaEvent{Content: "answer", ContentType: ContentTypeText})
	acc.Apply(&ArtifactEvent{Payload: []byte(`[1]`)})

	res := acc.Finalize()
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Message.Role != types.RoleAssistant {
		t.Errorf("Role = %s", res.Message.Role)
	}
	if res.Message.Content != "answer" || res.Message.RunID != "run-1" {
		t.Errorf("Message = %+v", res.Message)
	}
	if string(res.Artifact) != `[1]` {
		t.Errorf("Artifact = %s", res.Artifact)
	}
}

func TestAccumulator_Fail(t *testing.T) {
	acc := NewAccumulator()
	acc.Apply(&MetadataEvent{RunID: "run-1"})
	acc.Apply(&MessageDeltaEvent{Content: "partial", ContentType: ContentTypeText})
	acc.Apply(&ArtifactEvent{Payload: []byte(`{"a":1}`)})

	res := acc.Fail(errors.New("connection reset"))
	if res.Message.Content != "An error occurred: connection reset" {
		t.Errorf("Content = %q", res.Message.Content)
	}
	if res.Message.RunID != "run-1" {
		t.Errorf("RunID = %q, want run-1", res.Message.RunID)
	}
	if res.Artifact != nil {
		t.Errorf("artifact must be dropped on failure, got %s", res.Artifact)
	}
	if !strings.HasPrefix(res.Message.Content, ErrorPrefix) {
		t.Error("missing error prefix")
	}
}

func TestAccumulator_FailBeforeMetadata(t *testing.T) {
	res := NewAccumulator().Fail(errors.New("dial tcp: refused"))
	if res.Message.RunID != "" {
		t.Errorf("RunID = %q, want empty", res.Message.RunID)
	}
	if res.Message.CanRate() {
		t.Error("message without run id must not be rateable")
	}
}
