package streaming

import "testing"

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		raw      RawEvent
		wantKind FrameKind
		wantRun  string
		wantNode string
		wantLen  int
	}{
		{
			name:     "run metadata",
			raw:      metadataEvent("run-1"),
			wantKind: FrameMetadata,
			wantRun:  "run-1",
		},
		{
			name:     "run id without event name",
			raw:      RawEvent{Data: []byte(`{"run_id":"run-2"}`)},
			wantKind: FrameMetadata,
			wantRun:  "run-2",
		},
		{
			name:     "node identity uses first key in document order",
			raw:      RawEvent{Data: []byte(`{"b":{"metadata":{"langgraph_node":"tools"}},"a":{"metadata":{"langgraph_node":"agent"}}}`)},
			wantKind: FrameNodeIdentity,
			wantNode: "tools",
		},
		{
			name:     "node identity without node name",
			raw:      RawEvent{Data: []byte(`{"msg":{"metadata":{}}}`)},
			wantKind: FrameNodeIdentity,
			wantNode: "",
		},
		{
			name:     "payload sequence",
			raw:      RawEvent{Data: []byte(`[{"content":"a"},{"content":"b"}]`)},
			wantKind: FramePayload,
			wantLen:  2,
		},
		{
			name:     "metadata event without run id",
			raw:      RawEvent{Event: "metadata", Data: []byte(`{"attempt":1}`)},
			wantKind: FrameUnknown,
		},
		{
			name:     "invalid json",
			raw:      RawEvent{Data: []byte(`{"oops"`)},
			wantKind: FrameUnknown,
		},
		{
			name:     "empty data",
			raw:      RawEvent{Event: "end"},
			wantKind: FrameUnknown,
		},
		{
			name:     "scalar data",
			raw:      RawEvent{Data: []byte(`"hello"`)},
			wantKind: FrameUnknown,
		},
		{
			name:     "object whose first value is not an object",
			raw:      RawEvent{Data: []byte(`{"status":"ok"}`)},
			wantKind: FrameUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := Decode(tt.raw)
			if frame.Kind != tt.wantKind {
				t.Fatalf("Kind = %s, want %s", frame.Kind, tt.wantKind)
			}
			if frame.RunID != tt.wantRun {
				t.Errorf("RunID = %q, want %q", frame.RunID, tt.wantRun)
			}
			if frame.Node != tt.wantNode {
				t.Errorf("Node = %q, want %q", frame.Node, tt.wantNode)
			}
			if len(frame.Elements) != tt.wantLen {
				t.Errorf("len(Elements) = %d, want %d", len(frame.Elements), tt.wantLen)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{`[{"artifact":null}]`, false},
		{`[{"artifact":false}]`, false},
		{`[{"artifact":0}]`, false},
		{`[{"artifact":""}]`, false},
		{`[{"artifact":[]}]`, false},
		{`[{"artifact":{}}]`, false},
		{`[{}]`, false},
		{`[{"artifact":true}]`, true},
		{`[{"artifact":1.5}]`, true},
		{`[{"artifact":"x"}]`, true},
		{`[{"artifact":[1]}]`, true},
		{`[{"artifact":{"a":1}}]`, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			frame := Decode(RawEvent{Data: []byte(tt.raw)})
			if got := truthy(frame.Elements[0].Get("artifact")); got != tt.want {
				t.Errorf("truthy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentText(t *testing.T) {
	frame := Decode(RawEvent{Data: []byte(`[
		{"content":"plain"},
		{"content":[{"type":"text","text":"Hello, "},{"type":"tool_use","id":"x"},"world"]},
		{"content":{"unexpected":true}}
	]`)})

	want := []string{"plain", "Hello, world", ""}
	for i, elem := range frame.Elements {
		if got := contentText(elem.Get("content")); got != want[i] {
			t.Errorf("element %d: contentText = %q, want %q", i, got, want[i])
		}
	}
}
