package streaming

import (
	"strings"

	"github.com/tidwall/gjson"
)

// RawEvent is one server-sent event as read from the run stream.
type RawEvent struct {
	// Event is the SSE event name ("metadata", "messages/partial", ...).
	Event string
	Data  []byte
}

// FrameKind is the wire-level shape of a raw event.
type FrameKind int

const (
	// FrameUnknown is any frame whose shape is not recognized.
	FrameUnknown FrameKind = iota
	// FrameMetadata is an object carrying a top-level run_id.
	FrameMetadata
	// FrameNodeIdentity is an object keyed by message id whose first value
	// names the producing node under metadata.langgraph_node.
	FrameNodeIdentity
	// FramePayload is an ordered sequence of message elements.
	FramePayload
)

func (k FrameKind) String() string {
	switch k {
	case FrameMetadata:
		return "metadata"
	case FrameNodeIdentity:
		return "node_identity"
	case FramePayload:
		return "payload"
	default:
		return "unknown"
	}
}

// Frame is the decoded form of a RawEvent. Only the fields relevant to
// Kind are set.
type Frame struct {
	Kind     FrameKind
	RunID    string
	Node     string
	Elements []gjson.Result
}

// Decode maps the wire shape of one event onto a Frame. All knowledge of
// the remote stream layout lives here; the classifier and accumulator
// only see Frames and Events.
//
// The remote service does not tag frames explicitly, so the shape is
// recognized positionally:
//   - an object with a run_id field (or an SSE "metadata" event) is run metadata
//   - any other object announces a node: the first key in document order is
//     a message id whose value holds metadata.langgraph_node
//   - an array is a payload sequence
func Decode(raw RawEvent) Frame {
	if len(raw.Data) == 0 || !gjson.ValidBytes(raw.Data) {
		return Frame{Kind: FrameUnknown}
	}

	doc := gjson.ParseBytes(raw.Data)
	switch {
	case doc.IsArray():
		return Frame{Kind: FramePayload, Elements: doc.Array()}

	case doc.IsObject():
		if runID := doc.Get("run_id"); runID.Type == gjson.String && runID.Str != "" {
			return Frame{Kind: FrameMetadata, RunID: runID.Str}
		}
		if raw.Event == "metadata" {
			return Frame{Kind: FrameUnknown}
		}

		var first gjson.Result
		found := false
		doc.ForEach(func(_, value gjson.Result) bool {
			first = value
			found = true
			return false
		})
		if !found || !first.IsObject() {
			return Frame{Kind: FrameUnknown}
		}
		return Frame{Kind: FrameNodeIdentity, Node: first.Get("metadata.langgraph_node").String()}
	}

	return Frame{Kind: FrameUnknown}
}

// contentText flattens a message content field. Content is either a plain
// string or a list of typed content parts, of which only text parts count.
func contentText(content gjson.Result) string {
	if !content.IsArray() {
		if content.Type == gjson.String {
			return content.Str
		}
		return ""
	}

	var b strings.Builder
	for _, part := range content.Array() {
		switch {
		case part.Type == gjson.String:
			b.WriteString(part.Str)
		case part.Get("type").String() == "text":
			b.WriteString(part.Get("text").String())
		}
	}
	return b.String()
}

// truthy follows JSON truthiness: null, false, 0, "", [] and {} are empty.
func truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		return v.Str != ""
	case gjson.JSON:
		nonEmpty := false
		v.ForEach(func(_, _ gjson.Result) bool {
			nonEmpty = true
			return false
		})
		return nonEmpty
	default:
		return false
	}
}
