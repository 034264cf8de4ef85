package streaming

import "encoding/json"

// Nodes names the remote pipeline steps the classifier cares about.
type Nodes struct {
	// Answer is the node that generates the visible answer.
	Answer string
	// Tool is the node that executes tools and may attach artifacts.
	Tool string
}

// DefaultNodes matches the node names of the remote agent graph.
var DefaultNodes = Nodes{Answer: "agent", Tool: "tools"}

// Classify maps one raw event to an Event given the node currently
// producing payloads. It returns the node that applies to the next event:
// node identity is sticky until the next node-identity frame.
func Classify(nodes Nodes, current string, raw RawEvent) (Event, string) {
	frame := Decode(raw)

	switch frame.Kind {
	case FrameMetadata:
		return &MetadataEvent{RunID: frame.RunID}, current

	case FrameNodeIdentity:
		return &NodeEvent{Node: frame.Node}, frame.Node

	case FramePayload:
		if len(frame.Elements) == 0 {
			return &NoopEvent{Reason: "empty payload"}, current
		}
		// Later elements supersede earlier ones for the same logical message.
		last := frame.Elements[len(frame.Elements)-1]

		switch current {
		case nodes.Answer:
			contentType := ContentTypeText
			if kind := last.Get("type"); !kind.Exists() || kind.String() == "tool" {
				contentType = ContentTypeTool
			}
			return &MessageDeltaEvent{
				Node:        current,
				Content:     contentText(last.Get("content")),
				ContentType: contentType,
			}, current

		case nodes.Tool:
			artifact := last.Get("artifact")
			if !truthy(artifact) {
				return &NoopEvent{Reason: "tool payload without artifact"}, current
			}
			return &ArtifactEvent{Node: current, Payload: json.RawMessage(artifact.Raw)}, current
		}

		return &NoopEvent{Reason: "payload from node " + current}, current
	}

	return &NoopEvent{Reason: "unrecognized frame"}, current
}

// Classifier tracks the sticky node identity across the events of one run.
type Classifier struct {
	nodes   Nodes
	current string
}

// NewClassifier creates a classifier for one run
func NewClassifier(nodes Nodes) *Classifier {
	return &Classifier{nodes: nodes}
}

// Classify classifies a raw event and advances the current node
func (c *Classifier) Classify(raw RawEvent) Event {
	event, next := Classify(c.nodes, c.current, raw)
	c.current = next
	return event
}

// Node returns the node currently producing payloads
func (c *Classifier) Node() string {
	return c.current
}
