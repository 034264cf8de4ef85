package streaming

import "encoding/json"

// EventType represents the category of a classified stream event
type EventType string

const (
	// EventTypeMetadata carries the run identifier
	EventTypeMetadata EventType = "metadata"

	// EventTypeNode announces which pipeline node emits the following payloads
	EventTypeNode EventType = "node"

	// EventTypeMessageDelta carries a cumulative content update
	EventTypeMessageDelta EventType = "message_delta"

	// EventTypeArtifact carries a structured document attached by a tool node
	EventTypeArtifact EventType = "artifact"

	// EventTypeNoop is an event the accumulator ignores
	EventTypeNoop EventType = "noop"
)

// ContentType distinguishes visible answer text from tool traces
type ContentType string

const (
	// ContentTypeText is user-visible answer text
	ContentTypeText ContentType = "text"

	// ContentTypeTool is a tool call or tool result trace
	ContentTypeTool ContentType = "tool"
)

// Event represents a classified stream event
type Event interface {
	Type() EventType
}

// MetadataEvent is emitted when the remote service reports the run id
type MetadataEvent struct {
	RunID string
}

func (e *MetadataEvent) Type() EventType {
	return EventTypeMetadata
}

// NodeEvent is emitted when the remote service announces a node change
type NodeEvent struct {
	Node string
}

func (e *NodeEvent) Type() EventType {
	return EventTypeNode
}

// MessageDeltaEvent is emitted for the last element of an answer-node payload
type MessageDeltaEvent struct {
	Node        string
	Content     string
	ContentType ContentType
}

func (e *MessageDeltaEvent) Type() EventType {
	return EventTypeMessageDelta
}

// ArtifactEvent is emitted when a tool-node payload carries an artifact
type ArtifactEvent struct {
	Node    string
	Payload json.RawMessage
}

func (e *ArtifactEvent) Type() EventType {
	return EventTypeArtifact
}

// NoopEvent is emitted for frames that carry nothing the accumulator uses
type NoopEvent struct {
	Reason string
}

func (e *NoopEvent) Type() EventType {
	return EventTypeNoop
}
