package types

import (
	"time"
)

// Role represents the message role
type Role string

const (
	// RoleUser represents a user message
	RoleUser Role = "user"

	// RoleAssistant represents an assistant message
	RoleAssistant Role = "assistant"
)

// WireRole returns the role name the remote service expects in run input.
func (r Role) WireRole() string {
	if r == RoleAssistant {
		return "ai"
	}
	return "human"
}

// Message is one exchanged message. Messages are immutable once appended
// to a conversation log.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`

	// RunID is the remote run that produced an assistant message.
	// Empty for user messages and for runs that failed before the
	// run id was observed.
	RunID string `json:"run_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// CanRate reports whether feedback may be recorded against the message.
func (m Message) CanRate() bool {
	return m.Role == RoleAssistant && m.RunID != ""
}

// Thread identifies server-side conversation history.
type Thread struct {
	ID        string    `json:"thread_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Assistant is a remote agent definition discovered at session start.
type Assistant struct {
	ID       string         `json:"assistant_id"`
	GraphID  string         `json:"graph_id,omitempty"`
	Name     string         `json:"name,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// FeedbackRecord is the payload dispatched to the feedback sink.
type FeedbackRecord struct {
	ID      string  `json:"id"`
	RunID   string  `json:"run_id"`
	Key     string  `json:"key"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment"`
}
