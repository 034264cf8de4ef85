// Package conversation holds the message log of one chat session.
package conversation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/youssefsiam38/agentrelay/storage"
	"github.com/youssefsiam38/agentrelay/types"
)

// ThreadCreator creates server-side threads
type ThreadCreator interface {
	CreateThread(ctx context.Context) (types.Thread, error)
}

// Store is the ordered, append-only message log of a session together with
// its active thread and the artifact of the latest run.
//
// A Store is owned by a single session and is not safe for concurrent use.
type Store struct {
	messages []types.Message
	thread   types.Thread
	artifact json.RawMessage

	threads    ThreadCreator
	transcript storage.Store
	now        func() time.Time
}

// Option configures a Store
type Option func(*Store)

// WithTranscript writes every appended message through to transcript
func WithTranscript(transcript storage.Store) Option {
	return func(s *Store) {
		s.transcript = transcript
	}
}

// New creates a store bound to thread. threads is used by Clear to obtain
// a replacement thread.
func New(thread types.Thread, threads ThreadCreator, opts ...Option) *Store {
	s := &Store{
		thread:  thread,
		threads: threads,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendUser appends a user message with the given text.
//
// The message is always appended to the in-memory log; a returned error
// only reports that the transcript write failed.
func (s *Store) AppendUser(ctx context.Context, text string) (types.Message, error) {
	msg := types.Message{
		Role:      types.RoleUser,
		Content:   text,
		CreatedAt: s.now(),
	}
	return msg, s.append(ctx, msg)
}

// AppendAssistant appends a finalized assistant message.
// Errors have the same meaning as for AppendUser.
func (s *Store) AppendAssistant(ctx context.Context, msg types.Message) error {
	msg.Role = types.RoleAssistant
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = s.now()
	}
	return s.append(ctx, msg)
}

func (s *Store) append(ctx context.Context, msg types.Message) error {
	s.messages = append(s.messages, msg)
	if s.transcript == nil {
		return nil
	}
	if err := s.transcript.SaveMessage(ctx, s.thread.ID, msg); err != nil {
		return fmt.Errorf("save transcript: %w", err)
	}
	return nil
}

// Restore replaces an empty log with messages loaded from a transcript.
// It does not write them back to the transcript.
func (s *Store) Restore(messages []types.Message) error {
	if len(s.messages) != 0 {
		return ErrNotEmpty
	}
	s.messages = append([]types.Message(nil), messages...)
	return nil
}

// Clear empties the log, drops the artifact and switches to a brand-new
// thread. If no thread can be created the store is left unchanged.
// The previous thread is not deleted on the server.
func (s *Store) Clear(ctx context.Context) error {
	thread, err := s.threads.CreateThread(ctx)
	if err != nil {
		return fmt.Errorf("clear conversation: %w", err)
	}

	s.messages = nil
	s.artifact = nil
	s.thread = thread
	return nil
}

// CurrentThread returns the active thread
func (s *Store) CurrentThread() types.Thread {
	return s.thread
}

// Messages returns a copy of the log in insertion order
func (s *Store) Messages() []types.Message {
	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of logged messages
func (s *Store) Len() int {
	return len(s.messages)
}

// Last returns the most recent message, if any
func (s *Store) Last() (types.Message, bool) {
	if len(s.messages) == 0 {
		return types.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

// SetArtifact records the artifact of the latest run; nil resets it
func (s *Store) SetArtifact(artifact json.RawMessage) {
	s.artifact = artifact
}

// Artifact returns the artifact of the latest run, or nil
func (s *Store) Artifact() json.RawMessage {
	return s.artifact
}
