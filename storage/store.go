// Package storage persists conversation transcripts keyed by thread id.
//
// Persistence is optional: a session without a Store keeps its log in
// memory only. With a Store, every appended message is written through so
// a thread can be reopened later with its transcript.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/youssefsiam38/agentrelay/types"
)

// ErrThreadNotFound is returned when no messages were stored for a thread
var ErrThreadNotFound = errors.New("storage: thread not found")

// Store defines the transcript storage interface
type Store interface {
	// SaveMessage appends msg to the transcript of threadID
	SaveMessage(ctx context.Context, threadID string, msg types.Message) error

	// GetMessages returns the transcript of threadID in insertion order.
	// It returns ErrThreadNotFound if nothing was stored for the thread.
	GetMessages(ctx context.Context, threadID string) ([]types.Message, error)
}

// MemoryStore is an in-process Store, useful for tests and single-node use
type MemoryStore struct {
	mu      sync.RWMutex
	threads map[string][]types.Message
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{threads: make(map[string][]types.Message)}
}

// SaveMessage implements Store
func (s *MemoryStore) SaveMessage(_ context.Context, threadID string, msg types.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.threads[threadID] = append(s.threads[threadID], msg)
	return nil
}

// GetMessages implements Store
func (s *MemoryStore) GetMessages(_ context.Context, threadID string) ([]types.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	messages, ok := s.threads[threadID]
	if !ok {
		return nil, ErrThreadNotFound
	}
	out := make([]types.Message, len(messages))
	copy(out, messages)
	return out, nil
}
