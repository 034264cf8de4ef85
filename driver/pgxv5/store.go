package pgxv5

import (
	"context"
	"fmt"

	"github.com/youssefsiam38/agentrelay/driver"
	"github.com/youssefsiam38/agentrelay/storage"
	"github.com/youssefsiam38/agentrelay/types"
)

const schema = `
CREATE TABLE IF NOT EXISTS agentrelay_messages (
	id         BIGSERIAL PRIMARY KEY,
	thread_id  TEXT NOT NULL,
	role       TEXT NOT NULL,
	content    TEXT NOT NULL,
	run_id     TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS agentrelay_messages_thread_idx ON agentrelay_messages (thread_id, id);
`

// Store implements storage.Store using the pgxv5 driver.
type Store struct {
	driver *Driver
}

// NewStore creates a new pgxv5 Store.
func NewStore(d *Driver) *Store {
	return &Store{driver: d}
}

func (s *Store) getExecutor() driver.Executor {
	return s.driver.GetExecutor()
}

// SaveMessage appends a message to a thread transcript.
func (s *Store) SaveMessage(ctx context.Context, threadID string, msg types.Message) error {
	if threadID == "" {
		return fmt.Errorf("thread_id is required")
	}

	var runID *string
	if msg.RunID != "" {
		runID = &msg.RunID
	}

	query := `
		INSERT INTO agentrelay_messages (thread_id, role, content, run_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.getExecutor().Exec(ctx, query, threadID, string(msg.Role), msg.Content, runID, msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save message: %w", err)
	}
	return nil
}

// GetMessages retrieves a thread transcript in insertion order.
func (s *Store) GetMessages(ctx context.Context, threadID string) ([]types.Message, error) {
	query := `
		SELECT role, content, run_id, created_at
		FROM agentrelay_messages
		WHERE thread_id = $1
		ORDER BY id ASC
	`

	rows, err := s.getExecutor().Query(ctx, query, threadID)
	if err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	defer rows.Close()

	var messages []types.Message
	for rows.Next() {
		var msg types.Message
		var role string
		var runID *string

		if err := rows.Scan(&role, &msg.Content, &runID, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.Role = types.Role(role)
		if runID != nil {
			msg.RunID = *runID
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate messages: %w", err)
	}

	if len(messages) == 0 {
		return nil, storage.ErrThreadNotFound
	}
	return messages, nil
}
