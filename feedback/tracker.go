// Package feedback records user ratings against remote runs.
//
// A Tracker remembers the single most recent (run id, raw score) pair of a
// session and forwards a rating to its Sink only when that pair changes, so
// re-rendering a rating control never produces duplicate records.
package feedback

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/youssefsiam38/agentrelay/types"
)

const (
	// RatingKey is the fixed key of every dispatched record
	RatingKey = "human-feedback-stars"

	// Comment is the fixed comment label of every dispatched record
	Comment = "In-line human feedback"

	// MaxRawScore is the highest index of the 5-point rating scale
	MaxRawScore = 4
)

// Outcome reports what Submit did with a rating
type Outcome int

const (
	// Duplicate means the rating matched the last recorded pair and was not sent
	Duplicate Outcome = iota
	// Accepted means the rating was forwarded to the sink
	Accepted
)

func (o Outcome) String() string {
	if o == Accepted {
		return "accepted"
	}
	return "duplicate"
}

// Sink receives accepted feedback records
type Sink interface {
	Send(ctx context.Context, record types.FeedbackRecord) error
}

// SinkFunc adapts a function to the Sink interface
type SinkFunc func(ctx context.Context, record types.FeedbackRecord) error

// Send calls f(ctx, record)
func (f SinkFunc) Send(ctx context.Context, record types.FeedbackRecord) error {
	return f(ctx, record)
}

// Normalize maps a raw star index (0..4) onto the sink's [0,1] range.
func Normalize(rawScore int) float64 {
	return float64(rawScore+1) / 5.0
}

type pair struct {
	runID    string
	rawScore int
}

// Tracker deduplicates ratings for one browser session. It is safe for
// concurrent use, so sessions reopened by the same browser can share it.
type Tracker struct {
	mu   sync.Mutex
	sink Sink
	last *pair
}

// NewTracker creates a tracker forwarding to sink. A nil sink discards records.
func NewTracker(sink Sink) *Tracker {
	if sink == nil {
		sink = SinkFunc(func(context.Context, types.FeedbackRecord) error { return nil })
	}
	return &Tracker{sink: sink}
}

// Validate checks that a rating names a run and lies on the 5-point scale.
func Validate(runID string, rawScore int) error {
	if runID == "" {
		return ErrMissingRunID
	}
	if rawScore < 0 || rawScore > MaxRawScore {
		return fmt.Errorf("%w: %d", ErrScoreOutOfRange, rawScore)
	}
	return nil
}

// Submit records a rating for runID.
//
// The remembered pair is updated once the record has been handed to the
// sink, even when the sink reports an error: dispatch is fire-and-forget and
// a failed send is returned for reporting only.
func (t *Tracker) Submit(ctx context.Context, runID string, rawScore int) (Outcome, error) {
	if err := Validate(runID, rawScore); err != nil {
		return Duplicate, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	current := pair{runID: runID, rawScore: rawScore}
	if t.last != nil && *t.last == current {
		return Duplicate, nil
	}

	record := types.FeedbackRecord{
		ID:      uuid.NewString(),
		RunID:   runID,
		Key:     RatingKey,
		Score:   Normalize(rawScore),
		Comment: Comment,
	}
	t.last = &current

	if err := t.sink.Send(ctx, record); err != nil {
		return Accepted, fmt.Errorf("%w: %w", ErrDispatchFailed, err)
	}
	return Accepted, nil
}

// Last returns the most recently recorded pair, if any.
func (t *Tracker) Last() (runID string, rawScore int, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.last == nil {
		return "", 0, false
	}
	return t.last.runID, t.last.rawScore, true
}
