package feedback

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/youssefsiam38/agentrelay/types"
)

type recordingSink struct {
	records []types.FeedbackRecord
	err     error
}

func (s *recordingSink) Send(_ context.Context, record types.FeedbackRecord) error {
	s.records = append(s.records, record)
	return s.err
}

func TestNormalize(t *testing.T) {
	want := map[int]float64{0: 0.2, 1: 0.4, 2: 0.6, 3: 0.8, 4: 1.0}
	for raw, score := range want {
		if got := Normalize(raw); got != score {
			t.Errorf("Normalize(%d) = %v, want %v", raw, got, score)
		}
	}
}

func TestTracker_Idempotence(t *testing.T) {
	sink := &recordingSink{}
	tracker := NewTracker(sink)
	ctx := context.Background()

	steps := []struct {
		runID string
		score int
		want  Outcome
	}{
		{"run-x", 3, Accepted},
		{"run-x", 3, Duplicate},
		{"run-x", 1, Accepted},
		{"run-y", 1, Accepted},
		{"run-x", 1, Accepted}, // only the most recent pair is remembered
	}

	for i, step := range steps {
		got, err := tracker.Submit(ctx, step.runID, step.score)
		if err != nil {
			t.Fatalf("step %d: unexpected error: %v", i, err)
		}
		if got != step.want {
			t.Errorf("step %d: outcome = %s, want %s", i, got, step.want)
		}
	}

	if len(sink.records) != 4 {
		t.Fatalf("dispatched %d records, want 4", len(sink.records))
	}

	first := sink.records[0]
	if first.RunID != "run-x" || first.Key != RatingKey || first.Comment != Comment || first.Score != 0.8 {
		t.Errorf("unexpected record: %+v", first)
	}
	if first.ID == "" || first.ID == sink.records[1].ID {
		t.Error("each record needs its own id")
	}

	runID, score, ok := tracker.Last()
	if !ok || runID != "run-x" || score != 1 {
		t.Errorf("Last() = %q, %d, %v", runID, score, ok)
	}
}

func TestTracker_RejectsMissingRunID(t *testing.T) {
	sink := &recordingSink{}
	tracker := NewTracker(sink)

	_, err := tracker.Submit(context.Background(), "", 2)
	if !errors.Is(err, ErrMissingRunID) {
		t.Fatalf("err = %v, want ErrMissingRunID", err)
	}
	if len(sink.records) != 0 {
		t.Error("nothing should be dispatched")
	}
	if _, _, ok := tracker.Last(); ok {
		t.Error("rejected rating must not be remembered")
	}
}

func TestTracker_RejectsOutOfRange(t *testing.T) {
	tracker := NewTracker(nil)
	for _, raw := range []int{-1, 5} {
		if _, err := tracker.Submit(context.Background(), "run", raw); !errors.Is(err, ErrScoreOutOfRange) {
			t.Errorf("Submit(%d) err = %v, want ErrScoreOutOfRange", raw, err)
		}
	}
}

func TestTracker_SinkFailure(t *testing.T) {
	sink := &recordingSink{err: errors.New("503")}
	tracker := NewTracker(sink)
	ctx := context.Background()

	outcome, err := tracker.Submit(ctx, "run-1", 4)
	if outcome != Accepted {
		t.Errorf("outcome = %s, want accepted", outcome)
	}
	if !errors.Is(err, ErrDispatchFailed) {
		t.Errorf("err = %v, want ErrDispatchFailed", err)
	}

	// The failed dispatch still counts as the last recorded pair.
	outcome, err = tracker.Submit(ctx, "run-1", 4)
	if outcome != Duplicate || err != nil {
		t.Errorf("resubmit = %s, %v; want duplicate, nil", outcome, err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		runID   string
		raw     int
		wantErr error
	}{
		{"lowest", "run", 0, nil},
		{"highest", "run", MaxRawScore, nil},
		{"no run", "", 2, ErrMissingRunID},
		{"below scale", "run", -1, ErrScoreOutOfRange},
		{"above scale", "run", MaxRawScore + 1, ErrScoreOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.runID, tt.raw)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate(%q, %d) = %v, want %v", tt.runID, tt.raw, err, tt.wantErr)
			}
		})
	}
}

func TestTracker_ConcurrentSubmit(t *testing.T) {
	var sent atomic.Int32
	tracker := NewTracker(SinkFunc(func(context.Context, types.FeedbackRecord) error {
		sent.Add(1)
		return nil
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = tracker.Submit(context.Background(), "run-1", 3)
		}()
	}
	wg.Wait()

	if n := sent.Load(); n != 1 {
		t.Errorf("sink received %d records, want 1", n)
	}
}
