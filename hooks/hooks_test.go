package hooks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/types"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry returned nil")
	}
}

func TestOnRunStart(t *testing.T) {
	r := NewRegistry()
	var capturedThread, capturedPrompt string

	r.OnRunStart(func(ctx context.Context, threadID, prompt string) error {
		capturedThread = threadID
		capturedPrompt = prompt
		return nil
	})

	if err := r.TriggerRunStart(context.Background(), "thread-1", "hello"); err != nil {
		t.Errorf("TriggerRunStart returned error: %v", err)
	}
	if capturedThread != "thread-1" {
		t.Errorf("expected thread 'thread-1', got '%s'", capturedThread)
	}
	if capturedPrompt != "hello" {
		t.Errorf("expected prompt 'hello', got '%s'", capturedPrompt)
	}
}

func TestOnRepaint(t *testing.T) {
	r := NewRegistry()
	if r.HasRepaintHooks() {
		t.Fatal("new registry should have no repaint hooks")
	}

	var texts []string
	r.OnRepaint(func(ctx context.Context, threadID, text string) {
		texts = append(texts, text)
	})
	if !r.HasRepaintHooks() {
		t.Fatal("expected repaint hook to be registered")
	}

	r.TriggerRepaint(context.Background(), "t1", "Hel")
	r.TriggerRepaint(context.Background(), "t1", "Hello")

	if len(texts) != 2 || texts[1] != "Hello" {
		t.Errorf("expected [Hel Hello], got %v", texts)
	}
}

func TestOnRunComplete(t *testing.T) {
	r := NewRegistry()
	var captured types.Message
	var capturedErr error
	runErr := errors.New("stream broke")

	r.OnRunComplete(func(ctx context.Context, threadID string, msg types.Message, err error) error {
		captured = msg
		capturedErr = err
		return nil
	})

	msg := types.Message{Role: types.RoleAssistant, Content: "hi", RunID: "run-1"}
	if err := r.TriggerRunComplete(context.Background(), "thread-1", msg, runErr); err != nil {
		t.Errorf("TriggerRunComplete returned error: %v", err)
	}
	if captured.RunID != "run-1" {
		t.Errorf("expected run id 'run-1', got '%s'", captured.RunID)
	}
	if !errors.Is(capturedErr, runErr) {
		t.Errorf("expected run error to be passed, got %v", capturedErr)
	}
}

func TestOnFeedback(t *testing.T) {
	r := NewRegistry()
	var capturedOutcome feedback.Outcome
	var capturedScore int

	r.OnFeedback(func(ctx context.Context, runID string, rawScore int, outcome feedback.Outcome, err error) error {
		capturedScore = rawScore
		capturedOutcome = outcome
		return nil
	})

	if err := r.TriggerFeedback(context.Background(), "run-1", 3, feedback.Accepted, nil); err != nil {
		t.Errorf("TriggerFeedback returned error: %v", err)
	}
	if capturedScore != 3 {
		t.Errorf("expected score 3, got %d", capturedScore)
	}
	if capturedOutcome != feedback.Accepted {
		t.Errorf("expected outcome accepted, got %s", capturedOutcome)
	}
}

func TestOnClear(t *testing.T) {
	r := NewRegistry()
	var oldID, newID string

	r.OnClear(func(ctx context.Context, oldThreadID, newThreadID string) error {
		oldID, newID = oldThreadID, newThreadID
		return nil
	})

	if err := r.TriggerClear(context.Background(), "t1", "t2"); err != nil {
		t.Errorf("TriggerClear returned error: %v", err)
	}
	if oldID != "t1" || newID != "t2" {
		t.Errorf("expected t1 -> t2, got %s -> %s", oldID, newID)
	}
}

func TestHookStopsOnError(t *testing.T) {
	r := NewRegistry()
	called := []int{}
	expectedErr := errors.New("stop here")

	r.OnRunStart(func(ctx context.Context, threadID, prompt string) error {
		called = append(called, 1)
		return nil
	})
	r.OnRunStart(func(ctx context.Context, threadID, prompt string) error {
		called = append(called, 2)
		return expectedErr
	})
	r.OnRunStart(func(ctx context.Context, threadID, prompt string) error {
		called = append(called, 3)
		return nil
	})

	err := r.TriggerRunStart(context.Background(), "t", "p")
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if len(called) != 2 {
		t.Errorf("expected 2 hooks to be called before stopping, got %d", len(called))
	}
}

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, fmt.Sprintf("%s %s", level, msg))
}

func (l *recordingLogger) Debug(msg string, args ...any) { l.record("DEBUG", msg) }
func (l *recordingLogger) Info(msg string, args ...any)  { l.record("INFO", msg) }
func (l *recordingLogger) Warn(msg string, args ...any)  { l.record("WARN", msg) }
func (l *recordingLogger) Error(msg string, args ...any) { l.record("ERROR", msg) }

func TestLoggingHooks(t *testing.T) {
	logger := &recordingLogger{}
	r := NewRegistry()
	NewLoggingHooks(logger).Register(r)

	ctx := context.Background()
	_ = r.TriggerRunStart(ctx, "t1", "hello")
	_ = r.TriggerRunComplete(ctx, "t1", types.Message{RunID: "run-1", Content: "hi"}, nil)
	_ = r.TriggerRunComplete(ctx, "t1", types.Message{}, errors.New("boom"))
	_ = r.TriggerFeedback(ctx, "run-1", 2, feedback.Accepted, errors.New("sink down"))
	_ = r.TriggerClear(ctx, "t1", "t2")

	want := []string{
		"INFO run starting",
		"INFO run completed",
		"WARN run failed",
		"ERROR feedback dispatch failed",
		"INFO conversation cleared",
	}
	if len(logger.lines) != len(want) {
		t.Fatalf("expected %d log lines, got %d: %v", len(want), len(logger.lines), logger.lines)
	}
	for i, line := range want {
		if logger.lines[i] != line {
			t.Errorf("line %d: expected %q, got %q", i, line, logger.lines[i])
		}
	}
}

func TestMetricsHooks(t *testing.T) {
	metrics := map[string]float64{}
	r := NewRegistry()
	NewMetricsHooks(func(name string, value float64, tags map[string]string) {
		metrics[name] += value
	}).Register(r)

	ctx := context.Background()
	_ = r.TriggerRunComplete(ctx, "t1", types.Message{Content: "four"}, nil)
	_ = r.TriggerRunComplete(ctx, "t1", types.Message{}, errors.New("boom"))
	_ = r.TriggerFeedback(ctx, "run-1", 4, feedback.Accepted, nil)
	_ = r.TriggerFeedback(ctx, "run-1", 4, feedback.Duplicate, nil)

	tests := []struct {
		name string
		want float64
	}{
		{"relay.run.success", 1},
		{"relay.run.error", 1},
		{"relay.run.content_length", 4},
		{"relay.feedback.submitted", 2},
		{"relay.feedback.score", 1.0},
	}
	for _, tt := range tests {
		if metrics[tt.name] != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, metrics[tt.name])
		}
	}
}

func TestConcurrentRegistrationAndTrigger(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		r.OnRunStart(func(ctx context.Context, threadID, prompt string) error {
			return nil
		})
	}

	wg.Add(200)
	for i := 0; i < 100; i++ {
		go func() {
			defer wg.Done()
			r.OnRunStart(func(ctx context.Context, threadID, prompt string) error {
				return nil
			})
		}()
		go func() {
			defer wg.Done()
			_ = r.TriggerRunStart(context.Background(), "t", "p")
		}()
	}
	wg.Wait()
}
