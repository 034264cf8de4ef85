package hooks

import (
	"context"

	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/types"
)

// Logger is the structured logger used by LoggingHooks.
// *slog.Logger satisfies it.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// LoggingHooks provides built-in logging hooks for observability
type LoggingHooks struct {
	logger Logger
}

// NewLoggingHooks creates logging hooks with the provided logger
func NewLoggingHooks(logger Logger) *LoggingHooks {
	return &LoggingHooks{logger: logger}
}

// Register attaches all logging hooks to r
func (h *LoggingHooks) Register(r *Registry) {
	r.OnRunStart(h.RunStart)
	r.OnRunComplete(h.RunComplete)
	r.OnFeedback(h.Feedback)
	r.OnClear(h.Clear)
}

// RunStart logs the start of a run
func (h *LoggingHooks) RunStart(ctx context.Context, threadID, prompt string) error {
	h.logger.Info("run starting", "thread_id", threadID, "prompt_length", len(prompt))
	return nil
}

// RunComplete logs the outcome of a run
func (h *LoggingHooks) RunComplete(ctx context.Context, threadID string, msg types.Message, err error) error {
	if err != nil {
		h.logger.Warn("run failed", "thread_id", threadID, "run_id", msg.RunID, "error", err.Error())
		return nil
	}
	if msg.RunID == "" {
		h.logger.Warn("run completed without run id", "thread_id", threadID)
	}
	h.logger.Info("run completed", "thread_id", threadID, "run_id", msg.RunID, "content_length", len(msg.Content))
	return nil
}

// Feedback logs rating submissions
func (h *LoggingHooks) Feedback(ctx context.Context, runID string, rawScore int, outcome feedback.Outcome, err error) error {
	if err != nil {
		h.logger.Error("feedback dispatch failed", "run_id", runID, "score", rawScore, "error", err.Error())
		return nil
	}
	h.logger.Debug("feedback submitted", "run_id", runID, "score", rawScore, "outcome", outcome.String())
	return nil
}

// Clear logs thread replacement
func (h *LoggingHooks) Clear(ctx context.Context, oldThreadID, newThreadID string) error {
	h.logger.Info("conversation cleared", "old_thread_id", oldThreadID, "thread_id", newThreadID)
	return nil
}

// MetricsHooks collects metrics for monitoring
type MetricsHooks struct {
	OnMetric func(name string, value float64, tags map[string]string)
}

// NewMetricsHooks creates metrics collection hooks
func NewMetricsHooks(onMetric func(string, float64, map[string]string)) *MetricsHooks {
	return &MetricsHooks{OnMetric: onMetric}
}

// Register attaches all metrics hooks to r
func (h *MetricsHooks) Register(r *Registry) {
	r.OnRunComplete(h.RunComplete)
	r.OnFeedback(h.Feedback)
}

// RunComplete records run metrics
func (h *MetricsHooks) RunComplete(ctx context.Context, threadID string, msg types.Message, err error) error {
	if err != nil {
		h.OnMetric("relay.run.error", 1, nil)
		return nil
	}
	h.OnMetric("relay.run.success", 1, nil)
	h.OnMetric("relay.run.content_length", float64(len(msg.Content)), nil)
	return nil
}

// Feedback records rating metrics
func (h *MetricsHooks) Feedback(ctx context.Context, runID string, rawScore int, outcome feedback.Outcome, err error) error {
	tags := map[string]string{"outcome": outcome.String()}

	if err != nil {
		h.OnMetric("relay.feedback.error", 1, tags)
		return nil
	}
	h.OnMetric("relay.feedback.submitted", 1, tags)
	if outcome == feedback.Accepted {
		h.OnMetric("relay.feedback.score", feedback.Normalize(rawScore), tags)
	}
	return nil
}
