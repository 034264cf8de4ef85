package hooks

import (
	"context"
	"sync"

	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/types"
)

// RunStartHook is called before a run is opened against the remote service
type RunStartHook func(ctx context.Context, threadID, prompt string) error

// RepaintHook is called each time the visible answer text of a run changes
type RepaintHook func(ctx context.Context, threadID, text string)

// RunCompleteHook is called after a run is finalized.
// err is the stream failure folded into msg, if any.
type RunCompleteHook func(ctx context.Context, threadID string, msg types.Message, err error) error

// FeedbackHook is called after a rating was submitted to the tracker
// Parameters: ctx, runID, rawScore, outcome, dispatch error
type FeedbackHook func(ctx context.Context, runID string, rawScore int, outcome feedback.Outcome, err error) error

// ClearHook is called after a conversation switched to a new thread
type ClearHook func(ctx context.Context, oldThreadID, newThreadID string) error

// Registry holds all registered hooks
type Registry struct {
	mu          sync.RWMutex
	runStart    []RunStartHook
	repaint     []RepaintHook
	runComplete []RunCompleteHook
	feedback    []FeedbackHook
	clear       []ClearHook
}

// NewRegistry creates a new hook registry
func NewRegistry() *Registry {
	return &Registry{
		runStart:    []RunStartHook{},
		repaint:     []RepaintHook{},
		runComplete: []RunCompleteHook{},
		feedback:    []FeedbackHook{},
		clear:       []ClearHook{},
	}
}

// OnRunStart registers a hook to be called before a run starts
func (r *Registry) OnRunStart(hook RunStartHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runStart = append(r.runStart, hook)
}

// OnRepaint registers a hook to be called on every repaint
func (r *Registry) OnRepaint(hook RepaintHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.repaint = append(r.repaint, hook)
}

// OnRunComplete registers a hook to be called after a run is finalized
func (r *Registry) OnRunComplete(hook RunCompleteHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runComplete = append(r.runComplete, hook)
}

// OnFeedback registers a hook to be called after a rating is submitted
func (r *Registry) OnFeedback(hook FeedbackHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.feedback = append(r.feedback, hook)
}

// OnClear registers a hook to be called after a conversation is cleared
func (r *Registry) OnClear(hook ClearHook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clear = append(r.clear, hook)
}

// TriggerRunStart calls all registered run-start hooks
func (r *Registry) TriggerRunStart(ctx context.Context, threadID, prompt string) error {
	r.mu.RLock()
	hooks := make([]RunStartHook, len(r.runStart))
	copy(hooks, r.runStart)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, threadID, prompt); err != nil {
			return err
		}
	}
	return nil
}

// TriggerRepaint calls all registered repaint hooks
func (r *Registry) TriggerRepaint(ctx context.Context, threadID, text string) {
	r.mu.RLock()
	hooks := make([]RepaintHook, len(r.repaint))
	copy(hooks, r.repaint)
	r.mu.RUnlock()

	for _, hook := range hooks {
		hook(ctx, threadID, text)
	}
}

// HasRepaintHooks reports whether any repaint hook is registered
func (r *Registry) HasRepaintHooks() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.repaint) > 0
}

// TriggerRunComplete calls all registered run-complete hooks
func (r *Registry) TriggerRunComplete(ctx context.Context, threadID string, msg types.Message, err error) error {
	r.mu.RLock()
	hooks := make([]RunCompleteHook, len(r.runComplete))
	copy(hooks, r.runComplete)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if hookErr := hook(ctx, threadID, msg, err); hookErr != nil {
			return hookErr
		}
	}
	return nil
}

// TriggerFeedback calls all registered feedback hooks
func (r *Registry) TriggerFeedback(ctx context.Context, runID string, rawScore int, outcome feedback.Outcome, err error) error {
	r.mu.RLock()
	hooks := make([]FeedbackHook, len(r.feedback))
	copy(hooks, r.feedback)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if hookErr := hook(ctx, runID, rawScore, outcome, err); hookErr != nil {
			return hookErr
		}
	}
	return nil
}

// TriggerClear calls all registered clear hooks
func (r *Registry) TriggerClear(ctx context.Context, oldThreadID, newThreadID string) error {
	r.mu.RLock()
	hooks := make([]ClearHook, len(r.clear))
	copy(hooks, r.clear)
	r.mu.RUnlock()

	for _, hook := range hooks {
		if err := hook(ctx, oldThreadID, newThreadID); err != nil {
			return err
		}
	}
	return nil
}
