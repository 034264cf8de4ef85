package agentrelay

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/youssefsiam38/agentrelay/conversation"
	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/remote"
	"github.com/youssefsiam38/agentrelay/streaming"
	"github.com/youssefsiam38/agentrelay/types"
)

// Session is the per-user chat context: the conversation log, the active
// thread, the artifact of the latest run and the feedback tracker.
//
// A Session runs at most one prompt at a time. Its methods are safe to call
// from several goroutines; a concurrent Submit or Clear while a run is in
// flight fails with ErrRunInFlight.
type Session struct {
	client    *Client
	assistant types.Assistant

	mu       sync.Mutex
	inFlight bool
	closed   bool
	store    *conversation.Store

	feedbackMu sync.Mutex // guards tracker, which AdoptFeedback may swap
	tracker    *feedback.Tracker
}

// Submit sends prompt as a new user message and streams the reply.
// onRepaint, if non-nil, receives the visible answer text every time it
// changes. lang is the locality passed to the remote agent.
//
// The returned error only reports that the run could not be started.
// Stream failures are folded into the returned message.
func (s *Session) Submit(ctx context.Context, prompt, lang string, onRepaint streaming.RepaintFunc) (types.Message, error) {
	if strings.TrimSpace(prompt) == "" {
		return types.Message{}, NewRelayError("Submit", ErrEmptyPrompt)
	}

	thread, err := s.begin()
	if err != nil {
		return types.Message{}, err
	}
	defer s.end()

	if err := s.client.hooks.TriggerRunStart(ctx, thread.ID, prompt); err != nil {
		return types.Message{}, NewRelayErrorWithThread("Submit", thread.ID, err)
	}

	s.mu.Lock()
	// A new prompt discards the artifact of the previous run.
	s.store.SetArtifact(nil)
	if _, err := s.store.AppendUser(ctx, prompt); err != nil {
		s.client.logger.Warn("transcript write failed", "thread_id", thread.ID, "error", err.Error())
	}
	run := s.runRequest(prompt, lang)
	s.mu.Unlock()

	result := s.stream(ctx, thread.ID, run, onRepaint)
	if result.Err != nil {
		s.client.logger.Warn("run failed", "thread_id", thread.ID, "run_id", result.Message.RunID, "error", result.Err.Error())
	}

	s.mu.Lock()
	if err := s.store.AppendAssistant(ctx, result.Message); err != nil {
		s.client.logger.Warn("transcript write failed", "thread_id", thread.ID, "error", err.Error())
	}
	if s.client.artifactMode && len(result.Artifact) > 0 {
		s.store.SetArtifact(result.Artifact)
	}
	s.mu.Unlock()

	if err := s.client.hooks.TriggerRunComplete(ctx, thread.ID, result.Message, result.Err); err != nil {
		s.client.logger.Warn("run complete hook failed", "thread_id", thread.ID, "error", err.Error())
	}

	return result.Message, nil
}

// begin marks the session busy and returns the thread the run is bound to
func (s *Session) begin() (types.Thread, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	thread := s.store.CurrentThread()
	if s.closed {
		return thread, NewRelayErrorWithThread("Submit", thread.ID, ErrSessionClosed)
	}
	if s.inFlight {
		return thread, NewRelayErrorWithThread("Submit", thread.ID, ErrRunInFlight)
	}
	s.inFlight = true
	return thread, nil
}

func (s *Session) end() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

func (s *Session) stream(ctx context.Context, threadID string, run remote.RunRequest, onRepaint streaming.RepaintFunc) streaming.Result {
	src, err := s.client.service.StreamRun(ctx, threadID, run)
	if err != nil {
		return streaming.NewAccumulator().Fail(err)
	}

	repaint := onRepaint
	if s.client.hooks.HasRepaintHooks() {
		repaint = func(text string) {
			s.client.hooks.TriggerRepaint(ctx, threadID, text)
			if onRepaint != nil {
				onRepaint(text)
			}
		}
	}

	return streaming.Interpret(src, s.client.cfg.nodes, repaint)
}

// runRequest builds the run body. Callers hold s.mu.
func (s *Session) runRequest(prompt, lang string) remote.RunRequest {
	var messages []remote.InputMessage
	if s.client.cfg.historyMode == HistoryFull {
		for _, msg := range s.store.Messages() {
			// Failed runs are local error notices, not agent turns.
			if msg.Role == types.RoleAssistant && (msg.RunID == "" || strings.HasPrefix(msg.Content, streaming.ErrorPrefix)) {
				continue
			}
			messages = append(messages, remote.InputMessage{Role: msg.Role.WireRole(), Content: msg.Content})
		}
	} else {
		messages = []remote.InputMessage{{Role: types.RoleUser.WireRole(), Content: prompt}}
	}

	run := remote.RunRequest{
		AssistantID: s.assistant.ID,
		Input:       remote.RunInput{Messages: messages},
		StreamMode:  s.client.cfg.streamMode,
	}
	if lang != "" {
		run.Config.Configurable = map[string]any{"locality": lang}
	}
	return run
}

// Rate records a 0..4 star rating for the assistant message of runID.
// Only runs whose reply is in the conversation log can be rated; any other
// run id fails with ErrUnknownRun without contacting the sink.
//
// Duplicate is returned without contacting the sink when the pair equals the
// last recorded one. A failed dispatch still counts as Accepted; the error
// is returned for reporting only.
func (s *Session) Rate(ctx context.Context, runID string, rawScore int) (feedback.Outcome, error) {
	if err := feedback.Validate(runID, rawScore); err != nil {
		return feedback.Duplicate, NewRelayError("Rate", err).WithContext("run_id", runID)
	}
	if !s.hasRatableRun(runID) {
		return feedback.Duplicate, NewRelayError("Rate", ErrUnknownRun).WithContext("run_id", runID)
	}

	s.feedbackMu.Lock()
	tracker := s.tracker
	s.feedbackMu.Unlock()

	outcome, err := tracker.Submit(ctx, runID, rawScore)
	if err != nil && !errors.Is(err, feedback.ErrDispatchFailed) {
		return outcome, NewRelayError("Rate", err).WithContext("run_id", runID)
	}

	if hookErr := s.client.hooks.TriggerFeedback(ctx, runID, rawScore, outcome, err); hookErr != nil {
		s.client.logger.Warn("feedback hook failed", "run_id", runID, "error", hookErr.Error())
	}

	if err != nil {
		s.client.logger.Error("feedback dispatch failed", "run_id", runID, "error", err.Error())
		return outcome, NewRelayError("Rate", err).WithContext("run_id", runID)
	}
	return outcome, nil
}

// hasRatableRun reports whether the log holds a ratable reply of runID
func (s *Session) hasRatableRun(runID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, msg := range s.store.Messages() {
		if msg.RunID == runID && msg.CanRate() {
			return true
		}
	}
	return false
}

// AdoptFeedback makes s share the rating memory of prev. A browser that
// reopens a thread keeps deduplicating against the ratings it already sent.
func (s *Session) AdoptFeedback(prev *Session) {
	if prev == nil || prev == s {
		return
	}
	prev.feedbackMu.Lock()
	tracker := prev.tracker
	prev.feedbackMu.Unlock()

	s.feedbackMu.Lock()
	s.tracker = tracker
	s.feedbackMu.Unlock()
}

// Clear empties the conversation, drops the artifact and switches to a new
// thread. The previous thread is left untouched on the server.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	oldThread := s.store.CurrentThread()
	if s.closed {
		s.mu.Unlock()
		return NewRelayErrorWithThread("Clear", oldThread.ID, ErrSessionClosed)
	}
	if s.inFlight {
		s.mu.Unlock()
		return NewRelayErrorWithThread("Clear", oldThread.ID, ErrRunInFlight)
	}
	err := s.store.Clear(ctx)
	newThread := s.store.CurrentThread()
	s.mu.Unlock()

	if err != nil {
		return NewRelayErrorWithThread("Clear", oldThread.ID, err)
	}

	if err := s.client.hooks.TriggerClear(ctx, oldThread.ID, newThread.ID); err != nil {
		s.client.logger.Warn("clear hook failed", "thread_id", newThread.ID, "error", err.Error())
	}
	return nil
}

// Close marks the session unusable. Runs already in flight complete normally.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

// Messages returns a copy of the conversation log
func (s *Session) Messages() []types.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Messages()
}

// Thread returns the active thread
func (s *Session) Thread() types.Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.CurrentThread()
}

// Assistant returns the system assistant the session runs against
func (s *Session) Assistant() types.Assistant {
	return s.assistant
}

// Artifact returns the artifact of the latest run, or nil when artifact
// mode is off or the run produced none
func (s *Session) Artifact() json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Artifact()
}

// ArtifactMode reports whether this session keeps tool artifacts
func (s *Session) ArtifactMode() bool {
	return s.client.artifactMode
}

// InFlight reports whether a run is currently streaming
func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}
