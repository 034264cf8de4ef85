package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/youssefsiam38/agentrelay"
	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/ui/service"
)

// Response wraps all API responses.
type Response struct {
	Data  any       `json:"data,omitempty"`
	Error *APIError `json:"error,omitempty"`
}

// APIError represents an API error.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Data: data})
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Error: &APIError{Code: code, Message: message},
	})
}

// writeEvent writes one server-sent event and flushes it.
func writeEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = []byte(`{}`)
	}
	_, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
	flusher.Flush()
}

// requestLanguage picks the language from the form, then the picker cookie.
func requestLanguage(r *http.Request) string {
	var fromCookie string
	if c, err := r.Cookie(service.LanguageCookie); err == nil {
		fromCookie = c.Value
	}
	return service.ResolveLanguage(r.FormValue("lang"), fromCookie)
}

// session returns the request's chat session or writes an error.
func (rt *router) session(w http.ResponseWriter, r *http.Request) (*agentrelay.Session, bool) {
	s, err := agentrelay.SessionFromContextSafely(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no_session", err.Error())
		return nil, false
	}
	return s, true
}

// Chat handlers

func (rt *router) handleGetChat(w http.ResponseWriter, r *http.Request) {
	s, ok := rt.session(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rt.svc.Chat(s, requestLanguage(r)))
}

// doneEvent is the final event of a streamed reply
type doneEvent struct {
	service.MessageView
	HasArtifact bool `json:"has_artifact"`
}

func (rt *router) handleChatStream(w http.ResponseWriter, r *http.Request) {
	if rt.config.ReadOnly {
		writeError(w, http.StatusForbidden, "read_only", "chat is disabled")
		return
	}

	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", "invalid form data")
		return
	}
	message := r.FormValue("message")
	lang := requestLanguage(r)

	if message == "" {
		writeError(w, http.StatusBadRequest, "empty_prompt", "message is required")
		return
	}
	if s.InFlight() {
		writeError(w, http.StatusConflict, "run_in_flight", "a reply is still being generated")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "sse_not_supported", "SSE not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	md := rt.svc.Markdown()
	msg, err := s.Submit(r.Context(), message, lang, func(text string) {
		writeEvent(w, flusher, "repaint", map[string]any{"html": md.Render(text)})
	})
	if err != nil {
		code := "run_not_started"
		switch {
		case errors.Is(err, agentrelay.ErrRunInFlight):
			code = "run_in_flight"
		case errors.Is(err, agentrelay.ErrEmptyPrompt):
			code = "empty_prompt"
		case errors.Is(err, agentrelay.ErrSessionClosed):
			code = "session_closed"
		}
		writeEvent(w, flusher, "error", APIError{Code: code, Message: err.Error()})
		return
	}

	writeEvent(w, flusher, "done", doneEvent{
		MessageView: rt.svc.Message(msg),
		HasArtifact: s.Artifact() != nil,
	})
}

func (rt *router) handleChatClear(w http.ResponseWriter, r *http.Request) {
	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if err := s.Clear(r.Context()); err != nil {
		if errors.Is(err, agentrelay.ErrRunInFlight) {
			writeError(w, http.StatusConflict, "run_in_flight", "wait for the current reply to finish")
			return
		}
		writeError(w, http.StatusBadGateway, "clear_failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"thread_id": s.Thread().ID})
}

// Feedback handlers

// feedbackResult is the outcome of a rating
type feedbackResult struct {
	Outcome   string `json:"outcome"`
	Delivered bool   `json:"delivered"`
	Notice    string `json:"notice,omitempty"`
}

func (rt *router) handleFeedback(w http.ResponseWriter, r *http.Request) {
	if rt.config.ReadOnly {
		writeError(w, http.StatusForbidden, "read_only", "feedback is disabled")
		return
	}

	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_form", "invalid form data")
		return
	}
	score, err := strconv.Atoi(r.FormValue("score"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_score", "score must be an integer between 0 and 4")
		return
	}

	outcome, err := s.Rate(r.Context(), r.FormValue("run_id"), score)
	switch {
	case errors.Is(err, feedback.ErrMissingRunID):
		writeError(w, http.StatusBadRequest, "missing_run_id", "this reply cannot be rated")
		return
	case errors.Is(err, agentrelay.ErrUnknownRun):
		writeError(w, http.StatusBadRequest, "unknown_run", "this reply cannot be rated")
		return
	case errors.Is(err, feedback.ErrScoreOutOfRange):
		writeError(w, http.StatusBadRequest, "invalid_score", "score must be an integer between 0 and 4")
		return
	case errors.Is(err, feedback.ErrDispatchFailed):
		writeJSON(w, http.StatusOK, feedbackResult{
			Outcome: outcome.String(),
			Notice:  "Feedback could not be delivered",
		})
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "feedback_failed", err.Error())
		return
	}

	result := feedbackResult{Outcome: outcome.String(), Delivered: true}
	if outcome == feedback.Accepted {
		result.Notice = "Feedback recorded"
	}
	writeJSON(w, http.StatusOK, result)
}

// Artifact handlers

func (rt *router) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if !s.ArtifactMode() {
		writeError(w, http.StatusNotFound, "artifact_mode_disabled", "artifacts are not enabled")
		return
	}
	artifact := s.Artifact()
	if artifact == nil {
		writeError(w, http.StatusNotFound, "not_found", "the latest reply has no artifact")
		return
	}
	writeJSON(w, http.StatusOK, artifact)
}
