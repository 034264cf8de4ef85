package frontend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/youssefsiam38/agentrelay"
	"github.com/youssefsiam38/agentrelay/feedback"
	"github.com/youssefsiam38/agentrelay/ui/service"
)

// home is the chat page URL.
func (rt *router) home() string {
	return rt.config.BasePath + "/"
}

// requestLanguage picks the language from the query, then the picker cookie.
func requestLanguage(r *http.Request) string {
	var fromCookie string
	if c, err := r.Cookie(service.LanguageCookie); err == nil {
		fromCookie = c.Value
	}
	return service.ResolveLanguage(r.URL.Query().Get("lang"), fromCookie)
}

func (rt *router) logError(msg string, err error) {
	if rt.config.Logger != nil {
		rt.config.Logger.Error(msg, "error", err)
	}
}

// session returns the request's chat session or writes an error.
func (rt *router) session(w http.ResponseWriter, r *http.Request) (*agentrelay.Session, bool) {
	s, err := agentrelay.SessionFromContextSafely(r.Context())
	if err != nil {
		rt.logError("no chat session on request", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	return s, true
}

// redirect sends the browser back to the chat page with a flash message.
func (rt *router) redirect(w http.ResponseWriter, r *http.Request, kind, message string) {
	if message != "" {
		setFlash(w, rt.home(), kind, message)
	}
	http.Redirect(w, r, rt.home(), http.StatusSeeOther)
}

func (rt *router) handleChat(w http.ResponseWriter, r *http.Request) {
	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	view := rt.svc.Chat(s, requestLanguage(r))
	flash := popFlash(w, r, rt.home())
	if err := rt.renderer.render(w, r, "chat.html", flash, view); err != nil {
		rt.logError("failed to render chat", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (rt *router) handleChatSend(w http.ResponseWriter, r *http.Request) {
	if rt.config.ReadOnly {
		http.Error(w, "Chat is disabled", http.StatusForbidden)
		return
	}

	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	lang := service.ResolveLanguage(r.FormValue("lang"), requestLanguage(r))
	_, err := s.Submit(r.Context(), r.FormValue("message"), lang, nil)
	switch {
	case errors.Is(err, agentrelay.ErrEmptyPrompt):
		rt.redirect(w, r, "warning", "Please enter a message.")
	case errors.Is(err, agentrelay.ErrRunInFlight):
		rt.redirect(w, r, "warning", "A reply is still being generated.")
	case err != nil:
		rt.logError("failed to send prompt", err)
		rt.redirect(w, r, "error", "The message could not be sent.")
	default:
		rt.redirect(w, r, "", "")
	}
}

func (rt *router) handleChatClear(w http.ResponseWriter, r *http.Request) {
	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if err := s.Clear(r.Context()); err != nil {
		if errors.Is(err, agentrelay.ErrRunInFlight) {
			rt.redirect(w, r, "warning", "Wait for the current reply to finish.")
			return
		}
		rt.logError("failed to clear conversation", err)
		rt.redirect(w, r, "error", "The conversation could not be cleared.")
		return
	}
	rt.redirect(w, r, "", "")
}

func (rt *router) handleChatFeedback(w http.ResponseWriter, r *http.Request) {
	if rt.config.ReadOnly {
		http.Error(w, "Feedback is disabled", http.StatusForbidden)
		return
	}

	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}
	score, err := strconv.Atoi(r.FormValue("score"))
	if err != nil {
		http.Error(w, "Invalid score", http.StatusBadRequest)
		return
	}

	outcome, err := s.Rate(r.Context(), r.FormValue("run_id"), score)
	switch {
	case errors.Is(err, feedback.ErrDispatchFailed):
		rt.redirect(w, r, "warning", "Feedback could not be delivered.")
	case errors.Is(err, agentrelay.ErrUnknownRun), errors.Is(err, feedback.ErrMissingRunID):
		http.Error(w, "This reply cannot be rated", http.StatusBadRequest)
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case outcome == feedback.Accepted:
		rt.redirect(w, r, "success", "Feedback recorded")
	default:
		rt.redirect(w, r, "", "")
	}
}

// artifactPage is the data of the artifact page
type artifactPage struct {
	ThreadID string
	JSON     string
}

func (rt *router) handleChatArtifact(w http.ResponseWriter, r *http.Request) {
	s, ok := rt.session(w, r)
	if !ok {
		return
	}

	if !s.ArtifactMode() {
		http.NotFound(w, r)
		return
	}

	page := artifactPage{
		ThreadID: s.Thread().ID,
		JSON:     service.PrettyJSON(s.Artifact()),
	}
	if err := rt.renderer.render(w, r, "artifact.html", nil, page); err != nil {
		rt.logError("failed to render artifact", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (rt *router) handleLanguage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	lang := r.FormValue("lang")
	if _, err := agentrelay.LookupLanguage(lang); err != nil {
		http.Error(w, "Unknown language", http.StatusBadRequest)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     service.LanguageCookie,
		Value:    lang,
		Path:     rt.home(),
		MaxAge:   365 * 24 * 60 * 60,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, rt.home(), http.StatusSeeOther)
}
