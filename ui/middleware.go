package ui

import (
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/youssefsiam38/agentrelay"
	"github.com/youssefsiam38/agentrelay/ui/service"
)

// sessionMiddleware binds every request to the chat session of its browser
type sessionMiddleware struct {
	svc *service.Service
	cfg *Config

	mu        sync.Mutex
	lastSweep time.Time
}

func newSessionMiddleware(svc *service.Service, cfg *Config) *sessionMiddleware {
	return &sessionMiddleware{svc: svc, cfg: cfg, lastSweep: time.Now()}
}

func (m *sessionMiddleware) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") {
			next.ServeHTTP(w, r)
			return
		}
		m.maybeSweep()

		browserID := m.browserID(w, r)

		var (
			session *agentrelay.Session
			err     error
		)
		if threadID := r.URL.Query().Get("thread_id"); threadID != "" && r.Method == http.MethodGet {
			session, err = m.svc.Resume(r.Context(), browserID, threadID)
			if errors.Is(err, agentrelay.ErrInvalidThreadID) {
				m.logWarn("ignoring invalid thread_id parameter", "thread_id", threadID)
				session, err = m.svc.Session(r.Context(), browserID)
			}
		} else {
			session, err = m.svc.Session(r.Context(), browserID)
		}
		if err != nil {
			m.logError("failed to open chat session", err)
			http.Error(w, "The assistant is currently unavailable. Please try again later.", http.StatusBadGateway)
			return
		}

		next.ServeHTTP(w, r.WithContext(agentrelay.WithSession(r.Context(), session)))
	})
}

// browserID returns the browser id cookie, issuing a new one if needed
func (m *sessionMiddleware) browserID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(m.cfg.CookieName); err == nil && service.ValidBrowserID(c.Value) {
		return c.Value
	}

	id := service.NewBrowserID()
	path := m.cfg.BasePath
	if path == "" {
		path = "/"
	}
	http.SetCookie(w, &http.Cookie{
		Name:     m.cfg.CookieName,
		Value:    id,
		Path:     path,
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (m *sessionMiddleware) maybeSweep() {
	m.mu.Lock()
	due := time.Since(m.lastSweep) >= m.cfg.SweepInterval
	if due {
		m.lastSweep = time.Now()
	}
	m.mu.Unlock()

	if due {
		m.svc.Sweep()
	}
}

func (m *sessionMiddleware) logWarn(msg string, args ...any) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Warn(msg, args...)
	}
}

func (m *sessionMiddleware) logError(msg string, err error) {
	if m.cfg.Logger != nil {
		m.cfg.Logger.Error(msg, "error", err.Error())
	}
}
