package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youssefsiam38/agentrelay"
)

type sessionEntry struct {
	session  *agentrelay.Session
	lastSeen time.Time
}

// sessionTable maps browser ids to sessions
type sessionTable struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	now     func() time.Time
}

func newSessionTable(now func() time.Time) *sessionTable {
	return &sessionTable{
		entries: make(map[string]*sessionEntry),
		now:     now,
	}
}

// NewBrowserID returns a fresh browser id
func NewBrowserID() string {
	return uuid.NewString()
}

// ValidBrowserID reports whether id is a browser id issued by NewBrowserID
func ValidBrowserID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Session returns the session of browserID, creating one on first use.
func (s *Service) Session(ctx context.Context, browserID string) (*agentrelay.Session, error) {
	if !ValidBrowserID(browserID) {
		return nil, ErrInvalidBrowserID
	}

	if session, ok := s.lookup(browserID); ok {
		return session, nil
	}

	session, err := s.client.NewSession(ctx)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	s.logDebug("browser session created", "browser_id", browserID, "thread_id", session.Thread().ID)
	return s.store(browserID, session), nil
}

// Resume binds browserID to an existing thread, replacing its current
// session unless that session is already on threadID. The replacement keeps
// the rating memory of the replaced session.
func (s *Service) Resume(ctx context.Context, browserID, threadID string) (*agentrelay.Session, error) {
	if !ValidBrowserID(browserID) {
		return nil, ErrInvalidBrowserID
	}

	prev, ok := s.lookup(browserID)
	if ok && prev.Thread().ID == threadID {
		return prev, nil
	}

	session, err := s.client.ResumeSession(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("resume session: %w", err)
	}
	// Ratings are deduplicated per browser, across the threads it opens.
	session.AdoptFeedback(prev)
	s.logDebug("browser session resumed", "browser_id", browserID, "thread_id", threadID)
	return s.store(browserID, session), nil
}

// Forget drops and closes the session of browserID.
func (s *Service) Forget(browserID string) {
	s.sessions.mu.Lock()
	entry, ok := s.sessions.entries[browserID]
	delete(s.sessions.entries, browserID)
	s.sessions.mu.Unlock()

	if ok {
		entry.session.Close()
	}
}

// Sweep closes sessions idle for longer than the idle timeout and returns
// how many were evicted. Sessions with a run in flight are kept.
func (s *Service) Sweep() int {
	t := s.sessions
	cutoff := t.now().Add(-s.config.IdleTimeout)

	t.mu.Lock()
	var evicted []*agentrelay.Session
	for id, entry := range t.entries {
		if entry.lastSeen.Before(cutoff) && !entry.session.InFlight() {
			evicted = append(evicted, entry.session)
			delete(t.entries, id)
		}
	}
	t.mu.Unlock()

	for _, session := range evicted {
		session.Close()
	}
	if len(evicted) > 0 {
		s.logDebug("idle sessions evicted", "count", len(evicted))
	}
	return len(evicted)
}

// Len returns the number of live sessions.
func (s *Service) Len() int {
	s.sessions.mu.Lock()
	defer s.sessions.mu.Unlock()
	return len(s.sessions.entries)
}

func (s *Service) lookup(browserID string) (*agentrelay.Session, bool) {
	t := s.sessions
	t.mu.Lock()
	defer t.mu.Unlock()

	entry, ok := t.entries[browserID]
	if !ok {
		return nil, false
	}
	entry.lastSeen = t.now()
	return entry.session, true
}

// store registers session for browserID. If another request stored a
// session for the same id first, the replaced one is closed.
func (s *Service) store(browserID string, session *agentrelay.Session) *agentrelay.Session {
	t := s.sessions
	t.mu.Lock()
	old, hadOld := t.entries[browserID]
	t.entries[browserID] = &sessionEntry{session: session, lastSeen: t.now()}
	t.mu.Unlock()

	if hadOld && old.session != session {
		old.session.Close()
	}
	return session
}
