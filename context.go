package agentrelay

import "context"

// sessionContextKey is the context key for storing the request's session.
type sessionContextKey struct{}

// WithSession stores s in ctx. HTTP front-ends call this from their session
// middleware so handlers can retrieve the session of the current user.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext returns the session stored in ctx.
//
// It panics if the context does not contain a session. Use
// SessionFromContextSafely if you need to handle the case where no session
// is present.
func SessionFromContext(ctx context.Context) *Session {
	s, err := SessionFromContextSafely(ctx)
	if err != nil {
		panic(err)
	}
	return s
}

// SessionFromContextSafely returns the session stored in ctx. Unlike
// SessionFromContext, it returns ErrNoSession instead of panicking.
func SessionFromContextSafely(ctx context.Context) (*Session, error) {
	s, ok := ctx.Value(sessionContextKey{}).(*Session)
	if !ok || s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}
