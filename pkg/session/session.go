package session

import (
	"context"

	"salongate/pkg/lifecycle"
)

// Session is the explicit authentication context passed to every request
// builder. Nothing session-related lives in ambient storage: holders receive
// a Session value and invalidation flows through the Store's broadcast.
type Session struct {
	Token  string
	Role   lifecycle.Role
	UserID int64
	Name   string
	Email  string
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

type contextKey struct{}

// WithSession attaches the resolved session to a request context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session resolved for this request, if any.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(contextKey{}).(Session)
	return s, ok
}
