// Package identity resolves who is currently using the system from the
// persisted session record. The resolver is an explicit dependency rather
// than ambient state, so multiple independent sessions can coexist in one
// process.
package identity

import (
	"context"

	"github.com/jwalitptl/booking-kit/internal/repository"
)

// Resolver reports the current user id, if any. Implementations must be
// read-only and must never fail: no session and a broken session record
// both resolve to "anonymous".
type Resolver interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

type sessionResolver struct {
	sessions repository.SessionRepository
}

// NewSessionResolver resolves the user id from the session repository.
func NewSessionResolver(sessions repository.SessionRepository) Resolver {
	return &sessionResolver{sessions: sessions}
}

func (r *sessionResolver) CurrentUserID(ctx context.Context) (string, bool) {
	sess, ok := r.sessions.Get(ctx)
	if !ok {
		return "", false
	}
	return sess.ID, true
}

// Fixed is a Resolver pinned to one user id; the zero value is anonymous.
type Fixed struct {
	UserID string
}

func (f Fixed) CurrentUserID(ctx context.Context) (string, bool) {
	_ = ctx
	return f.UserID, f.UserID != ""
}
