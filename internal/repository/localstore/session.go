package localstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jwalitptl/booking-kit/internal/model"
	"github.com/jwalitptl/booking-kit/internal/repository"
	"github.com/jwalitptl/booking-kit/pkg/kvstore"
	"github.com/jwalitptl/booking-kit/pkg/logger"
	"github.com/jwalitptl/booking-kit/pkg/metrics"
)

type sessionRepository struct {
	baseRepository
}

// NewSessionRepository creates a session repository over the store.
func NewSessionRepository(store kvstore.Store, keys Keys, log *logger.Logger, m *metrics.Metrics) repository.SessionRepository {
	return &sessionRepository{newBaseRepository(store, keys, log, m)}
}

// Get returns the current session. A missing or malformed session record
// means no session; it is never surfaced as an error.
func (r *sessionRepository) Get(ctx context.Context) (model.Session, bool) {
	raw, ok := r.loadBlob(ctx, r.keys.Session)
	if !ok {
		return model.Session{}, false
	}

	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		r.metrics.DecodeFailures.Inc()
		r.log.Error(err, "malformed session blob, treating as signed out", "key", r.keys.Session)
		return model.Session{}, false
	}
	if sess.ID == "" {
		return model.Session{}, false
	}

	r.observe("load", "ok")
	return sess, true
}

func (r *sessionRepository) Set(ctx context.Context, sess model.Session, token string) error {
	data, err := json.Marshal(sess)
	if err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.store.Set(ctx, r.keys.Token, token); err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to persist session token: %w", err)
	}
	if err := r.store.Set(ctx, r.keys.Session, string(data)); err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to persist session: %w", err)
	}
	r.observe("store", "ok")
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.keys.Token); err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	if err := r.store.Delete(ctx, r.keys.Session); err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to clear session: %w", err)
	}
	r.observe("store", "ok")
	return nil
}
