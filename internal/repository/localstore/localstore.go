// Package localstore implements the repositories over a flat key-value
// store, one JSON blob per collection, matching the layout the original
// booking widget kept in browser localStorage.
package localstore

import (
	"context"

	"github.com/jwalitptl/booking-kit/pkg/kvstore"
	"github.com/jwalitptl/booking-kit/pkg/logger"
	"github.com/jwalitptl/booking-kit/pkg/metrics"
)

// Keys names the blobs each repository reads and writes.
type Keys struct {
	Appointments string
	Users        string
	Session      string
	Token        string
}

// DefaultKeys returns the key names the original widget used.
func DefaultKeys() Keys {
	return Keys{
		Appointments: "appointments",
		Users:        "users",
		Session:      "user",
		Token:        "token",
	}
}

// baseRepository provides common functionality for all repositories
type baseRepository struct {
	store   kvstore.Store
	keys    Keys
	log     *logger.Logger
	metrics *metrics.Metrics
}

func newBaseRepository(store kvstore.Store, keys Keys, log *logger.Logger, m *metrics.Metrics) baseRepository {
	return baseRepository{store: store, keys: keys, log: log, metrics: m}
}

func (r *baseRepository) observe(operation, status string) {
	r.metrics.StorageOperations.WithLabelValues(operation, status).Inc()
}

// loadBlob reads a raw blob. A read error is logged and reported as absent:
// the caller sees an empty collection either way.
func (r *baseRepository) loadBlob(ctx context.Context, key string) (string, bool) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.observe("load", "error")
		r.log.Error(err, "failed to read blob", "key", key)
		return "", false
	}
	return raw, ok && raw != ""
}
