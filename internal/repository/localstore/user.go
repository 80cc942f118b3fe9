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

type userRepository struct {
	baseRepository
}

// NewUserRepository creates an account repository over the store.
func NewUserRepository(store kvstore.Store, keys Keys, log *logger.Logger, m *metrics.Metrics) repository.UserRepository {
	return &userRepository{newBaseRepository(store, keys, log, m)}
}

func (r *userRepository) LoadAll(ctx context.Context) []model.User {
	raw, ok := r.loadBlob(ctx, r.keys.Users)
	if !ok {
		return nil
	}

	var users []model.User
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		r.metrics.DecodeFailures.Inc()
		r.observe("load", "error")
		r.log.Error(err, "malformed users blob, treating as empty", "key", r.keys.Users)
		return nil
	}

	r.observe("load", "ok")
	return users
}

func (r *userRepository) StoreAll(ctx context.Context, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to encode users: %w", err)
	}
	if err := r.store.Set(ctx, r.keys.Users, string(data)); err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to persist users: %w", err)
	}
	r.observe("store", "ok")
	return nil
}
