package repository

import (
	"context"

	"github.com/jwalitptl/booking-kit/internal/model"
)

// All repository interfaces in one file
type (
	// AppointmentRepository persists the appointment collection as a whole.
	// LoadAll never fails: a missing or unparseable collection reads back
	// empty, so callers always operate on a usable snapshot.
	AppointmentRepository interface {
		LoadAll(ctx context.Context) []model.Appointment
		StoreAll(ctx context.Context, appts []model.Appointment) error
	}

	// UserRepository persists registered accounts the same way.
	UserRepository interface {
		LoadAll(ctx context.Context) []model.User
		StoreAll(ctx context.Context, users []model.User) error
	}

	// SessionRepository holds the single current-session record plus the
	// opaque token marking that a session exists.
	SessionRepository interface {
		Get(ctx context.Context) (model.Session, bool)
		Set(ctx context.Context, sess model.Session, token string) error
		Clear(ctx context.Context) error
	}
)
