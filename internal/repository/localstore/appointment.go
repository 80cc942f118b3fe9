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

type appointmentRepository struct {
	baseRepository
}

// NewAppointmentRepository creates an appointment repository over the store.
func NewAppointmentRepository(store kvstore.Store, keys Keys, log *logger.Logger, m *metrics.Metrics) repository.AppointmentRepository {
	return &appointmentRepository{newBaseRepository(store, keys, log, m)}
}

func (r *appointmentRepository) LoadAll(ctx context.Context) []model.Appointment {
	raw, ok := r.loadBlob(ctx, r.keys.Appointments)
	if !ok {
		return nil
	}

	var appts []model.Appointment
	if err := json.Unmarshal([]byte(raw), &appts); err != nil {
		r.metrics.DecodeFailures.Inc()
		r.observe("load", "error")
		r.log.Error(err, "malformed appointments blob, treating as empty", "key", r.keys.Appointments)
		return nil
	}

	r.observe("load", "ok")
	return appts
}

func (r *appointmentRepository) StoreAll(ctx context.Context, appts []model.Appointment) error {
	if appts == nil {
		appts = []model.Appointment{}
	}
	data, err := json.Marshal(appts)
	if err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to encode appointments: %w", err)
	}
	if err := r.store.Set(ctx, r.keys.Appointments, string(data)); err != nil {
		r.observe("store", "error")
		return fmt.Errorf("failed to persist appointments: %w", err)
	}
	r.observe("store", "ok")
	return nil
}
