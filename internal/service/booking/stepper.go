// Package booking models the multi-step booking flow as a finite-state
// stepper decoupled from any presentation: pick a date and slot, fill in
// visit details, confirm. The stepper consults slot availability when the
// slot is chosen, not when the booking is confirmed, reproducing the
// check-then-act flow of the form it stands in for.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/booking-kit/internal/model"
	apperrors "github.com/jwalitptl/booking-kit/pkg/errors"
)

// Step identifies the stepper state.
type Step int

const (
	StepDateTime Step = iota
	StepDetails
	StepConfirm
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepDateTime:
		return "date_time"
	case StepDetails:
		return "details"
	case StepConfirm:
		return "confirm"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// ErrInvalidStep is returned when an operation is called out of order.
var ErrInvalidStep = errors.New("operation not valid in current step")

// Store is the slice of the appointment service the stepper needs.
type Store interface {
	IsSlotBooked(ctx context.Context, date time.Time, slot string) bool
	Save(ctx context.Context, appt model.Appointment) model.Appointment
}

// DetailsInput carries the visit details collected in the second step.
type DetailsInput struct {
	Doctor       string `validate:"required"`
	Type         string `validate:"required"`
	Notes        string `validate:"max=1000"`
	PatientName  string `validate:"max=200"`
	PatientEmail string `validate:"omitempty,email"`
}

// Stepper walks one booking through the flow. It is not safe for concurrent
// use; each booking attempt gets its own Stepper.
type Stepper struct {
	store    Store
	slots    []string
	validate *validator.Validate
	step     Step
	req      model.BookingRequest
}

// NewStepper creates a stepper offering the given slot labels, falling back
// to the default grid when none are configured.
func NewStepper(store Store, slots []string) *Stepper {
	if len(slots) == 0 {
		slots = model.DefaultSlots()
	}
	return &Stepper{
		store:    store,
		slots:    slots,
		validate: validator.New(),
		step:     StepDateTime,
	}
}

// Step reports the current state.
func (s *Stepper) Step() Step {
	return s.step
}

// SelectDateTime picks the visit day and slot label and advances to the
// details step. The slot must be on the configured grid and currently free.
func (s *Stepper) SelectDateTime(ctx context.Context, date time.Time, slot string) error {
	if s.step != StepDateTime {
		return ErrInvalidStep
	}
	if !s.knownSlot(slot) {
		return apperrors.NewBadRequest("unknown time slot", nil)
	}
	if s.store.IsSlotBooked(ctx, date, slot) {
		return apperrors.NewConflict("slot is already booked", nil)
	}

	s.req.Date = date
	s.req.Time = slot
	s.step = StepDetails
	return nil
}

// FillDetails records the visit details and advances to confirmation.
func (s *Stepper) FillDetails(ctx context.Context, in DetailsInput) error {
	_ = ctx
	if s.step != StepDetails {
		return ErrInvalidStep
	}
	if err := s.validate.Struct(in); err != nil {
		return apperrors.NewBadRequest("invalid booking details", err)
	}

	s.req.Doctor = in.Doctor
	s.req.Type = in.Type
	s.req.Notes = in.Notes
	s.req.PatientName = in.PatientName
	s.req.PatientEmail = in.PatientEmail
	s.step = StepConfirm
	return nil
}

// Confirm saves the collected booking and finishes the flow. Availability
// is not re-checked here; a slot taken since SelectDateTime goes through
// double-booked.
func (s *Stepper) Confirm(ctx context.Context) (model.Appointment, error) {
	if s.step != StepConfirm {
		return model.Appointment{}, ErrInvalidStep
	}

	appt := s.store.Save(ctx, s.req.Appointment())
	s.step = StepDone
	return appt, nil
}

// Back moves one step towards the start. It has no effect on the first step
// or after the booking is done.
func (s *Stepper) Back() {
	switch s.step {
	case StepDetails:
		s.step = StepDateTime
	case StepConfirm:
		s.step = StepDetails
	}
}

func (s *Stepper) knownSlot(slot string) bool {
	for _, known := range s.slots {
		if known == slot {
			return true
		}
	}
	return false
}
