package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-kit/internal/identity"
	"github.com/jwalitptl/booking-kit/internal/model"
	"github.com/jwalitptl/booking-kit/internal/repository"
	"github.com/jwalitptl/booking-kit/pkg/logger"
	"github.com/jwalitptl/booking-kit/pkg/metrics"
)

// Service implements the appointment store. Every operation loads the whole
// persisted collection, works on it in memory and writes it back. A mutex
// serializes those read-modify-write cycles so two callers in one process
// cannot lose each other's writes; the availability check and Save remain
// separate calls, so a caller that skips IsSlotBooked can still double-book.
type Service struct {
	mu       sync.Mutex
	repo     repository.AppointmentRepository
	resolver identity.Resolver
	log      *logger.Logger
	metrics  *metrics.Metrics
}

func NewService(repo repository.AppointmentRepository, resolver identity.Resolver, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		log:      log,
		metrics:  m,
	}
}

// List returns the current user's appointments, or the anonymous ones when
// nobody is signed in. Order is the insertion order of the collection.
func (s *Service) List(ctx context.Context) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible(ctx, s.repo.LoadAll(ctx))
}

// ListUpcoming returns the visible appointments dated now or later, sorted
// ascending by date. Records sharing a date keep their relative order.
func (s *Service) ListUpcoming(ctx context.Context) []model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var upcoming []model.Appointment
	for _, appt := range s.visible(ctx, s.repo.LoadAll(ctx)) {
		if !appt.Date.Before(now) {
			upcoming = append(upcoming, appt)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].Date.Before(upcoming[j].Date)
	})
	return upcoming
}

// IsSlotBooked reports whether any appointment, regardless of owner,
// occupies the given calendar day and slot label. Slot uniqueness is global
// across users.
func (s *Service) IsSlotBooked(ctx context.Context, date time.Time, slot string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, appt := range s.repo.LoadAll(ctx) {
		if sameDay(appt.Date, date) && appt.Time == slot {
			s.metrics.SlotConflicts.Inc()
			return true
		}
	}
	return false
}

// Save assigns a fresh id, stamps the appointment with the current user id
// (or leaves it anonymous), appends it and persists the collection. Save
// does not re-check slot availability; that is the caller's job before
// calling it. Persistence failures are logged, not surfaced, so the returned
// record is what the caller should treat as saved.
func (s *Service) Save(ctx context.Context, appt model.Appointment) model.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()

	appt.ID = "apt_" + uuid.NewString()
	appt.UserID = ""
	if uid, ok := s.resolver.CurrentUserID(ctx); ok {
		appt.UserID = uid
	}

	appts := append(s.repo.LoadAll(ctx), appt)
	if err := s.repo.StoreAll(ctx, appts); err != nil {
		s.log.Error(err, "failed to persist saved appointment", "id", appt.ID)
	}
	s.metrics.AppointmentsSaved.Inc()
	return appt
}

// Update replaces an existing appointment. It reports false when no record
// has the given id, or when the record belongs to somebody else; the two
// cases are deliberately indistinguishable to the caller. The owning user
// id is always carried over from the stored record, whatever the caller
// supplied.
func (s *Service) Update(ctx context.Context, appt model.Appointment) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	appts := s.repo.LoadAll(ctx)
	idx := indexByID(appts, appt.ID)
	if idx < 0 {
		return false
	}

	existing := appts[idx]
	if !s.mayModify(ctx, existing) {
		s.metrics.AccessDenied.Inc()
		return false
	}

	appt.UserID = existing.UserID
	appts[idx] = appt

	if err := s.repo.StoreAll(ctx, appts); err != nil {
		s.log.Error(err, "failed to persist updated appointment", "id", appt.ID)
		return false
	}
	return true
}

// Delete removes an appointment under the same authorization rule as
// Update.
func (s *Service) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	appts := s.repo.LoadAll(ctx)
	idx := indexByID(appts, id)
	if idx < 0 {
		return false
	}

	if !s.mayModify(ctx, appts[idx]) {
		s.metrics.AccessDenied.Inc()
		return false
	}

	appts = append(appts[:idx], appts[idx+1:]...)
	if err := s.repo.StoreAll(ctx, appts); err != nil {
		s.log.Error(err, "failed to persist appointment deletion", "id", id)
		return false
	}
	return true
}

// visible filters the collection down to what the current caller may see:
// their own records when signed in, ownerless records otherwise.
func (s *Service) visible(ctx context.Context, appts []model.Appointment) []model.Appointment {
	uid, signedIn := s.resolver.CurrentUserID(ctx)

	var out []model.Appointment
	for _, appt := range appts {
		if signedIn && appt.UserID == uid {
			out = append(out, appt)
		}
		if !signedIn && appt.Anonymous() {
			out = append(out, appt)
		}
	}
	return out
}

// mayModify applies the ownership rule: owned records require the matching
// user, ownerless records are open to any caller.
func (s *Service) mayModify(ctx context.Context, appt model.Appointment) bool {
	if appt.Anonymous() {
		return true
	}
	uid, _ := s.resolver.CurrentUserID(ctx)
	return appt.UserID == uid
}

func indexByID(appts []model.Appointment, id string) int {
	if id == "" {
		return -1
	}
	for i, appt := range appts {
		if appt.ID == id {
			return i
		}
	}
	return -1
}

// sameDay compares calendar days with both instants normalized to UTC,
// ignoring the time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
