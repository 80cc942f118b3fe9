package appointment

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-kit/internal/identity"
	"github.com/jwalitptl/booking-kit/internal/model"
	"github.com/jwalitptl/booking-kit/internal/repository"
	"github.com/jwalitptl/booking-kit/internal/repository/localstore"
	"github.com/jwalitptl/booking-kit/pkg/kvstore"
	"github.com/jwalitptl/booking-kit/pkg/logger"
	"github.com/jwalitptl/booking-kit/pkg/metrics"
)

// fixture shares one persisted collection between any number of caller
// contexts, each with its own resolved identity.
type fixture struct {
	repo repository.AppointmentRepository
	log  *logger.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.NewLogger(&logger.Config{
		Level:      logger.ErrorLevel,
		TimeFormat: time.RFC3339,
		Output:     io.Discard,
	})
	repo := localstore.NewAppointmentRepository(kvstore.NewMemory(), localstore.DefaultKeys(), log, metrics.New("test"))
	return &fixture{repo: repo, log: log}
}

// serviceAs returns a store view for the given user; empty means anonymous.
func (f *fixture) serviceAs(userID string) *Service {
	return NewService(f.repo, identity.Fixed{UserID: userID}, f.log, metrics.New("test"))
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSaveStampsIDAndOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	asAda := f.serviceAs("user_ada")
	saved := asAda.Save(ctx, model.Appointment{
		Date:   day(2025, 6, 1),
		Time:   "10:30 AM",
		Doctor: "Dr. Sarah Johnson",
		Type:   model.VisitTypeCheckup,
	})

	assert.NotEmpty(t, saved.ID)
	assert.Contains(t, saved.ID, "apt_")
	assert.Equal(t, "user_ada", saved.UserID)
}

func TestSaveOverridesCallerSuppliedOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	anon := f.serviceAs("")
	saved := anon.Save(ctx, model.Appointment{
		Date:   day(2025, 6, 1),
		Time:   "9:00 AM",
		UserID: "user_forged",
	})
	assert.Empty(t, saved.UserID)
}

func TestSaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asAda := f.serviceAs("user_ada")

	in := model.Appointment{
		Date:         day(2025, 6, 1),
		Time:         "10:30 AM",
		Doctor:       "Dr. Sarah Johnson",
		Type:         model.VisitTypeConsultation,
		Notes:        "first visit",
		PatientName:  "Ada Lovelace",
		PatientEmail: "ada@example.com",
	}
	saved := asAda.Save(ctx, in)

	listed := asAda.List(ctx)
	require.Len(t, listed, 1)
	got := listed[0]

	// Equal to the input except for the assigned id and stamped owner.
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "user_ada", got.UserID)
	got.ID = ""
	got.UserID = ""
	assert.Equal(t, in, got)
}

func TestListOwnershipVisibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	asAda := f.serviceAs("user_ada")
	asBen := f.serviceAs("user_ben")
	anon := f.serviceAs("")

	adas := asAda.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "9:00 AM"})
	anons := anon.Save(ctx, model.Appointment{Date: day(2025, 6, 2), Time: "9:45 AM"})

	// Ada sees hers and only hers.
	listed := asAda.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, adas.ID, listed[0].ID)

	// Ben sees nothing: not Ada's, not the anonymous one.
	assert.Empty(t, asBen.List(ctx))

	// Anonymous callers see only ownerless records.
	listed = anon.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, anons.ID, listed[0].ID)
}

func TestIsSlotBookedIgnoresOwnership(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	anon := f.serviceAs("")
	anon.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "10:30 AM", Doctor: "Dr. A"})

	for _, uid := range []string{"", "user_ada", "user_ben"} {
		svc := f.serviceAs(uid)
		assert.True(t, svc.IsSlotBooked(ctx, day(2025, 6, 1), "10:30 AM"), "caller %q", uid)
		assert.False(t, svc.IsSlotBooked(ctx, day(2025, 6, 1), "11:45 AM"), "caller %q", uid)
		assert.False(t, svc.IsSlotBooked(ctx, day(2025, 6, 2), "10:30 AM"), "caller %q", uid)
	}
}

func TestIsSlotBookedDayGranularity(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.serviceAs("")

	svc.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "10:30 AM"})

	// Same calendar day at a different time-of-day still counts.
	afternoon := time.Date(2025, 6, 1, 15, 42, 0, 0, time.UTC)
	assert.True(t, svc.IsSlotBooked(ctx, afternoon, "10:30 AM"))
}

func TestDoubleBookingWithoutCheckIsAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.serviceAs("")

	first := svc.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "10:30 AM"})
	second := svc.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "10:30 AM"})

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, svc.List(ctx), 2)
}

func TestUpdatePreservesOriginalOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asAda := f.serviceAs("user_ada")

	saved := asAda.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "9:00 AM", Doctor: "Dr. A"})

	changed := saved
	changed.Doctor = "Dr. B"
	changed.UserID = "user_somebody_else"
	require.True(t, asAda.Update(ctx, changed))

	listed := asAda.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, "Dr. B", listed[0].Doctor)
	assert.Equal(t, "user_ada", listed[0].UserID)
}

func TestUpdateAndDeleteFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	asAda := f.serviceAs("user_ada")
	asBen := f.serviceAs("user_ben")
	anon := f.serviceAs("")

	saved := asAda.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "9:00 AM"})

	// Unknown id and foreign owner report the same bare failure.
	assert.False(t, asAda.Update(ctx, model.Appointment{ID: "apt_unknown"}))
	assert.False(t, asAda.Delete(ctx, "apt_unknown"))
	assert.False(t, asBen.Update(ctx, saved))
	assert.False(t, asBen.Delete(ctx, saved.ID))
	assert.False(t, anon.Update(ctx, saved))
	assert.False(t, anon.Delete(ctx, saved.ID))

	// The record is untouched.
	require.Len(t, asAda.List(ctx), 1)
}

func TestAnonymousRecordIsMutableByAnyCaller(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	anon := f.serviceAs("")
	asAda := f.serviceAs("user_ada")

	saved := anon.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "9:00 AM", Doctor: "Dr. A"})

	// An ownerless record can be updated by a signed-in caller, and it
	// stays ownerless afterwards.
	changed := saved
	changed.Doctor = "Dr. B"
	require.True(t, asAda.Update(ctx, changed))

	listed := anon.List(ctx)
	require.Len(t, listed, 1)
	assert.Equal(t, "Dr. B", listed[0].Doctor)
	assert.Empty(t, listed[0].UserID)

	require.True(t, asAda.Delete(ctx, saved.ID))
	assert.Empty(t, anon.List(ctx))
}

func TestDeleteRemovesOwnedRecord(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	asAda := f.serviceAs("user_ada")

	saved := asAda.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "9:00 AM"})
	require.True(t, asAda.Delete(ctx, saved.ID))
	assert.Empty(t, asAda.List(ctx))
	assert.False(t, asAda.Delete(ctx, saved.ID))
}

func TestListUpcomingFiltersAndSorts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.serviceAs("user_ada")

	now := time.Now()
	past := svc.Save(ctx, model.Appointment{Date: now.AddDate(0, 0, -7), Time: "9:00 AM"})
	later := svc.Save(ctx, model.Appointment{Date: now.AddDate(0, 0, 14), Time: "9:45 AM"})
	soon := svc.Save(ctx, model.Appointment{Date: now.AddDate(0, 0, 2), Time: "10:30 AM"})

	upcoming := svc.ListUpcoming(ctx)
	require.Len(t, upcoming, 2)
	assert.Equal(t, soon.ID, upcoming[0].ID)
	assert.Equal(t, later.ID, upcoming[1].ID)

	for _, appt := range upcoming {
		assert.NotEqual(t, past.ID, appt.ID)
		assert.False(t, appt.Date.Before(now))
	}
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := f.serviceAs("user_ada")

	// Dates deliberately out of order; List must not sort.
	a := svc.Save(ctx, model.Appointment{Date: day(2025, 6, 3), Time: "9:00 AM"})
	b := svc.Save(ctx, model.Appointment{Date: day(2025, 6, 1), Time: "9:00 AM"})
	c := svc.Save(ctx, model.Appointment{Date: day(2025, 6, 2), Time: "9:00 AM"})

	listed := svc.List(ctx)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{a.ID, b.ID, c.ID}, []string{listed[0].ID, listed[1].ID, listed[2].ID})
}
