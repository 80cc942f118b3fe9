package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-kit/internal/config"
	"github.com/jwalitptl/booking-kit/internal/identity"
	"github.com/jwalitptl/booking-kit/internal/model"
	"github.com/jwalitptl/booking-kit/internal/repository/localstore"
	appointmentService "github.com/jwalitptl/booking-kit/internal/service/appointment"
	authService "github.com/jwalitptl/booking-kit/internal/service/auth"
	"github.com/jwalitptl/booking-kit/internal/service/booking"
	"github.com/jwalitptl/booking-kit/pkg/kvstore"
	"github.com/jwalitptl/booking-kit/pkg/logger"
	"github.com/jwalitptl/booking-kit/pkg/metrics"
)

const dateLayout = "2006-01-02"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLog := logger.NewLogger(&logger.Config{
		Level:      logger.ParseLevel(cfg.Log.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stderr,
	})

	store, err := openStore(&cfg.Storage)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}

	m := metrics.New("booking")
	if err := m.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	keys := localstore.Keys{
		Appointments: cfg.Storage.Keys.Appointments,
		Users:        cfg.Storage.Keys.Users,
		Session:      cfg.Storage.Keys.Session,
		Token:        cfg.Storage.Keys.Token,
	}

	appointmentRepo := localstore.NewAppointmentRepository(store, keys, appLog, m)
	userRepo := localstore.NewUserRepository(store, keys, appLog, m)
	sessionRepo := localstore.NewSessionRepository(store, keys, appLog, m)

	resolver := identity.NewSessionResolver(sessionRepo)
	authSvc := authService.NewService(userRepo, sessionRepo, appLog)
	appointmentSvc := appointmentService.NewService(appointmentRepo, resolver, appLog, m)

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	ctx := context.Background()
	switch os.Args[1] {
	case "register":
		requireArgs(3, "register NAME EMAIL PASSWORD")
		user, err := authSvc.Register(ctx, model.RegisterRequest{
			Name:     os.Args[2],
			Email:    os.Args[3],
			Password: os.Args[4],
		})
		exitOn(err)
		fmt.Printf("registered %s (%s)\n", user.Email, user.ID)

	case "login":
		requireArgs(2, "login EMAIL PASSWORD")
		sess, err := authSvc.Login(ctx, os.Args[2], os.Args[3])
		exitOn(err)
		fmt.Printf("signed in as %s\n", sess.Email)

	case "google":
		sess, err := authSvc.LoginWithGoogle(ctx)
		exitOn(err)
		fmt.Printf("signed in as %s\n", sess.Email)

	case "logout":
		exitOn(authSvc.Logout(ctx))
		fmt.Println("signed out")

	case "whoami":
		sess, ok := authSvc.CurrentUser(ctx)
		if !ok {
			fmt.Println("not signed in")
			return
		}
		fmt.Printf("%s <%s> via %s\n", sess.Name, sess.Email, sess.AuthProvider)

	case "slots":
		requireArgs(1, "slots DATE")
		date := parseDate(os.Args[2])
		for _, slot := range cfg.Booking.Slots {
			state := "free"
			if appointmentSvc.IsSlotBooked(ctx, date, slot) {
				state = "booked"
			}
			fmt.Printf("%-9s %s\n", slot, state)
		}

	case "book":
		requireArgs(4, "book DATE SLOT DOCTOR TYPE [NOTES]")
		notes := ""
		if len(os.Args) > 6 {
			notes = os.Args[6]
		}
		stepper := booking.NewStepper(appointmentSvc, cfg.Booking.Slots)
		exitOn(stepper.SelectDateTime(ctx, parseDate(os.Args[2]), os.Args[3]))
		exitOn(stepper.FillDetails(ctx, booking.DetailsInput{
			Doctor: os.Args[4],
			Type:   os.Args[5],
			Notes:  notes,
		}))
		appt, err := stepper.Confirm(ctx)
		exitOn(err)
		fmt.Printf("booked %s at %s on %s (%s)\n", appt.Type, appt.Time, appt.Date.Format(dateLayout), appt.ID)

	case "list":
		printAppointments(appointmentSvc.List(ctx))

	case "upcoming":
		printAppointments(appointmentSvc.ListUpcoming(ctx))

	case "cancel":
		requireArgs(1, "cancel ID")
		if !appointmentSvc.Delete(ctx, os.Args[2]) {
			fmt.Fprintln(os.Stderr, "appointment not found or not yours")
			os.Exit(1)
		}
		fmt.Println("cancelled")

	default:
		usage()
		os.Exit(2)
	}
}

func openStore(cfg *config.StorageConfig) (kvstore.Store, error) {
	switch cfg.Backend {
	case "file", "":
		return kvstore.NewFile(cfg.Path)
	case "memory":
		return kvstore.NewMemory(), nil
	case "cache":
		return kvstore.NewGoCache(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func printAppointments(appts []model.Appointment) {
	if len(appts) == 0 {
		fmt.Println("no appointments")
		return
	}
	for _, appt := range appts {
		owner := "anonymous"
		if !appt.Anonymous() {
			owner = appt.UserID
		}
		fmt.Printf("%s  %s %-9s %-24s %-13s %s\n",
			appt.ID, appt.Date.Format(dateLayout), appt.Time, appt.Doctor, appt.Type, owner)
	}
}

func parseDate(s string) time.Time {
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid date %q, want YYYY-MM-DD\n", s)
		os.Exit(2)
	}
	return date
}

func requireArgs(n int, form string) {
	if len(os.Args) < n+2 {
		fmt.Fprintf(os.Stderr, "usage: bookingcli %s\n", form)
		os.Exit(2)
	}
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bookingcli COMMAND [ARGS]

commands:
  register NAME EMAIL PASSWORD   create an account
  login EMAIL PASSWORD           sign in
  google                         simulated google sign-in
  logout                         sign out
  whoami                         show the current session
  slots DATE                     show slot availability for a day
  book DATE SLOT DOCTOR TYPE [NOTES]
  list                           list your appointments
  upcoming                       list upcoming appointments
  cancel ID                      cancel an appointment`)
}
