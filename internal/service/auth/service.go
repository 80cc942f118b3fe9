// Package auth simulates account registration and sign-in for the booking
// widget. There is no real credential handling here: passwords are compared
// as stored and the session token is an opaque marker, which is exactly the
// contract the rest of the system depends on.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jwalitptl/booking-kit/internal/model"
	"github.com/jwalitptl/booking-kit/internal/repository"
	"github.com/jwalitptl/booking-kit/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

type Service struct {
	mu       sync.Mutex
	users    repository.UserRepository
	sessions repository.SessionRepository
	log      *logger.Logger
	validate *validator.Validate
}

func NewService(users repository.UserRepository, sessions repository.SessionRepository, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		log:      log,
		validate: validator.New(),
	}
}

// Register creates an email account. It does not sign the new account in;
// callers follow up with Login.
func (s *Service) Register(ctx context.Context, req model.RegisterRequest) (model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return model.User{}, fmt.Errorf("invalid registration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users.LoadAll(ctx)
	for _, u := range users {
		if strings.EqualFold(u.Email, req.Email) {
			return model.User{}, ErrEmailTaken
		}
	}

	user := model.User{
		ID:           "user_" + uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		AuthProvider: model.AuthProviderEmail,
	}

	if err := s.users.StoreAll(ctx, append(users, user)); err != nil {
		return model.User{}, fmt.Errorf("failed to persist account: %w", err)
	}

	s.log.Info("account registered", "user_id", user.ID)
	return user, nil
}

// Login verifies an email account and persists the session. An unknown
// email and a wrong password are reported identically.
func (s *Service) Login(ctx context.Context, email, password string) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *model.User
	for _, u := range s.users.LoadAll(ctx) {
		if strings.EqualFold(u.Email, email) {
			user = &u
			break
		}
	}
	// Google accounts carry no password and cannot sign in this way.
	if user == nil || user.Password == "" || user.Password != password {
		return model.Session{}, ErrInvalidCredentials
	}

	sess := model.Session{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		AuthProvider: model.AuthProviderEmail,
	}
	if err := s.sessions.Set(ctx, sess, newToken()); err != nil {
		return model.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.log.Info("signed in", "user_id", sess.ID)
	return sess, nil
}

// LoginWithGoogle simulates an OAuth sign-in by fabricating a google
// account, storing it on first sight and opening a session for it.
func (s *Service) LoginWithGoogle(ctx context.Context) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	suffix := strings.SplitN(uuid.NewString(), "-", 2)[0]
	account := model.User{
		ID:           "google_user_" + uuid.NewString(),
		Name:         "Google User",
		Email:        fmt.Sprintf("user_%s@gmail.com", suffix),
		AuthProvider: model.AuthProviderGoogle,
	}

	users := s.users.LoadAll(ctx)
	known := false
	for _, u := range users {
		if strings.EqualFold(u.Email, account.Email) {
			known = true
			break
		}
	}
	if !known {
		if err := s.users.StoreAll(ctx, append(users, account)); err != nil {
			return model.Session{}, fmt.Errorf("failed to persist google account: %w", err)
		}
	}

	sess := model.Session{
		ID:           account.ID,
		Name:         account.Name,
		Email:        account.Email,
		AuthProvider: model.AuthProviderGoogle,
	}
	if err := s.sessions.Set(ctx, sess, newToken()); err != nil {
		return model.Session{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.log.Info("signed in with google", "user_id", sess.ID)
	return sess, nil
}

// Logout clears the persisted session and token.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentUser returns the persisted session, if one exists.
func (s *Service) CurrentUser(ctx context.Context) (model.Session, bool) {
	return s.sessions.Get(ctx)
}

// newToken mints the opaque session marker. It proves nothing about the
// bearer; its presence is the whole signal.
func newToken() string {
	return "tok_" + uuid.NewString()
}
