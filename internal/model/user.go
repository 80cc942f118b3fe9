package model

// Auth provider constants
const (
	AuthProviderEmail  = "email"
	AuthProviderGoogle = "google"
)

// User represents a registered account. Passwords are stored as supplied:
// the account store simulates a backend for a demo widget and holds no real
// credentials. Google accounts carry no password at all.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password,omitempty"`
	AuthProvider string `json:"authProvider"`
}

// Session is the persisted marker of who is currently using the system.
// It mirrors User minus the password.
type Session struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	AuthProvider string `json:"authProvider,omitempty"`
}

// RegisterRequest represents account creation parameters
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
