package users

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// CredentialStore is the persistence contract for user records. The store
// is the single arbiter of login uniqueness: Insert and Update must reject
// a colliding login atomically with the write, there is no separate
// check-then-act step anywhere above this interface.
type CredentialStore interface {
	// FindByLogin resolves a login case-insensitively, revoked rows included
	FindByLogin(ctx context.Context, login string) (*User, error)
	// Insert persists a new record, ErrLoginTaken on a login collision
	Insert(ctx context.Context, user *User) error
	// Update rewrites an existing record by id. A rename that collides
	// with another row returns ErrLoginTaken and leaves the row unchanged.
	Update(ctx context.Context, user *User) error
	// Delete permanently removes a record
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns users ordered by created_at ascending
	List(ctx context.Context, activeOnly bool) ([]*User, error)
	// ListOlderThan returns users strictly older than age as of now,
	// skipping users without a birthday
	ListOlderThan(ctx context.Context, age int, now time.Time) ([]*User, error)
}

// TokenService signs and validates self-contained session tokens
type TokenService interface {
	Issue(user *User) (string, error)
	SignClaims(claims *SessionClaims) (string, error)
	Validate(raw string) (*SessionClaims, error)
}

// Authenticator holds methods to deal with authentication
type Authenticator interface {
	Login(ctx context.Context, login, password string) (string, *User, error)
	SessionFromToken(raw string) (*Session, error)
}

// PasswordAuthenticator authenticates passwords
type PasswordAuthenticator interface {
	HashPassword(password string) (string, error)
	ComparePasswordAndHash(password, hash string) error
}

// Config holds auth options
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetAudience() []string
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] USERS "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] USERS "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] USERS "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
