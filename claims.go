package users

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by session tokens. The token is
// self-contained: subject, role and expiry are everything a verifier needs,
// no session table backs it.
type SessionClaims struct {
	jwt.RegisteredClaims
	Login    string `json:"login,omitempty"`
	UserRole string `json:"role,omitempty"`
}

// Subject returns the subject claim, the account login
func (c *SessionClaims) Subject() string {
	if c.Login != "" {
		return c.Login
	}
	return c.RegisteredClaims.Subject
}

// Role returns the role claim
func (c *SessionClaims) Role() UserRole {
	return c.UserRole
}

// IsAdmin checks whether the role claim grants the admin tier
func (c *SessionClaims) IsAdmin() bool {
	return c.UserRole == RoleAdmin
}

// Expires returns the expiration time
func (c *SessionClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *SessionClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
