package users

import (
	"time"
)

// Session holds the attributes derived from a validated session token
type Session struct {
	Subject   string     `json:"subject,omitempty"`
	Role      UserRole   `json:"role,omitempty"`
	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// GetSubject returns the login the session was issued for
func (s *Session) GetSubject() string {
	return s.Subject
}

// Admin checks whether the session carries the admin role claim
func (s *Session) Admin() bool {
	return s.Role == RoleAdmin
}

// Actor derives the lifecycle actor this session represents
func (s *Session) Actor() Actor {
	tier := TierSelf
	if s.Admin() {
		tier = TierAdmin
	}
	return Actor{Login: s.Subject, Tier: tier}
}

func sessionFromClaims(claims *SessionClaims) (*Session, error) {
	if claims == nil {
		return nil, ErrTokenMalformed
	}

	session := &Session{
		Subject: claims.Subject(),
		Role:    claims.Role(),
	}

	if iat := claims.IssuedAt(); !iat.IsZero() {
		session.IssuedAt = &iat
	}

	if exp := claims.Expires(); !exp.IsZero() {
		session.ExpiresAt = &exp
	}

	return session, nil
}
