package users

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
)

// Auther verifies credentials against the store and issues session tokens
type Auther struct {
	store        CredentialStore
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(store CredentialStore, opts Config) *Auther {
	tokenService := NewTokenService(
		[]byte(opts.GetSigningKey()),
		opts.GetTokenExpiration(),
		opts.GetIssuer(),
		opts.GetAudience(),
		defLogger{},
	)

	return &Auther{
		store:        store,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	s.logger = logger
	return s
}

// WithTokenService sets a custom token service, mostly useful for tests
func (s *Auther) WithTokenService(ts TokenService) *Auther {
	s.tokenService = ts
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Login verifies the login and password pair and returns a signed session
// token plus the sanitized account record. Unknown login, revoked account
// and password mismatch are indistinguishable from the outside: all three
// surface as ErrInvalidCredentials.
func (s *Auther) Login(ctx context.Context, login, password string) (string, *User, error) {
	user, err := s.store.FindByLogin(ctx, login)
	if err != nil {
		if IsNotFound(err) {
			s.logger.Debug("Login rejected unknown login")
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login store lookup error", "error", err)
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve user during login")
	}

	// Revoked accounts keep their credential but cannot authenticate
	// until an administrator recovers them.
	if !user.IsActive() {
		s.logger.Debug("Login rejected revoked account")
		return "", nil, ErrInvalidCredentials
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if IsAuthFailure(err) || IsValidation(err) {
			return "", nil, ErrInvalidCredentials
		}
		s.logger.Error("Login credential comparison error", "error", err)
		return "", nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to verify credentials")
	}

	token, err := s.tokenService.Issue(user)
	if err != nil {
		s.logger.Error("Login token issuance error", "error", err)
		return "", nil, err
	}

	return token, user.Sanitize(), nil
}

// SessionFromToken validates a bearer token and derives its session
func (s *Auther) SessionFromToken(raw string) (*Session, error) {
	claims, err := s.tokenService.Validate(raw)
	if err != nil {
		s.logger.Debug("SessionFromToken validation failed", "error", err)
		return nil, err
	}

	return sessionFromClaims(claims)
}
