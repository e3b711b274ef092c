package users

import (
	"github.com/caarlos0/env/v11"
	goerrors "github.com/goliatone/go-errors"
)

// EnvConfig is a Config implementation loaded from the environment once at
// startup. The signing key is the only secret the package consumes.
type EnvConfig struct {
	SigningKey      string   `env:"USERS_SIGNING_KEY,required,notEmpty"`
	TokenExpiration int      `env:"USERS_TOKEN_EXPIRATION_DAYS" envDefault:"7"`
	Issuer          string   `env:"USERS_TOKEN_ISSUER" envDefault:"go-users"`
	Audience        []string `env:"USERS_TOKEN_AUDIENCE"`
}

var _ Config = (*EnvConfig)(nil)

// NewEnvConfig parses the process environment into an EnvConfig
func NewEnvConfig() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to load users configuration")
	}
	return cfg, nil
}

// GetSigningKey returns the shared token signing secret
func (c *EnvConfig) GetSigningKey() string {
	return c.SigningKey
}

// GetTokenExpiration returns the session lifetime in days
func (c *EnvConfig) GetTokenExpiration() int {
	return c.TokenExpiration
}

// GetIssuer returns the issuer claim stamped on tokens
func (c *EnvConfig) GetIssuer() string {
	return c.Issuer
}

// GetAudience returns the audience claims stamped on tokens
func (c *EnvConfig) GetAudience() []string {
	return c.Audience
}
