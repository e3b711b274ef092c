package users_test

import (
	"testing"

	users "github.com/goliatone/go-users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("USERS_SIGNING_KEY", "super-secret")

		cfg, err := users.NewEnvConfig()
		require.NoError(t, err)
		assert.Equal(t, "super-secret", cfg.GetSigningKey())
		assert.Equal(t, 7, cfg.GetTokenExpiration())
		assert.Equal(t, "go-users", cfg.GetIssuer())
		assert.Empty(t, cfg.GetAudience())
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("USERS_SIGNING_KEY", "super-secret")
		t.Setenv("USERS_TOKEN_EXPIRATION_DAYS", "14")
		t.Setenv("USERS_TOKEN_ISSUER", "acme")
		t.Setenv("USERS_TOKEN_AUDIENCE", "web,mobile")

		cfg, err := users.NewEnvConfig()
		require.NoError(t, err)
		assert.Equal(t, 14, cfg.GetTokenExpiration())
		assert.Equal(t, "acme", cfg.GetIssuer())
		assert.Equal(t, []string{"web", "mobile"}, cfg.GetAudience())
	})

	t.Run("signing key is required", func(t *testing.T) {
		t.Setenv("USERS_SIGNING_KEY", "")

		_, err := users.NewEnvConfig()
		assert.Error(t, err)
	})
}
