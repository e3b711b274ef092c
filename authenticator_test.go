package users_test

import (
	"context"
	"testing"
	"time"

	users "github.com/goliatone/go-users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct{}

func (testConfig) GetSigningKey() string   { return "test-signing-key" }
func (testConfig) GetTokenExpiration() int { return 7 }
func (testConfig) GetIssuer() string       { return "test-issuer" }
func (testConfig) GetAudience() []string   { return []string{"test:audience"} }

func seedUser(t *testing.T, store users.CredentialStore, login, password string, admin bool) *users.User {
	t.Helper()

	hash, err := users.HashPassword(password)
	require.NoError(t, err)

	user := &users.User{
		ID:           uuid.New(),
		Login:        login,
		PasswordHash: hash,
		Name:         login,
		IsAdmin:      admin,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, store.Insert(context.Background(), user))

	return user
}

func TestAutherLogin(t *testing.T) {
	ctx := context.Background()
	store := users.NewMemoryStore()
	auther := users.NewAuthenticator(store, testConfig{})

	seedUser(t, store, "alice", "password123", false)
	seedUser(t, store, "root", "rootpass1", true)

	t.Run("successful login returns token and sanitized user", func(t *testing.T) {
		token, user, err := auther.Login(ctx, "alice", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Login)
		assert.Empty(t, user.PasswordHash)

		session, err := auther.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", session.Subject)
		assert.Equal(t, users.RoleUser, session.Role)
	})

	t.Run("login is case-insensitive", func(t *testing.T) {
		_, user, err := auther.Login(ctx, "ALICE", "password123")
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Login)
	})

	t.Run("admin flag drives the role claim", func(t *testing.T) {
		token, _, err := auther.Login(ctx, "root", "rootpass1")
		require.NoError(t, err)

		session, err := auther.SessionFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, users.RoleAdmin, session.Role)
		assert.True(t, session.Admin())
	})

	t.Run("unknown login fails with the undifferentiated error", func(t *testing.T) {
		_, _, err := auther.Login(ctx, "nobody", "password123")
		assert.Equal(t, users.ErrInvalidCredentials, err)
	})

	t.Run("wrong password fails with the undifferentiated error", func(t *testing.T) {
		_, _, err := auther.Login(ctx, "alice", "wrongpass")
		assert.Equal(t, users.ErrInvalidCredentials, err)
	})

	t.Run("revoked account cannot login regardless of password", func(t *testing.T) {
		revoked := seedUser(t, store, "carol", "password123", false)
		now := time.Now()
		revoked.RevokedAt = &now
		revoked.RevokedBy = "root"
		require.NoError(t, store.Update(ctx, revoked))

		_, _, err := auther.Login(ctx, "carol", "password123")
		assert.Equal(t, users.ErrInvalidCredentials, err)
	})
}

func TestSessionFromToken(t *testing.T) {
	store := users.NewMemoryStore()
	auther := users.NewAuthenticator(store, testConfig{})

	t.Run("rejects a forged token", func(t *testing.T) {
		_, err := auther.SessionFromToken("forged.token.value")
		assert.Error(t, err)
		assert.True(t, users.IsAuthFailure(err))
	})

	t.Run("session derives the lifecycle actor", func(t *testing.T) {
		ctx := context.Background()
		seedUser(t, store, "root", "rootpass1", true)

		token, _, err := auther.Login(ctx, "root", "rootpass1")
		require.NoError(t, err)

		session, err := auther.SessionFromToken(token)
		require.NoError(t, err)

		actor := session.Actor()
		assert.Equal(t, "root", actor.Login)
		assert.Equal(t, users.TierAdmin, actor.Tier)
	})
}
