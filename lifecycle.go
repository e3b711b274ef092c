package users

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/google/uuid"
)

// CapabilityTier is the permission level an actor operates under
type CapabilityTier = string

const (
	// TierSelf may only target the actor's own account
	TierSelf CapabilityTier = "self"
	// TierAdmin may target any account and run destructive operations
	TierAdmin CapabilityTier = "admin"
)

// Actor identifies who invokes a lifecycle operation
type Actor struct {
	Login string
	Tier  CapabilityTier
}

// IsAdmin checks the actor's capability tier
func (a Actor) IsAdmin() bool {
	return a.Tier == TierAdmin
}

// Targets checks whether the actor's own account is the target login
func (a Actor) Targets(login string) bool {
	return strings.EqualFold(a.Login, login)
}

// SelfActor builds a self-tier actor for the given login
func SelfActor(login string) Actor {
	return Actor{Login: login, Tier: TierSelf}
}

// AdminActor builds an admin-tier actor for the given login
func AdminActor(login string) Actor {
	return Actor{Login: login, Tier: TierAdmin}
}

// RegisterInput is the self-service registration payload. It carries no
// admin flag on purpose: self-registration can never mint an
// administrator, accounts are promoted through CreateByAdmin instead.
type RegisterInput struct {
	Login    string     `json:"login"`
	Name     string     `json:"name"`
	Password string     `json:"password"`
	Gender   Gender     `json:"gender"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// CreateInput is the administrator-driven account creation payload
type CreateInput struct {
	Login    string     `json:"login"`
	Name     string     `json:"name"`
	Password string     `json:"password"`
	Gender   Gender     `json:"gender"`
	Birthday *time.Time `json:"birthday,omitempty"`
	IsAdmin  bool       `json:"is_admin"`
}

// ProfilePatch updates profile fields. A nil field means leave unchanged;
// presence is the only change signal, uniformly for every field.
type ProfilePatch struct {
	Name     *string    `json:"name,omitempty"`
	Gender   *Gender    `json:"gender,omitempty"`
	Birthday *time.Time `json:"birthday,omitempty"`
}

// UserView is the result of GetUser. Exactly one side is set: User for an
// actor reading their own profile, Search for an admin reading another
// account.
type UserView struct {
	User   *User           `json:"user,omitempty"`
	Search *UserSearchView `json:"search,omitempty"`
}

// Lifecycle runs account lifecycle operations against a CredentialStore.
// Every operation performs its own authorization check, an outer transport
// gate is not trusted to have done it.
type Lifecycle struct {
	store  CredentialStore
	logger Logger
	now    func() time.Time
}

// LifecycleOption customizes a Lifecycle
type LifecycleOption func(*Lifecycle)

// WithLifecycleClock injects a custom clock (useful for tests)
func WithLifecycleClock(clock func() time.Time) LifecycleOption {
	return func(l *Lifecycle) {
		if clock != nil {
			l.now = clock
		}
	}
}

// WithLifecycleLogger overrides the default logger
func WithLifecycleLogger(logger Logger) LifecycleOption {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLifecycle creates a lifecycle service on top of the given store
func NewLifecycle(store CredentialStore, opts ...LifecycleOption) *Lifecycle {
	l := &Lifecycle{
		store:  store,
		logger: defLogger{},
		now:    time.Now,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}

	return l
}

// Register creates a self-service account. CreatedBy stays empty, there is
// no authenticated actor yet.
func (l *Lifecycle) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Login:        input.Login,
		PasswordHash: hash,
		Name:         input.Name,
		Gender:       input.Gender,
		Birthday:     input.Birthday,
		CreatedAt:    l.now(),
	}

	if err := l.store.Insert(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// CreateByAdmin creates an account on behalf of an administrator
func (l *Lifecycle) CreateByAdmin(ctx context.Context, actor Actor, input CreateInput) (*User, error) {
	if err := l.requireAdmin(actor); err != nil {
		return nil, err
	}

	if err := input.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Login:        input.Login,
		PasswordHash: hash,
		Name:         input.Name,
		Gender:       input.Gender,
		Birthday:     input.Birthday,
		IsAdmin:      input.IsAdmin,
		CreatedAt:    l.now(),
		CreatedBy:    actor.Login,
	}

	if err := l.store.Insert(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// GetUser reads a profile. A self actor sees their own full profile, an
// administrator reading another account gets the search-safe projection.
func (l *Lifecycle) GetUser(ctx context.Context, actor Actor, targetLogin string) (*UserView, error) {
	if err := l.requireSelfOrAdmin(actor, targetLogin); err != nil {
		return nil, err
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return nil, err
	}

	if actor.Targets(user.Login) {
		return &UserView{User: user.Sanitize()}, nil
	}

	return &UserView{Search: user.SearchView()}, nil
}

// UpdateProfile applies a partial profile update to the target account
func (l *Lifecycle) UpdateProfile(ctx context.Context, actor Actor, targetLogin string, patch ProfilePatch) (*User, error) {
	if err := l.requireSelfOrAdmin(actor, targetLogin); err != nil {
		return nil, err
	}

	if err := patch.Validate(); err != nil {
		return nil, invalidInput(err)
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("UpdateProfile", "target", user.Login, "patch", print.MaybePrettyJSON(patch))

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Gender != nil {
		user.Gender = *patch.Gender
	}
	if patch.Birthday != nil {
		user.Birthday = patch.Birthday
	}

	l.stampModified(user, actor)

	if err := l.store.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// UpdatePassword stores a freshly hashed credential for the target account
func (l *Lifecycle) UpdatePassword(ctx context.Context, actor Actor, targetLogin, newPassword string) error {
	if err := l.requireSelfOrAdmin(actor, targetLogin); err != nil {
		return err
	}

	if err := validatePassword(newPassword); err != nil {
		return invalidInput(err)
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return err
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	l.stampModified(user, actor)

	return l.store.Update(ctx, user)
}

// UpdateLogin renames the target account. Uniqueness of the new login is
// arbitrated by the store atomically with the write; on conflict the
// target keeps its current login.
func (l *Lifecycle) UpdateLogin(ctx context.Context, actor Actor, targetLogin, newLogin string) (*User, error) {
	if err := l.requireSelfOrAdmin(actor, targetLogin); err != nil {
		return nil, err
	}

	if err := validateLogin(newLogin); err != nil {
		return nil, invalidInput(err)
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return nil, err
	}

	user.Login = newLogin
	l.stampModified(user, actor)

	if err := l.store.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// SoftDelete revokes the target account. The record stays in place and
// keeps its login reserved; Recover reverses it.
func (l *Lifecycle) SoftDelete(ctx context.Context, actor Actor, targetLogin string) error {
	if err := l.requireAdmin(actor); err != nil {
		return err
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return err
	}

	now := l.now()
	user.RevokedAt = &now
	user.RevokedBy = actor.Login
	l.stampModified(user, actor)

	return l.store.Update(ctx, user)
}

// HardDelete permanently removes the target account. The login becomes
// available for reuse immediately.
func (l *Lifecycle) HardDelete(ctx context.Context, actor Actor, targetLogin string) error {
	if err := l.requireAdmin(actor); err != nil {
		return err
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return err
	}

	return l.store.Delete(ctx, user.ID)
}

// Recover reverses a soft delete, clearing both revocation fields
// together. Recovering an account that was never revoked is a no-op
// success.
func (l *Lifecycle) Recover(ctx context.Context, actor Actor, targetLogin string) (*User, error) {
	if err := l.requireAdmin(actor); err != nil {
		return nil, err
	}

	user, err := l.store.FindByLogin(ctx, targetLogin)
	if err != nil {
		return nil, err
	}

	if user.IsActive() {
		return user.Sanitize(), nil
	}

	user.RevokedAt = nil
	user.RevokedBy = ""
	l.stampModified(user, actor)

	if err := l.store.Update(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// ListUsers returns accounts ordered by creation time ascending
func (l *Lifecycle) ListUsers(ctx context.Context, actor Actor, activeOnly bool) ([]*User, error) {
	if err := l.requireAdmin(actor); err != nil {
		return nil, err
	}

	records, err := l.store.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	return sanitizeAll(records), nil
}

// ListUsersOlderThan returns accounts strictly older than the given age.
// Accounts without a birthday are excluded.
func (l *Lifecycle) ListUsersOlderThan(ctx context.Context, actor Actor, age int) ([]*User, error) {
	if err := l.requireAdmin(actor); err != nil {
		return nil, err
	}

	records, err := l.store.ListOlderThan(ctx, age, l.now())
	if err != nil {
		return nil, err
	}

	return sanitizeAll(records), nil
}

func (l *Lifecycle) requireAdmin(actor Actor) error {
	if !actor.IsAdmin() {
		l.logger.Debug("authorization rejected", "actor", actor.Login, "tier", actor.Tier)
		return ErrNotAuthorized
	}
	return nil
}

func (l *Lifecycle) requireSelfOrAdmin(actor Actor, targetLogin string) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.Targets(targetLogin) {
		return nil
	}
	l.logger.Debug("authorization rejected", "actor", actor.Login, "target", targetLogin)
	return ErrNotAuthorized
}

func (l *Lifecycle) stampModified(user *User, actor Actor) {
	now := l.now()
	user.ModifiedAt = &now
	user.ModifiedBy = actor.Login
}

func sanitizeAll(records []*User) []*User {
	out := make([]*User, len(records))
	for i, u := range records {
		out[i] = u.Sanitize()
	}
	return out
}

func invalidInput(err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return richErr
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid input").
		WithTextCode(TextCodeInvalidInput).
		WithCode(goerrors.CodeBadRequest)
}
