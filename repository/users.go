package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	users "github.com/goliatone/go-users"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the bun-backed CredentialStore. The database is the single
// arbiter of login uniqueness: a unique index over lower(login) rejects
// colliding inserts and renames atomically with the write, so concurrent
// callers cannot race a check-then-act window.
type Users struct {
	db *bun.DB
}

var _ users.CredentialStore = (*Users)(nil)

// NewUsersRepository creates a new repository
func NewUsersRepository(db *bun.DB) *Users {
	return &Users{db: db}
}

// EnsureSchema creates the users table and the case-insensitive unique
// login index when they do not exist yet. Hosts with their own migration
// stack can skip this and ship equivalent DDL instead.
func (r *Users) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.NewCreateTable().
		Model((*users.User)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create users table")
	}

	if _, err := r.db.ExecContext(ctx,
		`CREATE UNIQUE INDEX IF NOT EXISTS users_login_lower_idx ON users (lower(login))`,
	); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create login index")
	}

	return nil
}

// FindByLogin resolves a login case-insensitively, revoked rows included
func (r *Users) FindByLogin(ctx context.Context, login string) (*users.User, error) {
	record := &users.User{}

	err := r.db.NewSelect().
		Model(record).
		Where("lower(?TableAlias.login) = lower(?)", strings.TrimSpace(login)).
		Limit(1).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, users.ErrLoginNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query user by login")
	}

	return record, nil
}

// Insert persists a new record
func (r *Users) Insert(ctx context.Context, user *users.User) error {
	_, err := r.db.NewInsert().
		Model(user).
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrLoginTaken
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	return nil
}

// Update rewrites an existing record by primary key. Renames that collide
// with another row fail on the login index and leave the row unchanged.
func (r *Users) Update(ctx context.Context, user *users.User) error {
	res, err := r.db.NewUpdate().
		Model(user).
		WherePK().
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return users.ErrLoginTaken
		}
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return users.ErrLoginNotFound
	}

	return nil
}

// Delete permanently removes a record
func (r *Users) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.NewDelete().
		Model((*users.User)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)

	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete user")
	}

	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return users.ErrLoginNotFound
	}

	return nil
}

// List returns users ordered by created_at ascending
func (r *Users) List(ctx context.Context, activeOnly bool) ([]*users.User, error) {
	var records []*users.User

	q := r.db.NewSelect().
		Model(&records).
		Order("created_at ASC")

	if activeOnly {
		q = q.Where("?TableAlias.revoked_at IS NULL")
	}

	if err := q.Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users")
	}

	return records, nil
}

// ListOlderThan returns users strictly older than age as of now. The
// month/day boundary rule has no portable SQL expression, so rows with a
// birthday are scanned and the exact age check runs in Go.
func (r *Users) ListOlderThan(ctx context.Context, age int, now time.Time) ([]*users.User, error) {
	var records []*users.User

	err := r.db.NewSelect().
		Model(&records).
		Where("?TableAlias.birthday IS NOT NULL").
		Order("created_at ASC").
		Scan(ctx)

	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list users by age")
	}

	out := make([]*users.User, 0, len(records))
	for _, u := range records {
		if years, ok := u.Age(now); ok && years > age {
			out = append(out, u)
		}
	}

	return out, nil
}

// isUniqueViolation matches the unique index errors the supported drivers
// produce (sqlite and postgres).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint") ||
		strings.Contains(msg, "SQLSTATE 23505")
}
