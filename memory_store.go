package users

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory CredentialStore. It enforces the same
// case-insensitive login uniqueness the SQL store does, with a single
// mutex standing in for the unique index. Intended for tests and small
// embedded setups.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byLogin map[string]uuid.UUID
}

var _ CredentialStore = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    map[uuid.UUID]*User{},
		byLogin: map[string]uuid.UUID{},
	}
}

func loginKey(login string) string {
	return strings.ToLower(strings.TrimSpace(login))
}

// FindByLogin resolves a login case-insensitively, revoked rows included
func (s *MemoryStore) FindByLogin(ctx context.Context, login string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byLogin[loginKey(login)]
	if !ok {
		return nil, ErrLoginNotFound
	}

	return copyUser(s.byID[id]), nil
}

// Insert persists a new record, rejecting login collisions atomically
// under the store lock.
func (s *MemoryStore) Insert(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := loginKey(user.Login)
	if _, taken := s.byLogin[key]; taken {
		return ErrLoginTaken
	}

	record := copyUser(user)
	s.byID[record.ID] = record
	s.byLogin[key] = record.ID

	return nil
}

// Update rewrites an existing record. A rename that collides with another
// record fails with ErrLoginTaken and leaves the record unchanged.
func (s *MemoryStore) Update(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[user.ID]
	if !ok {
		return ErrLoginNotFound
	}

	oldKey := loginKey(current.Login)
	newKey := loginKey(user.Login)

	if oldKey != newKey {
		if owner, taken := s.byLogin[newKey]; taken && owner != user.ID {
			return ErrLoginTaken
		}
		delete(s.byLogin, oldKey)
		s.byLogin[newKey] = user.ID
	}

	s.byID[user.ID] = copyUser(user)

	return nil
}

// Delete permanently removes a record
func (s *MemoryStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.byID[id]
	if !ok {
		return ErrLoginNotFound
	}

	delete(s.byLogin, loginKey(current.Login))
	delete(s.byID, id)

	return nil
}

// List returns users ordered by created_at ascending
func (s *MemoryStore) List(ctx context.Context, activeOnly bool) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0, len(s.byID))
	for _, u := range s.byID {
		if activeOnly && !u.IsActive() {
			continue
		}
		out = append(out, copyUser(u))
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

// ListOlderThan returns users strictly older than age as of now. Users
// without a birthday are excluded.
func (s *MemoryStore) ListOlderThan(ctx context.Context, age int, now time.Time) ([]*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*User, 0)
	for _, u := range s.byID {
		if years, ok := u.Age(now); ok && years > age {
			out = append(out, copyUser(u))
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}

func copyUser(u *User) *User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}
