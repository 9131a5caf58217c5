// Package memory holds an in-process user store used by tests and by
// STORE_DRIVER=memory local runs. Data does not survive a restart.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
	"github.com/oksasatya/marketplace-storefront/internal/domain/repository"
)

type UserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*entity.User
	byEmail map[string]string

	// Err, when set, is returned by every call; used to simulate an unavailable store.
	Err error
}

func NewUserRepository() *UserRepository {
	return &UserRepository{
		byID:    make(map[string]*entity.User),
		byEmail: make(map[string]string),
	}
}

// clone keeps callers from mutating stored state through returned pointers.
func clone(u *entity.User) *entity.User {
	c := *u
	if u.Address != nil {
		a := *u.Address
		c.Address = &a
	}
	return &c
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	r.byID[u.ID] = clone(u)
	r.byEmail[u.Email] = u.ID
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(u), nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	id, ok := r.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *UserRepository) Update(_ context.Context, u *entity.User) error {
	return r.mutate(u.ID, func(stored *entity.User) {
		stored.Name = u.Name
		stored.ProfileImage = u.ProfileImage
		u.UpdatedAt = stored.UpdatedAt
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	return r.mutate(id, func(stored *entity.User) { stored.PasswordHash = passwordHash })
}

func (r *UserRepository) SetAddress(_ context.Context, id string, addr *entity.Address) error {
	return r.mutate(id, func(stored *entity.User) {
		if addr == nil {
			stored.Address = nil
			return
		}
		a := *addr
		stored.Address = &a
	})
}

// Delete removes a user outright. No HTTP flow deletes accounts; tests use it
// to model a token that outlives its user.
func (r *UserRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.byEmail, u.Email)
		delete(r.byID, id)
	}
}

func (r *UserRepository) mutate(id string, fn func(*entity.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	u, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.UpdatedAt = time.Now().UTC()
	fn(u)
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
