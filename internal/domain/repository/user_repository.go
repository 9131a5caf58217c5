package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserRepository defines the persistence operations on users.
// Every call touches a single user row; concurrent writers are last-write-wins.
type UserRepository interface {
	// Create inserts u and fills ID, CreatedAt and UpdatedAt.
	// It returns ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Update writes name and profile image. The password hash and address are left alone.
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	// SetAddress replaces the embedded address; a nil address clears it.
	SetAddress(ctx context.Context, id string, addr *entity.Address) error
}
