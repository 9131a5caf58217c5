package handlers

import (
	"time"

	"github.com/oksasatya/marketplace-storefront/internal/domain/entity"
)

// publicUser is returned by register and login.
type publicUser struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Role         entity.Role `json:"role"`
	ProfileImage string      `json:"profileImage,omitempty"`
}

// profileUser is the full account view; it never carries the password hash.
type profileUser struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         entity.Role     `json:"role"`
	ProfileImage string          `json:"profileImage"`
	Address      *entity.Address `json:"address"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

type userEnvelope[T any] struct {
	User T `json:"user"`
}

type addressEnvelope struct {
	Address *entity.Address `json:"address"`
}

func toPublicUser(u *entity.User) publicUser {
	return publicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, ProfileImage: u.ProfileImage}
}

func toProfileUser(u *entity.User) profileUser {
	return profileUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		ProfileImage: u.ProfileImage,
		Address:      u.Address,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
