package application

import "errors"

var (
	// ErrInvalidCredentials covers every login failure so responses do not reveal whether the email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrRoleNotAllowed     = errors.New("role cannot self-register")
	ErrIncompleteAddress  = errors.New("address is missing required fields")
	ErrInvalidImage       = errors.New("profile image is not a valid image data url")
)
