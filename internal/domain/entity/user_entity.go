package entity

import (
	"strings"
	"time"
)

// DefaultCountry is applied to an address submitted without a country.
const DefaultCountry = "India"

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt hash and never leaves the service boundary.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	ProfileImage string
	Address      *Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Address is embedded in the user record. A user has at most one; it is
// replaced as a whole and cleared as a whole.
type Address struct {
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	Landmark     string `json:"landmark,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PinCode      string `json:"pinCode"`
	Country      string `json:"country"`
	Phone        string `json:"phone"`
}

// Normalize trims every field and fills in the default country.
func (a *Address) Normalize() {
	a.AddressLine1 = strings.TrimSpace(a.AddressLine1)
	a.AddressLine2 = strings.TrimSpace(a.AddressLine2)
	a.Landmark = strings.TrimSpace(a.Landmark)
	a.City = strings.TrimSpace(a.City)
	a.State = strings.TrimSpace(a.State)
	a.PinCode = strings.TrimSpace(a.PinCode)
	a.Country = strings.TrimSpace(a.Country)
	a.Phone = strings.TrimSpace(a.Phone)
	if a.Country == "" {
		a.Country = DefaultCountry
	}
}

// Complete reports whether every required field is populated.
func (a *Address) Complete() bool {
	return a.AddressLine1 != "" && a.City != "" && a.State != "" &&
		a.PinCode != "" && a.Country != "" && a.Phone != ""
}

// NormalizeEmail is the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
