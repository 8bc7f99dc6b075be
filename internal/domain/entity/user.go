// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a customer or staff account of the bakery shop.
// Social-login accounts carry a provider linkage and a generated password
// hash that can never be used for password authentication.
type User struct {
	ID                uuid.UUID // The unique identifier for the user.
	Email             string    // The user's login identifier. Globally unique.
	Name              string
	Address           string
	Phone             string
	PasswordHash      string // bcrypt hash. Random and unusable for social accounts.
	Provider          string // Social provider name ("google", "facebook", ...), empty for password accounts.
	ProviderID        string // The user's identifier at the social provider.
	EmailVerified     bool
	ConfirmationToken string // Opaque token proving email ownership, cleared once confirmed.
	Roles             Roles
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasRole reports whether the user holds the given role.
func (u *User) HasRole(role Role) bool {
	return u.Roles.Contains(role)
}

// IsSocial reports whether the account was created through a social provider.
func (u *User) IsSocial() bool {
	return u.Provider != ""
}
