// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use, time-limited token allowing a user
// to set a new password. It always resolves back to exactly one user and
// is deleted on successful reset or expiry cleanup.
type PasswordResetToken struct {
	ID        uuid.UUID
	Token     string // Opaque random value mailed to the user.
	UserID    uuid.UUID
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the token is past its expiry at the given time.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return t.ExpiresAt.Before(now)
}
