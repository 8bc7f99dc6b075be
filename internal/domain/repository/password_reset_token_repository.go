package repository

import (
	"context"
	"errors"
	"time"

	"patisserie/internal/domain/entity"
)

// ErrResetTokenNotFound is returned when no reset token matches the lookup.
var ErrResetTokenNotFound = errors.New("password reset token not found")

// PasswordResetTokenRepository defines persistence operations for
// password reset tokens.
type PasswordResetTokenRepository interface {
	// Create persists a new reset token.
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// FindByToken retrieves a reset token by its opaque value.
	FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	// Delete removes a reset token, consuming it.
	Delete(ctx context.Context, token *entity.PasswordResetToken) error

	// DeleteExpiredBefore bulk-deletes all tokens whose expiry precedes t.
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)
}
