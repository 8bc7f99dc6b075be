package usecase

import "context"

// PasswordResetUsecase manages the forgotten-password flow.
type PasswordResetUsecase interface {
	// SendResetToken creates a one-hour reset token for the account and
	// mails the reset link.
	SendResetToken(ctx context.Context, email string) error

	// ResetPassword consumes the token and sets the new password.
	// Expired tokens are deleted and reported as expired; a later call
	// with the same token then fails as invalid.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// CleanExpiredTokens purges every expired reset token and returns
	// the number removed. Intended to run periodically.
	CleanExpiredTokens(ctx context.Context) (int64, error)
}
