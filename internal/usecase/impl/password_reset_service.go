package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	deliverycontext "patisserie/internal/delivery/context"
	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const resetTokenTTL = time.Hour

// passwordResetService implements the PasswordResetUsecase interface.
type passwordResetService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	tokenRepo    repository.PasswordResetTokenRepository
	hasher       service.PasswordHasher
	mailer       service.Mailer
	resetBaseURL string
	logger       *slog.Logger
}

// NewPasswordResetService is the constructor for passwordResetService.
func NewPasswordResetService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	tokenRepo repository.PasswordResetTokenRepository,
	hasher service.PasswordHasher,
	mailer service.Mailer,
	resetBaseURL string,
	logger *slog.Logger,
) usecase.PasswordResetUsecase {
	return &passwordResetService{
		txManager:    txManager,
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		hasher:       hasher,
		mailer:       mailer,
		resetBaseURL: resetBaseURL,
		logger:       logger,
	}
}

func (srv *passwordResetService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendResetToken creates a one-hour token for the account and mails the
// reset link. The send is synchronous: the caller must know the link
// went out, so a relay failure fails the request.
func (srv *passwordResetService) SendResetToken(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "reset requested for unknown email")
		}

		return errors.Wrap(err, "failed to find user for password reset")
	}

	token := &entity.PasswordResetToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}

	if err := srv.tokenRepo.Create(ctx, token); err != nil {
		return errors.Wrap(err, "failed to create password reset token")
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", srv.resetBaseURL, token.Token)
	if err := srv.mailer.SendPasswordResetEmail(ctx, user.Email, resetLink); err != nil {
		return errors.Wrap(err, "failed to send password reset email")
	}

	srv.log(ctx).Info("Password reset token issued", slog.Any("userID", user.ID))

	return nil
}

// ResetPassword consumes the token and sets the new password. Expired
// tokens are deleted on sight, so retrying with the same token reports
// it as invalid rather than expired.
func (srv *passwordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	record, err := srv.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return errors.Wrap(domainerrors.ErrTokenInvalid, "unknown reset token")
		}

		return errors.Wrap(err, "failed to find reset token")
	}

	if record.Expired(time.Now()) {
		if err := srv.tokenRepo.Delete(ctx, record); err != nil {
			srv.log(ctx).Error("Failed to delete expired reset token", slog.Any("error", err))
		}

		return errors.Wrap(domainerrors.ErrTokenExpired, "reset token expired")
	}

	hash, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	err = srv.txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		user, err := factory.UserRepo().FindByID(ctx, record.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load user for password reset")
		}

		user.PasswordHash = hash
		if err := factory.UserRepo().Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		return factory.ResetTokenRepo().Delete(ctx, record)
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Password reset completed", slog.Any("userID", record.UserID))

	return nil
}

// CleanExpiredTokens purges expired reset tokens and returns the number
// removed.
func (srv *passwordResetService) CleanExpiredTokens(ctx context.Context) (int64, error) {
	removed, err := srv.tokenRepo.DeleteExpiredBefore(ctx, time.Now())
	if err != nil {
		return 0, errors.Wrap(err, "failed to clean expired reset tokens")
	}

	if removed > 0 {
		srv.log(ctx).Info("Expired reset tokens removed", slog.Int64("count", removed))
	}

	return removed, nil
}
