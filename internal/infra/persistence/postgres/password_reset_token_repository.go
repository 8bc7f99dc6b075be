package postgres

import (
	"context"
	"time"

	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// passwordResetTokenRepository implements the repository.PasswordResetTokenRepository interface.
type passwordResetTokenRepository struct {
	db *gorm.DB
}

// NewPasswordResetTokenRepository is the constructor for passwordResetTokenRepository.
func NewPasswordResetTokenRepository(db *gorm.DB) repository.PasswordResetTokenRepository {
	return &passwordResetTokenRepository{
		db: db,
	}
}

// Create persists a new reset token.
func (repo *passwordResetTokenRepository) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	tokenM := fromResetTokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrUserNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create reset token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt

	return nil
}

// FindByToken retrieves a reset token by its opaque value.
func (repo *passwordResetTokenRepository) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	var tokenM model.PasswordResetTokenModel

	if err := repo.db.WithContext(ctx).
		Where("token = ?", token).
		First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrResetTokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find reset token")
	}

	return toResetTokenDomain(&tokenM), nil
}

// Delete removes a reset token, consuming it.
func (repo *passwordResetTokenRepository) Delete(ctx context.Context, token *entity.PasswordResetToken) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", token.ID).
		Delete(&model.PasswordResetTokenModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete reset token")
	}

	if result.RowsAffected == 0 {
		return repository.ErrResetTokenNotFound
	}

	return nil
}

// DeleteExpiredBefore bulk-deletes all tokens whose expiry precedes t.
func (repo *passwordResetTokenRepository) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Where("expires_at < ?", t).
		Delete(&model.PasswordResetTokenModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete expired reset tokens")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

func toResetTokenDomain(data *model.PasswordResetTokenModel) *entity.PasswordResetToken {
	if data == nil {
		return nil
	}

	return &entity.PasswordResetToken{
		ID:        data.ID,
		Token:     data.Token,
		UserID:    data.UserID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}

func fromResetTokenDomain(data *entity.PasswordResetToken) *model.PasswordResetTokenModel {
	if data == nil {
		return nil
	}

	return &model.PasswordResetTokenModel{
		ID:        data.ID,
		Token:     data.Token,
		UserID:    data.UserID,
		ExpiresAt: data.ExpiresAt,
		CreatedAt: data.CreatedAt,
	}
}
