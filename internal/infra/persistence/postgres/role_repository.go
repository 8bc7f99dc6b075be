package postgres

import (
	"context"

	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/repository"
	"patisserie/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// roleRepository implements the repository.RoleRepository interface.
type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository is the constructor for roleRepository.
func NewRoleRepository(db *gorm.DB) repository.RoleRepository {
	return &roleRepository{
		db: db,
	}
}

// FindByName retrieves a role record by its name.
func (repo *roleRepository) FindByName(ctx context.Context, name entity.Role) (*repository.RoleRecord, error) {
	var roleM model.RoleModel

	if err := repo.db.WithContext(ctx).
		Where("name = ?", name.String()).
		First(&roleM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRoleNotFound
		}

		return nil, errors.Wrap(err, "failed to find role by name")
	}

	return toRoleRecord(&roleM), nil
}

// FindOrCreate retrieves the role record for name, creating it if absent.
func (repo *roleRepository) FindOrCreate(ctx context.Context, name entity.Role) (*repository.RoleRecord, error) {
	var roleM model.RoleModel

	if err := repo.db.WithContext(ctx).
		Where(model.RoleModel{Name: name.String()}).
		FirstOrCreate(&roleM).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find or create role")
	}

	return toRoleRecord(&roleM), nil
}

func toRoleRecord(data *model.RoleModel) *repository.RoleRecord {
	return &repository.RoleRecord{
		ID:   data.ID,
		Name: entity.Role(data.Name),
	}
}
