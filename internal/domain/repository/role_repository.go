package repository

import (
	"context"
	"errors"

	"patisserie/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRoleNotFound is returned when a role lookup matches no record.
var ErrRoleNotFound = errors.New("role not found")

// RoleRecord pairs a role name with its storage identifier.
type RoleRecord struct {
	ID   uuid.UUID
	Name entity.Role
}

// RoleRepository defines persistence operations on the fixed role set.
type RoleRepository interface {
	// FindByName retrieves a role record by its name.
	FindByName(ctx context.Context, name entity.Role) (*RoleRecord, error)

	// FindOrCreate retrieves the role record for name, creating it if absent.
	FindOrCreate(ctx context.Context, name entity.Role) (*RoleRecord, error)
}
