// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"patisserie/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user lookup matches no record.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user, with roles, by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user, with roles, by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByConfirmationToken retrieves the user holding the given
	// email-confirmation token.
	FindByConfirmationToken(ctx context.Context, token string) (*entity.User, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user and its role associations.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users with their roles.
	List(ctx context.Context) ([]*entity.User, error)

	// AddRole attaches a role to a user. Adding an already-held role is a no-op.
	AddRole(ctx context.Context, userID, roleID uuid.UUID) error

	// RemoveRole detaches a role from a user. Removing an absent role is a no-op.
	RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error
}
