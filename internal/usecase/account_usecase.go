// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"patisserie/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account,
// traditional or social.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Address    string
	Phone      string
	Provider   string // Social provider name; required for social registration only.
	ProviderID string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateUserInput carries the mutable profile fields.
type UpdateUserInput struct {
	Name    string
	Address string
	Phone   string
}

// --- Output DTOs ---

// LoginOutput returns the issued session token.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// AccountUsecase defines user registration, authentication and
// role-management operations. This is the contract the delivery layer
// depends on.
type AccountUsecase interface {
	// Authenticate validates credentials and issues a session token.
	// Unknown email and wrong password fail identically.
	Authenticate(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// RegisterUser creates a password account with the default USER role.
	RegisterUser(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// RegisterSocialUser creates a social account with an unusable
	// password and dispatches a confirmation email after commit.
	RegisterSocialUser(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// VerifyAdminPassword returns false, without error, when the user
	// lacks the ADMIN role; otherwise the password-match result.
	VerifyAdminPassword(ctx context.Context, email, password string) (bool, error)

	// AssignRole attaches roleName to the user. Idempotent.
	AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error

	// RevokeRole detaches roleName from the user. Idempotent.
	RevokeRole(ctx context.Context, userID uuid.UUID, roleName string) error

	// GetUserByEmail returns the user with roles loaded.
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)

	// UpdateUser modifies the profile fields of the user with the given email.
	UpdateUser(ctx context.Context, email string, input *UpdateUserInput) (*entity.User, error)

	// DeleteUser removes the account with the given email.
	DeleteUser(ctx context.Context, email string) error

	// GetUserRoles returns the role names held by the user.
	GetUserRoles(ctx context.Context, email string) (entity.Roles, error)

	// ListUsers returns all accounts.
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// ConfirmEmail marks the account owning the confirmation token as verified.
	ConfirmEmail(ctx context.Context, token string) error
}
