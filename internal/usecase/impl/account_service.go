// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
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

// enumerationGuardHash is a valid bcrypt hash compared against when the
// email is unknown, so the unknown-email and wrong-password paths cost
// the same and stay indistinguishable to the caller.
const enumerationGuardHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

const confirmationEmailTimeout = 30 * time.Second

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	roleRepo  repository.RoleRepository
	hasher    service.PasswordHasher
	tokenSvc  service.TokenService
	mailer    service.Mailer
	logger    *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(
	txManager repository.TransactionManager,
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	hasher service.PasswordHasher,
	tokenSvc service.TokenService,
	mailer service.Mailer,
	logger *slog.Logger,
) usecase.AccountUsecase {
	return &accountService{
		txManager: txManager,
		userRepo:  userRepo,
		roleRepo:  roleRepo,
		hasher:    hasher,
		tokenSvc:  tokenSvc,
		mailer:    mailer,
		logger:    logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate validates credentials and issues a 24-hour session token.
func (srv *accountService) Authenticate(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a bcrypt comparison so this path is not cheaper
			// than the wrong-password path.
			srv.hasher.Check(input.Password, enumerationGuardHash)

			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenSvc.Generate(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// RegisterUser creates a password account with the default USER role.
func (srv *accountService) RegisterUser(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	newUser := &entity.User{
		Name:         input.Name,
		Email:        input.Email,
		Address:      input.Address,
		Phone:        input.Phone,
		PasswordHash: hashedPassword,
	}

	if err := srv.createUserWithDefaultRole(ctx, newUser); err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return newUser, nil
}

// RegisterSocialUser creates a social account. The password hash is
// random and unusable; identity is proven through the provider and the
// confirmation email dispatched after commit.
func (srv *accountService) RegisterSocialUser(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if input.Provider == "" {
		return nil, errors.Wrap(domainerrors.ErrSocialLoginRequired, "social registration without provider")
	}

	srv.log(ctx).Info("Starting social registration",
		slog.String("email", input.Email), slog.String("provider", input.Provider))

	// Social accounts never authenticate by password.
	hashedPassword, err := srv.hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash generated password")
	}

	newUser := &entity.User{
		Name:              input.Name,
		Email:             input.Email,
		Address:           input.Address,
		Phone:             input.Phone,
		PasswordHash:      hashedPassword,
		Provider:          input.Provider,
		ProviderID:        input.ProviderID,
		ConfirmationToken: uuid.NewString(),
	}

	if err := srv.createUserWithDefaultRole(ctx, newUser); err != nil {
		srv.log(ctx).Warn("Social registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	// The account is committed; a failing mailer must not undo it or
	// stall the response. Dispatch detached from the request context.
	go srv.dispatchConfirmationEmail(newUser.Email, newUser.ConfirmationToken)

	srv.log(ctx).Debug("Social registration completed", slog.Any("userID", newUser.ID))

	return newUser, nil
}

func (srv *accountService) createUserWithDefaultRole(ctx context.Context, newUser *entity.User) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		roleRepo := repoFactory.RoleRepo()

		exists, err := userRepo.ExistsByEmail(ctx, newUser.Email)
		if err != nil {
			return errors.Wrap(err, "failed to check email existence")
		}
		if exists {
			return errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email already registered")
		}

		defaultRole, err := roleRepo.FindOrCreate(ctx, entity.RoleUser)
		if err != nil {
			return errors.Wrap(err, "failed to ensure default role")
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user")
		}

		if err := userRepo.AddRole(ctx, newUser.ID, defaultRole.ID); err != nil {
			return errors.Wrap(err, "failed to assign default role")
		}

		newUser.Roles = entity.Roles{defaultRole.Name}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute registration transaction")
	}

	return nil
}

func (srv *accountService) dispatchConfirmationEmail(email, confirmationToken string) {
	ctx, cancel := context.WithTimeout(context.Background(), confirmationEmailTimeout)
	defer cancel()

	if err := srv.mailer.SendConfirmationEmail(ctx, email, confirmationToken); err != nil {
		srv.logger.Error("Failed to send confirmation email",
			slog.String("email", email), slog.Any("error", err))
	}
}

// VerifyAdminPassword is the step-up check for elevated actions. A user
// without the ADMIN role gets false, not an error.
func (srv *accountService) VerifyAdminPassword(ctx context.Context, email, password string) (bool, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return false, errors.Wrap(domainerrors.ErrUserNotFound, "admin verification failed")
		}

		return false, errors.Wrap(err, "failed to find user by email")
	}

	if !user.HasRole(entity.RoleAdmin) {
		return false, nil
	}

	return srv.hasher.Check(password, user.PasswordHash), nil
}

// AssignRole attaches roleName to the user. Adding a held role is a no-op.
func (srv *accountService) AssignRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	return srv.changeRole(ctx, userID, roleName, true)
}

// RevokeRole detaches roleName from the user. Removing an absent role is a no-op.
func (srv *accountService) RevokeRole(ctx context.Context, userID uuid.UUID, roleName string) error {
	return srv.changeRole(ctx, userID, roleName, false)
}

func (srv *accountService) changeRole(ctx context.Context, userID uuid.UUID, roleName string, assign bool) error {
	role := entity.Role(roleName)
	if !role.IsValid() {
		return errors.Wrap(domainerrors.ErrRoleNotFound, "unknown role name")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		roleRepo := repoFactory.RoleRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserNotFound, "role change for unknown user")
			}

			return errors.Wrap(err, "failed to find user by id")
		}

		record, err := roleRepo.FindByName(ctx, role)
		if err != nil {
			if errors.Is(err, repository.ErrRoleNotFound) {
				return errors.Wrap(domainerrors.ErrRoleNotFound, "role change for unknown role")
			}

			return errors.Wrap(err, "failed to find role by name")
		}

		if assign {
			return errors.Wrap(userRepo.AddRole(ctx, user.ID, record.ID), "failed to add role")
		}

		return errors.Wrap(userRepo.RemoveRole(ctx, user.ID, record.ID), "failed to remove role")
	})
	if err != nil {
		srv.log(ctx).Warn("Role change failed",
			slog.Any("userID", userID), slog.String("role", roleName), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute role change transaction")
	}

	return nil
}

// GetUserByEmail returns the user with roles loaded.
func (srv *accountService) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return user, nil
}

// UpdateUser modifies the profile fields of the account.
func (srv *accountService) UpdateUser(ctx context.Context, email string, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := srv.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	user.Name = input.Name
	user.Address = input.Address
	user.Phone = input.Phone

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// DeleteUser removes the account with the given email.
func (srv *accountService) DeleteUser(ctx context.Context, email string) error {
	user, err := srv.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := srv.userRepo.Delete(ctx, user.ID); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", user.ID))

	return nil
}

// GetUserRoles returns the role names held by the account.
func (srv *accountService) GetUserRoles(ctx context.Context, email string) (entity.Roles, error) {
	user, err := srv.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	return user.Roles, nil
}

// ListUsers returns all accounts.
func (srv *accountService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return users, nil
}

// ConfirmEmail marks the account owning the token as verified and
// consumes the token.
func (srv *accountService) ConfirmEmail(ctx context.Context, token string) error {
	user, err := srv.userRepo.FindByConfirmationToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrTokenInvalid, "unknown confirmation token")
		}

		return errors.Wrap(err, "failed to find user by confirmation token")
	}

	user.EmailVerified = true
	user.ConfirmationToken = ""

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to confirm email")
	}

	srv.log(ctx).Info("Email confirmed", slog.Any("userID", user.ID))

	return nil
}
