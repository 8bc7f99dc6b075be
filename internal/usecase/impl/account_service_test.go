package impl

import (
	"context"
	"testing"

	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type accountServiceFixture struct {
	service  usecase.AccountUsecase
	userRepo *mockUserRepo
	roleRepo *mockRoleRepo
	hasher   *mockHasher
	tokenSvc *mockTokenService
	mailer   *mockMailer
}

func newAccountServiceFixture(t *testing.T) *accountServiceFixture {
	t.Helper()

	userRepo := new(mockUserRepo)
	roleRepo := new(mockRoleRepo)
	hasher := new(mockHasher)
	tokenSvc := new(mockTokenService)
	mailSvc := new(mockMailer)

	txManager := &fakeTxManager{factory: &stubFactory{
		userRepo: userRepo,
		roleRepo: roleRepo,
	}}

	return &accountServiceFixture{
		service:  NewAccountService(txManager, userRepo, roleRepo, hasher, tokenSvc, mailSvc, newDiscardLogger()),
		userRepo: userRepo,
		roleRepo: roleRepo,
		hasher:   hasher,
		tokenSvc: tokenSvc,
		mailer:   mailSvc,
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	t.Parallel()

	t.Run("valid credentials return a token and the user", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		user := &entity.User{
			ID:           uuid.New(),
			Email:        "claire@example.com",
			PasswordHash: "stored-hash",
		}

		f.userRepo.On("FindByEmail", mock.Anything, "claire@example.com").Return(user, nil)
		f.hasher.On("Check", "s3cret", "stored-hash").Return(true)
		f.tokenSvc.On("Generate", "claire@example.com").Return("jwt-token", nil)

		out, err := f.service.Authenticate(context.Background(), &usecase.LoginInput{
			Email:    "claire@example.com",
			Password: "s3cret",
		})

		require.NoError(t, err)
		assert.Equal(t, "jwt-token", out.Token)
		assert.Equal(t, user, out.User)
	})

	t.Run("unknown email still burns a hash comparison", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		f.userRepo.On("FindByEmail", mock.Anything, "ghost@example.com").
			Return(nil, repository.ErrUserNotFound)
		f.hasher.On("Check", "whatever", enumerationGuardHash).Return(false)

		out, err := f.service.Authenticate(context.Background(), &usecase.LoginInput{
			Email:    "ghost@example.com",
			Password: "whatever",
		})

		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
		f.hasher.AssertCalled(t, "Check", "whatever", enumerationGuardHash)
		f.tokenSvc.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("wrong password yields the same error as unknown email", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		user := &entity.User{ID: uuid.New(), Email: "claire@example.com", PasswordHash: "stored-hash"}

		f.userRepo.On("FindByEmail", mock.Anything, "claire@example.com").Return(user, nil)
		f.hasher.On("Check", "wrong", "stored-hash").Return(false)

		out, err := f.service.Authenticate(context.Background(), &usecase.LoginInput{
			Email:    "claire@example.com",
			Password: "wrong",
		})

		require.Error(t, err)
		assert.Nil(t, out)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
	})
}

func TestAccountService_RegisterUser(t *testing.T) {
	t.Parallel()

	t.Run("creates the user with the default role", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		roleID := uuid.New()

		f.hasher.On("Hash", "s3cret").Return("hashed", nil)
		f.userRepo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
		f.roleRepo.On("FindOrCreate", mock.Anything, entity.RoleUser).
			Return(&repository.RoleRecord{ID: roleID, Name: entity.RoleUser}, nil)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
		f.userRepo.On("AddRole", mock.Anything, mock.Anything, roleID).Return(nil)

		user, err := f.service.RegisterUser(context.Background(), &usecase.RegisterInput{
			Name:     "Nouvelle Cliente",
			Email:    "new@example.com",
			Password: "s3cret",
		})

		require.NoError(t, err)
		assert.Equal(t, "hashed", user.PasswordHash)
		assert.Equal(t, entity.Roles{entity.RoleUser}, user.Roles)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("duplicate email aborts the transaction", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		f.hasher.On("Hash", "s3cret").Return("hashed", nil)
		f.userRepo.On("ExistsByEmail", mock.Anything, "taken@example.com").Return(true, nil)

		user, err := f.service.RegisterUser(context.Background(), &usecase.RegisterInput{
			Email:    "taken@example.com",
			Password: "s3cret",
		})

		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, domainerrors.ErrEmailAlreadyExists))
		f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAccountService_RegisterSocialUser(t *testing.T) {
	t.Parallel()

	t.Run("missing provider is rejected before any work", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)

		user, err := f.service.RegisterSocialUser(context.Background(), &usecase.RegisterInput{
			Email: "social@example.com",
		})

		require.Error(t, err)
		assert.Nil(t, user)
		assert.True(t, errors.Is(err, domainerrors.ErrSocialLoginRequired))
		f.userRepo.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})

	t.Run("creates the account with a confirmation token", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		roleID := uuid.New()

		f.hasher.On("Hash", mock.AnythingOfType("string")).Return("random-hash", nil)
		f.userRepo.On("ExistsByEmail", mock.Anything, "social@example.com").Return(false, nil)
		f.roleRepo.On("FindOrCreate", mock.Anything, entity.RoleUser).
			Return(&repository.RoleRecord{ID: roleID, Name: entity.RoleUser}, nil)
		f.userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.User")).Return(nil)
		f.userRepo.On("AddRole", mock.Anything, mock.Anything, roleID).Return(nil)
		// Confirmation mail is dispatched on a detached goroutine.
		f.mailer.On("SendConfirmationEmail", mock.Anything, "social@example.com", mock.AnythingOfType("string")).
			Return(nil).Maybe()

		user, err := f.service.RegisterSocialUser(context.Background(), &usecase.RegisterInput{
			Email:      "social@example.com",
			Provider:   "google",
			ProviderID: "google-uid-42",
		})

		require.NoError(t, err)
		assert.Equal(t, "google", user.Provider)
		assert.NotEmpty(t, user.ConfirmationToken)
	})
}

func TestAccountService_VerifyAdminPassword(t *testing.T) {
	t.Parallel()

	t.Run("non-admin gets false without error", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		user := &entity.User{
			ID:    uuid.New(),
			Email: "user@example.com",
			Roles: entity.Roles{entity.RoleUser},
		}
		f.userRepo.On("FindByEmail", mock.Anything, "user@example.com").Return(user, nil)

		ok, err := f.service.VerifyAdminPassword(context.Background(), "user@example.com", "s3cret")

		require.NoError(t, err)
		assert.False(t, ok)
		f.hasher.AssertNotCalled(t, "Check", mock.Anything, mock.Anything)
	})

	t.Run("admin with matching password gets true", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		user := &entity.User{
			ID:           uuid.New(),
			Email:        "admin@example.com",
			PasswordHash: "admin-hash",
			Roles:        entity.Roles{entity.RoleUser, entity.RoleAdmin},
		}
		f.userRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(user, nil)
		f.hasher.On("Check", "s3cret", "admin-hash").Return(true)

		ok, err := f.service.VerifyAdminPassword(context.Background(), "admin@example.com", "s3cret")

		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestAccountService_ChangeRole(t *testing.T) {
	t.Parallel()

	t.Run("assign attaches an existing role", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		userID := uuid.New()
		roleID := uuid.New()

		f.userRepo.On("FindByID", mock.Anything, userID).
			Return(&entity.User{ID: userID}, nil)
		f.roleRepo.On("FindByName", mock.Anything, entity.RoleAdmin).
			Return(&repository.RoleRecord{ID: roleID, Name: entity.RoleAdmin}, nil)
		f.userRepo.On("AddRole", mock.Anything, userID, roleID).Return(nil)

		err := f.service.AssignRole(context.Background(), userID, "ADMIN")

		require.NoError(t, err)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("unknown role name is rejected without touching the store", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)

		err := f.service.RevokeRole(context.Background(), uuid.New(), "SUPERVISOR")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrRoleNotFound))
		f.userRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestAccountService_ConfirmEmail(t *testing.T) {
	t.Parallel()

	t.Run("marks the account verified and consumes the token", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		user := &entity.User{
			ID:                uuid.New(),
			Email:             "claire@example.com",
			ConfirmationToken: "tok-123",
		}

		f.userRepo.On("FindByConfirmationToken", mock.Anything, "tok-123").Return(user, nil)
		f.userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entity.User) bool {
			return u.EmailVerified && u.ConfirmationToken == ""
		})).Return(nil)

		err := f.service.ConfirmEmail(context.Background(), "tok-123")

		require.NoError(t, err)
		f.userRepo.AssertExpectations(t)
	})

	t.Run("unknown token maps to an invalid token error", func(t *testing.T) {
		t.Parallel()

		f := newAccountServiceFixture(t)
		f.userRepo.On("FindByConfirmationToken", mock.Anything, "nope").
			Return(nil, repository.ErrUserNotFound)

		err := f.service.ConfirmEmail(context.Background(), "nope")

		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	})
}
