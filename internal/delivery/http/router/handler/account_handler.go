// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "patisserie/internal/delivery/context"
	"patisserie/internal/delivery/http/response"
	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AccountHandler holds dependencies for account-related handlers.
type AccountHandler struct {
	uc       usecase.AccountUsecase
	tokenSvc service.TokenService
	logger   *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler.
func NewAccountHandler(uc usecase.AccountUsecase, tokenSvc service.TokenService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		logger:   logger,
	}
}

type registerRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"omitempty,min=6"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type roleChangeRequest struct {
	UserID   uuid.UUID `json:"userId" validate:"required"`
	RoleName string    `json:"roleName" validate:"required"`
}

type updateUserRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// userView is the public projection of an account. Password hashes and
// confirmation tokens never leave the service.
type userView struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Provider      string    `json:"provider,omitempty"`
	EmailVerified bool      `json:"emailVerified"`
	Roles         []string  `json:"roles"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	return &userView{
		ID:            user.ID,
		Email:         user.Email,
		Name:          user.Name,
		Address:       user.Address,
		Phone:         user.Phone,
		Provider:      user.Provider,
		EmailVerified: user.EmailVerified,
		Roles:         user.Roles.ToStrings(),
	}
}

// Register handles the password account registration request.
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.RegisterUser(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Address:  req.Address,
		Phone:    req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(user), "User registered successfully")
}

// RegisterSocial handles the social account registration request.
func (h *AccountHandler) RegisterSocial(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.RegisterSocialUser(c.Request().Context(), &usecase.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Address:    req.Address,
		Phone:      req.Phone,
		Provider:   req.Provider,
		ProviderID: req.ProviderID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toUserView(user), "Social user registered successfully")
}

// Login handles the user login request.
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Authenticate(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"token": output.Token,
		"user":  toUserView(output.User),
	}, "Login successful")
}

// ValidateToken reports whether the supplied token is still valid.
func (h *AccountHandler) ValidateToken(c echo.Context) error {
	var req struct {
		Token string `json:"token" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid token input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]bool{
		"valid": h.tokenSvc.Validate(req.Token),
	}, "Token checked")
}

// VerifyAdmin checks an admin's password before a sensitive operation.
func (h *AccountHandler) VerifyAdmin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ok, err := h.uc.VerifyAdminPassword(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"verified": ok}, "Verification completed")
}

// AssignRole attaches a role to a user.
func (h *AccountHandler) AssignRole(c echo.Context) error {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.AssignRole(c.Request().Context(), req.UserID, req.RoleName); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Role assigned successfully")
}

// RevokeRole detaches a role from a user.
func (h *AccountHandler) RevokeRole(c echo.Context) error {
	var req roleChangeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.RevokeRole(c.Request().Context(), req.UserID, req.RoleName); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Role revoked successfully")
}

// GetProfile returns the authenticated user's account.
func (h *AccountHandler) GetProfile(c echo.Context) error {
	email := deliverycontext.GetUserEmail(c)
	if email == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity")
	}

	user, err := h.uc.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile retrieved successfully")
}

// UpdateProfile modifies the authenticated user's account.
func (h *AccountHandler) UpdateProfile(c echo.Context) error {
	email := deliverycontext.GetUserEmail(c)
	if email == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), email, &usecase.UpdateUserInput{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated successfully")
}

// DeleteProfile removes the authenticated user's account.
func (h *AccountHandler) DeleteProfile(c echo.Context) error {
	email := deliverycontext.GetUserEmail(c)
	if email == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Account deleted successfully")
}

// GetRoles returns the authenticated user's role names.
func (h *AccountHandler) GetRoles(c echo.Context) error {
	email := deliverycontext.GetUserEmail(c)
	if email == "" {
		return response.Unauthorized(c, "INVALID_TOKEN", "Missing identity")
	}

	roles, err := h.uc.GetUserRoles(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"roles": roles.ToStrings()}, "Roles retrieved successfully")
}

// ListUsers returns every account. Admin only.
func (h *AccountHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*userView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return response.Success(c, http.StatusOK, views, "Users retrieved successfully")
}

// ConfirmEmail consumes a confirmation token from the emailed link.
func (h *AccountHandler) ConfirmEmail(c echo.Context) error {
	token := c.QueryParam("token")
	if token == "" {
		return response.BadRequest(c, "INVALID_INPUT", "Confirmation token is required")
	}

	if err := h.uc.ConfirmEmail(c.Request().Context(), token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email confirmed successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
