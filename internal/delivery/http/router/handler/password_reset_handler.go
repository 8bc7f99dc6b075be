package handler

import (
	"log/slog"
	"net/http"

	"patisserie/internal/delivery/http/response"
	"patisserie/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PasswordResetHandler holds dependencies for the forgotten-password flow.
type PasswordResetHandler struct {
	uc     usecase.PasswordResetUsecase
	logger *slog.Logger
}

// NewPasswordResetHandler is the constructor for PasswordResetHandler.
func NewPasswordResetHandler(uc usecase.PasswordResetUsecase, logger *slog.Logger) *PasswordResetHandler {
	return &PasswordResetHandler{
		uc:     uc,
		logger: logger,
	}
}

type resetRequestRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// RequestReset issues a reset token and mails the reset link.
func (h *PasswordResetHandler) RequestReset(c echo.Context) error {
	var req resetRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.SendResetToken(c.Request().Context(), req.Email); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reset email sent")
}

// ResetPassword consumes the token and sets the new password.
func (h *PasswordResetHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ResetPassword(c.Request().Context(), req.Token, req.NewPassword); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset successfully")
}
