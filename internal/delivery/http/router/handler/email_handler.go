package handler

import (
	"log/slog"
	"net/http"

	"patisserie/internal/delivery/http/response"
	"patisserie/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// EmailHandler exposes direct transactional email sending. Admin only.
type EmailHandler struct {
	uc     usecase.MailUsecase
	logger *slog.Logger
}

// NewEmailHandler is the constructor for EmailHandler.
func NewEmailHandler(uc usecase.MailUsecase, logger *slog.Logger) *EmailHandler {
	return &EmailHandler{
		uc:     uc,
		logger: logger,
	}
}

type sendEmailRequest struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"body" validate:"required"`
}

// Send delivers an ad-hoc email synchronously.
func (h *EmailHandler) Send(c echo.Context) error {
	var req sendEmailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid email input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.uc.SendEmail(c.Request().Context(), &usecase.SendEmailInput{
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Email sent successfully")
}
