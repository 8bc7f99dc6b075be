package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "patisserie/internal/delivery/context"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/pkg/errors"
)

// mailService implements the MailUsecase interface.
type mailService struct {
	mailer service.Mailer
	logger *slog.Logger
}

// NewMailService is the constructor for mailService.
func NewMailService(mailer service.Mailer, logger *slog.Logger) usecase.MailUsecase {
	return &mailService{mailer: mailer, logger: logger}
}

func (srv *mailService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// SendEmail delivers the message synchronously.
func (srv *mailService) SendEmail(ctx context.Context, input *usecase.SendEmailInput) error {
	if strings.TrimSpace(input.To) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "recipient is required")
	}

	if err := srv.mailer.Send(ctx, input.To, input.Subject, input.Body); err != nil {
		return errors.Wrap(err, "failed to send email")
	}

	srv.log(ctx).Info("Email sent", slog.String("to", input.To))

	return nil
}
