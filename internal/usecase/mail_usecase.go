package usecase

import "context"

// SendEmailInput defines an ad-hoc outbound email request.
type SendEmailInput struct {
	To      string
	Subject string
	Body    string
}

// MailUsecase exposes direct transactional email sending.
type MailUsecase interface {
	// SendEmail delivers the message synchronously.
	SendEmail(ctx context.Context, input *SendEmailInput) error
}
