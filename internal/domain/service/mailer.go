package service

import "context"

// OrderLine is one itemized row of an order notification email.
type OrderLine struct {
	Name     string
	Quantity int
	Price    float64
}

// Mailer defines the outbound email contract. Implementations talk to an
// SMTP relay; callers decide whether a send failure matters.
type Mailer interface {
	// Send delivers a plain email.
	Send(ctx context.Context, to, subject, body string) error

	// SendConfirmationEmail sends the account-confirmation link for a
	// freshly registered social account.
	SendConfirmationEmail(ctx context.Context, to, confirmationToken string) error

	// SendPasswordResetEmail sends the password-reset link.
	SendPasswordResetEmail(ctx context.Context, to, resetLink string) error

	// SendDeliveryReceipt sends the customer their order confirmation.
	SendDeliveryReceipt(ctx context.Context, to, receiptNumber string, amount float64, deliveryAddress string) error

	// SendOrderNotification alerts the operations mailbox about a new order.
	SendOrderNotification(ctx context.Context, to, receiptNumber string, items []OrderLine, deliveryAddress string) error
}
