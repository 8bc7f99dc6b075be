package service

import (
	"context"

	"patisserie/internal/domain/entity"
)

// CardDetails carries the card payment fields forwarded to the card gateway.
type CardDetails struct {
	CardNumber  string  `json:"cardNumber"`
	ExpiryMonth int     `json:"expiryMonth"`
	ExpiryYear  int     `json:"expiryYear"`
	CVV         string  `json:"cvv"`
	HolderName  string  `json:"holderName"`
	Amount      float64 `json:"amount"`
}

// PaymentGateway translates payment intents into external provider calls
// and normalizes their boolean outcome. One attempt, no retries; a
// transport or protocol failure is immediately fatal to the attempt.
type PaymentGateway interface {
	// InitiateMobileTransfer asks the operator to initiate a transfer
	// and returns the provider's "initiated" acknowledgment.
	InitiateMobileTransfer(ctx context.Context, operator entity.Operator, phoneNumber string, amount float64) (bool, error)

	// ProcessCardPayment submits a card payment and returns the
	// gateway's "approved" acknowledgment.
	ProcessCardPayment(ctx context.Context, details CardDetails) (bool, error)
}
