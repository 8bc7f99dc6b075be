package repository

import (
	"context"
	"errors"

	"patisserie/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrPaymentNotFound is returned when a payment lookup matches no record.
var ErrPaymentNotFound = errors.New("payment not found")

// PaymentRepository defines persistence operations for payments and their
// order items. Order items are owned by their payment and written with it.
type PaymentRepository interface {
	// Create persists a payment attempt, including its order items.
	// Failed attempts are persisted too; they are kept for audit.
	Create(ctx context.Context, payment *entity.Payment) error

	// FindByID retrieves a payment with its order items.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)

	// FindByReceiptNumber retrieves a completed payment by its receipt number.
	FindByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error)

	// ListByCustomer returns the customer's payments, most recent first.
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Payment, error)

	// List returns all payments, most recent first.
	List(ctx context.Context) ([]*entity.Payment, error)
}
