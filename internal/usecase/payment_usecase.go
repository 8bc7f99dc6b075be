package usecase

import (
	"context"

	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/service"

	"github.com/google/uuid"
)

// OrderItemInput is one line of the order attached to a payment. Name
// and price are snapshots taken at order time.
type OrderItemInput struct {
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       float64
}

// MobilePaymentInput defines a mobile-money payment attempt.
type MobilePaymentInput struct {
	Operator        string
	PhoneNumber     string
	Amount          float64
	CustomerID      *uuid.UUID
	CustomerEmail   string
	DeliveryAddress string
	Items           []OrderItemInput
}

// CardPaymentInput defines a bank-card payment attempt.
type CardPaymentInput struct {
	Card            service.CardDetails
	CustomerID      *uuid.UUID
	CustomerEmail   string
	DeliveryAddress string
	Items           []OrderItemInput
}

// PaymentUsecase orchestrates a payment attempt end to end: validation,
// gateway call, status transition, persistence, receipt issuance and
// notification dispatch.
type PaymentUsecase interface {
	// ProcessMobilePayment runs a mobile-money payment. The returned
	// payment is COMPLETED on success; on gateway failure the FAILED
	// attempt is persisted and a PaymentProcessingError is returned.
	ProcessMobilePayment(ctx context.Context, input *MobilePaymentInput) (*entity.Payment, error)

	// ProcessCardPayment runs a bank-card payment with the same
	// persist-then-fail contract.
	ProcessCardPayment(ctx context.Context, input *CardPaymentInput) (*entity.Payment, error)

	// GetPaymentHistory returns a customer's payments, newest first.
	GetPaymentHistory(ctx context.Context, customerID uuid.UUID) ([]*entity.Payment, error)

	// GetPaymentByReceiptNumber resolves a completed payment by receipt.
	GetPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error)

	// ListPayments returns every recorded payment attempt.
	ListPayments(ctx context.Context) ([]*entity.Payment, error)
}
