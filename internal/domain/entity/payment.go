// Package entity contains the core business objects of the project.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentMethod identifies how a payment was made.
type PaymentMethod string

const (
	// PaymentMethodMobileMoney is a mobile-money transfer (ORANGE or MTN).
	PaymentMethodMobileMoney PaymentMethod = "MOBILE_MONEY"
	// PaymentMethodBankCard is a card payment through the card gateway.
	PaymentMethodBankCard PaymentMethod = "BANK_CARD"
)

// PaymentStatus is the state of a payment attempt.
// Transitions are monotonic: PENDING -> COMPLETED or PENDING -> FAILED,
// and a terminal payment never changes again.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// Operator is a mobile-money provider.
type Operator string

const (
	OperatorOrange Operator = "ORANGE"
	OperatorMTN    Operator = "MTN"
)

// ParseOperator normalizes a case-insensitive operator name.
func ParseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToUpper(strings.TrimSpace(s))) {
	case OperatorOrange:
		return OperatorOrange, true
	case OperatorMTN:
		return OperatorMTN, true
	default:
		return "", false
	}
}

// Payment records a single payment attempt, successful or not.
// Failed attempts are retained for audit.
type Payment struct {
	ID              uuid.UUID
	Method          PaymentMethod
	Operator        Operator // Only set for mobile-money payments.
	PhoneNumber     string
	Amount          float64
	Status          PaymentStatus
	ReceiptNumber   string     // Assigned only when the payment completes.
	CustomerID      *uuid.UUID // Nil for guest checkouts.
	CustomerEmail   string
	DeliveryAddress string
	Items           []OrderItem
	PaymentDate     time.Time
}

// Successful reports whether the payment reached the COMPLETED state.
func (p *Payment) Successful() bool {
	return p.Status == PaymentStatusCompleted
}

// Complete marks the payment as completed with the given receipt number.
func (p *Payment) Complete(receiptNumber string) {
	p.Status = PaymentStatusCompleted
	p.ReceiptNumber = receiptNumber
}

// Fail marks the payment as failed. Failed payments keep no receipt number.
func (p *Payment) Fail() {
	p.Status = PaymentStatusFailed
}

// OrderItem is a line item of a payment. Name and price are captured at
// order time and do not follow later product changes.
type OrderItem struct {
	ID          uuid.UUID
	PaymentID   uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	Price       float64
}
