package handler

import (
	"log/slog"
	"net/http"
	"time"

	"patisserie/internal/delivery/http/response"
	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PaymentHandler holds dependencies for payment-related handlers.
type PaymentHandler struct {
	uc     usecase.PaymentUsecase
	logger *slog.Logger
}

// NewPaymentHandler is the constructor for PaymentHandler.
func NewPaymentHandler(uc usecase.PaymentUsecase, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		uc:     uc,
		logger: logger,
	}
}

type orderItemRequest struct {
	ProductID   uuid.UUID `json:"productId" validate:"required"`
	ProductName string    `json:"productName" validate:"required"`
	Quantity    int       `json:"quantity" validate:"required,gt=0"`
	Price       float64   `json:"price" validate:"gte=0"`
}

type mobilePaymentRequest struct {
	Operator        string             `json:"operator" validate:"required"`
	PhoneNumber     string             `json:"phoneNumber" validate:"required"`
	Amount          float64            `json:"amount" validate:"required,gt=0"`
	CustomerID      *uuid.UUID         `json:"customerId"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Items           []orderItemRequest `json:"items" validate:"dive"`
}

type cardPaymentRequest struct {
	CardNumber      string             `json:"cardNumber" validate:"required"`
	ExpiryMonth     int                `json:"expiryMonth" validate:"required,min=1,max=12"`
	ExpiryYear      int                `json:"expiryYear" validate:"required"`
	CVV             string             `json:"cvv" validate:"required"`
	HolderName      string             `json:"holderName" validate:"required"`
	Amount          float64            `json:"amount" validate:"required,gt=0"`
	CustomerID      *uuid.UUID         `json:"customerId"`
	CustomerEmail   string             `json:"customerEmail" validate:"omitempty,email"`
	DeliveryAddress string             `json:"deliveryAddress"`
	Items           []orderItemRequest `json:"items" validate:"dive"`
}

type paymentView struct {
	ID            uuid.UUID `json:"id"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	Amount        float64   `json:"amount"`
	ReceiptNumber string    `json:"receiptNumber,omitempty"`
	PaymentDate   string    `json:"paymentDate"`
}

// ProcessMobile handles a mobile-money payment attempt. A rejected
// attempt returns a {success:false, message} body, never a raw 5xx.
func (h *PaymentHandler) ProcessMobile(c echo.Context) error {
	var req mobilePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.uc.ProcessMobilePayment(c.Request().Context(), &usecase.MobilePaymentInput{
		Operator:        req.Operator,
		PhoneNumber:     req.PhoneNumber,
		Amount:          req.Amount,
		CustomerID:      req.CustomerID,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		Items:           toOrderItemInputs(req.Items),
	})
	if err != nil {
		return h.renderPaymentError(c, err)
	}

	return response.Success(c, http.StatusOK, toPaymentView(payment), "Payment completed successfully")
}

// ProcessCard handles a bank-card payment attempt.
func (h *PaymentHandler) ProcessCard(c echo.Context) error {
	var req cardPaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid payment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	payment, err := h.uc.ProcessCardPayment(c.Request().Context(), &usecase.CardPaymentInput{
		Card: service.CardDetails{
			CardNumber:  req.CardNumber,
			ExpiryMonth: req.ExpiryMonth,
			ExpiryYear:  req.ExpiryYear,
			CVV:         req.CVV,
			HolderName:  req.HolderName,
			Amount:      req.Amount,
		},
		CustomerID:      req.CustomerID,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
		Items:           toOrderItemInputs(req.Items),
	})
	if err != nil {
		return h.renderPaymentError(c, err)
	}

	return response.Success(c, http.StatusOK, toPaymentView(payment), "Payment completed successfully")
}

// History returns the authenticated customer's payments.
func (h *PaymentHandler) History(c echo.Context) error {
	customerID, err := uuid.Parse(c.Param("customerId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid customer ID")
	}

	payments, err := h.uc.GetPaymentHistory(c.Request().Context(), customerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentViews(payments), "Payment history retrieved")
}

// ByReceipt resolves a completed payment by receipt number.
func (h *PaymentHandler) ByReceipt(c echo.Context) error {
	payment, err := h.uc.GetPaymentByReceiptNumber(c.Request().Context(), c.Param("receipt"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentView(payment), "Payment retrieved")
}

// List returns every recorded payment attempt. Admin only.
func (h *PaymentHandler) List(c echo.Context) error {
	payments, err := h.uc.ListPayments(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPaymentViews(payments), "Payments retrieved")
}

// renderPaymentError turns a PaymentProcessingError into the structured
// failure body; anything else falls through to the error middleware.
func (h *PaymentHandler) renderPaymentError(c echo.Context, err error) error {
	var processingErr *domainerrors.PaymentProcessingError
	if errors.As(err, &processingErr) {
		return response.PaymentFailure(c, processingErr.Message())
	}

	return errors.WithStack(err)
}

func toOrderItemInputs(items []orderItemRequest) []usecase.OrderItemInput {
	inputs := make([]usecase.OrderItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, usecase.OrderItemInput{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	return inputs
}

func toPaymentView(payment *entity.Payment) *paymentView {
	if payment == nil {
		return nil
	}

	return &paymentView{
		ID:            payment.ID,
		Method:        string(payment.Method),
		Status:        string(payment.Status),
		Amount:        payment.Amount,
		ReceiptNumber: payment.ReceiptNumber,
		PaymentDate:   payment.PaymentDate.Format(time.RFC3339),
	}
}

func toPaymentViews(payments []*entity.Payment) []*paymentView {
	views := make([]*paymentView, 0, len(payments))
	for _, payment := range payments {
		views = append(views, toPaymentView(payment))
	}

	return views
}
