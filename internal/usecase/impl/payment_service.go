package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "patisserie/internal/delivery/context"
	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const notificationTimeout = 30 * time.Second

// paymentService implements the PaymentUsecase interface. It drives the
// PENDING -> COMPLETED | FAILED state machine; failed attempts are
// persisted for audit, never retried.
type paymentService struct {
	paymentRepo repository.PaymentRepository
	gateway     service.PaymentGateway
	mailer      service.Mailer
	orderAlert  string // Operations mailbox receiving new-order alerts.
	logger      *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	gateway service.PaymentGateway,
	mailer service.Mailer,
	orderAlertAddress string,
	logger *slog.Logger,
) usecase.PaymentUsecase {
	return &paymentService{
		paymentRepo: paymentRepo,
		gateway:     gateway,
		mailer:      mailer,
		orderAlert:  orderAlertAddress,
		logger:      logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ProcessMobilePayment runs a mobile-money payment attempt end to end.
// Validation failures abort before any gateway call; gateway failures
// leave a FAILED record behind and surface a PaymentProcessingError.
func (srv *paymentService) ProcessMobilePayment(ctx context.Context, input *usecase.MobilePaymentInput) (*entity.Payment, error) {
	operator, err := validateMobilePayment(input)
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		Method:          entity.PaymentMethodMobileMoney,
		Operator:        operator,
		PhoneNumber:     strings.TrimSpace(input.PhoneNumber),
		Amount:          input.Amount,
		Status:          entity.PaymentStatusPending,
		CustomerID:      input.CustomerID,
		CustomerEmail:   input.CustomerEmail,
		DeliveryAddress: input.DeliveryAddress,
		Items:           toOrderItems(input.Items),
		PaymentDate:     time.Now(),
	}

	srv.log(ctx).Info("Processing mobile payment",
		slog.String("operator", string(operator)), slog.Float64("amount", input.Amount))

	initiated, err := srv.gateway.InitiateMobileTransfer(ctx, operator, payment.PhoneNumber, payment.Amount)
	if err != nil {
		return srv.failPayment(ctx, payment, "Mobile money payment processing failed: "+err.Error())
	}
	if !initiated {
		return srv.failPayment(ctx, payment, "Mobile money transfer verification failed")
	}

	return srv.completePayment(ctx, payment)
}

// ProcessCardPayment runs a bank-card payment attempt with the same
// persist-then-fail contract as the mobile flow.
func (srv *paymentService) ProcessCardPayment(ctx context.Context, input *usecase.CardPaymentInput) (*entity.Payment, error) {
	if input.Card.Amount <= 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "card payment requires a positive amount")
	}

	payment := &entity.Payment{
		Method:          entity.PaymentMethodBankCard,
		Amount:          input.Card.Amount,
		Status:          entity.PaymentStatusPending,
		CustomerID:      input.CustomerID,
		CustomerEmail:   input.CustomerEmail,
		DeliveryAddress: input.DeliveryAddress,
		Items:           toOrderItems(input.Items),
		PaymentDate:     time.Now(),
	}

	srv.log(ctx).Info("Processing card payment", slog.Float64("amount", input.Card.Amount))

	approved, err := srv.gateway.ProcessCardPayment(ctx, input.Card)
	if err != nil {
		return srv.failPayment(ctx, payment, "Bank card payment processing failed: "+err.Error())
	}
	if !approved {
		return srv.failPayment(ctx, payment, "Bank card payment processing failed")
	}

	return srv.completePayment(ctx, payment)
}

// failPayment persists the FAILED attempt for audit and returns the
// processing error. A persistence failure is logged but does not mask
// the payment failure itself.
func (srv *paymentService) failPayment(ctx context.Context, payment *entity.Payment, message string) (*entity.Payment, error) {
	payment.Fail()

	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		srv.log(ctx).Error("Failed to persist failed payment", slog.Any("error", err))
	}

	srv.log(ctx).Warn("Payment failed", slog.String("reason", message))

	return nil, errors.WithStack(domainerrors.NewPaymentProcessingError(message))
}

func (srv *paymentService) completePayment(ctx context.Context, payment *entity.Payment) (*entity.Payment, error) {
	payment.Complete(service.GenerateReceiptNumber(time.Now()))

	if err := srv.paymentRepo.Create(ctx, payment); err != nil {
		return nil, errors.Wrap(err, "failed to persist completed payment")
	}

	srv.log(ctx).Info("Payment completed",
		slog.Any("paymentID", payment.ID), slog.String("receipt", payment.ReceiptNumber))

	// Notifications must not stall or fail a committed payment.
	go srv.dispatchPaymentNotifications(payment)

	return payment, nil
}

// dispatchPaymentNotifications sends the customer receipt and the
// operations order alert for a completed payment.
func (srv *paymentService) dispatchPaymentNotifications(payment *entity.Payment) {
	ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
	defer cancel()

	if payment.CustomerEmail != "" {
		err := srv.mailer.SendDeliveryReceipt(ctx,
			payment.CustomerEmail, payment.ReceiptNumber, payment.Amount, payment.DeliveryAddress)
		if err != nil {
			srv.logger.Error("Failed to send delivery receipt",
				slog.String("receipt", payment.ReceiptNumber), slog.Any("error", err))
		}
	}

	lines := make([]service.OrderLine, 0, len(payment.Items))
	for _, item := range payment.Items {
		lines = append(lines, service.OrderLine{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	err := srv.mailer.SendOrderNotification(ctx,
		srv.orderAlert, payment.ReceiptNumber, lines, payment.DeliveryAddress)
	if err != nil {
		srv.logger.Error("Failed to send order notification",
			slog.String("receipt", payment.ReceiptNumber), slog.Any("error", err))
	}
}

// GetPaymentHistory returns a customer's payments, newest first.
func (srv *paymentService) GetPaymentHistory(ctx context.Context, customerID uuid.UUID) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer payments")
	}

	return payments, nil
}

// GetPaymentByReceiptNumber resolves a completed payment by receipt.
func (srv *paymentService) GetPaymentByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error) {
	payment, err := srv.paymentRepo.FindByReceiptNumber(ctx, receiptNumber)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPaymentNotFound, "receipt lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find payment by receipt number")
	}

	return payment, nil
}

// ListPayments returns every recorded payment attempt.
func (srv *paymentService) ListPayments(ctx context.Context) ([]*entity.Payment, error) {
	payments, err := srv.paymentRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return payments, nil
}

func validateMobilePayment(input *usecase.MobilePaymentInput) (entity.Operator, error) {
	if strings.TrimSpace(input.Operator) == "" {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "operator is required")
	}
	if strings.TrimSpace(input.PhoneNumber) == "" {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "phone number is required")
	}

	operator, ok := entity.ParseOperator(input.Operator)
	if !ok {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "invalid operator")
	}

	return operator, nil
}

func toOrderItems(inputs []usecase.OrderItemInput) []entity.OrderItem {
	items := make([]entity.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, entity.OrderItem{
			ProductID:   in.ProductID,
			ProductName: in.ProductName,
			Quantity:    in.Quantity,
			Price:       in.Price,
		})
	}

	return items
}
