package impl

import (
	"context"
	"strings"
	"testing"

	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"
	"patisserie/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentServiceFixture struct {
	service     usecase.PaymentUsecase
	paymentRepo *mockPaymentRepo
	gateway     *mockGateway
	mailer      *mockMailer
}

func newPaymentServiceFixture(t *testing.T) *paymentServiceFixture {
	t.Helper()

	paymentRepo := new(mockPaymentRepo)
	paymentGateway := new(mockGateway)
	mailSvc := new(mockMailer)

	// Notifications run on a detached goroutine after completion.
	mailSvc.On("SendDeliveryReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()
	mailSvc.On("SendOrderNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Maybe()

	return &paymentServiceFixture{
		service:     NewPaymentService(paymentRepo, paymentGateway, mailSvc, "commandes@example.com", newDiscardLogger()),
		paymentRepo: paymentRepo,
		gateway:     paymentGateway,
		mailer:      mailSvc,
	}
}

func TestPaymentService_ProcessMobilePayment(t *testing.T) {
	t.Parallel()

	input := func() *usecase.MobilePaymentInput {
		return &usecase.MobilePaymentInput{
			Operator:        "orange",
			PhoneNumber:     "+237699000001",
			Amount:          12500,
			CustomerEmail:   "claire@example.com",
			DeliveryAddress: "Quartier Bonapriso, Douala",
			Items: []usecase.OrderItemInput{
				{ProductID: uuid.New(), ProductName: "Tarte aux fraises", Quantity: 2, Price: 6250},
			},
		}
	}

	t.Run("successful transfer completes the payment with a receipt", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		f.gateway.On("InitiateMobileTransfer", mock.Anything, entity.OperatorOrange, "+237699000001", 12500.0).
			Return(true, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)

		payment, err := f.service.ProcessMobilePayment(context.Background(), input())

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusCompleted, payment.Status)
		assert.True(t, strings.HasPrefix(payment.ReceiptNumber, "REC-"))
		assert.Equal(t, entity.PaymentMethodMobileMoney, payment.Method)
		f.paymentRepo.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("invalid operator fails validation before the gateway", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		in := input()
		in.Operator = "vodafone"

		payment, err := f.service.ProcessMobilePayment(context.Background(), in)

		require.Error(t, err)
		assert.Nil(t, payment)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		f.gateway.AssertNotCalled(t, "InitiateMobileTransfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.paymentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("declined transfer persists a failed attempt", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		f.gateway.On("InitiateMobileTransfer", mock.Anything, entity.OperatorOrange, "+237699000001", 12500.0).
			Return(false, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Status == entity.PaymentStatusFailed && p.ReceiptNumber == ""
		})).Return(nil)

		payment, err := f.service.ProcessMobilePayment(context.Background(), input())

		require.Error(t, err)
		assert.Nil(t, payment)

		var procErr *domainerrors.PaymentProcessingError
		require.True(t, errors.As(err, &procErr))
		assert.Equal(t, "Mobile money transfer verification failed", procErr.Message())
		f.paymentRepo.AssertExpectations(t)
	})

	t.Run("gateway error is carried into the processing error", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		f.gateway.On("InitiateMobileTransfer", mock.Anything, entity.OperatorMTN, "+237699000001", 12500.0).
			Return(false, errors.New("gateway returned status 503"))
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)

		in := input()
		in.Operator = "MTN"
		payment, err := f.service.ProcessMobilePayment(context.Background(), in)

		require.Error(t, err)
		assert.Nil(t, payment)

		var procErr *domainerrors.PaymentProcessingError
		require.True(t, errors.As(err, &procErr))
		assert.Contains(t, procErr.Message(), "gateway returned status 503")
	})
}

func TestPaymentService_ProcessCardPayment(t *testing.T) {
	t.Parallel()

	card := service.CardDetails{
		CardNumber:  "4111111111111111",
		ExpiryMonth: 12,
		ExpiryYear:  2027,
		CVV:         "123",
		HolderName:  "Claire Dupont",
		Amount:      8000,
	}

	t.Run("approved charge completes the payment", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		f.gateway.On("ProcessCardPayment", mock.Anything, card).Return(true, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)

		payment, err := f.service.ProcessCardPayment(context.Background(), &usecase.CardPaymentInput{Card: card})

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentStatusCompleted, payment.Status)
		assert.Equal(t, entity.PaymentMethodBankCard, payment.Method)
		assert.NotEmpty(t, payment.ReceiptNumber)
	})

	t.Run("non-positive amount is rejected up front", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		zeroCard := card
		zeroCard.Amount = 0

		payment, err := f.service.ProcessCardPayment(context.Background(), &usecase.CardPaymentInput{Card: zeroCard})

		require.Error(t, err)
		assert.Nil(t, payment)
		assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
		f.gateway.AssertNotCalled(t, "ProcessCardPayment", mock.Anything, mock.Anything)
	})

	t.Run("declined charge persists a failed attempt", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		f.gateway.On("ProcessCardPayment", mock.Anything, card).Return(false, nil)
		f.paymentRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *entity.Payment) bool {
			return p.Status == entity.PaymentStatusFailed
		})).Return(nil)

		payment, err := f.service.ProcessCardPayment(context.Background(), &usecase.CardPaymentInput{Card: card})

		require.Error(t, err)
		assert.Nil(t, payment)

		var procErr *domainerrors.PaymentProcessingError
		require.True(t, errors.As(err, &procErr))
		f.paymentRepo.AssertExpectations(t)
	})
}

func TestPaymentService_GetPaymentByReceiptNumber(t *testing.T) {
	t.Parallel()

	t.Run("unknown receipt maps to the domain not-found error", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		f.paymentRepo.On("FindByReceiptNumber", mock.Anything, "REC-404").
			Return(nil, repository.ErrPaymentNotFound)

		payment, err := f.service.GetPaymentByReceiptNumber(context.Background(), "REC-404")

		require.Error(t, err)
		assert.Nil(t, payment)
		assert.True(t, errors.Is(err, domainerrors.ErrPaymentNotFound))
	})

	t.Run("known receipt returns the payment", func(t *testing.T) {
		t.Parallel()

		f := newPaymentServiceFixture(t)
		stored := &entity.Payment{ID: uuid.New(), ReceiptNumber: "REC-1-abc123"}
		f.paymentRepo.On("FindByReceiptNumber", mock.Anything, "REC-1-abc123").Return(stored, nil)

		payment, err := f.service.GetPaymentByReceiptNumber(context.Background(), "REC-1-abc123")

		require.NoError(t, err)
		assert.Equal(t, stored, payment)
	})
}
