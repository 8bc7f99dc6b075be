package postgres

import (
	"context"

	"patisserie/internal/domain/entity"
	domainerrors "patisserie/internal/domain/errors"
	"patisserie/internal/domain/repository"
	"patisserie/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentRepository implements the repository.PaymentRepository interface.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository is the constructor for paymentRepository.
func NewPaymentRepository(db *gorm.DB) repository.PaymentRepository {
	return &paymentRepository{
		db: db,
	}
}

// Create persists a payment attempt, including its order items.
func (repo *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	paymentM := fromPaymentDomain(payment)

	if err := repo.db.WithContext(ctx).Create(paymentM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			// Receipt collision: extremely unlikely with the random suffix.
			return domainerrors.NewDatabaseExecuteError(err, "duplicate receipt number")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment")
	}

	payment.ID = paymentM.ID
	for i := range paymentM.Items {
		payment.Items[i].ID = paymentM.Items[i].ID
		payment.Items[i].PaymentID = paymentM.Items[i].PaymentID
	}

	return nil
}

// FindByID retrieves a payment with its order items.
func (repo *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	var paymentM model.PaymentModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&paymentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by ID")
	}

	return toPaymentDomain(&paymentM), nil
}

// FindByReceiptNumber retrieves a completed payment by its receipt number.
func (repo *paymentRepository) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error) {
	var paymentM model.PaymentModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("receipt_number = ?", receiptNumber).
		First(&paymentM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment by receipt number")
	}

	return toPaymentDomain(&paymentM), nil
}

// ListByCustomer returns the customer's payments, most recent first.
func (repo *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Payment, error) {
	var paymentModels []*model.PaymentModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("customer_id = ?", customerID).
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payments by customer")
	}

	return toPaymentDomainList(paymentModels), nil
}

// List returns all payments, most recent first.
func (repo *paymentRepository) List(ctx context.Context) ([]*entity.Payment, error) {
	var paymentModels []*model.PaymentModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Order("payment_date DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payments")
	}

	return toPaymentDomainList(paymentModels), nil
}

// --- Mapper Functions ---

func toPaymentDomainList(paymentModels []*model.PaymentModel) []*entity.Payment {
	payments := make([]*entity.Payment, 0, len(paymentModels))
	for _, paymentM := range paymentModels {
		payments = append(payments, toPaymentDomain(paymentM))
	}

	return payments
}

// toPaymentDomain converts a GORM PaymentModel to a domain Payment entity.
func toPaymentDomain(data *model.PaymentModel) *entity.Payment {
	if data == nil {
		return nil
	}

	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.OrderItem{
			ID:          itemM.ID,
			PaymentID:   itemM.PaymentID,
			ProductID:   itemM.ProductID,
			ProductName: itemM.ProductName,
			Quantity:    itemM.Quantity,
			Price:       itemM.Price,
		})
	}

	receipt := ""
	if data.ReceiptNumber != nil {
		receipt = *data.ReceiptNumber
	}

	return &entity.Payment{
		ID:              data.ID,
		Method:          entity.PaymentMethod(data.Method),
		Operator:        entity.Operator(data.Operator),
		PhoneNumber:     data.PhoneNumber,
		Amount:          data.Amount,
		Status:          entity.PaymentStatus(data.Status),
		ReceiptNumber:   receipt,
		CustomerID:      data.CustomerID,
		CustomerEmail:   data.CustomerEmail,
		DeliveryAddress: data.DeliveryAddress,
		Items:           items,
		PaymentDate:     data.PaymentDate,
	}
}

// fromPaymentDomain converts a domain Payment entity to a GORM PaymentModel.
// An empty receipt number is stored as NULL so the unique index ignores
// failed attempts.
func fromPaymentDomain(data *entity.Payment) *model.PaymentModel {
	if data == nil {
		return nil
	}

	items := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.OrderItemModel{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
		})
	}

	var receipt *string
	if data.ReceiptNumber != "" {
		receipt = &data.ReceiptNumber
	}

	return &model.PaymentModel{
		ID:              data.ID,
		Method:          string(data.Method),
		Operator:        string(data.Operator),
		PhoneNumber:     data.PhoneNumber,
		Amount:          data.Amount,
		Status:          string(data.Status),
		ReceiptNumber:   receipt,
		CustomerID:      data.CustomerID,
		CustomerEmail:   data.CustomerEmail,
		DeliveryAddress: data.DeliveryAddress,
		PaymentDate:     data.PaymentDate,
		Items:           items,
	}
}
