package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"patisserie/internal/domain/entity"
	"patisserie/internal/domain/repository"
	"patisserie/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubFactory hands the test's repository doubles to transactional code.
type stubFactory struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	paymentRepo repository.PaymentRepository
	resetRepo   repository.PasswordResetTokenRepository
}

func (f *stubFactory) UserRepo() repository.UserRepository    { return f.userRepo }
func (f *stubFactory) RoleRepo() repository.RoleRepository    { return f.roleRepo }
func (f *stubFactory) PaymentRepo() repository.PaymentRepository {
	return f.paymentRepo
}
func (f *stubFactory) ResetTokenRepo() repository.PasswordResetTokenRepository {
	return f.resetRepo
}

// fakeTxManager executes the callback against the stub factory, standing
// in for a real database transaction.
type fakeTxManager struct {
	factory *stubFactory
}

func (t *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(t.factory)
}

// --- repository doubles ---

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) FindByConfirmationToken(ctx context.Context, token string) (*entity.User, error) {
	args := m.Called(ctx, token)
	if user, ok := args.Get(0).(*entity.User); ok {
		return user, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)

	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*entity.User); ok {
		return users, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockUserRepo) AddRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

func (m *mockUserRepo) RemoveRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return m.Called(ctx, userID, roleID).Error(0)
}

type mockRoleRepo struct{ mock.Mock }

func (m *mockRoleRepo) FindByName(ctx context.Context, name entity.Role) (*repository.RoleRecord, error) {
	args := m.Called(ctx, name)
	if record, ok := args.Get(0).(*repository.RoleRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockRoleRepo) FindOrCreate(ctx context.Context, name entity.Role) (*repository.RoleRecord, error) {
	args := m.Called(ctx, name)
	if record, ok := args.Get(0).(*repository.RoleRecord); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockPaymentRepo struct{ mock.Mock }

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if payment, ok := args.Get(0).(*entity.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPaymentRepo) FindByReceiptNumber(ctx context.Context, receiptNumber string) (*entity.Payment, error) {
	args := m.Called(ctx, receiptNumber)
	if payment, ok := args.Get(0).(*entity.Payment); ok {
		return payment, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPaymentRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*entity.Payment, error) {
	args := m.Called(ctx, customerID)
	if payments, ok := args.Get(0).([]*entity.Payment); ok {
		return payments, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockPaymentRepo) List(ctx context.Context) ([]*entity.Payment, error) {
	args := m.Called(ctx)
	if payments, ok := args.Get(0).([]*entity.Payment); ok {
		return payments, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockResetTokenRepo struct{ mock.Mock }

func (m *mockResetTokenRepo) Create(ctx context.Context, token *entity.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockResetTokenRepo) FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if record, ok := args.Get(0).(*entity.PasswordResetToken); ok {
		return record, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockResetTokenRepo) Delete(ctx context.Context, token *entity.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *mockResetTokenRepo) DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error) {
	args := m.Called(ctx, t)

	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepo struct{ mock.Mock }

func (m *mockProductRepo) Create(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*entity.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) Update(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) SearchByName(ctx context.Context, keyword string, page, size int) ([]*entity.Product, error) {
	args := m.Called(ctx, keyword, page, size)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepo) ListTopOrdered(ctx context.Context, limit int) ([]*entity.Product, error) {
	args := m.Called(ctx, limit)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

// --- service doubles ---

type mockHasher struct{ mock.Mock }

func (m *mockHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *mockHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

type mockTokenService struct{ mock.Mock }

func (m *mockTokenService) Generate(email string) (string, error) {
	args := m.Called(email)

	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Validate(token string) bool {
	return m.Called(token).Bool(0)
}

func (m *mockTokenService) ExtractSubject(token string) (string, error) {
	args := m.Called(token)

	return args.String(0), args.Error(1)
}

type mockMailer struct{ mock.Mock }

func (m *mockMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.Called(ctx, to, subject, body).Error(0)
}

func (m *mockMailer) SendConfirmationEmail(ctx context.Context, to, confirmationToken string) error {
	return m.Called(ctx, to, confirmationToken).Error(0)
}

func (m *mockMailer) SendPasswordResetEmail(ctx context.Context, to, resetLink string) error {
	return m.Called(ctx, to, resetLink).Error(0)
}

func (m *mockMailer) SendDeliveryReceipt(ctx context.Context, to, receiptNumber string, amount float64, deliveryAddress string) error {
	return m.Called(ctx, to, receiptNumber, amount, deliveryAddress).Error(0)
}

func (m *mockMailer) SendOrderNotification(ctx context.Context, to, receiptNumber string, items []service.OrderLine, deliveryAddress string) error {
	return m.Called(ctx, to, receiptNumber, items, deliveryAddress).Error(0)
}

type mockGateway struct{ mock.Mock }

func (m *mockGateway) InitiateMobileTransfer(ctx context.Context, operator entity.Operator, phoneNumber string, amount float64) (bool, error) {
	args := m.Called(ctx, operator, phoneNumber, amount)

	return args.Bool(0), args.Error(1)
}

func (m *mockGateway) ProcessCardPayment(ctx context.Context, details service.CardDetails) (bool, error) {
	args := m.Called(ctx, details)

	return args.Bool(0), args.Error(1)
}

type mockImageStore struct{ mock.Mock }

func (m *mockImageStore) Save(ctx context.Context, category, filename string, content io.Reader) (string, error) {
	args := m.Called(ctx, category, filename, content)

	return args.String(0), args.Error(1)
}

func (m *mockImageStore) Remove(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}
