package http_test

import (
	"context"
	"time"

	"orderdesk/internal/core/application/usecases/commands"
	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/model/payment"
	"orderdesk/internal/core/domain/model/request"
	"orderdesk/internal/core/domain/model/wallet"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAssignedPastDeadline(ctx context.Context, now time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetArchivable(ctx context.Context, before time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByUser(ctx context.Context, userID, websiteID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, websiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByUserForUpdate(ctx context.Context, userID, websiteID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID, websiteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) AddTransaction(ctx context.Context, tx *wallet.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Add(ctx context.Context, aggregate *payment.Payment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPaymentRepository) Update(ctx context.Context, aggregate *payment.Payment) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockPaymentRepository) Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*payment.Payment, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockWriterRequestRepository struct {
	mock.Mock
}

func (m *MockWriterRequestRepository) Add(ctx context.Context, aggregate *request.WriterRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWriterRequestRepository) Update(ctx context.Context, aggregate *request.WriterRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWriterRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.WriterRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.WriterRequest), args.Error(1)
}

func (m *MockWriterRequestRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*request.WriterRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*request.WriterRequest), args.Error(1)
}

type MockReassignmentRequestRepository struct {
	mock.Mock
}

func (m *MockReassignmentRequestRepository) Add(ctx context.Context, aggregate *request.ReassignmentRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReassignmentRequestRepository) Update(ctx context.Context, aggregate *request.ReassignmentRequest) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReassignmentRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.ReassignmentRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.ReassignmentRequest), args.Error(1)
}

func (m *MockReassignmentRequestRepository) GetPendingByOrder(ctx context.Context, orderID kernel.UUID) (*request.ReassignmentRequest, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*request.ReassignmentRequest), args.Error(1)
}

type MockUoW struct {
	mock.Mock
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) WriterRequestRepository() ports.WriterRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.WriterRequestRepository)
}

func (m *MockUoW) ReassignmentRequestRepository() ports.ReassignmentRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.ReassignmentRequestRepository)
}

type MockUoWFactory struct {
	mock.Mock
}

func (m *MockUoWFactory) Create() ports.UnitOfWork {
	args := m.Called()
	return args.Get(0).(ports.UnitOfWork)
}

type MockSettlementUoW struct {
	MockUoW
}

type MockSettlementUoWFactory struct {
	mock.Mock
}

func (m *MockSettlementUoWFactory) Create() commands.SettlementUoW {
	args := m.Called()
	return args.Get(0).(commands.SettlementUoW)
}

type MockSettingsProvider struct {
	mock.Mock
}

func (m *MockSettingsProvider) PricingConfig(ctx context.Context, websiteID kernel.UUID) (services.PricingConfig, error) {
	args := m.Called(ctx, websiteID)
	return args.Get(0).(services.PricingConfig), args.Error(1)
}

func (m *MockSettingsProvider) PointsConfig(ctx context.Context, websiteID kernel.UUID) (services.PointsConfig, error) {
	args := m.Called(ctx, websiteID)
	return args.Get(0).(services.PointsConfig), args.Error(1)
}

func (m *MockSettingsProvider) RevisionWindowDays(ctx context.Context, websiteID kernel.UUID) (int, error) {
	args := m.Called(ctx, websiteID)
	return args.Int(0), args.Error(1)
}

func (m *MockSettingsProvider) DiscountAmount(ctx context.Context, websiteID kernel.UUID, code string, gross kernel.Money) (kernel.Money, error) {
	args := m.Called(ctx, websiteID, code, gross)
	return args.Get(0).(kernel.Money), args.Error(1)
}

type MockAuditLogger struct {
	mock.Mock
}

func (m *MockAuditLogger) Log(ctx context.Context, entry *audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, userID kernel.UUID, n ports.Notification) {
	m.Called(ctx, userID, n)
}

type MockRedeliverer struct {
	mock.Mock
}

func (m *MockRedeliverer) Redeliver(ctx context.Context, logID kernel.UUID) error {
	args := m.Called(ctx, logID)
	return args.Error(0)
}
