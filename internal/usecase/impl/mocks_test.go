package impl

import (
	"context"
	"io"
	"log/slog"

	"vmarket/config"
	"vmarket/internal/domain/entity"
	"vmarket/internal/domain/repository"
	"vmarket/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Market: &config.MarketConfig{
			ReferencePrefix:     "VM",
			LowStockThresholdKg: 5.0,
		},
	}
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) CreateProduct(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) FindProductByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if product, ok := args.Get(0).(*entity.Product); ok {
		return product, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepository) FindActiveProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepository) FindAllProducts(ctx context.Context) ([]*entity.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepository) SearchActiveProducts(ctx context.Context, query string) ([]*entity.Product, error) {
	args := m.Called(ctx, query)
	if products, ok := args.Get(0).([]*entity.Product); ok {
		return products, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockProductRepository) UpdateProduct(ctx context.Context, product *entity.Product) error {
	return m.Called(ctx, product).Error(0)
}

func (m *mockProductRepository) SetProductActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockProductRepository) DecrementStock(ctx context.Context, id uuid.UUID, byKg float64) error {
	return m.Called(ctx, id, byKg).Error(0)
}

func (m *mockProductRepository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) UpsertLine(ctx context.Context, line *entity.CartLine) error {
	return m.Called(ctx, line).Error(0)
}

func (m *mockCartRepository) FindLineByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*entity.CartLine, error) {
	args := m.Called(ctx, userID, productID)
	if line, ok := args.Get(0).(*entity.CartLine); ok {
		return line, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepository) FindLinesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error) {
	args := m.Called(ctx, userID)
	if lines, ok := args.Get(0).([]*entity.CartLine); ok {
		return lines, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCartRepository) UpdateLinePrice(ctx context.Context, id uuid.UUID, unitPrice float64) error {
	return m.Called(ctx, id, unitPrice).Error(0)
}

func (m *mockCartRepository) DeleteLine(ctx context.Context, userID, productID uuid.UUID) error {
	return m.Called(ctx, userID, productID).Error(0)
}

func (m *mockCartRepository) DeleteLineByID(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCartRepository) DeleteLinesByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) CreateOrder(ctx context.Context, order *entity.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *mockOrderRepository) FindOrderByReference(ctx context.Context, reference string) (*entity.Order, error) {
	args := m.Called(ctx, reference)
	if order, ok := args.Get(0).(*entity.Order); ok {
		return order, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepository) FindOrdersByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if orders, ok := args.Get(0).([]*entity.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepository) FindAllOrders(ctx context.Context) ([]*entity.Order, error) {
	args := m.Called(ctx)
	if orders, ok := args.Get(0).([]*entity.Order); ok {
		return orders, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockOrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, adminStatus entity.AdminStatus, customerStatus entity.CustomerStatus) error {
	return m.Called(ctx, id, adminStatus, customerStatus).Error(0)
}

func (m *mockOrderRepository) SetPenaltyActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

type mockCustomerRepository struct {
	mock.Mock
}

func (m *mockCustomerRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.CustomerProfile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*entity.CustomerProfile); ok {
		return profile, args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *mockCustomerRepository) UpsertProfile(ctx context.Context, profile *entity.CustomerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type mockAddressRepository struct {
	mock.Mock
}

func (m *mockAddressRepository) FindAddressByCommune(ctx context.Context, commune string) (*entity.LocalAddress, error) {
	args := m.Called(ctx, commune)
	if address, ok := args.Get(0).(*entity.LocalAddress); ok {
		return address, args.Error(1)
	}

	return nil, args.Error(1)
}

// stubTransactionManager runs the commit function directly against the given
// repositories, standing in for a real database transaction.
type stubTransactionManager struct {
	products repository.ProductRepository
	carts    repository.CartRepository
	orders   repository.OrderRepository
}

func (s *stubTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(s)
}

func (s *stubTransactionManager) NewProductRepository() repository.ProductRepository {
	return s.products
}

func (s *stubTransactionManager) NewCartRepository() repository.CartRepository {
	return s.carts
}

func (s *stubTransactionManager) NewOrderRepository() repository.OrderRepository {
	return s.orders
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) PublishOrderPlaced(ctx context.Context, event *service.OrderPlacedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockEventPublisher) Close() error {
	return m.Called().Error(0)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) SendSingleNotification(ctx context.Context, token, title, body string, data map[string]string) error {
	return m.Called(ctx, token, title, body, data).Error(0)
}

type mockQRCodeService struct {
	mock.Mock
}

func (m *mockQRCodeService) GenerateOrderQR(content string) ([]byte, error) {
	args := m.Called(content)
	if png, ok := args.Get(0).([]byte); ok {
		return png, args.Error(1)
	}

	return nil, args.Error(1)
}

type mockImageStorage struct {
	mock.Mock
}

func (m *mockImageStorage) Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	args := m.Called(ctx, filename, contentType, body)

	return args.String(0), args.Error(1)
}

func (m *mockImageStorage) Delete(ctx context.Context, url string) error {
	return m.Called(ctx, url).Error(0)
}

