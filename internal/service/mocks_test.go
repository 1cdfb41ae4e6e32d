package service

import (
	"context"

	"backoffice/internal/events"
	"backoffice/internal/model"
	"backoffice/internal/selection"

	"github.com/stretchr/testify/mock"
)

// MockOrderAPI is a mock implementation of OrderAPI.
type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) ListOrders(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockOrderAPI) GetOrder(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockOrderAPI) CreateOrder(ctx context.Context, order map[string]any) ([]byte, error) {
	args := m.Called(ctx, order)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockOrderAPI) UpdateOrder(ctx context.Context, id string, order map[string]any) ([]byte, error) {
	args := m.Called(ctx, id, order)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockOrderAPI) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderAPI) UpdateOrderStatus(ctx context.Context, id string, status model.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderAPI) ProcessPayment(ctx context.Context, id string, payment model.PaymentRequest) ([]byte, error) {
	args := m.Called(ctx, id, payment)
	return bytesArg(args, 0), args.Error(1)
}

// MockProductAPI is a mock implementation of ProductAPI.
type MockProductAPI struct {
	mock.Mock
}

func (m *MockProductAPI) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductAPI) GetProduct(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductAPI) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	args := m.Called(ctx, product)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductAPI) UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error) {
	args := m.Called(ctx, id, product)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *MockProductAPI) DeleteProduct(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductAPI) UploadProductImages(ctx context.Context, id string, images []model.Image) ([]byte, error) {
	args := m.Called(ctx, id, images)
	return bytesArg(args, 0), args.Error(1)
}

// MockUserAPI is a mock implementation of UserAPI.
type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) ListUsers(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserAPI) GetUser(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserAPI) CreateUser(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserAPI) UpdateUser(ctx context.Context, id string, user model.User) (model.User, error) {
	args := m.Called(ctx, id, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserAPI) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaxAPI is a mock implementation of TaxAPI.
type MockTaxAPI struct {
	mock.Mock
}

func (m *MockTaxAPI) ListTaxes(ctx context.Context) ([]model.Tax, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tax), args.Error(1)
}

func (m *MockTaxAPI) CreateTax(ctx context.Context, tax model.Tax) (model.Tax, error) {
	args := m.Called(ctx, tax)
	return args.Get(0).(model.Tax), args.Error(1)
}

func (m *MockTaxAPI) UpdateTax(ctx context.Context, id string, tax model.Tax) (model.Tax, error) {
	args := m.Called(ctx, id, tax)
	return args.Get(0).(model.Tax), args.Error(1)
}

func (m *MockTaxAPI) DeleteTax(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaxAPI) AssignTax(ctx context.Context, productID, taxID string, opts model.AssignmentOptions) error {
	args := m.Called(ctx, productID, taxID, opts)
	return args.Error(0)
}

func (m *MockTaxAPI) BatchAssignTax(ctx context.Context, taxID string, productIDs []string, opts model.AssignmentOptions) ([]byte, error) {
	args := m.Called(ctx, taxID, productIDs, opts)
	return bytesArg(args, 0), args.Error(1)
}

// MockDashboardAPI is a mock implementation of DashboardAPI.
type MockDashboardAPI struct {
	mock.Mock
}

func (m *MockDashboardAPI) DashboardStats(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return bytesArg(args, 0), args.Error(1)
}

func (m *MockDashboardAPI) SystemHealth(ctx context.Context) (model.SystemHealth, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.SystemHealth), args.Error(1)
}

func (m *MockDashboardAPI) SystemMetrics(ctx context.Context) (model.SystemMetrics, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.SystemMetrics), args.Error(1)
}

// MockJournal is a mock implementation of repository.StatusChangeRepository.
type MockJournal struct {
	mock.Mock
}

func (m *MockJournal) Record(ctx context.Context, change *model.StatusChange) error {
	args := m.Called(ctx, change)
	return args.Error(0)
}

func (m *MockJournal) ListByOrder(ctx context.Context, orderID string, limit int) ([]model.StatusChange, error) {
	args := m.Called(ctx, orderID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusChange), args.Error(1)
}

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishStatusChanged(ctx context.Context, event events.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockLoader is a mock implementation of selection.Loader.
type MockLoader struct {
	mock.Mock
}

func (m *MockLoader) Load(ctx context.Context, path string) (*selection.Set, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*selection.Set), args.Error(1)
}

func bytesArg(args mock.Arguments, i int) []byte {
	if args.Get(i) == nil {
		return nil
	}
	return args.Get(i).([]byte)
}
