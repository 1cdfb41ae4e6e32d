package handler

import (
	"context"
	"net/http"

	"backoffice/internal/model"
	"backoffice/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// MockOrderService is a mock implementation of service.OrderService.
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context) ([]model.OrderRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderRow), args.Error(1)
}

func (m *MockOrderService) Detail(ctx context.Context, id string) (*model.OrderDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) Transitions(ctx context.Context, id string) ([]model.Action, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Action), args.Error(1)
}

func (m *MockOrderService) ApplyTransition(ctx context.Context, id, status, actor string) (*model.TransitionResult, error) {
	args := m.Called(ctx, id, status, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TransitionResult), args.Error(1)
}

func (m *MockOrderService) History(ctx context.Context, id string) ([]model.StatusChange, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusChange), args.Error(1)
}

func (m *MockOrderService) Create(ctx context.Context, order map[string]any) (*model.OrderDetail, error) {
	args := m.Called(ctx, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) Update(ctx context.Context, id string, order map[string]any) (*model.OrderDetail, error) {
	args := m.Called(ctx, id, order)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) ProcessPayment(ctx context.Context, id string, payment model.PaymentRequest) (*model.OrderDetail, error) {
	args := m.Called(ctx, id, payment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderDetail), args.Error(1)
}

// MockProductService is a mock implementation of service.ProductService.
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Create(ctx context.Context, product model.Product) (*model.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, id string, product model.Product) (*model.Product, error) {
	args := m.Called(ctx, id, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductService) UploadImages(ctx context.Context, id string, images []model.Image) ([]byte, error) {
	args := m.Called(ctx, id, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockUserService is a mock implementation of service.UserService.
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserService) Get(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Create(ctx context.Context, user model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id string, user model.User) (*model.User, error) {
	args := m.Called(ctx, id, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTaxService is a mock implementation of service.TaxService.
type MockTaxService struct {
	mock.Mock
}

func (m *MockTaxService) List(ctx context.Context) ([]model.Tax, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tax), args.Error(1)
}

func (m *MockTaxService) Create(ctx context.Context, tax model.Tax) (*model.Tax, error) {
	args := m.Called(ctx, tax)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tax), args.Error(1)
}

func (m *MockTaxService) Update(ctx context.Context, id string, tax model.Tax) (*model.Tax, error) {
	args := m.Called(ctx, id, tax)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tax), args.Error(1)
}

func (m *MockTaxService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaxService) Assign(ctx context.Context, productID, taxID string, opts model.AssignmentOptions) (model.Notice, error) {
	args := m.Called(ctx, productID, taxID, opts)
	return args.Get(0).(model.Notice), args.Error(1)
}

func (m *MockTaxService) AssignBatch(ctx context.Context, taxID string, req model.BatchAssignRequest) (*model.BatchOutcome, error) {
	args := m.Called(ctx, taxID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BatchOutcome), args.Error(1)
}

// MockSessionManager is a mock implementation of SessionManager.
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Snapshot() session.Snapshot {
	args := m.Called()
	return args.Get(0).(session.Snapshot)
}

func (m *MockSessionManager) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockSessionManager) Logout(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDashboardService is a mock implementation of service.DashboardService.
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Load(ctx context.Context) (*model.Dashboard, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Dashboard), args.Error(1)
}

func (m *MockDashboardService) Telemetry() model.Telemetry {
	args := m.Called()
	return args.Get(0).(model.Telemetry)
}

// withParams attaches chi URL parameters to a request, as the router would.
func withParams(r *http.Request, kv ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(kv); i += 2 {
		rctx.URLParams.Add(kv[i], kv[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
