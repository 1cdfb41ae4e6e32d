package service

import (
	"context"

	"backoffice/internal/model"
)

// OrderAPI is the part of the store API client the order service uses.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]byte, error)
	GetOrder(ctx context.Context, id string) ([]byte, error)
	CreateOrder(ctx context.Context, order map[string]any) ([]byte, error)
	UpdateOrder(ctx context.Context, id string, order map[string]any) ([]byte, error)
	DeleteOrder(ctx context.Context, id string) error
	UpdateOrderStatus(ctx context.Context, id string, status model.Status) error
	ProcessPayment(ctx context.Context, id string, payment model.PaymentRequest) ([]byte, error)
}

// ProductAPI is the part of the store API client the product service uses.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, product model.Product) (model.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	UploadProductImages(ctx context.Context, id string, images []model.Image) ([]byte, error)
}

// UserAPI is the part of the store API client the user service uses.
type UserAPI interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) (model.User, error)
	UpdateUser(ctx context.Context, id string, user model.User) (model.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// TaxAPI is the part of the store API client the tax service uses.
type TaxAPI interface {
	ListTaxes(ctx context.Context) ([]model.Tax, error)
	CreateTax(ctx context.Context, tax model.Tax) (model.Tax, error)
	UpdateTax(ctx context.Context, id string, tax model.Tax) (model.Tax, error)
	DeleteTax(ctx context.Context, id string) error
	AssignTax(ctx context.Context, productID, taxID string, opts model.AssignmentOptions) error
	BatchAssignTax(ctx context.Context, taxID string, productIDs []string, opts model.AssignmentOptions) ([]byte, error)
}

// DashboardAPI is the part of the store API client the dashboard service uses.
type DashboardAPI interface {
	DashboardStats(ctx context.Context) ([]byte, error)
	SystemHealth(ctx context.Context) (model.SystemHealth, error)
	SystemMetrics(ctx context.Context) (model.SystemMetrics, error)
}

// OrderService defines the orders table, detail view and transition surface.
type OrderService interface {
	// List fetches every order and renders the table rows.
	List(ctx context.Context) ([]model.OrderRow, error)

	// Detail fetches one order, attaching a debug panel when critical sections are missing.
	Detail(ctx context.Context, id string) (*model.OrderDetail, error)

	// Transitions lists the status moves offered for an order.
	Transitions(ctx context.Context, id string) ([]model.Action, error)

	// ApplyTransition moves an order to a new status with exactly one upstream call.
	ApplyTransition(ctx context.Context, id, status, actor string) (*model.TransitionResult, error)

	// History returns the journaled transition attempts of an order, newest first.
	History(ctx context.Context, id string) ([]model.StatusChange, error)

	Create(ctx context.Context, order map[string]any) (*model.OrderDetail, error)
	Update(ctx context.Context, id string, order map[string]any) (*model.OrderDetail, error)
	Delete(ctx context.Context, id string) error
	ProcessPayment(ctx context.Context, id string, payment model.PaymentRequest) (*model.OrderDetail, error)
}

// ProductService defines catalog management.
type ProductService interface {
	List(ctx context.Context) ([]model.Product, error)
	Get(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	Update(ctx context.Context, id string, product model.Product) (*model.Product, error)
	Delete(ctx context.Context, id string) error
	UploadImages(ctx context.Context, id string, images []model.Image) ([]byte, error)
}

// UserService defines customer and staff record management.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, user model.User) (*model.User, error)
	Update(ctx context.Context, id string, user model.User) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

// TaxService defines tax configuration and tax-to-product assignment.
type TaxService interface {
	List(ctx context.Context) ([]model.Tax, error)
	Create(ctx context.Context, tax model.Tax) (*model.Tax, error)
	Update(ctx context.Context, id string, tax model.Tax) (*model.Tax, error)
	Delete(ctx context.Context, id string) error

	// Assign attaches one tax to one product.
	Assign(ctx context.Context, productID, taxID string, opts model.AssignmentOptions) (model.Notice, error)

	// AssignBatch attaches one tax to every selected product in a single upstream call.
	AssignBatch(ctx context.Context, taxID string, req model.BatchAssignRequest) (*model.BatchOutcome, error)
}

// DashboardService defines the dashboard screen.
type DashboardService interface {
	// Load fetches the stats synchronously and schedules the deferred telemetry refresh.
	Load(ctx context.Context) (*model.Dashboard, error)

	// Telemetry returns the latest health and metrics slices.
	Telemetry() model.Telemetry
}
