package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Placeholders substituted for fields the store API omits.
const (
	PlaceholderCustomerName    = "Cliente sin nombre"
	PlaceholderCustomerEmail   = "Sin email"
	PlaceholderImage           = "/placeholder.svg"
	PlaceholderAddress         = "Sin dirección"
	PlaceholderPaymentMethod   = "No especificado"
	PlaceholderPaymentDate     = "Sin fecha"
	PlaceholderPaymentNotes    = "Sin notas"
	PlaceholderProductName     = "Producto sin nombre"
	PlaceholderOrderNumberMark = "#"
)

// Order is the normalized projection of an order held by the console.
type Order struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Status          Status          `json:"status"`
	Total           decimal.Decimal `json:"total"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	PaymentProofURL string          `json:"paymentProofUrl"`
	PaymentDate     string          `json:"paymentDate"`
	PaymentNotes    string          `json:"paymentNotes"`
	User            Customer        `json:"user"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Customer is the denormalized customer snapshot carried by an order.
type Customer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProfilePic string `json:"profilePic"`
}

// IsPlaceholder reports whether no customer data survived normalization.
func (c Customer) IsPlaceholder() bool {
	return c.Name == PlaceholderCustomerName && c.Email == PlaceholderCustomerEmail
}

// OrderItem represents a line item in an order.
type OrderItem struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// LineTotal is price × quantity; upstream totals are never trusted.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderRow is one line of the orders table.
type OrderRow struct {
	ID             string    `json:"id"`
	OrderNumber    string    `json:"orderNumber"`
	CustomerName   string    `json:"customerName"`
	Status         Status    `json:"status"`
	StatusLabel    string    `json:"statusLabel"`
	Total          string    `json:"total"`
	ItemCount      int       `json:"itemCount"`
	CreatedAt      time.Time `json:"createdAt"`
	AvailableMoves []Action  `json:"actions"`
}

// Action is a clickable status transition.
type Action struct {
	Status Status `json:"status"`
	Label  string `json:"label"`
}

// OrderDetail is the single-order view with its transition surface.
type OrderDetail struct {
	Order       Order       `json:"order"`
	StatusLabel string      `json:"statusLabel"`
	Total       string      `json:"totalFormatted"`
	Actions     []Action    `json:"actions"`
	Debug       *DebugPanel `json:"debug,omitempty"`
}

// DebugPanel dumps the raw upstream payload when critical sections are still empty after normalization.
type DebugPanel struct {
	Missing []string `json:"missing"`
	Raw     any      `json:"raw"`
}

// TransitionResult reports the outcome of one status transition attempt.
type TransitionResult struct {
	OrderID     string    `json:"orderId"`
	Status      Status    `json:"status"`
	StatusLabel string    `json:"statusLabel"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Actions     []Action  `json:"actions"`
	Notice      Notice    `json:"notice"`
}

// Notice texts of the transition surface.
const (
	NoticeStatusUpdated      = "Estado actualizado a %s"
	NoticeStatusUpdateFailed = "No se pudo actualizar el estado"
)

// UpdateStatusRequest is the body of a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// StatusChange is a journal entry for one transition attempt.
type StatusChange struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   string    `json:"orderId" db:"order_id"`
	From      Status    `json:"from" db:"from_status"`
	To        Status    `json:"to" db:"to_status"`
	Actor     string    `json:"actor" db:"actor"`
	Succeeded bool      `json:"succeeded" db:"succeeded"`
	Error     *string   `json:"error,omitempty" db:"error"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// PaymentRequest is forwarded to the payment endpoint of an order.
type PaymentRequest struct {
	Method string          `json:"payment_method"`
	Amount decimal.Decimal `json:"amount"`
	Notes  string          `json:"payment_notes,omitempty"`
	Proof  string          `json:"payment_proof_url,omitempty"`
}
