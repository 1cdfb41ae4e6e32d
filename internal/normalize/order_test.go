package normalize

import (
	"encoding/json"
	"testing"
	"time"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizerWithClock(zerolog.Nop(), func() time.Time { return fixedNow })
}

func TestNormalizer_Orders_ListScenario(t *testing.T) {
	n := newTestNormalizer()

	results, err := n.Orders([]byte(`{"data":[{"id":1,"status":"enviado","total":"10.5"}]}`))

	require.NoError(t, err)
	require.Len(t, results, 1)

	o := results[0].Order
	assert.Equal(t, "1", o.ID)
	assert.Equal(t, "#1", o.OrderNumber)
	assert.Equal(t, model.StatusShipped, o.Status)
	assert.Equal(t, "Enviado", o.Status.Label())
	assert.Equal(t, "$10.50", model.FormatCurrency(o.Total))
}

func TestNormalizer_Order_FieldVariants(t *testing.T) {
	n := newTestNormalizer()

	raw := `{
		"_id": "ord-77",
		"order_number": "A-0077",
		"estado": "Pagado y procesando",
		"total_amount": 45,
		"shipping_address": {"street": "Av. Juárez 10", "city": "CDMX", "postal_code": "06000"},
		"payment_method": "transferencia",
		"payment_proof_url": "https://cdn.example.com/p.png",
		"created_at": "2024-03-01T12:00:00Z",
		"Customer": {"first_name": "Ana", "last_name": "López", "email": "ana@example.com", "avatar": "/a.png"},
		"OrderItems": [
			{"product": {"id": "p1", "name": "Café", "price": "15"}, "cantidad": 3, "total": 999}
		]
	}`
	rec, err := UnwrapObject([]byte(raw))
	require.NoError(t, err)

	res := n.Order(rec)
	o := res.Order

	assert.False(t, res.NeedsDebug())
	assert.Equal(t, "ord-77", o.ID)
	assert.Equal(t, "A-0077", o.OrderNumber)
	assert.Equal(t, model.StatusPaidProcessing, o.Status)
	assert.Equal(t, "45", o.Total.String())
	assert.Equal(t, "Av. Juárez 10, CDMX, 06000", o.ShippingAddress)
	assert.Equal(t, "transferencia", o.PaymentMethod)
	assert.Equal(t, "https://cdn.example.com/p.png", o.PaymentProofURL)
	assert.Equal(t, model.PlaceholderPaymentNotes, o.PaymentNotes)
	assert.Equal(t, "Ana López", o.User.Name)
	assert.Equal(t, "ana@example.com", o.User.Email)
	assert.Equal(t, "/a.png", o.User.ProfilePic)
	assert.True(t, o.CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, o.UpdatedAt.Equal(fixedNow))

	require.Len(t, o.Items, 1)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, "Café", o.Items[0].Name)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.Equal(t, "45", o.Items[0].Total.String())
}

func TestNormalizer_Order_Placeholders(t *testing.T) {
	n := newTestNormalizer()

	res := n.Order(map[string]any{"id": json.Number("3"), "user": "not-an-object"})
	o := res.Order

	assert.Equal(t, model.PlaceholderCustomerName, o.User.Name)
	assert.Equal(t, model.PlaceholderCustomerEmail, o.User.Email)
	assert.Equal(t, model.PlaceholderImage, o.User.ProfilePic)
	assert.Equal(t, model.PlaceholderAddress, o.ShippingAddress)
	assert.Equal(t, model.PlaceholderPaymentMethod, o.PaymentMethod)
	assert.Equal(t, model.PlaceholderImage, o.PaymentProofURL)
	assert.Equal(t, model.PlaceholderPaymentDate, o.PaymentDate)
	assert.Equal(t, model.StatusPendingPayment, o.Status)
	assert.True(t, o.Total.IsZero())
	assert.True(t, o.CreatedAt.Equal(fixedNow))
	assert.Empty(t, o.Items)

	assert.True(t, res.NeedsDebug())
	assert.Equal(t, []string{SectionItems, SectionUser}, res.Missing)
}

func TestNormalizer_Order_UnknownStatusDefaultsToPending(t *testing.T) {
	n := newTestNormalizer()

	res := n.Order(map[string]any{"id": "1", "status": "en el limbo"})

	assert.Equal(t, model.StatusPendingPayment, res.Order.Status)
}

func TestNormalizer_Order_LineTotalsAreRecomputed(t *testing.T) {
	n := newTestNormalizer()

	raw := `{"id": 5, "items": [
		{"id": 1, "price": "10.25", "quantity": 2, "total": "1"},
		{"id": 2, "unit_price": 3, "qty": "4", "total": 0},
		{"id": 3, "precio": 7.5, "total": 100},
		{"id": 4, "price": "2", "quantity": -3}
	]}`
	rec, err := UnwrapObject([]byte(raw))
	require.NoError(t, err)

	o := n.Order(rec).Order
	require.Len(t, o.Items, 4)

	for _, it := range o.Items {
		assert.True(t, it.Total.Equal(it.LineTotal()), "item %s total must equal price × quantity", it.ID)
	}
	assert.Equal(t, "20.5", o.Items[0].Total.String())
	assert.Equal(t, "12", o.Items[1].Total.String())
	assert.Equal(t, 1, o.Items[2].Quantity)
	assert.Equal(t, "7.5", o.Items[2].Total.String())
	assert.Equal(t, 0, o.Items[3].Quantity)

	// No upstream total: the order total is the sum of the recomputed lines.
	assert.Equal(t, "40", o.Total.String())
}

func TestNormalizer_Order_Idempotent(t *testing.T) {
	n := newTestNormalizer()

	inputs := []string{
		`{"id":1,"status":"enviado","total":"10.5"}`,
		`{"_id":"x","estado":"cancelado","user":{"nombre":"Luis"},"items":[{"name":"Pan","price":"1.10","quantity":3,"total":"8"}],"created_at":"2024-01-02 03:04:05"}`,
		`{"id":"z","shippingAddress":{"street":"Calle 1","country":"MX"},"updated_at":1714000000000}`,
	}

	for _, input := range inputs {
		first, err := n.OrderDetail([]byte(input))
		require.NoError(t, err)

		encoded, err := json.Marshal(first.Order)
		require.NoError(t, err)

		second, err := n.OrderDetail(encoded)
		require.NoError(t, err)

		again, err := json.Marshal(second.Order)
		require.NoError(t, err)

		assert.JSONEq(t, string(encoded), string(again))
		assert.Equal(t, first.Missing, second.Missing)
	}
}

func TestNormalizer_Orders_UnexpectedShape(t *testing.T) {
	n := newTestNormalizer()

	results, err := n.Orders([]byte(`{"message":"maintenance"}`))

	assert.ErrorIs(t, err, ErrUnexpectedShape)
	assert.Empty(t, results)
}
