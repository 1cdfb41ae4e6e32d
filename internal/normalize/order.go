package normalize

import (
	"strconv"
	"time"

	"backoffice/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Critical sections reported in Result.Missing.
const (
	SectionItems = "items"
	SectionUser  = "user"
)

// Result is a normalized order plus diagnostics about what the upstream record lacked.
type Result struct {
	Order   model.Order
	Missing []string
	Raw     map[string]any
}

// NeedsDebug reports whether critical sections are still empty after normalization.
func (r Result) NeedsDebug() bool {
	return len(r.Missing) > 0
}

// Normalizer maps upstream order records onto model.Order.
type Normalizer struct {
	now    func() time.Time
	logger zerolog.Logger
}

// NewNormalizer creates a normalizer using the wall clock for missing timestamps.
func NewNormalizer(logger zerolog.Logger) *Normalizer {
	return NewNormalizerWithClock(logger, time.Now)
}

// NewNormalizerWithClock creates a normalizer with an injected clock.
func NewNormalizerWithClock(logger zerolog.Logger, now func() time.Time) *Normalizer {
	return &Normalizer{
		now:    now,
		logger: logger.With().Str("component", "normalizer").Logger(),
	}
}

// Orders unwraps a list response and normalizes every record.
func (n *Normalizer) Orders(raw []byte) ([]Result, error) {
	records, err := UnwrapList(raw)
	if err != nil {
		n.logger.Warn().Err(err).Msg("order list response has an unexpected shape")
		return []Result{}, err
	}

	results := make([]Result, 0, len(records))
	for _, rec := range records {
		results = append(results, n.Order(rec))
	}
	return results, nil
}

// OrderDetail unwraps a single-order response and normalizes it.
func (n *Normalizer) OrderDetail(raw []byte) (Result, error) {
	rec, err := UnwrapObject(raw)
	if err != nil {
		n.logger.Warn().Err(err).Msg("order detail response has an unexpected shape")
		return Result{}, err
	}
	return n.Order(rec), nil
}

// Order normalizes one upstream record. Re-normalizing the JSON form of its output yields the same order.
func (n *Normalizer) Order(rec map[string]any) Result {
	now := n.now()

	o := model.Order{
		ID:              str(pick(rec, "id", "_id", "ID", "Id", "orderId", "order_id")),
		OrderNumber:     str(pick(rec, "orderNumber", "order_number", "OrderNumber", "number", "numero")),
		ShippingAddress: address(pick(rec, "shippingAddress", "shipping_address", "ShippingAddress", "address", "direccion")),
		PaymentMethod:   str(pick(rec, "paymentMethod", "payment_method", "PaymentMethod", "metodo_pago")),
		PaymentProofURL: str(pick(rec, "paymentProofUrl", "payment_proof_url", "paymentProof", "payment_proof", "comprobante")),
		PaymentDate:     str(pick(rec, "paymentDate", "payment_date", "paidAt", "paid_at", "fecha_pago")),
		PaymentNotes:    str(pick(rec, "paymentNotes", "payment_notes", "notes", "notas")),
	}

	if o.OrderNumber == "" && o.ID != "" {
		o.OrderNumber = model.PlaceholderOrderNumberMark + o.ID
	}

	o.Status = n.status(o.ID, pick(rec, "status", "Status", "estado", "state"))
	o.User = customer(rec)
	o.Items = items(pick(rec, "items", "Items", "OrderItems", "orderItems", "order_items", "products", "detalles"))

	if total, ok := dec(pick(rec, "total", "Total", "totalAmount", "total_amount", "amount", "monto")); ok && !total.IsNegative() {
		o.Total = total
	} else {
		o.Total = sumItems(o.Items)
	}

	o.CreatedAt = timeOr(pick(rec, "createdAt", "created_at", "CreatedAt", "fecha", "date"), now)
	o.UpdatedAt = timeOr(pick(rec, "updatedAt", "updated_at", "UpdatedAt"), now)

	fillPlaceholders(&o)

	result := Result{Order: o, Raw: rec}
	if len(o.Items) == 0 {
		result.Missing = append(result.Missing, SectionItems)
	}
	if o.User.IsPlaceholder() {
		result.Missing = append(result.Missing, SectionUser)
	}
	if result.NeedsDebug() {
		n.logger.Debug().
			Str("order_id", o.ID).
			Strs("missing", result.Missing).
			Msg("order still incomplete after normalization")
	}

	return result
}

func (n *Normalizer) status(orderID string, v any) model.Status {
	raw := str(v)
	status, err := model.ParseStatus(raw)
	if err != nil {
		n.logger.Warn().
			Str("order_id", orderID).
			Str("status", raw).
			Msg("unknown order status, defaulting to pending payment")
		return model.StatusPendingPayment
	}
	return status
}

func customer(rec map[string]any) model.Customer {
	var c model.Customer

	if u := object(rec, "user", "User", "customer", "Customer", "cliente"); u != nil {
		c.Name = str(pick(u, "name", "nombre", "fullName", "full_name", "username"))
		if c.Name == "" {
			c.Name = joinNonEmpty(" ",
				str(pick(u, "firstName", "first_name", "nombres")),
				str(pick(u, "lastName", "last_name", "apellidos")),
			)
		}
		c.Email = str(pick(u, "email", "Email", "correo"))
		c.ProfilePic = str(pick(u, "profilePic", "profile_pic", "avatar", "image", "photo"))
	}

	if c.Name == "" {
		c.Name = str(pick(rec, "customerName", "customer_name"))
	}
	if c.Email == "" {
		c.Email = str(pick(rec, "customerEmail", "customer_email"))
	}

	if c.Name == "" {
		c.Name = model.PlaceholderCustomerName
	}
	if c.Email == "" {
		c.Email = model.PlaceholderCustomerEmail
	}
	if c.ProfilePic == "" {
		c.ProfilePic = model.PlaceholderImage
	}
	return c
}

func items(v any) []model.OrderItem {
	list, ok := v.([]any)
	if !ok {
		return []model.OrderItem{}
	}

	out := make([]model.OrderItem, 0, len(list))
	for i, el := range list {
		rec, ok := el.(map[string]any)
		if !ok {
			continue
		}
		product := object(rec, "product", "Product", "producto")

		item := model.OrderItem{
			ID:        str(pick(rec, "id", "_id", "ID")),
			ProductID: str(pick(rec, "productId", "product_id", "ProductId", "ProductID")),
			Name:      str(pick(rec, "name", "productName", "product_name", "nombre")),
		}
		if item.ID == "" {
			item.ID = strconv.Itoa(i + 1)
		}

		price, ok := dec(pick(rec, "price", "unitPrice", "unit_price", "precio"))
		if product != nil {
			if item.ProductID == "" {
				item.ProductID = str(pick(product, "id", "_id", "ID"))
			}
			if item.Name == "" {
				item.Name = str(pick(product, "name", "nombre"))
			}
			if !ok {
				price, ok = dec(pick(product, "price", "precio"))
			}
		}
		if !ok {
			price = decimal.Zero
		}
		item.Price = price

		qty, ok := integer(pick(rec, "quantity", "Quantity", "qty", "cantidad"))
		if !ok {
			qty = 1
		}
		if qty < 0 {
			qty = 0
		}
		item.Quantity = qty

		if item.Name == "" {
			item.Name = model.PlaceholderProductName
		}
		item.Total = item.LineTotal()

		out = append(out, item)
	}
	return out
}

func sumItems(items []model.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Total)
	}
	return total
}

func address(v any) string {
	if m, ok := v.(map[string]any); ok {
		return joinNonEmpty(", ",
			str(pick(m, "street", "address", "addressLine1", "address_line1", "line1", "calle")),
			str(pick(m, "city", "ciudad")),
			str(pick(m, "state", "province", "estado")),
			str(pick(m, "zip", "postalCode", "postal_code", "cp")),
			str(pick(m, "country", "pais")),
		)
	}
	return str(v)
}

func timeOr(v any, fallback time.Time) time.Time {
	if ts, ok := timestamp(v); ok {
		return ts
	}
	return fallback
}

func fillPlaceholders(o *model.Order) {
	if o.ShippingAddress == "" {
		o.ShippingAddress = model.PlaceholderAddress
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = model.PlaceholderPaymentMethod
	}
	if o.PaymentProofURL == "" {
		o.PaymentProofURL = model.PlaceholderImage
	}
	if o.PaymentDate == "" {
		o.PaymentDate = model.PlaceholderPaymentDate
	}
	if o.PaymentNotes == "" {
		o.PaymentNotes = model.PlaceholderPaymentNotes
	}
}
