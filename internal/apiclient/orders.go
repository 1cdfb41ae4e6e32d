package apiclient

import (
	"context"
	"net/http"

	"backoffice/internal/model"
)

// Order endpoints return raw bodies; callers run them through normalize.

func (c *Client) ListOrders(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/orders", nil)
}

func (c *Client) GetOrder(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/orders/"+escape(id), nil)
}

func (c *Client) CreateOrder(ctx context.Context, order map[string]any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/orders", order)
}

func (c *Client) UpdateOrder(ctx context.Context, id string, order map[string]any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, "/orders/"+escape(id), order)
}

func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/orders/"+escape(id), nil)
	return err
}

// UpdateOrderStatus issues exactly one PATCH /orders/:id/status.
func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status model.Status) error {
	_, err := c.do(ctx, http.MethodPatch, "/orders/"+escape(id)+"/status", model.UpdateStatusRequest{Status: string(status)})
	return err
}

func (c *Client) ProcessPayment(ctx context.Context, id string, payment model.PaymentRequest) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/orders/"+escape(id)+"/payment", payment)
}
