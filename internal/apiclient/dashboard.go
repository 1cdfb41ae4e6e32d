package apiclient

import (
	"context"
	"net/http"

	"backoffice/internal/model"
)

// DashboardStats returns the raw stats body; recent orders inside it need normalizing.
func (c *Client) DashboardStats(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/dashboard/stats", nil)
}

func (c *Client) SystemHealth(ctx context.Context) (model.SystemHealth, error) {
	var health model.SystemHealth
	if err := c.getJSON(ctx, "/system/health", &health); err != nil {
		return model.SystemHealth{}, err
	}
	return health, nil
}

func (c *Client) SystemMetrics(ctx context.Context) (model.SystemMetrics, error) {
	var metrics model.SystemMetrics
	if err := c.getJSON(ctx, "/system/metrics", &metrics); err != nil {
		return model.SystemMetrics{}, err
	}
	return metrics, nil
}
