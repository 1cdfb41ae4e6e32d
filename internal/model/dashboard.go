package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardStats are the precomputed sales aggregates.
type DashboardStats struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	OrderCount    int             `json:"orderCount"`
	CustomerCount int             `json:"customerCount"`
	ProductCount  int             `json:"productCount"`
	PendingOrders int             `json:"pendingOrders"`
	RecentOrders  []Order         `json:"recentOrders"`
}

// SystemHealth is the monitoring health probe of the store API.
type SystemHealth struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}

// SystemMetrics is the operational telemetry of the store API.
type SystemMetrics struct {
	CPU               float64 `json:"cpu"`
	Memory            float64 `json:"memory"`
	RequestsPerMinute int     `json:"requestsPerMinute"`
}

// Telemetry holds the deferred dashboard slices; nil means not yet loaded.
type Telemetry struct {
	Health    *SystemHealth  `json:"health"`
	Metrics   *SystemMetrics `json:"metrics"`
	UpdatedAt *time.Time     `json:"updatedAt,omitempty"`
}

// Dashboard is what the dashboard screen renders.
type Dashboard struct {
	Stats      DashboardStats `json:"stats"`
	TotalSales string         `json:"totalSalesFormatted"`
	Telemetry  Telemetry      `json:"telemetry"`
	Notice     *Notice        `json:"notice,omitempty"`
}

// UnknownHealth is rendered until the health probe resolves.
var UnknownHealth = SystemHealth{Status: "unknown", Database: "unknown", Uptime: "unknown"}
