package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/normalize"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const statsBody = `{"data":{"totalSales":"1234.5","totalOrders":12,"totalCustomers":4,"pendingOrders":"3",
	"recentOrders":[{"id":1,"status":"enviado","total":"10"}]}}`

func newDashboardService(ctx context.Context, api *MockDashboardAPI, delay time.Duration) DashboardService {
	logger := zerolog.Nop()
	return NewDashboardService(ctx, api, normalize.NewNormalizer(logger), delay, logger)
}

func TestDashboardService_Load_StatsBeforeTelemetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return([]byte(statsBody), nil)
	api.On("SystemHealth", mock.Anything).Return(model.SystemHealth{Status: "ok", Database: "up", Uptime: "3d"}, nil)
	api.On("SystemMetrics", mock.Anything).Return(model.SystemMetrics{CPU: 12.5, RequestsPerMinute: 40}, nil)

	svc := newDashboardService(ctx, api, time.Hour)

	dashboard, err := svc.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "$1,234.50", dashboard.TotalSales)
	assert.Equal(t, 12, dashboard.Stats.OrderCount)
	assert.Equal(t, 4, dashboard.Stats.CustomerCount)
	assert.Equal(t, 3, dashboard.Stats.PendingOrders)
	require.Len(t, dashboard.Stats.RecentOrders, 1)
	assert.Equal(t, "#1", dashboard.Stats.RecentOrders[0].OrderNumber)

	assert.Equal(t, model.UnknownHealth, *dashboard.Telemetry.Health)
	assert.Equal(t, model.SystemMetrics{}, *dashboard.Telemetry.Metrics)
	assert.Nil(t, dashboard.Telemetry.UpdatedAt)
	api.AssertNotCalled(t, "SystemHealth", mock.Anything)
}

func TestDashboardService_TelemetryResolvesAfterDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return([]byte(statsBody), nil)
	api.On("SystemHealth", mock.Anything).Return(model.SystemHealth{Status: "ok", Database: "up", Uptime: "3d"}, nil)
	api.On("SystemMetrics", mock.Anything).Return(model.SystemMetrics{CPU: 12.5}, nil)

	svc := newDashboardService(ctx, api, 10*time.Millisecond)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		tm := svc.Telemetry()
		return tm.UpdatedAt != nil && tm.Health.Status == "ok" && tm.Metrics.CPU == 12.5
	}, 2*time.Second, 10*time.Millisecond)
}

func TestDashboardService_TelemetryPartialFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return([]byte(`{}`), nil)
	api.On("SystemHealth", mock.Anything).Return(model.SystemHealth{}, errors.New("503"))
	api.On("SystemMetrics", mock.Anything).Return(model.SystemMetrics{Memory: 70}, nil)

	svc := newDashboardService(ctx, api, 0)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return svc.Telemetry().Metrics.Memory == 70
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, model.UnknownHealth, *svc.Telemetry().Health)
}

func TestDashboardService_CancelledLifetimeSkipsTelemetry(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return([]byte(statsBody), nil)

	svc := newDashboardService(ctx, api, 50*time.Millisecond)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)
	cancel()

	time.Sleep(150 * time.Millisecond)
	assert.Nil(t, svc.Telemetry().UpdatedAt)
	api.AssertNotCalled(t, "SystemHealth", mock.Anything)
	api.AssertNotCalled(t, "SystemMetrics", mock.Anything)
}

func TestDashboardService_LateTelemetryAfterCancelIsDiscarded(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	resolved := make(chan struct{}, 2)

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return([]byte(statsBody), nil)
	api.On("SystemHealth", mock.Anything).
		Run(func(mock.Arguments) { cancel(); resolved <- struct{}{} }).
		Return(model.SystemHealth{Status: "ok"}, nil)
	api.On("SystemMetrics", mock.Anything).
		Run(func(mock.Arguments) { cancel(); resolved <- struct{}{} }).
		Return(model.SystemMetrics{CPU: 1}, nil)

	svc := newDashboardService(ctx, api, 0)

	_, err := svc.Load(context.Background())
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		select {
		case <-resolved:
		case <-time.After(2 * time.Second):
			t.Fatal("telemetry was never requested")
		}
	}

	assert.Never(t, func() bool {
		return svc.Telemetry().UpdatedAt != nil
	}, 100*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, model.UnknownHealth, *svc.Telemetry().Health)
}

func TestDashboardService_Load_UnexpectedShape(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return([]byte(`[1,2]`), nil)

	svc := newDashboardService(ctx, api, time.Hour)

	dashboard, err := svc.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, dashboard.Notice)
	assert.Equal(t, "$0.00", dashboard.TotalSales)
	assert.Empty(t, dashboard.Stats.RecentOrders)
}

func TestDashboardService_Load_StatsFailureRendersZeros(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return(nil, errors.New("refused"))
	api.On("SystemHealth", mock.Anything).Return(model.SystemHealth{Status: "ok", Database: "up", Uptime: "1h"}, nil)
	api.On("SystemMetrics", mock.Anything).Return(model.SystemMetrics{CPU: 7}, nil)

	svc := newDashboardService(ctx, api, 0)

	dashboard, err := svc.Load(context.Background())

	require.NoError(t, err)
	require.NotNil(t, dashboard)
	require.NotNil(t, dashboard.Notice)
	assert.Equal(t, model.Failure("Estadísticas no disponibles"), *dashboard.Notice)
	assert.Equal(t, "$0.00", dashboard.TotalSales)
	assert.Zero(t, dashboard.Stats.OrderCount)
	assert.NotNil(t, dashboard.Stats.RecentOrders)
	assert.Empty(t, dashboard.Stats.RecentOrders)

	assert.Eventually(t, func() bool {
		tm := svc.Telemetry()
		return tm.UpdatedAt != nil && tm.Health.Status == "ok" && tm.Metrics.CPU == 7
	}, 2*time.Second, 10*time.Millisecond, "telemetry is still refreshed")
}

func TestDashboardService_Load_UnauthenticatedPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	api := new(MockDashboardAPI)
	api.On("DashboardStats", mock.Anything).Return(nil, fmt.Errorf("GET /dashboard/stats: %w", model.ErrNotAuthenticated))

	svc := newDashboardService(ctx, api, 0)

	dashboard, err := svc.Load(context.Background())

	assert.Nil(t, dashboard)
	assert.ErrorIs(t, err, model.ErrNotAuthenticated)
	api.AssertNotCalled(t, "SystemHealth", mock.Anything)
}
