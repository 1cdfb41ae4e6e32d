package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"backoffice/internal/model"
	"backoffice/internal/normalize"

	"github.com/rs/zerolog"
)

const noticeStatsUnavailable = "Estadísticas no disponibles"

// dashboardService implements DashboardService. Stats are fetched on demand; health and metrics are
// refreshed in the background after a delay, bound to the lifetime context given at construction.
type dashboardService struct {
	api        DashboardAPI
	normalizer *normalize.Normalizer
	delay      time.Duration
	lifetime   context.Context
	now        func() time.Time
	logger     zerolog.Logger

	mu         sync.RWMutex
	telemetry  model.Telemetry
	refreshing bool
}

// NewDashboardService creates a new dashboard service. Cancelling lifetime stops any pending telemetry
// refresh and discards results that arrive afterwards.
func NewDashboardService(
	lifetime context.Context,
	api DashboardAPI,
	normalizer *normalize.Normalizer,
	delay time.Duration,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		api:        api,
		normalizer: normalizer,
		delay:      delay,
		lifetime:   lifetime,
		now:        time.Now,
		logger:     logger.With().Str("service", "dashboard").Logger(),
	}
}

func (s *dashboardService) Load(ctx context.Context) (*model.Dashboard, error) {
	dashboard := &model.Dashboard{}
	stats := model.DashboardStats{RecentOrders: []model.Order{}}

	raw, err := s.api.DashboardStats(ctx)
	switch {
	case err == nil:
		stats, err = s.normalizer.DashboardStats(raw)
		if err != nil {
			if !errors.Is(err, normalize.ErrUnexpectedShape) {
				return nil, fmt.Errorf("failed to load dashboard: %w", err)
			}
			notice := model.Notice{Level: model.NoticeInfo, Message: noticeStatsUnavailable}
			dashboard.Notice = &notice
		}
	case errors.Is(err, model.ErrNotAuthenticated) || ctx.Err() != nil:
		return nil, fmt.Errorf("failed to load dashboard: %w", err)
	default:
		// The rest of the dashboard still renders, with zeroed stats.
		s.logger.Error().Err(err).Msg("failed to fetch dashboard stats")
		notice := model.Failure(noticeStatsUnavailable)
		dashboard.Notice = &notice
	}
	dashboard.Stats = stats
	dashboard.TotalSales = model.FormatCurrency(stats.TotalSales)

	s.scheduleTelemetry()
	dashboard.Telemetry = s.Telemetry()
	return dashboard, nil
}

// Telemetry returns the latest slices. Slices that never loaded render as unknown health and zero metrics.
func (s *dashboardService) Telemetry() model.Telemetry {
	s.mu.RLock()
	t := s.telemetry
	s.mu.RUnlock()

	if t.Health == nil {
		health := model.UnknownHealth
		t.Health = &health
	}
	if t.Metrics == nil {
		t.Metrics = &model.SystemMetrics{}
	}
	return t
}

// scheduleTelemetry starts one background refresh unless one is already pending.
func (s *dashboardService) scheduleTelemetry() {
	if s.lifetime.Err() != nil {
		return
	}

	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		return
	}
	s.refreshing = true
	s.mu.Unlock()

	go s.refreshTelemetry()
}

func (s *dashboardService) refreshTelemetry() {
	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-s.lifetime.Done():
		return
	case <-timer.C:
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		health, err := s.api.SystemHealth(s.lifetime)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to fetch system health")
			return
		}
		s.store(func(t *model.Telemetry) { t.Health = &health })
	}()

	go func() {
		defer wg.Done()
		metrics, err := s.api.SystemMetrics(s.lifetime)
		if err != nil {
			s.logger.Warn().Err(err).Msg("failed to fetch system metrics")
			return
		}
		s.store(func(t *model.Telemetry) { t.Metrics = &metrics })
	}()

	wg.Wait()
}

// store applies one slice update; updates resolving after the lifetime ended are dropped.
func (s *dashboardService) store(apply func(t *model.Telemetry)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lifetime.Err() != nil {
		s.logger.Debug().Msg("discarding telemetry resolved after shutdown")
		return
	}
	apply(&s.telemetry)
	now := s.now()
	s.telemetry.UpdatedAt = &now
}
