package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/events"
	"backoffice/internal/model"
	"backoffice/internal/normalize"
	"backoffice/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const historyLimit = 50

// orderService implements OrderService.
type orderService struct {
	api        OrderAPI
	normalizer *normalize.Normalizer
	board      *OrderBoard
	policy     TransitionPolicy
	journal    repository.StatusChangeRepository
	publisher  events.Publisher
	now        func() time.Time
	logger     zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	api OrderAPI,
	normalizer *normalize.Normalizer,
	board *OrderBoard,
	policy TransitionPolicy,
	journal repository.StatusChangeRepository,
	publisher events.Publisher,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		api:        api,
		normalizer: normalizer,
		board:      board,
		policy:     policy,
		journal:    journal,
		publisher:  publisher,
		now:        time.Now,
		logger:     logger.With().Str("service", "order").Logger(),
	}
}

func (s *orderService) List(ctx context.Context) ([]model.OrderRow, error) {
	raw, err := s.api.ListOrders(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	results, err := s.normalizer.Orders(raw)
	if err != nil && !errors.Is(err, normalize.ErrUnexpectedShape) {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	// A response that lands after the caller went away must not touch the board.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(results))
	for _, r := range results {
		orders = append(orders, r.Order)
	}
	s.board.ReplaceAll(orders)

	rows := make([]model.OrderRow, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, s.row(o))
	}

	s.logger.Debug().Int("count", len(rows)).Msg("orders listed")
	return rows, nil
}

func (s *orderService) Detail(ctx context.Context, id string) (*model.OrderDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}

	raw, err := s.api.GetOrder(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to fetch order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	res, err := s.normalizer.OrderDetail(raw)
	if err != nil {
		if !errors.Is(err, normalize.ErrUnexpectedShape) {
			return nil, fmt.Errorf("failed to get order: %w", err)
		}
		res = s.normalizer.Order(map[string]any{"id": id})
	}
	if res.Order.ID == "" {
		res.Order.ID = id
		res.Order.OrderNumber = model.PlaceholderOrderNumberMark + id
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.board.Put(res.Order)

	detail := s.detail(res.Order)
	if res.NeedsDebug() {
		payload, decodeErr := normalize.Decode(raw)
		if decodeErr != nil {
			payload = string(raw)
		}
		detail.Debug = &model.DebugPanel{Missing: res.Missing, Raw: payload}
	}
	return detail, nil
}

func (s *orderService) Transitions(ctx context.Context, id string) ([]model.Action, error) {
	current, err := s.currentStatus(ctx, id)
	if err != nil {
		return nil, err
	}
	return actions(s.policy, current), nil
}

func (s *orderService) ApplyTransition(ctx context.Context, id, status, actor string) (*model.TransitionResult, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}

	to, err := model.ParseStatus(status)
	if err != nil {
		s.logger.Warn().Str("order_id", id).Str("status", status).Msg("rejected unknown status")
		return nil, err
	}

	var from model.Status
	if o, ok := s.board.Get(id); ok {
		from = o.Status
	} else if s.policy.Name() == config.TransitionStrict {
		// Strict edges need the current status.
		if from, err = s.currentStatus(ctx, id); err != nil {
			return nil, err
		}
	}

	if err := s.policy.Allowed(from, to); err != nil {
		s.logger.Warn().
			Str("order_id", id).
			Str("from", string(from)).
			Str("to", string(to)).
			Msg("transition rejected by policy")
		return nil, err
	}

	callErr := s.api.UpdateOrderStatus(ctx, id, to)
	now := s.now()

	if callErr != nil && from == "" {
		// The badge must keep showing the last known status.
		if cur, err := s.currentStatus(context.WithoutCancel(ctx), id); err == nil {
			from = cur
		} else {
			s.logger.Warn().Err(err).Str("order_id", id).Msg("failed to resolve status after failed update")
		}
	}
	s.record(ctx, id, from, to, actor, now, callErr)

	if callErr != nil {
		s.logger.Error().
			Err(callErr).
			Str("order_id", id).
			Str("to", string(to)).
			Msg("status update failed")

		if from == "" {
			return nil, fmt.Errorf("failed to update order status: %w", callErr)
		}

		result := &model.TransitionResult{
			OrderID:     id,
			Status:      from,
			StatusLabel: from.Label(),
			Actions:     actions(s.policy, from),
			Notice:      model.Failure(model.NoticeStatusUpdateFailed),
		}
		if o, ok := s.board.Get(id); ok {
			result.UpdatedAt = o.UpdatedAt
		}
		return result, fmt.Errorf("failed to update order status: %w", callErr)
	}

	s.board.PatchStatus(id, to, now)
	s.publish(ctx, events.NewStatusChanged(id, from, to, actor, now))

	s.logger.Info().
		Str("order_id", id).
		Str("from", string(from)).
		Str("to", string(to)).
		Str("actor", actor).
		Msg("order status updated")

	return &model.TransitionResult{
		OrderID:     id,
		Status:      to,
		StatusLabel: to.Label(),
		UpdatedAt:   now,
		Actions:     actions(s.policy, to),
		Notice:      model.Success(fmt.Sprintf(model.NoticeStatusUpdated, to.Label())),
	}, nil
}

func (s *orderService) History(ctx context.Context, id string) ([]model.StatusChange, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}

	changes, err := s.journal.ListByOrder(ctx, id, historyLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to read order history")
		return nil, fmt.Errorf("failed to get order history: %w", err)
	}
	if changes == nil {
		changes = []model.StatusChange{}
	}
	return changes, nil
}

func (s *orderService) Create(ctx context.Context, order map[string]any) (*model.OrderDetail, error) {
	if len(order) == 0 {
		return nil, model.NewValidationError("order", "Order body is required")
	}

	raw, err := s.api.CreateOrder(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	return s.storeWritten(raw)
}

func (s *orderService) Update(ctx context.Context, id string, order map[string]any) (*model.OrderDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}

	raw, err := s.api.UpdateOrder(ctx, id, order)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to update order")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	detail, err := s.storeWritten(raw)
	if err != nil || detail.Order.ID != id {
		// The API answered without the order; show what it now holds.
		return s.Detail(ctx, id)
	}
	return detail, nil
}

func (s *orderService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return model.ErrMissingID
	}

	if err := s.api.DeleteOrder(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.board.Remove(id)
	s.logger.Info().Str("order_id", id).Msg("order deleted")
	return nil
}

func (s *orderService) ProcessPayment(ctx context.Context, id string, payment model.PaymentRequest) (*model.OrderDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, model.ErrMissingID
	}

	v := &model.ValidationError{}
	if strings.TrimSpace(payment.Method) == "" {
		v.Add("payment_method", "Payment method is required")
	}
	if payment.Amount.LessThanOrEqual(decimal.Zero) {
		v.Add("amount", "Amount must be greater than zero")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	if _, err := s.api.ProcessPayment(ctx, id, payment); err != nil {
		s.logger.Error().Err(err).Str("order_id", id).Msg("failed to process payment")
		return nil, fmt.Errorf("failed to process payment: %w", err)
	}

	s.logger.Info().Str("order_id", id).Str("amount", payment.Amount.String()).Msg("payment processed")
	return s.Detail(ctx, id)
}

func (s *orderService) storeWritten(raw []byte) (*model.OrderDetail, error) {
	res, err := s.normalizer.OrderDetail(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to read written order: %w", err)
	}
	if res.Order.ID == "" {
		return nil, fmt.Errorf("failed to read written order: %w", normalize.ErrUnexpectedShape)
	}
	s.board.Put(res.Order)
	return s.detail(res.Order), nil
}

func (s *orderService) currentStatus(ctx context.Context, id string) (model.Status, error) {
	if o, ok := s.board.Get(id); ok {
		return o.Status, nil
	}
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return "", err
	}
	return detail.Order.Status, nil
}

// record journals the attempt. Journal failures never fail the transition.
func (s *orderService) record(ctx context.Context, id string, from, to model.Status, actor string, at time.Time, callErr error) {
	change := &model.StatusChange{
		OrderID:   id,
		From:      from,
		To:        to,
		Actor:     actor,
		Succeeded: callErr == nil,
		CreatedAt: at,
	}
	if callErr != nil {
		msg := callErr.Error()
		change.Error = &msg
	}

	if err := s.journal.Record(context.WithoutCancel(ctx), change); err != nil {
		s.logger.Warn().Err(err).Str("order_id", id).Msg("failed to journal status change")
	}
}

func (s *orderService) publish(ctx context.Context, event events.StatusChanged) {
	if err := s.publisher.PublishStatusChanged(context.WithoutCancel(ctx), event); err != nil {
		s.logger.Warn().Err(err).Str("order_id", event.OrderID).Msg("failed to publish status change")
	}
}

func (s *orderService) row(o model.Order) model.OrderRow {
	return model.OrderRow{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		CustomerName:   o.User.Name,
		Status:         o.Status,
		StatusLabel:    o.Status.Label(),
		Total:          model.FormatCurrency(o.Total),
		ItemCount:      len(o.Items),
		CreatedAt:      o.CreatedAt,
		AvailableMoves: actions(s.policy, o.Status),
	}
}

func (s *orderService) detail(o model.Order) *model.OrderDetail {
	return &model.OrderDetail{
		Order:       o,
		StatusLabel: o.Status.Label(),
		Total:       model.FormatCurrency(o.Total),
		Actions:     actions(s.policy, o.Status),
	}
}
