// Package events publishes order status changes to a message broker.
package events

import (
	"context"
	"fmt"
	"time"

	"backoffice/internal/config"
	"backoffice/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// TypeStatusChanged is the event type of a successful status transition.
const TypeStatusChanged = "order.status_changed"

// StatusChanged is emitted after the store API accepted a status transition.
type StatusChanged struct {
	EventID    uuid.UUID    `json:"eventId"`
	Type       string       `json:"type"`
	OrderID    string       `json:"orderId"`
	From       model.Status `json:"from,omitempty"`
	To         model.Status `json:"to"`
	Actor      string       `json:"actor,omitempty"`
	OccurredAt time.Time    `json:"occurredAt"`
}

// NewStatusChanged builds an event with a fresh ID.
func NewStatusChanged(orderID string, from, to model.Status, actor string, at time.Time) StatusChanged {
	return StatusChanged{
		EventID:    uuid.New(),
		Type:       TypeStatusChanged,
		OrderID:    orderID,
		From:       from,
		To:         to,
		Actor:      actor,
		OccurredAt: at.UTC(),
	}
}

// Publisher delivers status-change events.
type Publisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChanged) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a publisher that drops every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishStatusChanged(context.Context, StatusChanged) error { return nil }

func (nopPublisher) Close() error { return nil }

// New builds the publisher selected by cfg.Driver.
func New(cfg config.EventsConfig, logger zerolog.Logger) (Publisher, error) {
	switch cfg.Driver {
	case config.EventsKafka:
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logger), nil
	case config.EventsRabbitMQ:
		return NewRabbitPublisher(cfg.RabbitURL, cfg.RabbitExchange, logger)
	case config.EventsNone, "":
		return NewNopPublisher(), nil
	}
	return nil, fmt.Errorf("unknown events driver: %s", cfg.Driver)
}
