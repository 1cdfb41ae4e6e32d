package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// amqpChannel is the part of *amqp091.Channel the publisher uses.
type amqpChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type rabbitPublisher struct {
	conn     *amqp091.Connection
	ch       amqpChannel
	exchange string
	logger   zerolog.Logger
}

// NewRabbitPublisher dials url and declares a durable fanout exchange for the events.
func NewRabbitPublisher(url, exchange string, logger zerolog.Logger) (Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open rabbitmq channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	p := newRabbitPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

func newRabbitPublisher(ch amqpChannel, exchange string, logger zerolog.Logger) *rabbitPublisher {
	return &rabbitPublisher{
		ch:       ch,
		exchange: exchange,
		logger:   logger.With().Str("component", "rabbitmq-publisher").Logger(),
	}
}

func (p *rabbitPublisher) PublishStatusChanged(ctx context.Context, event StatusChanged) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Fanout ignores the routing key.
	err = p.ch.PublishWithContext(ctx, p.exchange, "", false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.EventID.String(),
		Type:         event.Type,
		Timestamp:    event.OccurredAt,
		Body:         b,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to exchange %s: %w", p.exchange, err)
	}

	p.logger.Debug().Str("order_id", event.OrderID).Str("to", string(event.To)).Msg("event published")
	return nil
}

func (p *rabbitPublisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
