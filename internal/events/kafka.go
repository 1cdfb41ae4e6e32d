package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	w      messageWriter
	logger zerolog.Logger
}

// NewKafkaPublisher publishes JSON events keyed by order ID.
func NewKafkaPublisher(brokers []string, topic string, logger zerolog.Logger) Publisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
	}, logger)
}

func newKafkaPublisher(w messageWriter, logger zerolog.Logger) *kafkaPublisher {
	return &kafkaPublisher{
		w:      w,
		logger: logger.With().Str("component", "kafka-publisher").Logger(),
	}
}

func (p *kafkaPublisher) PublishStatusChanged(ctx context.Context, event StatusChanged) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write kafka message: %w", err)
	}

	p.logger.Debug().Str("order_id", event.OrderID).Str("to", string(event.To)).Msg("event published")
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.w.Close()
}
