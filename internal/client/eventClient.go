package client

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fashion-cart/internal/config"
	"fashion-cart/internal/model"

	"github.com/segmentio/kafka-go"
)

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event *model.OrderEvent) error
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher writes order events to Kafka keyed by user id, so one
// user's events stay ordered on a partition. No brokers selects a no-op.
func NewEventPublisher(cfg *config.Kafka) EventPublisher {
	if len(cfg.Brokers) == 0 {
		return NopPublisher{}
	}

	return &kafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.OrderTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           10 * time.Millisecond,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, event *model.OrderEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.UserID),
		Value: eventBytes,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("produce %s event: %w", event.Type, err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(context.Context, *model.OrderEvent) error { return nil }
func (NopPublisher) Close() error                                              { return nil }
