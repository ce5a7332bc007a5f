package repository

import (
	"context"

	"StockSight/internal/domain/models"
	"StockSight/internal/domain/repository"
)

// MessageWriter is the part of pkg/kafka.Producer the publisher needs.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, key []byte, value interface{}) error
	Close() error
}

// KafkaEventPublisher sends interaction events keyed by session id, so one
// session's events stay ordered within a partition.
type KafkaEventPublisher struct {
	producer MessageWriter
	topic    string
}

// NewKafkaEventPublisher creates a Kafka-backed event publisher.
func NewKafkaEventPublisher(producer MessageWriter, topic string) repository.EventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic}
}

func (p *KafkaEventPublisher) PublishEvent(ctx context.Context, ev models.InteractionEvent) error {
	return p.producer.Publish(ctx, p.topic, []byte(ev.SessionID), ev)
}

func (p *KafkaEventPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

// NoopEventPublisher drops every event. Used when Kafka is disabled.
type NoopEventPublisher struct{}

func (NoopEventPublisher) PublishEvent(context.Context, models.InteractionEvent) error { return nil }
func (NoopEventPublisher) Close() error                                               { return nil }
