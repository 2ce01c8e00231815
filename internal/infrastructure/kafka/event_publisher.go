package kafka

import (
	"context"
	"fmt"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/cloudevents"
	"github.com/Daksh-create349/stock-Master/pkg/kafka"
)

var _ domain.EventPublisher = (*EventPublisher)(nil)

// EventProducer publishes one CloudEvent to a topic
type EventProducer interface {
	PublishEvent(ctx context.Context, topic string, event *cloudevents.CloudEvent) error
}

// EventPublisher implements domain.EventPublisher using Kafka
type EventPublisher struct {
	producer     EventProducer
	eventFactory *cloudevents.EventFactory
	session      application.SessionSource
}

// NewEventPublisher creates a new Kafka-based event publisher. session tags
// operation events with the active warehouse and may be nil.
func NewEventPublisher(producer EventProducer, eventFactory *cloudevents.EventFactory, session application.SessionSource) *EventPublisher {
	return &EventPublisher{
		producer:     producer,
		eventFactory: eventFactory,
		session:      session,
	}
}

// Publish publishes a single domain event to Kafka
func (p *EventPublisher) Publish(ctx context.Context, event domain.DomainEvent) error {
	topic, warehouse := p.route(event)

	ce := p.eventFactory.CreateEvent(ctx, event.EventType(), event.AggregateID(), event)
	if warehouse != "" {
		ce.WithWarehouse(warehouse)
	}

	if err := p.producer.PublishEvent(ctx, topic, ce); err != nil {
		return fmt.Errorf("failed to publish event to kafka: %w", err)
	}
	return nil
}

// route picks the topic for event and the warehouse it concerns
func (p *EventPublisher) route(event domain.DomainEvent) (string, string) {
	switch e := event.(type) {
	case *domain.StockAdjustedEvent:
		return kafka.Topics.StockEvents, e.Location
	case *domain.ProductCreatedEvent:
		return kafka.Topics.ProductEvents, e.Location
	case *domain.LowStockAlertEvent:
		return kafka.Topics.ProductEvents, ""
	default:
		warehouse := ""
		if p.session != nil {
			warehouse = p.session.ActiveWarehouse()
		}
		return kafka.Topics.OperationEvents, warehouse
	}
}
