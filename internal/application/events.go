package application

import (
	"context"

	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

// NoopPublisher drops every event
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.DomainEvent) error { return nil }

// publishAll publishes events after the state change is committed. A
// failed publish is logged and does not undo the change.
func publishAll(ctx context.Context, publisher domain.EventPublisher, logger *logging.Logger, events []domain.DomainEvent) {
	if publisher == nil {
		return
	}
	for _, event := range events {
		if err := publisher.Publish(ctx, event); err != nil {
			logger.WithContext(ctx).WithError(err).Warn("Failed to publish event",
				"eventType", event.EventType(),
				"aggregate", event.AggregateID(),
			)
		}
	}
}

// lowStockEvents returns an alert for each product at or below its threshold
func lowStockEvents(products []*domain.Product) []domain.DomainEvent {
	var events []domain.DomainEvent
	for _, p := range products {
		if p.IsLowStock() {
			events = append(events, &domain.LowStockAlertEvent{
				ProductID:    p.ID,
				SKU:          p.SKU,
				Stock:        p.Stock,
				MinStockRule: p.MinStockRule,
				AlertedAt:    p.UpdatedAt,
			})
		}
	}
	return events
}
