package cloudevents

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

// EventFactory creates CloudEvents for a fixed source
type EventFactory struct {
	source string
	now    func() time.Time
}

// NewEventFactory creates a new EventFactory for a specific source
func NewEventFactory(source string) *EventFactory {
	return &EventFactory{source: source, now: time.Now}
}

// CreateEvent wraps data in an envelope. The correlation ID is lifted from
// the request context when one is present.
func (f *EventFactory) CreateEvent(ctx context.Context, eventType, subject string, data any) *CloudEvent {
	event := &CloudEvent{
		SpecVersion:     "1.0",
		Type:            eventType,
		Source:          f.source,
		Subject:         subject,
		ID:              uuid.New().String(),
		Time:            f.now().UTC(),
		DataContentType: "application/json",
		Data:            data,
	}

	if id, ok := ctx.Value(logging.CorrelationIDKey).(string); ok {
		event.CorrelationID = id
	}
	return event
}

// WithWarehouse tags the event with the warehouse it concerns
func (e *CloudEvent) WithWarehouse(warehouse string) *CloudEvent {
	e.Warehouse = warehouse
	return e
}
