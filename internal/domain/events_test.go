package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDomainEvents_Metadata(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name      string
		eventType string
		aggregate string
		event     DomainEvent
	}{
		{"operation_created", "stockmaster.operation.created", "operation/op1", &OperationCreatedEvent{OperationID: "op1", CreatedAt: now}},
		{"operation_validated", "stockmaster.operation.validated", "operation/op1", &OperationValidatedEvent{OperationID: "op1", Outcome: OutcomeCompleted, ValidatedAt: now}},
		{"operation_shipped", "stockmaster.operation.shipped", "operation/op1", &OperationValidatedEvent{OperationID: "op1", Outcome: OutcomeShipped, ValidatedAt: now}},
		{"operation_rejected", "stockmaster.operation.rejected", "operation/op1", &OperationRejectedEvent{OperationID: "op1", RejectedAt: now}},
		{"operation_cancelled", "stockmaster.operation.cancelled", "operation/op1", &OperationCancelledEvent{OperationID: "op1", CancelledAt: now}},
		{"stock_adjusted", "stockmaster.stock.adjusted", "product/p1", &StockAdjustedEvent{ProductID: "p1", AdjustedAt: now}},
		{"product_created", "stockmaster.product.created", "product/p1", &ProductCreatedEvent{ProductID: "p1", CreatedAt: now}},
		{"low_stock_alert", "stockmaster.product.low-stock", "product/p1", &LowStockAlertEvent{ProductID: "p1", AlertedAt: now}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.eventType, tt.event.EventType())
			assert.Equal(t, tt.aggregate, tt.event.AggregateID())
			assert.Equal(t, now, tt.event.OccurredAt())
		})
	}
}
