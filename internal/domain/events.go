package domain

import "time"

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	AggregateID() string
}

// OperationCreatedEvent is published when an operation is recorded
type OperationCreatedEvent struct {
	OperationID string          `json:"operationId"`
	Reference   string          `json:"reference"`
	Type        OperationType   `json:"type"`
	Status      OperationStatus `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func (e *OperationCreatedEvent) EventType() string     { return "stockmaster.operation.created" }
func (e *OperationCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *OperationCreatedEvent) AggregateID() string   { return "operation/" + e.OperationID }

// OperationValidatedEvent is published when the validator completes an operation
type OperationValidatedEvent struct {
	OperationID string            `json:"operationId"`
	Reference   string            `json:"reference"`
	Type        OperationType     `json:"type"`
	From        OperationStatus   `json:"from"`
	To          OperationStatus   `json:"to"`
	Outcome     ValidationOutcome `json:"outcome"`
	Items       []LineItem        `json:"items"`
	ValidatedAt time.Time         `json:"validatedAt"`
}

func (e *OperationValidatedEvent) EventType() string {
	if e.Outcome == OutcomeShipped {
		return "stockmaster.operation.shipped"
	}
	return "stockmaster.operation.validated"
}
func (e *OperationValidatedEvent) OccurredAt() time.Time { return e.ValidatedAt }
func (e *OperationValidatedEvent) AggregateID() string   { return "operation/" + e.OperationID }

// OperationRejectedEvent is published when an admission gate blocks validation
type OperationRejectedEvent struct {
	OperationID string    `json:"operationId"`
	Reference   string    `json:"reference"`
	Reason      string    `json:"reason"`
	Message     string    `json:"message"`
	RejectedAt  time.Time `json:"rejectedAt"`
}

func (e *OperationRejectedEvent) EventType() string     { return "stockmaster.operation.rejected" }
func (e *OperationRejectedEvent) OccurredAt() time.Time { return e.RejectedAt }
func (e *OperationRejectedEvent) AggregateID() string   { return "operation/" + e.OperationID }

// OperationCancelledEvent is published when an operation is cancelled
type OperationCancelledEvent struct {
	OperationID string    `json:"operationId"`
	Reference   string    `json:"reference"`
	CancelledAt time.Time `json:"cancelledAt"`
}

func (e *OperationCancelledEvent) EventType() string     { return "stockmaster.operation.cancelled" }
func (e *OperationCancelledEvent) OccurredAt() time.Time { return e.CancelledAt }
func (e *OperationCancelledEvent) AggregateID() string   { return "operation/" + e.OperationID }

// StockAdjustedEvent is published on every direct stock write
type StockAdjustedEvent struct {
	ProductID     string          `json:"productId"`
	SKU           string          `json:"sku"`
	Location      string          `json:"location"`
	PreviousStock int             `json:"previousStock"`
	NewStock      int             `json:"newStock"`
	Mode          StockChangeMode `json:"mode"`
	Source        string          `json:"source"`
	Audited       bool            `json:"audited"`
	AdjustedAt    time.Time       `json:"adjustedAt"`
}

func (e *StockAdjustedEvent) EventType() string     { return "stockmaster.stock.adjusted" }
func (e *StockAdjustedEvent) OccurredAt() time.Time { return e.AdjustedAt }
func (e *StockAdjustedEvent) AggregateID() string   { return "product/" + e.ProductID }

// ProductCreatedEvent is published when a product is added to the catalog
type ProductCreatedEvent struct {
	ProductID string    `json:"productId"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *ProductCreatedEvent) EventType() string     { return "stockmaster.product.created" }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }
func (e *ProductCreatedEvent) AggregateID() string   { return "product/" + e.ProductID }

// LowStockAlertEvent is published when a write leaves stock at or below the
// reorder threshold
type LowStockAlertEvent struct {
	ProductID    string    `json:"productId"`
	SKU          string    `json:"sku"`
	Stock        int       `json:"stock"`
	MinStockRule int       `json:"minStockRule"`
	AlertedAt    time.Time `json:"alertedAt"`
}

func (e *LowStockAlertEvent) EventType() string     { return "stockmaster.product.low-stock" }
func (e *LowStockAlertEvent) OccurredAt() time.Time { return e.AlertedAt }
func (e *LowStockAlertEvent) AggregateID() string   { return "product/" + e.ProductID }
