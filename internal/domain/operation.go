package domain

import (
	"fmt"
	"time"
)

// OperationType tags what an operation does to stock
type OperationType string

const (
	OperationReceipt    OperationType = "Receipt"
	OperationDelivery   OperationType = "Delivery"
	OperationInternal   OperationType = "Internal"
	OperationAdjustment OperationType = "Adjustment"
)

// ParseOperationType validates s
func ParseOperationType(s string) (OperationType, error) {
	switch t := OperationType(s); t {
	case OperationReceipt, OperationDelivery, OperationInternal, OperationAdjustment:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOperationType, s)
}

// ReferencePrefix is the prefix of references the operation form generates
func (t OperationType) ReferencePrefix() string {
	switch t {
	case OperationReceipt:
		return "WH/IN"
	case OperationDelivery:
		return "WH/OUT"
	case OperationInternal:
		return "WH/INT"
	default:
		return "WH/ADJ"
	}
}

// Pseudo locations used where one side of an operation is not a warehouse
const (
	LocationVendor     = "Vendor"
	LocationCustomer   = "Customer"
	LocationAdjustment = "Adjustment"
)

// LineItem is a product and a positive quantity
type LineItem struct {
	ProductID string `json:"productId" yaml:"productId"`
	Quantity  int    `json:"quantity" yaml:"quantity"`
}

// Operation moves stock into, out of or between warehouses
type Operation struct {
	ID             string          `json:"id" yaml:"id"`
	Reference      string          `json:"reference" yaml:"reference"`
	Type           OperationType   `json:"type" yaml:"type"`
	Status         OperationStatus `json:"status" yaml:"status"`
	SourceLocation string          `json:"sourceLocation" yaml:"sourceLocation"`
	DestLocation   string          `json:"destLocation" yaml:"destLocation"`
	Items          []LineItem      `json:"items" yaml:"items"`
	Date           time.Time       `json:"date" yaml:"date"`
	PartnerID      string          `json:"partnerId,omitempty" yaml:"partnerId"`
}

// Clone returns a deep copy
func (o *Operation) Clone() *Operation {
	c := *o
	c.Items = append([]LineItem(nil), o.Items...)
	return &c
}

// CheckItems verifies quantities. References to missing products are not
// checked here.
func (o *Operation) CheckItems() error {
	if len(o.Items) == 0 {
		return ErrEmptyOperation
	}
	for _, item := range o.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: %d for product %s", ErrInvalidQuantity, item.Quantity, item.ProductID)
		}
	}
	return nil
}

// GeofencedWarehouse is the warehouse the user must stand in to validate:
// the destination of a receipt, the source otherwise.
func (o *Operation) GeofencedWarehouse() string {
	if o.Type == OperationReceipt {
		return o.DestLocation
	}
	return o.SourceLocation
}

// ConsumesStock reports whether the stock gate applies
func (o *Operation) ConsumesStock() bool {
	return o.Type == OperationDelivery || o.Type == OperationInternal
}

// TouchesWarehouse reports whether either side of the operation is warehouse
func (o *Operation) TouchesWarehouse(warehouse string) bool {
	return o.SourceLocation == warehouse || o.DestLocation == warehouse
}

// IsHistorical reports whether the operation belongs in the move history
func (o *Operation) IsHistorical() bool {
	return o.Status == StatusDone || o.Status == StatusShipped
}

// IsPending reports whether the operation still awaits completion
func (o *Operation) IsPending() bool {
	return o.Status != StatusDone
}

// TransitionTo moves the operation along the state machine
func (o *Operation) TransitionTo(target OperationStatus) error {
	if !o.Status.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, o.Status, target)
	}
	o.Status = target
	return nil
}
