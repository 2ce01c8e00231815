package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Errors
var (
	ErrProductNotFound         = errors.New("product not found")
	ErrOperationNotFound       = errors.New("operation not found")
	ErrContactNotFound         = errors.New("contact not found")
	ErrWarehouseNotFound       = errors.New("warehouse not found")
	ErrInsufficientStock       = errors.New("insufficient stock")
	ErrGeofenceViolation       = errors.New("geofence violation")
	ErrNegativeStock           = errors.New("stock cannot be negative")
	ErrInvalidQuantity         = errors.New("invalid quantity")
	ErrInvalidStatus           = errors.New("invalid status value")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrInvalidOperationType    = errors.New("invalid operation type")
	ErrInvalidContactType      = errors.New("invalid contact type")
	ErrEmptyOperation          = errors.New("operation has no line items")
)

// GeofenceViolationError reports a user standing outside the radius of the
// warehouse an operation needs.
type GeofenceViolationError struct {
	Warehouse string
	Distance  float64 // meters
	Radius    float64 // meters
}

func (e *GeofenceViolationError) Error() string {
	return fmt.Sprintf("Geofence Violation: You are %dm away from %s. Operation blocked.",
		int64(math.Round(e.Distance)), e.Warehouse)
}

func (e *GeofenceViolationError) Unwrap() error { return ErrGeofenceViolation }

// Shortage is one line item the stock gate could not cover.
type Shortage struct {
	ProductID string `json:"productId"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Missing   bool   `json:"missing,omitempty"`
}

// InsufficientStockError lists every failing line of a rejected operation.
type InsufficientStockError struct {
	Shortages []Shortage
}

func (e *InsufficientStockError) Error() string {
	return "Validation Failed: Insufficient stock for one or more items."
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Detail renders the shortages as "p1: 3/10, p9: missing".
func (e *InsufficientStockError) Detail() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		if s.Missing {
			parts = append(parts, s.ProductID+": missing")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %d/%d", s.ProductID, s.Available, s.Requested))
	}
	return strings.Join(parts, ", ")
}
