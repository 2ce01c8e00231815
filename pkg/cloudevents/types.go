package cloudevents

import (
	"time"
)

// Event types published by the stock service
const (
	OperationCreated   = "stockmaster.operation.created"
	OperationValidated = "stockmaster.operation.validated"
	OperationShipped   = "stockmaster.operation.shipped"
	OperationRejected  = "stockmaster.operation.rejected"
	OperationCancelled = "stockmaster.operation.cancelled"
	StockAdjusted      = "stockmaster.stock.adjusted"
	ProductCreated     = "stockmaster.product.created"
	LowStockAlert      = "stockmaster.product.low-stock"
)

// SourceStockMaster is the CloudEvents source of every event this service emits
const SourceStockMaster = "/stockmaster/inventory"

// CloudEvent is a CloudEvents v1.0 envelope
type CloudEvent struct {
	SpecVersion     string    `json:"specversion"`
	Type            string    `json:"type"`
	Source          string    `json:"source"`
	Subject         string    `json:"subject,omitempty"`
	ID              string    `json:"id"`
	Time            time.Time `json:"time"`
	DataContentType string    `json:"datacontenttype"`
	Data            any       `json:"data"`

	// Extensions
	CorrelationID string `json:"stockcorrelationid,omitempty"`
	Warehouse     string `json:"stockwarehouse,omitempty"`
}
