package application

import "github.com/Daksh-create349/stock-Master/internal/domain"

// StockChangeSource tags which screen a direct stock write came from
type StockChangeSource string

const (
	SourceQuickAdd   StockChangeSource = "quick-add"
	SourceAdjustment StockChangeSource = "adjustment"
	SourceManual     StockChangeSource = "manual"
)

// Reference prefixes for operations that are not created from the form
const (
	PrefixQuickAdd   = "ADJ/QUICK"
	PrefixAdjustment = "INV/ADJ"
	PrefixAssistant  = "AI"
)

// AuditPartner is the partner recorded on adjustment-screen log entries
const AuditPartner = "Internal Audit"

// ValidateOperationCommand runs the validator on one operation
type ValidateOperationCommand struct {
	OperationID string
}

// ConfirmOperationCommand checks availability of a Draft or Waiting operation
type ConfirmOperationCommand struct {
	OperationID string
}

// CancelOperationCommand cancels an open operation
type CancelOperationCommand struct {
	OperationID string
}

// StockChangeCommand is a direct stock write outside any operation
type StockChangeCommand struct {
	ProductID string
	Mode      domain.StockChangeMode
	Quantity  int
	// Location is used by adjustments; empty means the product's location
	Location string
	Audited  bool
	Source   StockChangeSource
}

// CreateProductCommand creates a catalog entry
type CreateProductCommand struct {
	Name         string
	SKU          string
	Barcode      string
	Category     string
	UOM          string
	Stock        int
	Location     string
	Price        float64
	MinStockRule int
}

// CreateOperationCommand records a new operation. Empty locations are
// derived from the type and the active warehouse.
type CreateOperationCommand struct {
	Type           domain.OperationType
	SourceLocation string
	DestLocation   string
	Items          []domain.LineItem
	PartnerID      string
	// ReferencePrefix overrides the prefix derived from Type
	ReferencePrefix string
}

// CreateContactCommand adds a business partner
type CreateContactCommand struct {
	Name    string
	Type    domain.ContactType
	Email   string
	Phone   string
	Address string
}

// LoginCommand opens the cosmetic session
type LoginCommand struct {
	Email     string
	Password  string
	Warehouse string
}

// UpdateSettingsCommand changes workspace settings. Nil fields are left as is.
type UpdateSettingsCommand struct {
	GeofencingEnabled *bool
	UserLocation      *domain.Coordinate
	ClearUserLocation bool
	Theme             *string
}

// ListProductsQuery filters the product list
type ListProductsQuery struct {
	Search   string
	Category string
	Location string
	LowStock bool
}

// ListOperationsQuery filters the operation list. An empty Warehouse falls
// back to the active session warehouse; AllWarehouses disables the filter.
type ListOperationsQuery struct {
	Type          domain.OperationType
	Status        domain.OperationStatus
	Warehouse     string
	AllWarehouses bool
}

// ListContactsQuery filters the contact list
type ListContactsQuery struct {
	Search string
	Type   domain.ContactType
}
