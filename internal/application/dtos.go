package application

import (
	"time"

	"github.com/Daksh-create349/stock-Master/internal/domain"
)

// ProductDTO represents a product in responses
type ProductDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	SKU          string    `json:"sku"`
	Barcode      string    `json:"barcode,omitempty"`
	Category     string    `json:"category"`
	UOM          string    `json:"uom"`
	Stock        int       `json:"stock"`
	Location     string    `json:"location"`
	Price        float64   `json:"price"`
	MinStockRule int       `json:"minStockRule"`
	LowStock     bool      `json:"lowStock"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LineItemDTO is one product line of an operation
type LineItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

// OperationDTO represents an operation in responses
type OperationDTO struct {
	ID             string        `json:"id"`
	Reference      string        `json:"reference"`
	Type           string        `json:"type"`
	Status         string        `json:"status"`
	SourceLocation string        `json:"sourceLocation"`
	DestLocation   string        `json:"destLocation"`
	Items          []LineItemDTO `json:"items"`
	Date           time.Time     `json:"date"`
	PartnerID      string        `json:"partnerId,omitempty"`
}

// ContactDTO represents a contact in responses
type ContactDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// WarehouseDTO is a registered site, annotated with the user's distance to
// it when a position is known
type WarehouseDTO struct {
	Name           string   `json:"name"`
	Lat            float64  `json:"lat"`
	Lng            float64  `json:"lng"`
	Radius         float64  `json:"radius"`
	DistanceMeters *float64 `json:"distanceMeters,omitempty"`
	WithinRadius   *bool    `json:"withinRadius,omitempty"`
}

// ValidationResultDTO is the result of one validator call
type ValidationResultDTO struct {
	Operation      *OperationDTO `json:"operation"`
	Outcome        string        `json:"outcome"`
	PreviousStatus string        `json:"previousStatus"`
	Status         string        `json:"status"`
	Message        string        `json:"message"`
}

// StockChangeResultDTO is the result of a direct stock write
type StockChangeResultDTO struct {
	Product       *ProductDTO   `json:"product"`
	PreviousStock int           `json:"previousStock"`
	NewStock      int           `json:"newStock"`
	LogOperation  *OperationDTO `json:"logOperation,omitempty"`
	Message       string        `json:"message"`
}

// SessionDTO is the signed-in user
type SessionDTO struct {
	UserID     string    `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	Warehouse  string    `json:"warehouse"`
	LoggedInAt time.Time `json:"loggedInAt"`
	Message    string    `json:"message,omitempty"`
}

// SettingsDTO is the workspace configuration
type SettingsDTO struct {
	GeofencingEnabled bool               `json:"geofencingEnabled"`
	UserLocation      *domain.Coordinate `json:"userLocation,omitempty"`
	Theme             string             `json:"theme"`
}

// CategoryCountDTO is one slice of the category breakdown
type CategoryCountDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ActivityDayDTO counts receipts and deliveries dated on one day
type ActivityDayDTO struct {
	Date     string `json:"date"`
	Incoming int    `json:"incoming"`
	Outgoing int    `json:"outgoing"`
}

// DashboardDTO holds the KPI board
type DashboardDTO struct {
	TotalProducts     int                `json:"totalProducts"`
	LowStockCount     int                `json:"lowStockCount"`
	HealthyStockCount int                `json:"healthyStockCount"`
	PendingReceipts   int                `json:"pendingReceipts"`
	PendingDeliveries int                `json:"pendingDeliveries"`
	InternalTransfers int                `json:"internalTransfers"`
	Categories        []CategoryCountDTO `json:"categories"`
	LowStock          []ProductDTO       `json:"lowStock"`
	Activity          []ActivityDayDTO   `json:"activity"`
	RecentOperations  []OperationDTO     `json:"recentOperations"`
}

// NotificationDTO represents a notification in responses
type NotificationDTO struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CommandDataDTO holds the entities extracted from a natural language command
type CommandDataDTO struct {
	ProductName    string `json:"productName,omitempty"`
	Quantity       *int   `json:"quantity,omitempty"`
	PartnerName    string `json:"partnerName,omitempty"`
	OperationType  string `json:"operationType,omitempty"`
	TargetLocation string `json:"targetLocation,omitempty"`
}

// CommandInterpretationDTO is the model's reading of a command
type CommandInterpretationDTO struct {
	Intent string          `json:"intent"`
	Data   *CommandDataDTO `json:"data,omitempty"`
	Reply  string          `json:"reply"`
}

// AssistantReplyDTO is what the assistant answers after acting on a command
type AssistantReplyDTO struct {
	Intent    string        `json:"intent"`
	Reply     string        `json:"reply"`
	Product   *ProductDTO   `json:"product,omitempty"`
	Operation *OperationDTO `json:"operation,omitempty"`
}

// SummaryDTO is the executive summary text
type SummaryDTO struct {
	Summary string `json:"summary"`
}
