package handlers

import (
	"context"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
)

// InventoryService writes stock
type InventoryService interface {
	ValidateOperation(ctx context.Context, cmd application.ValidateOperationCommand) (*application.ValidationResultDTO, error)
	ConfirmOperation(ctx context.Context, cmd application.ConfirmOperationCommand) (*application.OperationDTO, error)
	CancelOperation(ctx context.Context, cmd application.CancelOperationCommand) (*application.OperationDTO, error)
	ApplyStockChange(ctx context.Context, cmd application.StockChangeCommand) (*application.StockChangeResultDTO, error)
	QuickAdd(ctx context.Context, productID string, quantity int) (*application.StockChangeResultDTO, error)
	SetStock(ctx context.Context, productID string, quantity int) (*application.StockChangeResultDTO, error)
}

// CatalogService manages products, operations and contacts
type CatalogService interface {
	CreateProduct(ctx context.Context, cmd application.CreateProductCommand) (*application.ProductDTO, error)
	GetProduct(ctx context.Context, id string) (*application.ProductDTO, error)
	ListProducts(ctx context.Context, query application.ListProductsQuery) ([]application.ProductDTO, error)
	CreateOperation(ctx context.Context, cmd application.CreateOperationCommand) (*application.OperationDTO, error)
	GetOperation(ctx context.Context, id string) (*application.OperationDTO, error)
	ListOperations(ctx context.Context, query application.ListOperationsQuery) ([]application.OperationDTO, error)
	History(ctx context.Context) ([]application.OperationDTO, error)
	CreateContact(ctx context.Context, cmd application.CreateContactCommand) (*application.ContactDTO, error)
	ListContacts(ctx context.Context, query application.ListContactsQuery) ([]application.ContactDTO, error)
	DeleteContact(ctx context.Context, id string) error
}

// WorkspaceService holds the session and settings
type WorkspaceService interface {
	Login(ctx context.Context, cmd application.LoginCommand) (*application.SessionDTO, error)
	Logout(ctx context.Context) string
	Session() (*application.SessionDTO, bool)
	Settings() application.SettingsDTO
	UpdateSettings(ctx context.Context, cmd application.UpdateSettingsCommand) (application.SettingsDTO, error)
	Warehouses() []application.WarehouseDTO
}

// DashboardService computes KPIs
type DashboardService interface {
	Dashboard(ctx context.Context) (*application.DashboardDTO, error)
}

// NotificationService exposes the notification list
type NotificationService interface {
	List() []domain.Notification
	Dismiss(id string) bool
}

// AssistantService is the natural language front end
type AssistantService interface {
	ExecutiveSummary(ctx context.Context) (*application.SummaryDTO, error)
	ExecuteCommand(ctx context.Context, command string) (*application.AssistantReplyDTO, error)
}

var (
	_ InventoryService    = (*application.InventoryService)(nil)
	_ CatalogService      = (*application.CatalogService)(nil)
	_ WorkspaceService    = (*application.Workspace)(nil)
	_ DashboardService    = (*application.DashboardService)(nil)
	_ NotificationService = (*application.NotificationCenter)(nil)
	_ AssistantService    = (*application.AssistantService)(nil)
)
