package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/api"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
)

// OperationHandlers serves operations and their status transitions
type OperationHandlers struct {
	catalog   CatalogService
	inventory InventoryService
	logger    *logging.Logger
}

// NewOperationHandlers creates a new OperationHandlers
func NewOperationHandlers(catalog CatalogService, inventory InventoryService, logger *logging.Logger) *OperationHandlers {
	return &OperationHandlers{catalog: catalog, inventory: inventory, logger: logger}
}

// RegisterRoutes registers operation routes on the router
func (h *OperationHandlers) RegisterRoutes(router *gin.RouterGroup) {
	ops := router.Group("/operations")
	{
		ops.GET("", h.ListOperations)
		ops.POST("", h.CreateOperation)
		ops.GET("/:id", h.GetOperation)
		ops.POST("/:id/validate", h.ValidateOperation)
		ops.POST("/:id/confirm", h.ConfirmOperation)
		ops.POST("/:id/cancel", h.CancelOperation)
	}
	router.GET("/history", h.History)
}

type lineItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOperationRequest struct {
	Type           string            `json:"type" binding:"required,operation_type"`
	SourceLocation string            `json:"sourceLocation" binding:"omitempty,max=100"`
	DestLocation   string            `json:"destLocation" binding:"omitempty,max=100"`
	PartnerID      string            `json:"partnerId"`
	Items          []lineItemRequest `json:"items" binding:"required,min=1"`
}

// ListOperations handles GET /operations. Without a warehouse parameter the
// list follows the signed-in warehouse; all=true lists every warehouse.
func (h *OperationHandlers) ListOperations(c *gin.Context) {
	all, _ := strconv.ParseBool(c.Query("all"))
	ops, err := h.catalog.ListOperations(c.Request.Context(), application.ListOperationsQuery{
		Type:          domain.OperationType(c.Query("type")),
		Status:        domain.OperationStatus(c.Query("status")),
		Warehouse:     c.Query("warehouse"),
		AllWarehouses: all,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(ops, api.ParsePagination(c)))
}

// CreateOperation handles POST /operations
func (h *OperationHandlers) CreateOperation(c *gin.Context) {
	var req createOperationRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	items := make([]domain.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.LineItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	op, err := h.catalog.CreateOperation(c.Request.Context(), application.CreateOperationCommand{
		Type:           domain.OperationType(req.Type),
		SourceLocation: req.SourceLocation,
		DestLocation:   req.DestLocation,
		Items:          items,
		PartnerID:      req.PartnerID,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, op)
}

// GetOperation handles GET /operations/:id
func (h *OperationHandlers) GetOperation(c *gin.Context) {
	op, err := h.catalog.GetOperation(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// ValidateOperation handles POST /operations/:id/validate
func (h *OperationHandlers) ValidateOperation(c *gin.Context) {
	id := c.Param("id")
	middleware.AddSpanAttributes(c, map[string]any{"operation.id": id})

	result, err := h.inventory.ValidateOperation(c.Request.Context(), application.ValidateOperationCommand{OperationID: id})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmOperation handles POST /operations/:id/confirm
func (h *OperationHandlers) ConfirmOperation(c *gin.Context) {
	op, err := h.inventory.ConfirmOperation(c.Request.Context(), application.ConfirmOperationCommand{OperationID: c.Param("id")})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// CancelOperation handles POST /operations/:id/cancel
func (h *OperationHandlers) CancelOperation(c *gin.Context) {
	op, err := h.inventory.CancelOperation(c.Request.Context(), application.CancelOperationCommand{OperationID: c.Param("id")})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, op)
}

// History handles GET /history
func (h *OperationHandlers) History(c *gin.Context) {
	ops, err := h.catalog.History(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(ops, api.ParsePagination(c)))
}
