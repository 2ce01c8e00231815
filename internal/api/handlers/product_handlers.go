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

// ProductHandlers serves the product list and the stock entry points
type ProductHandlers struct {
	catalog   CatalogService
	inventory InventoryService
	logger    *logging.Logger
}

// NewProductHandlers creates a new ProductHandlers
func NewProductHandlers(catalog CatalogService, inventory InventoryService, logger *logging.Logger) *ProductHandlers {
	return &ProductHandlers{catalog: catalog, inventory: inventory, logger: logger}
}

// RegisterRoutes registers product routes on the router
func (h *ProductHandlers) RegisterRoutes(router *gin.RouterGroup) {
	products := router.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.POST("", h.CreateProduct)
		products.GET("/:id", h.GetProduct)
		products.POST("/:id/quick-add", h.QuickAdd)
		products.PUT("/:id/stock", h.SetStock)
	}
	router.POST("/adjustments", h.Adjust)
}

type createProductRequest struct {
	Name         string  `json:"name" binding:"required,max=200,safe_string"`
	SKU          string  `json:"sku" binding:"required,sku"`
	Barcode      string  `json:"barcode" binding:"omitempty,max=64,safe_string"`
	Category     string  `json:"category" binding:"omitempty,max=100,safe_string"`
	UOM          string  `json:"uom" binding:"omitempty,max=20"`
	Stock        int     `json:"stock" binding:"gte=0"`
	Location     string  `json:"location"`
	Price        float64 `json:"price" binding:"gte=0"`
	MinStockRule int     `json:"minStockRule" binding:"gte=0"`
}

// ListProducts handles GET /products
func (h *ProductHandlers) ListProducts(c *gin.Context) {
	lowStock, _ := strconv.ParseBool(c.Query("lowStock"))
	products, err := h.catalog.ListProducts(c.Request.Context(), application.ListProductsQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		LowStock: lowStock,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(products, api.ParsePagination(c)))
}

// CreateProduct handles POST /products
func (h *ProductHandlers) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	product, err := h.catalog.CreateProduct(c.Request.Context(), application.CreateProductCommand{
		Name:         req.Name,
		SKU:          req.SKU,
		Barcode:      req.Barcode,
		Category:     req.Category,
		UOM:          req.UOM,
		Stock:        req.Stock,
		Location:     req.Location,
		Price:        req.Price,
		MinStockRule: req.MinStockRule,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// GetProduct handles GET /products/:id
func (h *ProductHandlers) GetProduct(c *gin.Context) {
	product, err := h.catalog.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// QuickAdd handles POST /products/:id/quick-add
func (h *ProductHandlers) QuickAdd(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	productID := c.Param("id")
	middleware.AddSpanAttributes(c, map[string]any{"product.id": productID, "stock.quantity": req.Quantity})

	result, err := h.inventory.QuickAdd(c.Request.Context(), productID, req.Quantity)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SetStock handles PUT /products/:id/stock. The write is unaudited.
func (h *ProductHandlers) SetStock(c *gin.Context) {
	var req struct {
		Stock *int `json:"stock" binding:"required"`
	}
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	result, err := h.inventory.SetStock(c.Request.Context(), c.Param("id"), *req.Stock)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type adjustmentRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Mode      string `json:"mode" binding:"required,oneof=set add"`
	Quantity  *int   `json:"quantity" binding:"required"`
	Location  string `json:"location"`
}

// Adjust handles POST /adjustments, the audited correction screen
func (h *ProductHandlers) Adjust(c *gin.Context) {
	var req adjustmentRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	middleware.AddSpanAttributes(c, map[string]any{"product.id": req.ProductID, "stock.mode": req.Mode})

	result, err := h.inventory.ApplyStockChange(c.Request.Context(), application.StockChangeCommand{
		ProductID: req.ProductID,
		Mode:      domain.StockChangeMode(req.Mode),
		Quantity:  *req.Quantity,
		Location:  req.Location,
		Audited:   true,
		Source:    application.SourceAdjustment,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
