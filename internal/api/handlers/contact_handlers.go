package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/api"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
)

// ContactHandlers serves business partners
type ContactHandlers struct {
	catalog CatalogService
	logger  *logging.Logger
}

// NewContactHandlers creates a new ContactHandlers
func NewContactHandlers(catalog CatalogService, logger *logging.Logger) *ContactHandlers {
	return &ContactHandlers{catalog: catalog, logger: logger}
}

// RegisterRoutes registers contact routes on the router
func (h *ContactHandlers) RegisterRoutes(router *gin.RouterGroup) {
	contacts := router.Group("/contacts")
	{
		contacts.GET("", h.ListContacts)
		contacts.POST("", h.CreateContact)
		contacts.DELETE("/:id", h.DeleteContact)
	}
}

type createContactRequest struct {
	Name    string `json:"name" binding:"required,max=200,safe_string"`
	Type    string `json:"type" binding:"required,contact_type"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone" binding:"omitempty,max=32"`
	Address string `json:"address" binding:"omitempty,max=500,safe_string"`
}

// ListContacts handles GET /contacts
func (h *ContactHandlers) ListContacts(c *gin.Context) {
	contacts, err := h.catalog.ListContacts(c.Request.Context(), application.ListContactsQuery{
		Search: c.Query("search"),
		Type:   domain.ContactType(c.Query("type")),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, api.Paginate(contacts, api.ParsePagination(c)))
}

// CreateContact handles POST /contacts
func (h *ContactHandlers) CreateContact(c *gin.Context) {
	var req createContactRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	contact, err := h.catalog.CreateContact(c.Request.Context(), application.CreateContactCommand{
		Name:    req.Name,
		Type:    domain.ContactType(req.Type),
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// DeleteContact handles DELETE /contacts/:id
func (h *ContactHandlers) DeleteContact(c *gin.Context) {
	if err := h.catalog.DeleteContact(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
