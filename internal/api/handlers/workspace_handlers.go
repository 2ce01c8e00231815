package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/internal/domain"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
)

// WorkspaceHandlers serves the session, the settings and the warehouse list
type WorkspaceHandlers struct {
	workspace WorkspaceService
	logger    *logging.Logger
}

// NewWorkspaceHandlers creates a new WorkspaceHandlers
func NewWorkspaceHandlers(workspace WorkspaceService, logger *logging.Logger) *WorkspaceHandlers {
	return &WorkspaceHandlers{workspace: workspace, logger: logger}
}

// RegisterRoutes registers workspace routes on the router
func (h *WorkspaceHandlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/session", h.GetSession)
	router.POST("/session", h.Login)
	router.DELETE("/session", h.Logout)
	router.GET("/settings", h.GetSettings)
	router.PUT("/settings", h.UpdateSettings)
	router.GET("/warehouses", h.ListWarehouses)
}

type loginRequest struct {
	Email     string `json:"email" binding:"required,max=254"`
	Password  string `json:"password" binding:"required"`
	Warehouse string `json:"warehouse" binding:"omitempty,max=100"`
}

type updateSettingsRequest struct {
	GeofencingEnabled *bool              `json:"geofencingEnabled"`
	UserLocation      *domain.Coordinate `json:"userLocation"`
	ClearUserLocation bool               `json:"clearUserLocation"`
	Theme             *string            `json:"theme" binding:"omitempty,oneof=light dark"`
}

// GetSession handles GET /session
func (h *WorkspaceHandlers) GetSession(c *gin.Context) {
	session, ok := h.workspace.Session()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "session": session})
}

// Login handles POST /session
func (h *WorkspaceHandlers) Login(c *gin.Context) {
	var req loginRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	session, err := h.workspace.Login(c.Request.Context(), application.LoginCommand{
		Email:     req.Email,
		Password:  req.Password,
		Warehouse: req.Warehouse,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Logout handles DELETE /session
func (h *WorkspaceHandlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": h.workspace.Logout(c.Request.Context())})
}

// GetSettings handles GET /settings
func (h *WorkspaceHandlers) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, h.workspace.Settings())
}

// UpdateSettings handles PUT /settings
func (h *WorkspaceHandlers) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	settings, err := h.workspace.UpdateSettings(c.Request.Context(), application.UpdateSettingsCommand{
		GeofencingEnabled: req.GeofencingEnabled,
		UserLocation:      req.UserLocation,
		ClearUserLocation: req.ClearUserLocation,
		Theme:             req.Theme,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// ListWarehouses handles GET /warehouses
func (h *WorkspaceHandlers) ListWarehouses(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.workspace.Warehouses()})
}

// SessionUser stores the signed-in user's name in the request context so
// audit records carry an actor
func SessionUser(workspace WorkspaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, ok := workspace.Session(); ok {
			c.Request = c.Request.WithContext(logging.ContextWithUser(c.Request.Context(), session.Name))
		}
		c.Next()
	}
}
