package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/internal/application"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

// DashboardHandlers serves the KPI board and the notification list
type DashboardHandlers struct {
	dashboard     DashboardService
	notifications NotificationService
	logger        *logging.Logger
}

// NewDashboardHandlers creates a new DashboardHandlers
func NewDashboardHandlers(dashboard DashboardService, notifications NotificationService, logger *logging.Logger) *DashboardHandlers {
	return &DashboardHandlers{dashboard: dashboard, notifications: notifications, logger: logger}
}

// RegisterRoutes registers dashboard routes on the router
func (h *DashboardHandlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/dashboard", h.GetDashboard)
	router.GET("/notifications", h.ListNotifications)
	router.DELETE("/notifications/:id", h.DismissNotification)
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandlers) GetDashboard(c *gin.Context) {
	d, err := h.dashboard.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListNotifications handles GET /notifications
func (h *DashboardHandlers) ListNotifications(c *gin.Context) {
	notes := h.notifications.List()
	out := make([]application.NotificationDTO, 0, len(notes))
	for _, n := range notes {
		out = append(out, application.ToNotificationDTO(n))
	}
	c.JSON(http.StatusOK, gin.H{"data": out})
}

// DismissNotification handles DELETE /notifications/:id
func (h *DashboardHandlers) DismissNotification(c *gin.Context) {
	if !h.notifications.Dismiss(c.Param("id")) {
		respondError(c, h.logger, errNotificationNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
