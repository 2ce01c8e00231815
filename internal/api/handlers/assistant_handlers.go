package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/middleware"
)

// AssistantHandlers serves the AI endpoints. Model failures come back as
// 200 with a fallback reply, never as errors.
type AssistantHandlers struct {
	assistant AssistantService
	logger    *logging.Logger
}

// NewAssistantHandlers creates a new AssistantHandlers
func NewAssistantHandlers(assistant AssistantService, logger *logging.Logger) *AssistantHandlers {
	return &AssistantHandlers{assistant: assistant, logger: logger}
}

// RegisterRoutes registers assistant routes on the router
func (h *AssistantHandlers) RegisterRoutes(router *gin.RouterGroup) {
	assistant := router.Group("/assistant")
	{
		assistant.POST("/summary", h.Summary)
		assistant.POST("/commands", h.Command)
	}
}

// Summary handles POST /assistant/summary
func (h *AssistantHandlers) Summary(c *gin.Context) {
	summary, err := h.assistant.ExecutiveSummary(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Command handles POST /assistant/commands
func (h *AssistantHandlers) Command(c *gin.Context) {
	var req struct {
		Command string `json:"command" binding:"required,max=1000"`
	}
	if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
		respondAppError(c, h.logger, appErr)
		return
	}

	reply, err := h.assistant.ExecuteCommand(c.Request.Context(), req.Command)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	middleware.AddSpanAttributes(c, map[string]any{"assistant.intent": reply.Intent})
	c.JSON(http.StatusOK, reply)
}
