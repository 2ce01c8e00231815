package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/pkg/errors"
)

// APIErrorResponse is the body of every non-2xx response.
type APIErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
	Timestamp string            `json:"timestamp"`
	Path      string            `json:"path"`
}

func newAPIErrorResponse(c *gin.Context, appErr *errors.AppError) APIErrorResponse {
	return APIErrorResponse{
		Code:      appErr.Code,
		Message:   appErr.Message,
		Details:   appErr.Details,
		RequestID: GetRequestID(c),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      c.Request.URL.Path,
	}
}

// ErrorHandler renders the last c.Error for handlers that did not write a
// response themselves.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) > 0 && !c.Writer.Written() {
			RespondError(c, logger, c.Errors.Last().Err)
		}
	}
}

// RespondError maps err through mappings, logs it, and writes the envelope.
func RespondError(c *gin.Context, logger *slog.Logger, err error, mappings ...errors.Mapping) {
	RespondAppError(c, logger, errors.MapDomainError(err, mappings...))
}

// RespondAppError logs appErr and writes it without aborting the chain.
func RespondAppError(c *gin.Context, logger *slog.Logger, appErr *errors.AppError) {
	level := slog.LevelWarn
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	attrs := []any{
		"code", appErr.Code,
		"status", appErr.HTTPStatus,
		"message", appErr.Message,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"requestId", GetRequestID(c),
	}
	if len(appErr.Details) > 0 {
		attrs = append(attrs, "details", appErr.Details)
	}
	if appErr.Err != nil {
		attrs = append(attrs, "error", appErr.Err.Error())
	}
	logger.Log(c.Request.Context(), level, "API error", attrs...)

	c.JSON(appErr.HTTPStatus, newAPIErrorResponse(c, appErr))
}

// AbortWithAppError writes appErr and stops the remaining handlers.
func AbortWithAppError(c *gin.Context, appErr *errors.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, newAPIErrorResponse(c, appErr))
}
