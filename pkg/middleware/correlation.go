package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Daksh-create349/stock-Master/pkg/errors"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

const (
	ContextKeyRequestID     = "requestId"
	ContextKeyCorrelationID = "correlationId"
	ContextKeyTraceID       = "traceId"

	HeaderRequestID     = "X-Request-ID"
	HeaderCorrelationID = "X-Correlation-ID"
)

// RequestID echoes X-Request-ID, minting one when the caller sent none.
func RequestID() gin.HandlerFunc {
	return propagateID(HeaderRequestID, ContextKeyRequestID, logging.ContextWithRequestID)
}

// CorrelationID does the same for X-Correlation-ID.
func CorrelationID() gin.HandlerFunc {
	return propagateID(HeaderCorrelationID, ContextKeyCorrelationID, logging.ContextWithCorrelationID)
}

// propagateID stores the id on the gin context, the response headers and
// the request context so both handlers and service logs can read it.
func propagateID(header, key string, attach func(context.Context, string) context.Context) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(header)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(key, id)
		c.Header(header, id)
		c.Request = c.Request.WithContext(attach(c.Request.Context(), id))
		c.Next()
	}
}

// Logger writes one access log line per request, skipping probe traffic.
// The level follows the response class.
func Logger(logger *slog.Logger) gin.HandlerFunc {
	skip := skipSet(probePaths)

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		began := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latencyMs", time.Since(began).Milliseconds(),
			"clientIP", c.ClientIP(),
			"requestId", GetRequestID(c),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			attrs = append(attrs, "query", q)
		}
		if id := GetCorrelationID(c); id != "" {
			attrs = append(attrs, "correlationId", id)
		}
		if traceID := c.GetString(ContextKeyTraceID); traceID != "" {
			attrs = append(attrs, "traceId", traceID)
		}

		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelError
		} else if status >= 400 {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "HTTP request", attrs...)
	}
}

// Recovery turns a handler panic into a 500 envelope.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("Panic recovered",
					"panic", rec,
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"requestId", GetRequestID(c),
				)
				AbortWithAppError(c, errors.NewAppError(errors.CodeInternalError,
					"An unexpected error occurred", http.StatusInternalServerError))
			}
		}()
		c.Next()
	}
}

func GetRequestID(c *gin.Context) string     { return c.GetString(ContextKeyRequestID) }
func GetCorrelationID(c *gin.Context) string { return c.GetString(ContextKeyCorrelationID) }
