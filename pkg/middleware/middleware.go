package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Daksh-create349/stock-Master/pkg/errors"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
)

// probePaths are served on every deployment and kept out of access logs,
// traces and request metrics
var probePaths = []string{"/health", "/ready", "/metrics"}

// Config holds middleware configuration
type Config struct {
	Logger         *slog.Logger
	ServiceName    string
	EnableCORS     bool
	// CORSOrigins limits cross-origin callers. Empty allows any origin.
	CORSOrigins    []string
	TrustedProxies []string

	// Metrics enables request metrics and the /metrics endpoint
	Metrics *metrics.Metrics
	// Tracing enables a server span per request when set
	Tracing *TracingConfig
	// Ready backs /ready. Nil always reports ready.
	Ready func() error
}

// DefaultConfig returns a default middleware configuration
func DefaultConfig(serviceName string, logger *slog.Logger) *Config {
	return &Config{
		Logger:      logger,
		ServiceName: serviceName,
		EnableCORS:  true,
	}
}

// Setup installs the middleware chain and the probe endpoints. Order
// matters: ids exist before logging, and the error handler runs innermost
// so it sees handler errors before the logger records the status.
func Setup(router *gin.Engine, config *Config) {
	InitValidator()

	if len(config.TrustedProxies) > 0 {
		_ = router.SetTrustedProxies(config.TrustedProxies)
	}

	chain := []gin.HandlerFunc{
		Recovery(config.Logger),
		RequestID(),
		CorrelationID(),
		Logger(config.Logger),
	}
	if config.Metrics != nil {
		chain = append(chain, MetricsMiddleware(config.Metrics))
	}
	if config.Tracing != nil {
		chain = append(chain, TracingMiddleware(config.Tracing))
	}
	chain = append(chain, InputSanitizer())
	if config.EnableCORS {
		chain = append(chain, CORS(config.CORSOrigins))
	}
	chain = append(chain, ContentType(), ErrorHandler(config.Logger))
	router.Use(chain...)

	router.NoRoute(NoRoute())
	router.NoMethod(NoMethod())
	router.HandleMethodNotAllowed = true

	router.GET("/health", HealthCheck(config.ServiceName))
	router.GET("/ready", ReadinessCheck(config.ServiceName, config.Ready))
	if config.Metrics != nil {
		router.GET("/metrics", MetricsEndpoint(config.Metrics))
	}
}

// CORS lets the browser front end on another origin call the API and read
// the id headers back.
func CORS(origins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", HeaderRequestID, HeaderCorrelationID},
		ExposeHeaders: []string{HeaderRequestID, HeaderCorrelationID},
		MaxAge:        24 * time.Hour,
	}
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	}
	return cors.New(config)
}

// HealthCheck reports liveness
func HealthCheck(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": serviceName})
	}
}

// ReadinessCheck reports 503 while check fails
func ReadinessCheck(serviceName string, check func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			if err := check(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "not ready",
					"service": serviceName,
					"error":   err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName})
	}
}

func routeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, newAPIErrorResponse(c, errors.NewAppError(code, message, status)))
}

// NoRoute answers unknown paths in the API error format
func NoRoute() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeError(c, http.StatusNotFound, "ROUTE_NOT_FOUND", "The requested resource was not found")
	}
}

// NoMethod answers known paths called with the wrong method
func NoMethod() gin.HandlerFunc {
	return func(c *gin.Context) {
		routeError(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "The request method is not supported for this resource")
	}
}

func skipSet(paths []string) map[string]bool {
	skip := make(map[string]bool, len(paths))
	for _, p := range paths {
		skip[p] = true
	}
	return skip
}
