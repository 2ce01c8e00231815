package middleware

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Daksh-create349/stock-Master/pkg/logging"
)

type TracingConfig struct {
	ServiceName string
	SkipPaths   []string
	Propagators propagation.TextMapPropagator
}

// DefaultTracingConfig uses the global propagator, so it should be built
// after tracing.Initialize has run.
func DefaultTracingConfig(serviceName string) *TracingConfig {
	return &TracingConfig{
		ServiceName: serviceName,
		SkipPaths:   probePaths,
		Propagators: otel.GetTextMapPropagator(),
	}
}

// TracingMiddleware opens a server span named after the matched route and
// exposes its trace id to the access log and service logs.
func TracingMiddleware(config *TracingConfig) gin.HandlerFunc {
	tracer := otel.Tracer(config.ServiceName)
	skip := skipSet(config.SkipPaths)

	return func(c *gin.Context) {
		if skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		parent := config.Propagators.Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, span := tracer.Start(parent, c.Request.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				semconv.HTTPMethodKey.String(c.Request.Method),
				semconv.HTTPRouteKey.String(route),
				attribute.String("http.client_ip", c.ClientIP()),
				attribute.String("request.id", GetRequestID(c)),
			),
		)
		defer span.End()

		if sc := span.SpanContext(); sc.HasTraceID() {
			id := sc.TraceID().String()
			c.Set(ContextKeyTraceID, id)
			ctx = logging.ContextWithTraceID(ctx, id)
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		for _, ginErr := range c.Errors {
			span.RecordError(ginErr.Err)
		}
		status := c.Writer.Status()
		span.SetAttributes(semconv.HTTPStatusCodeKey.Int(status))
		if status >= 500 {
			span.SetStatus(codes.Error, "HTTP "+strconv.Itoa(status))
		}
	}
}

// AddSpanAttributes tags the current request span. Values of types other
// than string, int, float64 and bool are formatted with %v.
func AddSpanAttributes(c *gin.Context, attrs map[string]any) {
	span := trace.SpanFromContext(c.Request.Context())
	kvs := make([]attribute.KeyValue, 0, len(attrs))
	for key, v := range attrs {
		switch val := v.(type) {
		case string:
			kvs = append(kvs, attribute.String(key, val))
		case int:
			kvs = append(kvs, attribute.Int(key, val))
		case float64:
			kvs = append(kvs, attribute.Float64(key, val))
		case bool:
			kvs = append(kvs, attribute.Bool(key, val))
		default:
			kvs = append(kvs, attribute.String(key, fmt.Sprint(val)))
		}
	}
	span.SetAttributes(kvs...)
}
