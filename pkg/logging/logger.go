// Package logging builds the JSON slog logger shared by the API and its
// services, and carries request-scoped ids through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ParseLevel reads a LOG_LEVEL value. Unknown values mean info.
func ParseLevel(s string) LogLevel {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := slogLevels[level]; ok {
		return level
	}
	return LevelInfo
}

type Config struct {
	Level       LogLevel
	ServiceName string
	Environment string
	Version     string
	Output      io.Writer
	AddSource   bool
}

func DefaultConfig(serviceName string) *Config {
	return &Config{
		Level:       ParseLevel(os.Getenv("LOG_LEVEL")),
		ServiceName: serviceName,
		Environment: envOr("ENVIRONMENT", "development"),
		Version:     envOr("VERSION", "unknown"),
		Output:      os.Stdout,
	}
}

// Logger is a slog.Logger with helpers for the fields the stock services
// attach over and over.
type Logger struct {
	*slog.Logger
}

func New(config *Config) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stdout
	}
	level, ok := slogLevels[config.Level]
	if !ok {
		level = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       level,
		AddSource:   config.AddSource,
		ReplaceAttr: utcTimestamps,
	})
	base := slog.New(handler).With(
		"service", config.ServiceName,
		"environment", config.Environment,
		"version", config.Version,
	)
	return &Logger{Logger: base}
}

func utcTimestamps(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.TimeKey {
		return a
	}
	if t, ok := a.Value.Any().(time.Time); ok {
		a.Value = slog.StringValue(t.UTC().Format(time.RFC3339Nano))
	}
	return a
}

// Discard drops every record.
func Discard() *Logger {
	return New(&Config{Level: LevelError, ServiceName: "discard", Output: io.Discard})
}

// SetDefault installs l as the process-wide slog default.
func (l *Logger) SetDefault() { slog.SetDefault(l.Logger) }

func (l *Logger) with(args ...any) *Logger {
	return &Logger{Logger: l.Logger.With(args...)}
}

// WithContext copies the request, correlation, trace and user ids found in
// ctx onto the logger.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	var attrs []any
	for _, key := range contextKeys {
		if v := ctx.Value(key); v != nil {
			attrs = append(attrs, string(key), v)
		}
	}
	if attrs == nil {
		return l
	}
	return l.with(attrs...)
}

func (l *Logger) WithError(err error) *Logger {
	if err == nil {
		return l
	}
	return l.with("error", err.Error())
}

func (l *Logger) WithComponent(component string) *Logger {
	return l.with("component", component)
}

// WithOperation tags records with a stock operation and its reference.
func (l *Logger) WithOperation(operationID, reference string) *Logger {
	return l.with("operationId", operationID, "reference", reference)
}

// Audit records a stock or workspace change. The actor is whoever
// ContextWithUser put into ctx.
func (l *Logger) Audit(ctx context.Context, action, resource, resourceID string, details map[string]any) {
	attrs := make([]any, 0, 8+2*len(details))
	attrs = append(attrs,
		"auditAction", action,
		"resource", resource,
		"resourceId", resourceID,
		"actor", UserFrom(ctx),
	)
	for k, v := range details {
		attrs = append(attrs, k, v)
	}
	l.WithContext(ctx).Info("Audit event", attrs...)
}

// KafkaPublish logs a publish attempt; failures are raised to error level.
func (l *Logger) KafkaPublish(ctx context.Context, topic, eventType string, success bool, took time.Duration) {
	level := slog.LevelDebug
	if !success {
		level = slog.LevelError
	}
	l.WithContext(ctx).Log(ctx, level, "Kafka publish",
		"topic", topic,
		"eventType", eventType,
		"success", success,
		"durationMs", took.Milliseconds(),
	)
}

type contextKey string

const (
	RequestIDKey     contextKey = "requestId"
	CorrelationIDKey contextKey = "correlationId"
	TraceIDKey       contextKey = "traceId"
	UserKey          contextKey = "user"
)

var contextKeys = []contextKey{RequestIDKey, CorrelationIDKey, TraceIDKey, UserKey}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationIDKey, id)
}

func ContextWithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, TraceIDKey, id)
}

// ContextWithUser records the signed-in user acting on this request.
func ContextWithUser(ctx context.Context, user string) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// UserFrom returns the user set by ContextWithUser, or "".
func UserFrom(ctx context.Context) string {
	user, _ := ctx.Value(UserKey).(string)
	return user
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
