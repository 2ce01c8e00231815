package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the stock service's Prometheus collectors
type Metrics struct {
	serviceName string
	registry    *prometheus.Registry

	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Event publishing
	EventsPublished      *prometheus.CounterVec
	EventPublishDuration *prometheus.HistogramVec

	// Stock workflow
	OperationsValidated *prometheus.CounterVec
	OperationsRejected  *prometheus.CounterVec
	GeofenceRejections  *prometheus.CounterVec
	StockChanges        *prometheus.CounterVec
	LowStockProducts    prometheus.Gauge
	NotificationsEmitted *prometheus.CounterVec

	// Assistant
	AIRequests        *prometheus.CounterVec
	AIRequestDuration *prometheus.HistogramVec

	// Circuit breaker metrics
	CircuitBreakerState *prometheus.GaugeVec
	CircuitBreakerTrips *prometheus.CounterVec
}

// Config holds metrics configuration
type Config struct {
	ServiceName string
	Namespace   string
}

// DefaultConfig returns default metrics configuration
func DefaultConfig(serviceName string) *Config {
	return &Config{
		ServiceName: serviceName,
		Namespace:   "stockmaster",
	}
}

// New creates a new Metrics instance on a private registry
func New(config *Config) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ns := config.Namespace
	m := &Metrics{
		serviceName: config.ServiceName,
		registry:    registry,
	}

	m.HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"service", "method", "path", "status"})

	m.HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"service", "method", "path"})

	m.HTTPRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "http_requests_in_flight",
		Help:        "Number of HTTP requests currently being processed",
		ConstLabels: prometheus.Labels{"service": config.ServiceName},
	})

	m.EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "events_published_total",
		Help:      "Domain events handed to the event publisher",
	}, []string{"service", "topic", "event_type", "status"})

	m.EventPublishDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "event_publish_duration_seconds",
		Help:      "Event publish duration in seconds",
		Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
	}, []string{"service", "topic"})

	m.OperationsValidated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "operations_validated_total",
		Help:      "Validator calls that completed, by operation type and outcome",
	}, []string{"service", "type", "outcome"})

	m.OperationsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "operations_rejected_total",
		Help:      "Validator calls rejected by an admission gate",
	}, []string{"service", "type", "reason"})

	m.GeofenceRejections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "geofence_rejections_total",
		Help:      "Operations blocked because the user was outside a warehouse radius",
	}, []string{"service", "warehouse"})

	m.StockChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "stock_changes_total",
		Help:      "Direct stock writes by source, mode and audit flag",
	}, []string{"service", "source", "mode", "audited"})

	m.LowStockProducts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   ns,
		Name:        "low_stock_products",
		Help:        "Products at or below their reorder threshold at the last dashboard read",
		ConstLabels: prometheus.Labels{"service": config.ServiceName},
	})

	m.NotificationsEmitted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "notifications_emitted_total",
		Help:      "User notifications emitted by type",
	}, []string{"service", "type"})

	m.AIRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "ai_requests_total",
		Help:      "Hosted model calls by kind and status",
	}, []string{"service", "kind", "status"})

	m.AIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: ns,
		Name:      "ai_request_duration_seconds",
		Help:      "Hosted model call duration in seconds",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"service", "kind"})

	m.CircuitBreakerState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: ns,
		Name:      "circuit_breaker_state",
		Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
	}, []string{"service", "name"})

	m.CircuitBreakerTrips = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: ns,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of circuit breaker trips",
	}, []string{"service", "name"})

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HTTPRequestsInFlight,
		m.EventsPublished,
		m.EventPublishDuration,
		m.OperationsValidated,
		m.OperationsRejected,
		m.GeofenceRejections,
		m.StockChanges,
		m.LowStockProducts,
		m.NotificationsEmitted,
		m.AIRequests,
		m.AIRequestDuration,
		m.CircuitBreakerState,
		m.CircuitBreakerTrips,
	)

	return m
}

// Handler returns an HTTP handler for metrics endpoint. A nil *Metrics
// serves an empty registry.
func (m *Metrics) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	if m != nil {
		registry = m.registry
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}

// Registry returns the prometheus registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// The recorder methods are no-ops on a nil *Metrics.

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path string, code int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// IncrementHTTPRequestsInFlight increments in-flight requests
func (m *Metrics) IncrementHTTPRequestsInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Inc()
}

// DecrementHTTPRequestsInFlight decrements in-flight requests
func (m *Metrics) DecrementHTTPRequestsInFlight() {
	if m == nil {
		return
	}
	m.HTTPRequestsInFlight.Dec()
}

// RecordEventPublish records a domain event publish attempt
func (m *Metrics) RecordEventPublish(topic, eventType string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(m.serviceName, topic, eventType, status(success)).Inc()
	m.EventPublishDuration.WithLabelValues(m.serviceName, topic).Observe(duration.Seconds())
}

// RecordValidation records a validator call that did not reject
func (m *Metrics) RecordValidation(opType, outcome string) {
	if m == nil {
		return
	}
	m.OperationsValidated.WithLabelValues(m.serviceName, opType, outcome).Inc()
}

// RecordRejection records a validator rejection
func (m *Metrics) RecordRejection(opType, reason string) {
	if m == nil {
		return
	}
	m.OperationsRejected.WithLabelValues(m.serviceName, opType, reason).Inc()
}

// RecordGeofenceRejection records a geofence block for a warehouse
func (m *Metrics) RecordGeofenceRejection(warehouse string) {
	if m == nil {
		return
	}
	m.GeofenceRejections.WithLabelValues(m.serviceName, warehouse).Inc()
}

// RecordStockChange records a direct stock write
func (m *Metrics) RecordStockChange(source, mode string, audited bool) {
	if m == nil {
		return
	}
	m.StockChanges.WithLabelValues(m.serviceName, source, mode, strconv.FormatBool(audited)).Inc()
}

// SetLowStockProducts sets the low stock gauge
func (m *Metrics) SetLowStockProducts(count int) {
	if m == nil {
		return
	}
	m.LowStockProducts.Set(float64(count))
}

// RecordNotification records an emitted notification
func (m *Metrics) RecordNotification(kind string) {
	if m == nil {
		return
	}
	m.NotificationsEmitted.WithLabelValues(m.serviceName, kind).Inc()
}

// RecordAIRequest records a hosted model call
func (m *Metrics) RecordAIRequest(kind string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.AIRequests.WithLabelValues(m.serviceName, kind, status(success)).Inc()
	m.AIRequestDuration.WithLabelValues(m.serviceName, kind).Observe(duration.Seconds())
}

// SetCircuitBreakerState sets the circuit breaker state
func (m *Metrics) SetCircuitBreakerState(name string, state int) {
	if m == nil {
		return
	}
	m.CircuitBreakerState.WithLabelValues(m.serviceName, name).Set(float64(state))
}

// RecordCircuitBreakerTrip records a circuit breaker trip
func (m *Metrics) RecordCircuitBreakerTrip(name string) {
	if m == nil {
		return
	}
	m.CircuitBreakerTrips.WithLabelValues(m.serviceName, name).Inc()
}
