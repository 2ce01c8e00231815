package kafka

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Daksh-create349/stock-Master/pkg/cloudevents"
	"github.com/Daksh-create349/stock-Master/pkg/logging"
	"github.com/Daksh-create349/stock-Master/pkg/metrics"
	"github.com/Daksh-create349/stock-Master/pkg/resilience"
)

// ResilientProducer adds tracing, metrics, retries and a circuit breaker
// around a Producer.
type ResilientProducer struct {
	producer       *Producer
	circuitBreaker *resilience.CircuitBreaker
	retry          *resilience.RetryConfig
	metrics        *metrics.Metrics
	logger         *logging.Logger
	tracer         trace.Tracer
}

// NewResilientProducer wraps producer. m may be nil.
func NewResilientProducer(producer *Producer, m *metrics.Metrics, logger *logging.Logger) *ResilientProducer {
	config := resilience.DefaultCircuitBreakerConfig("kafka-producer")
	config.MaxRequests = 5
	config.OnStateChange = resilience.ReportState(m)

	return &ResilientProducer{
		producer:       producer,
		circuitBreaker: resilience.NewCircuitBreaker(config, logger.Logger),
		retry:          resilience.DefaultRetryConfig(),
		metrics:        m,
		logger:         logger,
		tracer:         otel.Tracer("kafka-producer"),
	}
}

// PublishEvent publishes an event through the breaker with retries
func (p *ResilientProducer) PublishEvent(ctx context.Context, topic string, event *cloudevents.CloudEvent) error {
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "kafka.publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("kafka"),
			semconv.MessagingDestinationNameKey.String(topic),
			attribute.String("messaging.event_type", event.Type),
			attribute.String("messaging.message_id", event.ID),
		),
	)
	defer span.End()

	err := resilience.Retry(ctx, p.retry, func() error {
		return p.circuitBreaker.Execute(ctx, func(ctx context.Context) error {
			return p.producer.PublishEvent(ctx, topic, event)
		})
	})

	duration := time.Since(start)
	if p.metrics != nil {
		p.metrics.RecordEventPublish(topic, event.Type, err == nil, duration)
	}
	p.logger.KafkaPublish(ctx, topic, event.Type, err == nil, duration)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

// Close closes the underlying producer
func (p *ResilientProducer) Close() error {
	return p.producer.Close()
}
