package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Daksh-create349/stock-Master/pkg/cloudevents"
)

// MessageWriter is the subset of *kafka.Writer the producer needs
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// WriterFactory builds the writer for one topic
type WriterFactory func(config *Config, topic string) MessageWriter

// Producer publishes CloudEvents to Kafka, one writer per topic
type Producer struct {
	mu        sync.Mutex
	writers   map[string]MessageWriter
	config    *Config
	newWriter WriterFactory
}

// NewProducer creates a new Kafka producer
func NewProducer(config *Config) *Producer {
	return NewProducerWithFactory(config, newKafkaWriter)
}

// NewProducerWithFactory creates a producer with a custom writer factory
func NewProducerWithFactory(config *Config, factory WriterFactory) *Producer {
	return &Producer{
		writers:   make(map[string]MessageWriter),
		config:    config,
		newWriter: factory,
	}
}

func newKafkaWriter(config *Config, topic string) MessageWriter {
	return &kafka.Writer{
		Addr:         kafka.TCP(config.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    config.BatchSize,
		BatchTimeout: config.BatchTimeout,
		RequiredAcks: kafka.RequiredAcks(config.RequiredAcks),
		WriteTimeout: config.WriteTimeout,
		Transport:    &kafka.Transport{ClientID: config.ClientID},
	}
}

func (p *Producer) writer(topic string) MessageWriter {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := p.newWriter(p.config, topic)
	p.writers[topic] = w
	return w
}

// PublishEvent publishes a CloudEvent in structured mode with ce-* headers.
// The subject is the message key so events for one entity stay ordered.
func (p *Producer) PublishEvent(ctx context.Context, topic string, event *cloudevents.CloudEvent) error {
	msg, err := toMessage(event)
	if err != nil {
		return err
	}

	if err := p.writer(topic).WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event to topic %s: %w", topic, err)
	}
	return nil
}

func toMessage(event *cloudevents.CloudEvent) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Subject),
		Value: data,
		Headers: []kafka.Header{
			{Key: "ce-specversion", Value: []byte(event.SpecVersion)},
			{Key: "ce-type", Value: []byte(event.Type)},
			{Key: "ce-source", Value: []byte(event.Source)},
			{Key: "ce-id", Value: []byte(event.ID)},
			{Key: "ce-time", Value: []byte(event.Time.Format(time.RFC3339))},
			{Key: "content-type", Value: []byte(event.DataContentType)},
		},
		Time: event.Time,
	}
	if event.CorrelationID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "ce-stockcorrelationid", Value: []byte(event.CorrelationID)})
	}
	if event.Warehouse != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "ce-stockwarehouse", Value: []byte(event.Warehouse)})
	}
	return msg, nil
}

// Close closes all writers
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			lastErr = fmt.Errorf("failed to close writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]MessageWriter)
	return lastErr
}
