package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/interaction"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// InteractionMessage is the JSON value of one published interaction event.
type InteractionMessage struct {
	ID          string    `json:"id"`
	Surface     string    `json:"surface"`
	Kind        string    `json:"kind"`
	Year        int       `json:"year,omitempty"`
	Month       int       `json:"month"` // 0-based; January is 0
	Temperature float64   `json:"temperature"`
	Width       float64   `json:"width,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// messageWriter is the subset of *kafkago.Writer the EventWriter uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// EventWriter publishes chart interaction events to a Kafka topic. Writes are
// asynchronous: Publish never blocks the surface that produced the event, and
// delivery failures are only logged and counted.
type EventWriter struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
}

// NewEventWriter creates an async Kafka producer for the configured events topic.
func NewEventWriter(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *EventWriter {
	ew := &EventWriter{
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
	ew.writer = &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaEventsTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		BatchTimeout: 100 * time.Millisecond,
		Async:        true,
		Completion:   ew.completed,
	}
	return ew
}

// Publish queues e, keyed by the surface it happened on so one page's events
// stay ordered within a partition.
func (w *EventWriter) Publish(surface string, e interaction.Event) {
	msg, err := serializeToMessage(w.newMessage(surface, e))
	if err != nil {
		w.logger.Warn("serialize interaction event failed", "error", err)
		w.metrics.EventsPublished.WithLabelValues("error").Inc()
		return
	}
	// Async writers return immediately; the context only bounds enqueueing.
	if err := w.writer.WriteMessages(context.Background(), msg); err != nil {
		w.logger.Warn("queue interaction event failed", "error", err, "surface", surface)
		w.metrics.EventsPublished.WithLabelValues("error").Inc()
	}
}

func (w *EventWriter) completed(msgs []kafkago.Message, err error) {
	if err != nil {
		w.logger.Warn("publish interaction events failed", "error", err, "count", len(msgs))
		w.metrics.EventsPublished.WithLabelValues("error").Add(float64(len(msgs)))
		return
	}
	w.metrics.EventsPublished.WithLabelValues("success").Add(float64(len(msgs)))
}

// Close flushes pending messages and closes the producer.
func (w *EventWriter) Close() error {
	return w.writer.Close()
}

func (w *EventWriter) newMessage(surface string, e interaction.Event) InteractionMessage {
	return InteractionMessage{
		ID:          uuid.NewString(),
		Surface:     surface,
		Kind:        string(e.Kind),
		Year:        e.Year,
		Month:       e.Month,
		Temperature: e.Temperature,
		Width:       e.Width,
		OccurredAt:  w.clock.Now().UTC(),
	}
}

// serializeToMessage marshals an InteractionMessage into a Kafka message.
func serializeToMessage(m InteractionMessage) (kafkago.Message, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize interaction event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(m.Surface),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_kind", Value: []byte(m.Kind)},
			{Key: "occurred_at", Value: []byte(m.OccurredAt.Format(time.RFC3339))},
		},
	}, nil
}
