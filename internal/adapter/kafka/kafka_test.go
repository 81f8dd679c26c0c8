package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/temperature-heatmap/internal/config"
	"github.com/couchcryptid/temperature-heatmap/internal/interaction"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

type mockWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

var now = time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC)

func newTestWriter(mw *mockWriter) (*EventWriter, *observability.Metrics) {
	m := observability.NewMetricsForTesting()
	return &EventWriter{
		writer:  mw,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: m,
		clock:   clockwork.NewFakeClockAt(now),
	}, m
}

func TestSerializeToMessage(t *testing.T) {
	msg, err := serializeToMessage(InteractionMessage{
		ID:          "evt-1",
		Surface:     "surface-1",
		Kind:        "pointerenter",
		Year:        2000,
		Temperature: 7.5,
		OccurredAt:  now,
	})
	require.NoError(t, err)

	assert.Equal(t, []byte("surface-1"), msg.Key)
	assert.Contains(t, string(msg.Value), `"kind":"pointerenter"`)
	assert.Contains(t, string(msg.Value), `"year":2000`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_kind", msg.Headers[0].Key)
	assert.Equal(t, []byte("pointerenter"), msg.Headers[0].Value)
	assert.Equal(t, "occurred_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestEventWriter_Publish(t *testing.T) {
	mw := &mockWriter{}
	w, _ := newTestWriter(mw)

	w.Publish("surface-1", interaction.Event{Kind: interaction.EventResize, Width: 640})

	require.Len(t, mw.msgs, 1)
	var got InteractionMessage
	require.NoError(t, json.Unmarshal(mw.msgs[0].Value, &got))
	assert.Equal(t, "surface-1", got.Surface)
	assert.Equal(t, "resize", got.Kind)
	assert.Equal(t, 640.0, got.Width)
	assert.Equal(t, now, got.OccurredAt)
	_, err := uuid.Parse(got.ID)
	assert.NoError(t, err, "id should be a uuid")
}

func TestEventWriter_PublishJanuary(t *testing.T) {
	mw := &mockWriter{}
	w, _ := newTestWriter(mw)

	w.Publish("surface-1", interaction.Event{Kind: interaction.EventPointerEnter, Year: 2000, Month: 0, Temperature: 0})

	require.Len(t, mw.msgs, 1)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(mw.msgs[0].Value, &raw))
	require.Contains(t, raw, "month", "January (0) must not be dropped")
	assert.Equal(t, 0.0, raw["month"])
	require.Contains(t, raw, "temperature")
	assert.Equal(t, 0.0, raw["temperature"])
	assert.Equal(t, 2000.0, raw["year"])
}

func TestEventWriter_PublishQueueError(t *testing.T) {
	mw := &mockWriter{err: errors.New("writer closed")}
	w, m := newTestWriter(mw)

	w.Publish("surface-1", interaction.Event{Kind: interaction.EventPointerLeave})

	assert.InDelta(t, 1, testutil.ToFloat64(m.EventsPublished.WithLabelValues("error")), 0)
}

func TestEventWriter_Completion(t *testing.T) {
	w, m := newTestWriter(&mockWriter{})

	w.completed(make([]kafkago.Message, 3), nil)
	w.completed(make([]kafkago.Message, 2), errors.New("broker down"))

	assert.InDelta(t, 3, testutil.ToFloat64(m.EventsPublished.WithLabelValues("success")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.EventsPublished.WithLabelValues("error")), 0)
}

func TestNewEventWriter(t *testing.T) {
	cfg := &config.Config{KafkaBrokers: []string{"localhost:9092"}, KafkaEventsTopic: "chart-interactions"}
	w := NewEventWriter(cfg, slog.Default(), observability.NewMetricsForTesting())

	kw, ok := w.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "chart-interactions", kw.Topic)
	assert.True(t, kw.Async)

	mw := &mockWriter{}
	w.writer = mw
	require.NoError(t, w.Close())
	assert.True(t, mw.closed)
}
