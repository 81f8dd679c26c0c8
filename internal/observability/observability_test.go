package observability

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "json")

	logger.Debug("chart built", "cells", 3153)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "chart built", entry["msg"])
	assert.Equal(t, "DEBUG", entry["level"])
	assert.InDelta(t, 3153, entry["cells"], 0)
}

func TestNewLogger_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "warn", "text")

	logger.Info("dropped")
	logger.Warn("kept", "key", "value")

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "msg=kept")
	assert.Contains(t, out, "key=value")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestNewMetricsForTesting(t *testing.T) {
	m := NewMetricsForTesting()

	m.DatasetFetches.WithLabelValues("http", "success").Inc()
	m.InteractionEvents.WithLabelValues("pointerenter").Add(2)
	m.ChartReady.Set(1)

	assert.InDelta(t, 1, testutil.ToFloat64(m.DatasetFetches.WithLabelValues("http", "success")), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.InteractionEvents.WithLabelValues("pointerenter")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ChartReady), 0)
}
