// Package httpadapter serves the heat map over HTTP: the interactive page,
// standalone SVG renders, a dataset summary, the WebSocket interaction
// surface, and the health, readiness and metrics endpoints.
package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/interaction"
	"github.com/couchcryptid/temperature-heatmap/internal/observability"
)

// ChartProvider returns the built chart, or nil while it is still loading.
type ChartProvider interface {
	Chart() *chart.Chart
}

// Option configures a Server.
type Option func(*Server)

// WithRenderCacheSize bounds the number of cached renders.
func WithRenderCacheSize(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.renderCacheSize = n
		}
	}
}

// EventSink receives every interaction handled on any surface.
type EventSink interface {
	Publish(surface string, e interaction.Event)
}

// WithEventSink forwards every handled interaction to sink, after metrics.
func WithEventSink(sink EventSink) Option {
	return func(s *Server) { s.sink = sink }
}

// Server exposes the chart, its interaction surface, and the health,
// readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	metrics    *observability.Metrics
	charts     ChartProvider
	sink       EventSink

	renderCacheSize int
	renders         *renderCache
	upgrader        websocket.Upgrader

	mu       sync.Mutex
	sessions map[*session]struct{}
}

// NewServer creates an HTTP server with the chart, /ws, /healthz, /readyz,
// and /metrics routes.
func NewServer(addr string, charts ChartProvider, ready sharedobs.ReadinessChecker, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger:          logger,
		metrics:         metrics,
		charts:          charts,
		renderCacheSize: 64,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
		sessions: make(map[*session]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.renders = newRenderCache(s.renderCacheSize, metrics)

	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("GET /chart.svg", s.handleSVG)
	mux.HandleFunc("GET /api/dataset", s.handleDataset)
	mux.HandleFunc("GET /ws", s.handleSocket)
	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline
// and closes every open interaction surface.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	s.mu.Lock()
	for sess := range s.sessions {
		sess.close(websocket.CloseGoingAway, "server shutting down")
	}
	s.mu.Unlock()

	return err
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// readyChart returns the chart or answers 503.
func (s *Server) readyChart(w http.ResponseWriter) (*chart.Chart, bool) {
	c := s.charts.Chart()
	if c == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  "chart not built yet",
		})
		return nil, false
	}
	return c, true
}

func (s *Server) handlePage(w http.ResponseWriter, _ *http.Request) {
	c, ok := s.readyChart(w)
	if !ok {
		return
	}
	body, err := s.renders.getOrRender("html", func() ([]byte, error) {
		var buf bytes.Buffer
		err := c.WritePage(&buf, "/ws")
		return buf.Bytes(), err
	})
	if err != nil {
		s.renderFailed(w, "html", err)
		return
	}
	s.metrics.Renders.WithLabelValues("html").Inc()
	writeDocument(w, "text/html; charset=utf-8", c.LoadedAt, body)
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	c, ok := s.readyChart(w)
	if !ok {
		return
	}

	width := c.Layout.Width
	if v := r.URL.Query().Get("width"); v != "" {
		requested, err := strconv.ParseFloat(v, 64)
		if err != nil || requested <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "width must be a positive number"})
			return
		}
		width = interaction.FitWidth(requested, width)
	}

	key := "svg:" + strconv.FormatFloat(width, 'f', -1, 64)
	body, err := s.renders.getOrRender(key, func() ([]byte, error) {
		var buf bytes.Buffer
		err := c.WriteSVG(&buf, width)
		return buf.Bytes(), err
	})
	if err != nil {
		s.renderFailed(w, "svg", err)
		return
	}
	s.metrics.Renders.WithLabelValues("svg").Inc()
	writeDocument(w, "image/svg+xml", c.LoadedAt, body)
}

// DatasetSummary is the body of GET /api/dataset.
type DatasetSummary struct {
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	BaseTemperature float64   `json:"baseTemperature"`
	FirstYear       int       `json:"firstYear"`
	LastYear        int       `json:"lastYear"`
	MinTemperature  float64   `json:"minTemperature"`
	MaxTemperature  float64   `json:"maxTemperature"`
	Boundaries      []float64 `json:"boundaries"`
	Colors          []string  `json:"colors"`
	Cells           int       `json:"cells"`
	Skipped         int       `json:"skipped"`
	LoadedAt        time.Time `json:"loadedAt"`
}

// Summarize builds the dataset summary for c.
func Summarize(c *chart.Chart) DatasetSummary {
	years := c.Scales.X.Domain()
	sum := DatasetSummary{
		Title:           c.Title,
		Description:     c.Description,
		BaseTemperature: c.BaseTemperature,
		MinTemperature:  c.Scales.MinTemp,
		MaxTemperature:  c.Scales.MaxTemp,
		Boundaries:      c.Scales.Color.Boundaries(),
		Colors:          c.Scales.Color.Outputs(),
		Cells:           len(c.Grid.Cells),
		Skipped:         c.Grid.Skipped,
		LoadedAt:        c.LoadedAt,
	}
	if len(years) > 0 {
		sum.FirstYear, sum.LastYear = years[0], years[len(years)-1]
	}
	if sum.Boundaries == nil {
		sum.Boundaries = []float64{}
	}
	return sum
}

func (s *Server) handleDataset(w http.ResponseWriter, _ *http.Request) {
	c, ok := s.readyChart(w)
	if !ok {
		return
	}
	s.metrics.Renders.WithLabelValues("json").Inc()
	writeJSON(w, http.StatusOK, Summarize(c))
}

func (s *Server) handleSocket(w http.ResponseWriter, r *http.Request) {
	c, ok := s.readyChart(w)
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sess := newSession(conn, c, s.logger, s.observe)
	s.track(sess, true)
	defer s.track(sess, false)

	sess.run()
}

// observe is called by every session after its controller applied e.
func (s *Server) observe(surface string, e interaction.Event) {
	s.metrics.InteractionEvents.WithLabelValues(string(e.Kind)).Inc()
	if s.sink != nil {
		s.sink.Publish(surface, e)
	}
}

func (s *Server) track(sess *session, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.sessions[sess] = struct{}{}
		s.metrics.ActiveSurfaces.Inc()
		return
	}
	delete(s.sessions, sess)
	s.metrics.ActiveSurfaces.Dec()
}

func (s *Server) renderFailed(w http.ResponseWriter, format string, err error) {
	s.logger.Error("render failed", "format", format, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("render %s failed", format)})
}

func writeDocument(w http.ResponseWriter, contentType string, modified time.Time, body []byte) {
	w.Header().Set("Content-Type", contentType)
	if !modified.IsZero() {
		w.Header().Set("Last-Modified", modified.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body) //nolint:errcheck // client went away
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
