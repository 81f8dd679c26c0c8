package httpadapter

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/couchcryptid/temperature-heatmap/internal/chart"
	"github.com/couchcryptid/temperature-heatmap/internal/interaction"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 4096
)

// clientMessage is an event forwarded by the page script.
type clientMessage struct {
	Type string `json:"type"`

	// pointerenter; X and Y are viewport (client) coordinates, the same
	// space as the bounds set by resize.
	Year  int     `json:"year"`
	Month int     `json:"month"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	TW    float64 `json:"tw"` // measured tooltip size, 0 until it has content
	TH    float64 `json:"th"`

	// resize
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	ViewportWidth float64 `json:"viewportWidth"`
}

type tooltipMessage struct {
	Type      string   `json:"type"`
	Visible   bool     `json:"visible"`
	Year      int      `json:"year,omitempty"`
	Month     int      `json:"month"`
	Lines     []string `json:"lines,omitempty"`
	Left      float64  `json:"left"`
	Top       float64  `json:"top"`
	Color     string   `json:"color,omitempty"`
	TextColor string   `json:"textColor,omitempty"`
}

type resizeMessage struct {
	Type  string  `json:"type"`
	Width float64 `json:"width"`
}

// session is one browser page acting as an interaction.Surface. Every event
// is handled on the read goroutine: the controller calls back into the
// session, which queues outgoing messages and flushes them before the next
// read, so replies leave in event order.
type session struct {
	id     string
	conn   *websocket.Conn
	chart  *chart.Chart
	ctrl   *interaction.Controller
	logger *slog.Logger

	viewport    interaction.Rect
	tooltipSize interaction.Size
	pending     []any
}

func newSession(conn *websocket.Conn, c *chart.Chart, logger *slog.Logger, observe func(surface string, e interaction.Event)) *session {
	s := &session{
		id:    uuid.NewString(),
		conn:  conn,
		chart: c,
		viewport: interaction.Rect{
			MaxX: c.Layout.Width,
			MaxY: c.Layout.Height,
		},
	}
	s.logger = logger.With("session", s.id)

	s.ctrl = interaction.NewController(s, c.Layout, interaction.WithObserver(
		interaction.ObserverFunc(func(e interaction.Event) { observe(s.id, e) }),
	))
	return s
}

// Bounds implements interaction.Surface.
func (s *session) Bounds() interaction.Rect { return s.viewport }

// TooltipSize implements interaction.Surface.
func (s *session) TooltipSize() interaction.Size { return s.tooltipSize }

// ShowTooltip implements interaction.Surface.
func (s *session) ShowTooltip(t interaction.Tooltip) {
	s.pending = append(s.pending, tooltipMessage{
		Type:      "tooltip",
		Visible:   true,
		Year:      t.Year,
		Month:     t.Month,
		Lines:     t.Lines,
		Left:      t.Left,
		Top:       t.Top,
		Color:     t.Color,
		TextColor: t.TextColor,
	})
}

// HideTooltip implements interaction.Surface.
func (s *session) HideTooltip() {
	s.pending = append(s.pending, tooltipMessage{Type: "tooltip"})
}

// SetWidth implements interaction.Surface.
func (s *session) SetWidth(width float64) {
	s.pending = append(s.pending, resizeMessage{Type: "resize", Width: width})
}

func (s *session) run() {
	defer s.conn.Close()
	s.conn.SetReadLimit(maxMessageSize)
	s.logger.Debug("surface connected", "remote", s.conn.RemoteAddr().String())

	for {
		var msg clientMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("surface read failed", "error", err)
			}
			s.logger.Debug("surface disconnected")
			return
		}
		s.handle(msg)
		if err := s.flush(); err != nil {
			s.logger.Warn("surface write failed", "error", err)
			return
		}
	}
}

func (s *session) handle(msg clientMessage) {
	switch msg.Type {
	case "pointerenter":
		s.tooltipSize = interaction.Size{Width: msg.TW, Height: msg.TH}
		cell, ok := s.chart.Grid.Lookup(msg.Year, msg.Month)
		if !ok {
			s.logger.Debug("pointer over unknown cell", "year", msg.Year, "month", msg.Month)
			s.ctrl.PointerLeave()
			return
		}
		s.ctrl.PointerEnter(cell, interaction.Point{X: msg.X, Y: msg.Y})
	case "pointerleave":
		s.ctrl.PointerLeave()
	case "resize":
		s.resizeViewport(msg)
		s.ctrl.Resize(msg.Width)
	default:
		s.logger.Debug("unknown message type", "type", msg.Type)
	}
}

func (s *session) resizeViewport(msg clientMessage) {
	w := msg.ViewportWidth
	if w <= 0 {
		w = msg.Width
	}
	if w > 0 {
		s.viewport.MaxX = s.viewport.MinX + w
	}
	if msg.Height > 0 {
		s.viewport.MaxY = s.viewport.MinY + msg.Height
	}
}

func (s *session) flush() error {
	defer func() { s.pending = s.pending[:0] }()
	for _, m := range s.pending {
		if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		if err := s.conn.WriteJSON(m); err != nil {
			return err
		}
	}
	return nil
}

func (s *session) close(code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	err := s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	if err != nil && !errors.Is(err, websocket.ErrCloseSent) {
		s.logger.Debug("close message failed", "error", err)
	}
	s.conn.Close()
}
