package console

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/ashureev/ledgerbot/internal/bot"
	"github.com/ashureev/ledgerbot/internal/domain"
)

const frameTimeout = 30 * time.Second

// Events reacts to console frames. *bot.Controller implements it.
type Events interface {
	Start(ctx context.Context, r bot.Responder, activity domain.Activity)
	Activate(ctx context.Context, r bot.Responder, messageID, controlID string)
	Submit(ctx context.Context, r bot.Responder, rawTag, value string)
}

// Handler upgrades console connections and feeds their frames to Events.
type Handler struct {
	hub            *Hub
	events         Events
	originPatterns []string
}

// NewHandler creates a console WebSocket handler. originPatterns are passed to
// the upgrader; an empty list accepts same-origin requests only.
func NewHandler(hub *Hub, events Events, originPatterns ...string) *Handler {
	return &Handler{hub: hub, events: events, originPatterns: originPatterns}
}

// ServeHTTP implements http.Handler for WebSocket upgrade.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "ip", r.RemoteAddr)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "console closed"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr)
		}
	}()

	c := &client{id: uuid.NewString(), conn: ws}
	h.hub.Register(c)
	defer h.hub.Unregister(c)

	ctx := r.Context()
	if err := c.send(ctx, Frame{Type: FrameHello, ClientID: c.id}); err != nil {
		slog.Debug("Failed to send hello", "client_id", c.id, "error", err)
		return
	}
	h.readLoop(ctx, c)
}

func (h *Handler) readLoop(ctx context.Context, c *client) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) != -1 {
				slog.Debug("WebSocket closed by client", "client_id", c.id)
			} else if ctx.Err() == nil {
				slog.Warn("WebSocket read error", "error", err, "client_id", c.id)
			}
			return
		}

		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			h.reject(ctx, c, "invalid_frame")
			continue
		}
		h.handle(ctx, c, f)
	}
}

func (h *Handler) handle(ctx context.Context, c *client, f Frame) {
	ctx, cancel := context.WithTimeout(ctx, frameTimeout)
	defer cancel()

	r := &responder{hub: h.hub, origin: c}
	switch f.Type {
	case FrameStart:
		activity, ok := parseActivity(f.Activity)
		if !ok {
			h.reject(ctx, c, "unknown_activity")
			return
		}
		h.events.Start(ctx, r, activity)
	case FrameActivate:
		h.events.Activate(ctx, r, f.MessageID, f.ControlID)
	case FrameSubmit:
		h.events.Submit(ctx, r, f.Tag, f.Value)
	case FramePing:
		if err := c.send(ctx, Frame{Type: FramePong}); err != nil {
			slog.Debug("Failed to send pong", "error", err)
		}
	default:
		h.reject(ctx, c, "unknown_frame_type")
	}
}

func (h *Handler) reject(ctx context.Context, c *client, code string) {
	if err := c.send(ctx, Frame{Type: FrameError, Error: code}); err != nil {
		slog.Debug("Failed to send error frame", "client_id", c.id, "error", err)
	}
}

// parseActivity accepts a command name ("diamonds") or an activity name
// ("Currency").
func parseActivity(v string) (domain.Activity, bool) {
	if a, ok := domain.ParseCommand(v); ok {
		return a, true
	}
	a := domain.Activity(v)
	return a, a.Valid()
}
