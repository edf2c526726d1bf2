package session

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"calcpad/internal/engine"
	"calcpad/internal/handlers"
	"calcpad/internal/keymap"
	"calcpad/internal/observability"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsInbound is one client message: a raw key, a semantic event, or a
// ping.
type wsInbound struct {
	Type  string        `json:"type"` // "key", "event", "ping"
	Key   string        `json:"key,omitempty"`
	Event *engine.Event `json:"event,omitempty"`
}

// wsOutbound is a server frame. After every applied input the server
// pushes a "display" frame; rejected inputs produce an "error" frame
// without closing the connection.
type wsOutbound struct {
	Type      string    `json:"type"` // "display", "error", "pong"
	Primary   string    `json:"primary,omitempty"`
	Secondary string    `json:"secondary,omitempty"`
	Error     bool      `json:"error,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

func displayFrame(snap Snapshot) wsOutbound {
	return wsOutbound{
		Type:      "display",
		Primary:   snap.Primary,
		Secondary: snap.Secondary,
		Error:     snap.Error,
		Timestamp: time.Now(),
	}
}

// Stream handles GET /sessions/{sessionID}/ws: a live calculator
// connection. The client sends keystrokes or semantic events and
// receives a display frame after each one.
func (a *API) Stream(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	id := chi.URLParam(r, "sessionID")
	s, ok := a.mgr.Get(id)
	if !ok {
		handlers.WriteError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	logger = logger.With(zap.String("session_id", s.ID))
	logger.Info("websocket connected")

	// Initial frame so the client can render without a keystroke.
	if err := conn.WriteJSON(displayFrame(s.Snapshot())); err != nil {
		return
	}

	for {
		var msg wsInbound
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket closed unexpectedly", zap.Error(err))
			}
			return
		}

		var out wsOutbound
		switch msg.Type {
		case "ping":
			out = wsOutbound{Type: "pong", Timestamp: time.Now()}

		case "key":
			ev, err := keymap.Translate(msg.Key)
			if err != nil {
				out = wsOutbound{Type: "error", Message: err.Error(), Timestamp: time.Now()}
				break
			}
			out = a.applyOne(r, s, ev)

		case "event":
			if msg.Event == nil {
				out = wsOutbound{Type: "error", Message: "event message missing event payload", Timestamp: time.Now()}
				break
			}
			out = a.applyOne(r, s, *msg.Event)

		default:
			out = wsOutbound{Type: "error", Message: "unknown message type", Timestamp: time.Now()}
		}

		if err := conn.WriteJSON(out); err != nil {
			return
		}
	}
}

func (a *API) applyOne(r *http.Request, s *Session, ev engine.Event) wsOutbound {
	snap, err := s.Apply([]engine.Event{ev})
	if err != nil {
		errorCounter.Add(r.Context(), 1, metric.WithAttributes(attribute.String("operation", "stream")))
		return wsOutbound{Type: "error", Message: err.Error(), Timestamp: time.Now()}
	}
	eventsCounter.Add(r.Context(), 1, metric.WithAttributes(attribute.String("operation", "stream")))
	return displayFrame(snap)
}
