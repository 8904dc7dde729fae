package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sggmico/skitchen/internal/catalog"
)

const pingInterval = 30 * time.Second

// EventsHandler streams catalog change events over a websocket so that menu
// views can re-render after every successful mutation.
type EventsHandler struct {
	store    *catalog.Store
	log      *slog.Logger
	upgrader websocket.Upgrader
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(store *catalog.Store, log *slog.Logger) *EventsHandler {
	return &EventsHandler{
		store: store,
		log:   log,
		upgrader: websocket.Upgrader{
			// The REST surface already allows all origins through CORS;
			// the event feed is read-only so it follows the same policy.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// ServeHTTP handles GET /api/events
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	events, cancel := h.store.Subscribe()
	defer cancel()

	// The client never sends payloads; reading only detects disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ping.C:
			deadline := time.Now().Add(5 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
