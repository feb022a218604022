package ws

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/9910597111/BlindSketch-Game/internal/services/room"
)

// Handler upgrades HTTP requests to websocket sessions
type Handler struct {
	hub      *Hub
	registry *room.Registry
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates a websocket handler bound to the hub and room registry
func NewHandler(hub *Hub, registry *room.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// The game is origin-agnostic; rooms are guarded by their codes.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	socket, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	conn := newConnection(socket, h.logger)
	go conn.writePump()

	sess := newSession(h.hub, h.registry, conn, h.logger)
	sess.run(r.Context())
}
