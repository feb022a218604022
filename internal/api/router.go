package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/9910597111/BlindSketch-Game/internal/api/handler"
	"github.com/9910597111/BlindSketch-Game/internal/api/middleware"
	"github.com/9910597111/BlindSketch-Game/internal/services/room"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	RoomRegistry *room.Registry
	WSHandler    http.Handler
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomRegistry)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/rooms/random", roomHandler.JoinRandom).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomHandler.Get).Methods(http.MethodGet)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// The websocket endpoint sits outside the logging middleware: its
	// requests are long-lived and logged by the session instead.
	r.Handle("/ws", cfg.WSHandler)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
