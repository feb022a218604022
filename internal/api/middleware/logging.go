package middleware

import (
	"log/slog"
	"net/http"

	"github.com/9910597111/BlindSketch-Game/internal/middleware"
)

// Logging creates request logging middleware for the API
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Logging(logger)
}
