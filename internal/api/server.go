package api

import (
	"net/http"
	"time"

	"github.com/futig/ums-chatbot/internal/api/docs"
	"github.com/futig/ums-chatbot/internal/api/middleware"
	relayapi "github.com/futig/ums-chatbot/internal/api/relay"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins []string
	// RequestTimeout of zero installs no deadline middleware
	RequestTimeout time.Duration
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(relayHandler *relayapi.Handler, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)             // Recover from panics
	r.Use(chimiddleware.RequestID)             // Add request ID
	r.Use(middleware.Logger(logger))           // Log requests
	r.Use(middleware.CORS(cfg.AllowedOrigins)) // Handle CORS
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	relayapi.RegisterRoutes(r, relayHandler)

	return r
}
