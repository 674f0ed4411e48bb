package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dutch/internal/services/ledger"
	"github.com/KirkDiggler/dutch/internal/services/messaging"
)

// Config holds configuration for the HTTP handler
type Config struct {
	Ledger    ledger.Service
	Messaging messaging.Service
	Logger    *zap.Logger
}

// Handler serves the score tracker over JSON
type Handler struct {
	ledger    ledger.Service
	messaging messaging.Service
	logger    *zap.Logger
}

// New creates a new HTTP handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Ledger == nil {
		return nil, errors.New("ledger service cannot be nil")
	}

	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Handler{
		ledger:    cfg.Ledger,
		messaging: cfg.Messaging,
		logger:    logger,
	}, nil
}

// Router builds a chi router with the standard middleware stack
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(15 * time.Second))

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes mounts the API routes on r
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Route("/game", func(r chi.Router) {
			r.Get("/", h.getGame)
			r.Post("/", h.createGame)
			r.Delete("/", h.resetGame)
			r.Get("/active", h.hasActiveGame)
			r.Post("/rounds", h.addRound)
			r.Delete("/rounds/last", h.undoLastRound)
			r.Post("/continue", h.continueGame)
		})
		r.Get("/history", h.listHistory)
		r.Delete("/history", h.clearHistory)
	})
}
