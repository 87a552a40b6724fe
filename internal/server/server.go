// Package server provides the HTTP API for HomeMatch.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/homematch/homematch/internal/config"
	"github.com/homematch/homematch/internal/inventory"
	"github.com/homematch/homematch/internal/matching"
)

// Server is the HTTP server for the HomeMatch API.
type Server struct {
	engine   *matching.Engine
	store    inventory.Store
	index    *inventory.KeywordIndex
	config   *config.ServerConfig
	matching *config.MatchingConfig
	logger   *zap.Logger
	server   *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	engine *matching.Engine,
	store inventory.Store,
	index *inventory.KeywordIndex,
	serverCfg *config.ServerConfig,
	matchingCfg *config.MatchingConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		engine:   engine,
		store:    store,
		index:    index,
		config:   serverCfg,
		matching: matchingCfg,
		logger:   logger,
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/v1/recommendations", s.handleRecommend)
	r.Post("/api/v1/listings", s.handleCreateListing)
	r.Get("/api/v1/listings", s.handleListListings)
	r.Get("/api/v1/listings/search", s.handleSearchListings)
	r.Get("/api/v1/listings/{id}", s.handleGetListing)
	r.Delete("/api/v1/listings/{id}", s.handleDeleteListing)
	r.Get("/health", s.handleHealth)
	r.Get("/status", s.handleStatus)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
