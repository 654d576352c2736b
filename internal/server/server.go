// ABOUTME: HTTP server setup for the conversion API
// ABOUTME: Builds the chi router with metrics middleware and manages lifecycle

// Package server provides the HTTP API for eci2ecef.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/harper/eci2ecef/internal/frames"
	"github.com/harper/eci2ecef/internal/metrics"
	"github.com/harper/eci2ecef/internal/storage"
	"go.uber.org/zap"
)

// Server is the HTTP server for the conversion API.
type Server struct {
	repo   storage.Repository
	model  frames.Model
	logger *zap.Logger
	server *http.Server
}

// NewServer creates a server. model is used when a request does not name one.
func NewServer(repo storage.Repository, model frames.Model, logger *zap.Logger) (*Server, error) {
	if repo == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if _, err := frames.ParseModel(string(model)); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		repo:   repo,
		model:  model,
		logger: logger,
	}, nil
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/api/v1/convert", s.handleConvert)
	r.Get("/api/v1/conversions", s.handleListConversions)
	r.Post("/api/v1/conversions", s.handleCreateConversion)
	r.Get("/api/v1/conversions/{id}", s.handleGetConversion)
	r.Delete("/api/v1/conversions/{id}", s.handleDeleteConversion)
	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", metrics.Handler())

	return r
}

// Start listens on addr and blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.logger.Info("Starting server", zap.String("addr", addr), zap.String("model", string(s.model)))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
