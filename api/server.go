package api

import (
	"context"
	"net"
	"net/http"
	"strconv"

	"github.com/malawski/cloudworkflowsimulator/config"
	"github.com/malawski/cloudworkflowsimulator/logger"
)

// Server represents the HTTP server for the validation API.
type Server struct {
	store      *ReportStore
	httpServer *http.Server
	handlers   *Handlers
}

// NewServer creates a new Server instance.
func NewServer(cfg *config.ServerConfig, opts Options) *Server {
	if opts.Retention == 0 {
		opts.Retention = cfg.Retention
	}
	store := NewReportStore()
	handlers := NewHandlers(store, opts)

	mux := http.NewServeMux()

	// Register routes using Go 1.22+ method routing
	mux.HandleFunc("POST /api/v1/validations", handlers.HandleCreateValidation)
	mux.HandleFunc("GET /api/v1/validations/{id}", handlers.HandleGetValidation)
	mux.HandleFunc("GET /api/v1/validators", handlers.HandleListValidators)

	return &Server{
		store:    store,
		handlers: handlers,
		httpServer: &http.Server{
			Addr:              net.JoinHostPort(cfg.HostOrDefault(), strconv.Itoa(cfg.PortOrDefault())),
			Handler:           mux,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
	}
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server.
// Blocks until the server is stopped or an error occurs.
func (s *Server) Start() error {
	logger.Logger.Infow("serving validation API", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Store returns the ReportStore for testing purposes.
func (s *Server) Store() *ReportStore {
	return s.store
}
