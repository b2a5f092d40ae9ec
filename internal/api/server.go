// Package api exposes the bridge's HTTP status and control surface.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jdavidberger/depthai-ros/internal/bridge"
	"github.com/jdavidberger/depthai-ros/internal/version"
)

// Server is the Huma v2 API server fronting one pipeline bridge.
type Server struct {
	api        huma.API
	mux        *http.ServeMux
	httpServer *http.Server
	bridge     *bridge.PipelinePublisher
	logger     *slog.Logger
}

// NewServer creates the API server and registers all routes.
func NewServer(b *bridge.PipelinePublisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()
	cfg := huma.DefaultConfig("DepthAI Bridge", version.Get().Version)
	s := &Server{
		api:    humago.New(mux, cfg),
		mux:    mux,
		bridge: b,
		logger: logger.With("component", "api"),
	}

	mux.Handle("/metrics", promhttp.Handler())
	s.registerPublisherRoutes()
	s.registerControlRoutes()
	s.registerSystemRoutes()
	return s
}

// Start runs the HTTP server on the given address. Blocks until shutdown.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
