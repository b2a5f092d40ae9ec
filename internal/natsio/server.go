package natsio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats-server/v2/server"
)

// ServerOptions configures the embedded NATS server used in standalone mode.
type ServerOptions struct {
	Port   int
	Host   string
	Name   string
	Logger *slog.Logger
}

// Server wraps an embedded NATS server.
type Server struct {
	ns     *server.Server
	opts   ServerOptions
	logger *slog.Logger
}

// NewServer creates an embedded NATS server with sensible defaults.
func NewServer(opts ServerOptions) *Server {
	if opts.Port == 0 {
		opts.Port = 4222
	}
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Name == "" {
		opts.Name = "depthai-bridge"
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		opts:   opts,
		logger: logger.With("component", "nats-server"),
	}
}

// Start launches the server and waits until it accepts connections.
func (s *Server) Start() error {
	nsOpts := &server.Options{
		Host:       s.opts.Host,
		Port:       s.opts.Port,
		ServerName: s.opts.Name,
		NoLog:      true,
		NoSigs:     true,
		MaxPayload: 8 * 1024 * 1024, // full-resolution frames ride the bus
	}

	ns, err := server.NewServer(nsOpts)
	if err != nil {
		return fmt.Errorf("create NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(5 * time.Second) {
		ns.Shutdown()
		return fmt.Errorf("NATS server not ready on %s:%d", s.opts.Host, s.opts.Port)
	}

	s.ns = ns
	s.logger.Info("embedded NATS server ready", "host", s.opts.Host, "port", s.opts.Port)
	return nil
}

// ClientURL returns the URL local clients should dial.
func (s *Server) ClientURL() string {
	if s.ns != nil {
		return s.ns.ClientURL()
	}
	return fmt.Sprintf("nats://%s:%d", s.opts.Host, s.opts.Port)
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s.ns != nil {
		s.ns.Shutdown()
		s.ns.WaitForShutdown()
		s.logger.Info("embedded NATS server stopped")
	}
}
