// Package server exposes a running heartbeat over HTTP: Prometheus metrics,
// a health check, and a websocket stream of beats.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/lacquerai/heartbeat/internal/heartbeat"
)

// Config holds the server configuration
type Config struct {
	Addr            string
	EnableCORS      bool
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a default server configuration
func DefaultConfig() *Config {
	return &Config{
		Addr:            "localhost:9090",
		EnableCORS:      true,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Server serves metrics and the beat stream for one driver.
type Server struct {
	config   *Config
	registry *prometheus.Registry
	metrics  *Metrics
	hub      *Hub
	server   *http.Server
	listener net.Listener
	upgrader websocket.Upgrader
	beats    atomic.Uint64
}

// New creates a server with its own Prometheus registry. A nil config uses
// DefaultConfig.
func New(config *Config) (*Server, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Addr == "" {
		return nil, errors.New("server address cannot be empty")
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("registering go collector: %w", err)
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("registering process collector: %w", err)
	}

	s := &Server{
		config:   config,
		registry: registry,
		metrics:  NewMetricsWithRegistry(registry),
		hub:      NewHub(),
	}
	// Without CORS the upgrader keeps its default same-origin check.
	if config.EnableCORS {
		s.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	}

	return s, nil
}

// Observe records a beat. It is a heartbeat.Observer.
func (s *Server) Observe(b heartbeat.Beat) {
	s.beats.Store(b.Sequence)
	s.metrics.Observe(b)
	s.hub.Publish(b)
}

// Handler returns the server's router.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	if s.config.EnableCORS {
		router.Use(allowAnyOrigin)
	}
	router.Use(logRequests)

	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods("GET")
	router.HandleFunc("/healthz", s.healthCheck).Methods("GET")
	router.HandleFunc("/ws", s.streamBeats).Methods("GET")

	return router
}

// Start listens on the configured address and serves in the background.
// Listen errors are returned; serve errors after that are logged.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr, err)
	}
	s.listener = listener

	s.server = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	log.Info().
		Str("addr", s.Addr()).
		Bool("cors", s.config.EnableCORS).
		Msg("Starting heartbeat server")

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server stopped unexpectedly")
		}
	}()

	return nil
}

// Stop closes all beat streams and shuts the HTTP server down.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Close()

	if s.server == nil {
		return nil
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.ShutdownTimeout)
		defer cancel()
	}

	log.Info().Msg("Shutting down server...")
	return s.server.Shutdown(ctx)
}

// Addr returns the address the server listens on, resolving port 0 once
// started.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// Beats returns the sequence number of the last observed beat.
func (s *Server) Beats() uint64 {
	return s.beats.Load()
}
