// Package server exposes the annotation engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"yomi/api"
)

// Server is the yomi HTTP server.
type Server struct {
	httpServer *http.Server
	registry   *api.Registry
	logger     *slog.Logger

	mu      sync.RWMutex
	running bool
}

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 8080)
	Port string
	Deps *Deps
}

// Endpoints returns every endpoint served for deps.
func Endpoints(deps *Deps) []api.Endpoint {
	return []api.Endpoint{
		&HealthEndpoint{Deps: deps},
		&AnnotateEndpoint{Deps: deps},
		&UploadEndpoint{Deps: deps},
		&RenderEndpoint{Deps: deps},
	}
}

// New creates a new Server with the given configuration.
func New(cfg Config) (*Server, error) {
	if cfg.Deps == nil || cfg.Deps.Assembler == nil {
		return nil, errors.New("server needs an assembler")
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Deps.Logger == nil {
		cfg.Deps.Logger = slog.Default()
	}

	s := &Server{
		registry: api.NewRegistry(),
		logger:   cfg.Deps.Logger,
	}
	for _, ep := range Endpoints(cfg.Deps) {
		s.registry.Register(ep)
	}

	mux := http.NewServeMux()
	s.registry.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute, // OCR polling can take a while
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the server's listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves HTTP until ctx is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}
	s.running = true
	s.mu.Unlock()
	defer s.setNotRunning()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
	}
	return s.shutdown()
}

func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) setNotRunning() {
	s.mu.Lock()
	s.running = false
	s.mu.Unlock()
}

// IsRunning returns whether the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

type statusRecorder struct {
	http.ResponseWriter
	status   int
	writeErr error
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withLogging logs one line per request.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		if rec.writeErr != nil {
			s.logger.Warn("failed to write response", "method", r.Method, "path", r.URL.Path,
				"error", rec.writeErr)
		}
		s.logger.Info("request", "method", r.Method, "path", r.URL.Path,
			"status", rec.status, "duration", time.Since(start))
	})
}
