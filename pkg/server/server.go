package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"flowgate-hq/bpmnlint/pkg/config"
	"flowgate-hq/bpmnlint/pkg/history"
	"flowgate-hq/bpmnlint/pkg/registry"
	"flowgate-hq/bpmnlint/pkg/source"
	"flowgate-hq/bpmnlint/pkg/telemetry/health"
	"flowgate-hq/bpmnlint/pkg/telemetry/logging"
	"flowgate-hq/bpmnlint/pkg/telemetry/metrics"
	"flowgate-hq/bpmnlint/pkg/telemetry/tracing"
)

// Server is the HTTP validation service. It validates diagrams posted to
// /v1/validate, serves the tracked diagram registry, and optionally
// re-lints registered diagram sources on a cron schedule.
type Server struct {
	config     *config.Config
	logger     *logging.Logger
	collector  *metrics.Collector
	tracer     *tracing.Tracer
	checker    *health.Checker
	recorder   *history.Recorder
	registry   registry.Backend
	source     source.Source
	relint     *Relinter
	httpServer *http.Server

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// Deps bundles the services the server works with. All fields are
// optional except Logger; nil fields disable the corresponding feature.
type Deps struct {
	Logger    *logging.Logger
	Collector *metrics.Collector
	Tracer    *tracing.Tracer
	Checker   *health.Checker
	Recorder  *history.Recorder
	Registry  registry.Backend
	Source    source.Source
}

// New creates a validation server.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	s := &Server{
		config:       cfg,
		logger:       deps.Logger.With("component", "server"),
		collector:    deps.Collector,
		tracer:       deps.Tracer,
		checker:      deps.Checker,
		recorder:     deps.Recorder,
		registry:     deps.Registry,
		source:       deps.Source,
		shutdownChan: make(chan struct{}),
	}

	if cfg.Server.RelintSchedule != "" {
		relint, err := NewRelinter(cfg, s, deps.Logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create re-lint scheduler: %w", err)
		}
		s.relint = relint
	}

	return s, nil
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.Handler()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	if s.config.Server.TLS.Enabled {
		tlsConfig, err := s.configureTLS()
		if err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	if s.relint != nil {
		if err := s.relint.Start(ctx); err != nil {
			return fmt.Errorf("failed to start re-lint scheduler: %w", err)
		}
	}

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("starting validation server",
			"address", s.config.Server.ListenAddress,
			"tls_enabled", s.config.Server.TLS.Enabled,
		)

		var err error
		if s.config.Server.TLS.Enabled {
			err = s.httpServer.ListenAndServeTLS(
				s.config.Server.TLS.CertFile,
				s.config.Server.TLS.KeyFile,
			)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-ctx.Done():
		s.logger.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		s.logger.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		s.logger.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		s.logger.Info("initiating graceful shutdown",
			"timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.relint != nil {
			s.relint.Stop()
		}

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				s.logger.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		s.logger.Info("validation server stopped")
	})

	return shutdownErr
}

// Stop requests shutdown from another goroutine.
func (s *Server) Stop() {
	select {
	case s.shutdownChan <- struct{}{}:
	default:
	}
}

// Handler returns the configured HTTP handler with the full middleware
// chain applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/validate", s.handleValidate)
	mux.HandleFunc("/v1/diagrams", s.handleDiagrams)

	if s.checker != nil {
		mux.Handle("/healthz", s.checker.LivenessHandler())
		mux.Handle("/readyz", s.checker.ReadinessHandler())
	}

	if s.collector != nil && s.collector.Enabled() {
		path := s.config.Telemetry.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, s.collector.Handler())
	}

	var handler http.Handler = mux
	if s.collector != nil {
		handler = MetricsMiddleware(s.collector)(handler)
	}
	handler = LoggingMiddleware(s.logger)(handler)
	if s.tracer != nil && s.tracer.Enabled() {
		handler = tracing.HTTPMiddleware(handler)
	}
	handler = RequestIDMiddleware(handler)
	handler = RecoveryMiddleware(s.logger)(handler)

	return handler
}

// IsRunning reports whether the server is accepting requests.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *Server) configureTLS() (*tls.Config, error) {
	cfg := s.config.Server.TLS

	if cfg.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file not specified")
	}
	if cfg.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file not specified")
	}
	if _, err := os.Stat(cfg.CertFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS cert file not found: %s", cfg.CertFile)
	}
	if _, err := os.Stat(cfg.KeyFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS key file not found: %s", cfg.KeyFile)
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS13,
		CipherSuites: []uint16{
			tls.TLS_AES_128_GCM_SHA256,
			tls.TLS_AES_256_GCM_SHA384,
			tls.TLS_CHACHA20_POLY1305_SHA256,
		},
	}, nil
}
