// Package service wires configuration, the dataset loader and the HTTP
// server into the running dashboard.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"repodash/config"
	"repodash/dataset"
	"repodash/db"
	"repodash/logger"
	"repodash/models"
	"repodash/render"
	"repodash/server"
)

// Service errors
var (
	ErrServiceInit     = fmt.Errorf("service initialization error")
	ErrServiceShutdown = fmt.Errorf("service shutdown error")
)

// Service represents the main application service
type Service struct {
	config *config.Config
	loader *dataset.Loader
	closer io.Closer
}

// NewSource opens the dataset source named by cfg. The closer is nil for
// sources without resources to release.
func NewSource(cfg *config.Config) (dataset.Source, io.Closer, error) {
	switch cfg.DatasetSource {
	case config.SourcePostgres:
		database, err := db.New()
		if err != nil {
			return nil, nil, err
		}
		return database, database, nil
	default:
		return dataset.CSVSource{}, nil, nil
	}
}

// NewService creates a new service instance
func NewService(cfg *config.Config) (*Service, error) {
	source, closer, err := NewSource(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open dataset source: %v", ErrServiceInit, err)
	}

	logger.Info("Service initialized successfully",
		zap.String("dataset_source", cfg.DatasetSource),
		zap.String("dataset_path", cfg.DatasetPath))

	return newService(cfg, source, closer), nil
}

func newService(cfg *config.Config, source dataset.Source, closer io.Closer) *Service {
	return &Service{
		config: cfg,
		loader: dataset.NewLoader(source),
		closer: closer,
	}
}

// Dataset loads the configured dataset through the shared cache.
func (s *Service) Dataset(ctx context.Context) (*models.Dataset, error) {
	return s.loader.Load(ctx, s.config.DatasetPath)
}

// RenderOptions returns the configured chart size.
func (s *Service) RenderOptions() render.Options {
	return render.Options{Width: s.config.ChartWidth, Height: s.config.ChartHeight}
}

// Start loads the dataset and serves the dashboard until ctx is cancelled
// or the process receives SIGINT or SIGTERM.
func (s *Service) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("%w: failed to listen on %s: %v", ErrServiceInit, s.config.ListenAddr, err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.serve(ctx, ln)
}

func (s *Service) serve(ctx context.Context, ln net.Listener) error {
	// Fatal load errors surface here rather than on the first request.
	if _, err := s.Dataset(ctx); err != nil {
		ln.Close()
		return fmt.Errorf("%w: %v", ErrServiceInit, err)
	}

	srv := &http.Server{
		Handler:           server.New(s.loader, s.config.DatasetPath, s.RenderOptions()).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving dashboard", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, initiating graceful shutdown",
		zap.Duration("timeout", s.config.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("%w: %v", ErrServiceShutdown, err)
	}
	return nil
}

// Close performs cleanup operations
func (s *Service) Close() error {
	logger.Info("Closing service")
	if s.closer == nil {
		return nil
	}
	if err := s.closer.Close(); err != nil {
		return fmt.Errorf("%w: failed to close dataset source: %v", ErrServiceShutdown, err)
	}
	return nil
}
