// Package server exposes the classification pipeline over HTTP. The handlers
// are thin adapters: they decode uploads, call the pipeline, and shape its
// result, with no prediction logic of their own.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mverdier/greenback/internal/model"
	"github.com/mverdier/greenback/internal/pipeline"
)

// RunStore records completed analyses. Implementations must never be handed
// row-level data.
type RunStore interface {
	RecordRun(ctx context.Context, filename string, source model.RunSource, stats model.StatsSummary) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)
}

// Config holds the HTTP server settings.
type Config struct {
	Addr          string
	CORSOrigins   []string
	MaxUploadSize int64
}

// DefaultConfig returns the default server settings.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8000",
		CORSOrigins:   []string{"*"},
		MaxUploadSize: 16 << 20,
	}
}

// Server serves the prediction API.
type Server struct {
	pipeline *pipeline.Pipeline
	store    RunStore
	config   Config
}

// New creates a server around a loaded pipeline. The store may be nil, in
// which case runs are not recorded.
func New(p *pipeline.Pipeline, store RunStore, config Config) (*Server, error) {
	if p == nil {
		return nil, fmt.Errorf("pipeline is required")
	}
	if config.Addr == "" {
		config.Addr = DefaultConfig().Addr
	}
	if config.MaxUploadSize <= 0 {
		config.MaxUploadSize = DefaultConfig().MaxUploadSize
	}
	return &Server{pipeline: p, store: store, config: config}, nil
}

// Router builds the chi router with all routes and middleware attached.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if len(s.config.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
	}

	r.Get("/", s.handleRoot)
	r.Get("/healthz", s.handleHealth)
	r.Post("/predict", s.handlePredict)
	r.Get("/runs", s.handleRuns)
	r.Get("/images/{name}", s.handleImage)

	return r
}

// ListenAndServe runs the server until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", s.config.Addr)
		errChan <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown failed: %w", err)
		}
		return nil
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger emits one structured log line per request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}
