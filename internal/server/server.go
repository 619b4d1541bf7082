// Package server exposes ytf over a local JSON API so a browser bookmarklet
// can hand a video off to the app.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gauthierbraillon/ytf/internal/service"
)

const shutdownTimeout = 10 * time.Second

// Server routes HTTP requests to the service.
type Server struct {
	router chi.Router
	svc    *service.Service
	logger *slog.Logger
}

// New creates a Server. A nil logger uses slog.Default.
func New(svc *service.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	s := &Server{router: r, svc: svc, logger: logger}
	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/api/health", s.handleHealth)
	s.router.Get("/api/classify", s.handleClassify)
	s.router.Get("/api/stats", s.handleStats)

	s.router.Route("/api/feedback", func(r chi.Router) {
		r.Get("/", s.handleListFeedback)
		r.Post("/", s.handleCreateFeedback)
		r.Get("/{id}", s.handleGetFeedback)
		r.Delete("/{id}", s.handleDeleteFeedback)
	})

	s.router.Route("/api/watch-later", func(r chi.Router) {
		r.Get("/", s.handleListWatchLater)
		r.Post("/", s.handleCreateWatchLater)
		r.Get("/{id}", s.handleGetWatchLater)
		r.Delete("/{id}", s.handleDeleteWatchLater)
	})

	s.router.Get("/feedback", s.handleLaunch)

	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("ytf listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}
