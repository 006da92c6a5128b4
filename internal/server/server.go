package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/db"
	"github.com/AJStolp/tts-reader-aws-backend-sub000/pkg/orchestrator"
)

// Server exposes the extraction pipeline over HTTP.
type Server struct {
	addr   string
	logger zerolog.Logger
	orch   *orchestrator.Orchestrator
	store  *db.DB

	httpServer *http.Server
}

// New builds the server. store may be nil, in which case the run history
// endpoint reports an empty history.
func New(addr string, logger zerolog.Logger, orch *orchestrator.Orchestrator, store *db.DB) *Server {
	return &Server{
		addr:   addr,
		logger: logger,
		orch:   orch,
		store:  store,
	}
}

// Router assembles the route table.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Minute))

	r.Post("/extract", s.handleExtract)
	r.Get("/health", s.handleHealth)
	r.Get("/analytics", s.handleAnalytics)
	r.Get("/runs", s.handleRuns)

	return r
}

// Start serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.addr).Msg("http server listening")
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		s.logger.Info().Msg("http server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
