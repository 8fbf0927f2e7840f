// Package server exposes the holiday API, the iCalendar download and the
// server-rendered calendar page over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"
	"github.com/username/vacation-calendar/internal/config"
	"github.com/username/vacation-calendar/internal/grid"
	"github.com/username/vacation-calendar/internal/holidays"
	"github.com/username/vacation-calendar/internal/upstream"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server serves the holiday API and calendar page
type Server struct {
	cfg      *config.Config
	provider upstream.Provider
	folder   holidays.Folder
	logger   *zap.Logger

	// now is the clock used to position the page cursor
	now func() time.Time
}

// New creates a Server answering from provider
func New(cfg *config.Config, provider upstream.Provider, logger *zap.Logger) *Server {
	return &Server{
		cfg:      cfg,
		provider: provider,
		folder:   cfg.Client.Folder(),
		logger:   logger,
		now:      time.Now,
	}
}

// Handler returns the routed handler with CORS and access logging applied
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/v1/countries", s.handleCountries)
	mux.HandleFunc("GET /api/v1/holidays/{country}/{year}", s.handleHolidays)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.Server.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
	})

	return s.accessLog(c.Handler(mux))
}

// Run listens on the configured address until ctx is cancelled or the
// process receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.Server.GetReadTimeout(),
		WriteTimeout: s.cfg.Server.GetWriteTimeout(),
	}

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	errChan := make(chan error, 1)
	go func() {
		s.logger.Info("Server started",
			zap.String("addr", srv.Addr),
			zap.String("upstream", s.cfg.Upstream.Type))
		errChan <- srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case sig := <-sigChan:
		s.logger.Info("Received signal, shutting down",
			zap.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Context cancelled, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) defaultView() grid.View {
	return grid.ParseView(s.cfg.UI.DefaultView)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}
