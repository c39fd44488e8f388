package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/blend-service/config"
)

const (
	defaultReadTimeout     = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	// writeTimeoutSlack lets the timeout middleware answer 504 before the
	// connection deadline cuts the response.
	writeTimeoutSlack = 5 * time.Second
	maxHeaderBytes    = 1 << 20
)

// Server is the HTTP listener of the API.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
}

// NewServer listens on cfg.Port. Gateway estimates can run close to the
// request timeout, so the write timeout is derived from it.
func NewServer(handler http.Handler, cfg config.ServerConfig) *Server {
	write := defaultReadTimeout
	if cfg.RequestTimeout > 0 {
		write = cfg.RequestTimeout + writeTimeoutSlack
	}
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           handler,
			ReadTimeout:       defaultReadTimeout,
			ReadHeaderTimeout: defaultReadTimeout,
			WriteTimeout:      write,
			IdleTimeout:       defaultIdleTimeout,
			MaxHeaderBytes:    maxHeaderBytes,
		},
		shutdownTimeout: defaultShutdownTimeout,
	}
}

// Run serves until ctx ends or SIGINT/SIGTERM arrives, then drains open
// connections. A listener failure is returned as is.
func (s *Server) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	served := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.httpServer.Addr).Msg("Server starting")
		served <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-served:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info().Msg("Shutdown requested, draining connections")
		return s.Shutdown()
	}
}

// Shutdown stops accepting requests and waits up to the shutdown timeout
// for in-flight ones.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
		return err
	}
	log.Info().Msg("Server stopped")
	return nil
}
