package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/postwall/internal/logging"
	"github.com/dmitrijs2005/postwall/internal/server/config"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

const shutdownTimeout = 10 * time.Second

// Server wraps the echo instance serving the auth API.
type Server struct {
	echo   *echo.Echo
	logger logging.Logger
	addr   string
}

// NewServer builds the echo instance with middleware and routes attached.
func NewServer(h *Handler, l logging.Logger, cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	h.RegisterRoutes(e)

	return &Server{
		echo:   e,
		logger: l.With("module", "http_server"),
		addr:   cfg.EndpointAddr,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)

	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.addr)
		if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info(context.Background(), "http server stopped")
	return nil
}
