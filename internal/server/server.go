// Package server exposes the calculator over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/zephyrtronium/distexpr/internal/config"
)

// Server is the calculator HTTP service.
type Server struct {
	Echo *echo.Echo

	cfg  *config.Config
	pads *PadStore
}

// New creates a server with its middleware, error handler, and routes
// installed.
func New(cfg *config.Config) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.DisableHTTP2 = !cfg.UseHTTP2

	s := &Server{
		Echo: e,
		cfg:  cfg,
		pads: NewPadStore(cfg.MaxPads, cfg.MaxExpressionLength),
	}
	s.setupMiddlewares()
	e.HTTPErrorHandler = ErrorHandler()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddlewares() {
	s.Echo.Use(Logger())
	s.Echo.Use(middleware.Recover())
	s.Echo.Use(middleware.BodyLimit("64K"))
	s.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: s.cfg.CorsOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))
}

func (s *Server) setupRoutes() {
	s.Echo.GET("/health", s.health)
	s.Echo.POST("/evaluate", s.evaluate)
	s.Echo.POST("/pads", s.createPad)
	s.Echo.GET("/pads/:id", s.getPad)
	s.Echo.POST("/pads/:id/keys", s.pressKeys)
	s.Echo.DELETE("/pads/:id", s.deletePad)
}

// Start serves until ctx is done or the process is interrupted, then shuts
// down gracefully within the configured timeout.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		if err := s.Echo.Start(":" + s.cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return s.Echo.Shutdown(ctx)
}
