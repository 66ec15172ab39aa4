// Package api serves the docqa actions over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/metcalfc/docqa/internal/config"
	"github.com/metcalfc/docqa/internal/logging"
	"github.com/metcalfc/docqa/internal/qa"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server provides the HTTP endpoints.
type Server struct {
	echo     *echo.Echo
	answerer qa.Answerer
	logger   *zap.Logger
	config   config.Server
	version  string
}

// NewServer creates a server answering with answerer.
func NewServer(answerer qa.Answerer, logger *zap.Logger, cfg config.Server, version string) (*Server, error) {
	if answerer == nil {
		return nil, errors.New("answerer cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.Recover())
	e.Use(withRun(logger))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logging.FromContext(c.Request().Context()).Info("http request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("duration", v.Latency),
			)
			return nil
		},
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	s := &Server{
		echo:     e,
		answerer: answerer,
		logger:   logger,
		config:   cfg,
		version:  version,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	g := s.echo.Group("/api")
	g.GET("/health", s.handleHealth)
	g.GET("/formats", s.handleFormats)
	g.POST("/ask", s.handleAsk)
	g.POST("/index", s.handleIndex)
}

// ServeHTTP lets the server be mounted or exercised directly.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting http server", zap.String("addr", s.config.Addr))
		errCh <- s.echo.Start(s.config.Addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

// withRun gives each request its own run ID and the server logger.
func withRun(logger *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.StartRun(logging.WithLogger(c.Request().Context(), logger))
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set(echo.HeaderXRequestID, logging.RunID(ctx))
			return next(c)
		}
	}
}
