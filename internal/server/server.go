// Package server exposes the scheduler over HTTP: a JSON API for
// managing build server configurations and scheduled jobs, browsing
// Jenkins job trees, and reading execution history. All routes except
// login require a bearer token.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/internal/common/logger"
	"github.com/cronforge/jenkins-scheduler/pkg/config"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
)

type Server struct {
	echo     *echo.Echo
	store    library.Store
	registry library.Registry
	clients  library.BuildClientFactory
	cfg      *config.Config
	log      *logger.Logger
}

func New(store library.Store, registry library.Registry, clients library.BuildClientFactory, cfg *config.Config, log *logger.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:     e,
		store:    store,
		registry: registry,
		clients:  clients,
		cfg:      cfg,
		log:      log,
	}
	s.routes()

	return s
}

func (s *Server) routes() {
	api := s.echo.Group("/api")

	api.POST("/login", s.handleLogin)

	auth := api.Group("", s.requireAuth)

	auth.GET("/user", s.handleCurrentUser)

	auth.GET("/jenkins-configs", s.handleListBuildServers)
	auth.POST("/jenkins-configs", s.handleCreateBuildServer)
	auth.DELETE("/jenkins-configs/:id", s.handleDeleteBuildServer)

	auth.GET("/jenkins/:configId/jobs", s.handleListJenkinsJobs)
	auth.GET("/jenkins/:configId/jobs/*", s.handleJenkinsJobDetail)

	auth.GET("/scheduled-jobs", s.handleListJobs)
	auth.POST("/scheduled-jobs", s.handleCreateJob)
	auth.GET("/scheduled-jobs/:id", s.handleGetJob)
	auth.PUT("/scheduled-jobs/:id", s.handleUpdateJob)
	auth.DELETE("/scheduled-jobs/:id", s.handleDeleteJob)
	auth.PUT("/scheduled-jobs/:id/status", s.handleUpdateJobStatus)
	auth.POST("/scheduled-jobs/:id/execute", s.handleExecuteJob)

	auth.GET("/execution-history", s.handleListHistory)
}

func (s *Server) Start() error {
	s.log.Info("HTTP server listening", zap.String("addr", s.cfg.ListenAddr))
	return s.echo.Start(s.cfg.ListenAddr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// respondError maps the service error taxonomy onto HTTP statuses.
// Validation problems and missing entities keep their messages;
// anything else is logged and returned as an opaque 500.
func (s *Server) respondError(c echo.Context, err error) error {
	switch {
	case core.IsValidation(err):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	case errors.Is(err, core.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, core.ErrAuthenticationFailed):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": err.Error()})
	case errors.Is(err, core.ErrUpstreamUnavailable):
		return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
	default:
		s.log.Error("Request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}
