package server

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/cronforge/jenkins-scheduler/internal/common/core"
	"github.com/cronforge/jenkins-scheduler/pkg/payloads"
	"github.com/cronforge/jenkins-scheduler/pkg/services/library"
)

type buildServerRequest struct {
	Name     string `json:"name"`
	URL      string `json:"url"`
	Username string `json:"username"`
	Token    string `json:"token"`
}

func (s *Server) handleListBuildServers(c echo.Context) error {
	servers, err := s.store.ListBuildServers(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, servers)
}

func (s *Server) handleCreateBuildServer(c echo.Context) error {
	var req buildServerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.URL) == "" {
		return s.respondError(c, core.Validationf("name and url are required"))
	}

	ctx := c.Request().Context()

	id, err := s.store.CreateBuildServer(ctx, &payloads.BuildServer{
		Name:     req.Name,
		URL:      req.URL,
		Username: req.Username,
		Token:    req.Token,
	})
	if err != nil {
		return s.respondError(c, err)
	}

	server, err := s.store.GetBuildServer(ctx, id)
	if err != nil {
		return s.respondError(c, err)
	}

	s.log.Info("Build server configuration created",
		zap.Int64("configID", id), zap.String("name", req.Name))
	return c.JSON(http.StatusCreated, server)
}

func (s *Server) handleDeleteBuildServer(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return s.respondError(c, err)
	}

	if err := s.store.DeleteBuildServer(c.Request().Context(), id); err != nil {
		return s.respondError(c, err)
	}

	s.log.Info("Build server configuration deleted", zap.Int64("configID", id))
	return c.NoContent(http.StatusNoContent)
}

// clientFor resolves a stored configuration into a build client.
func (s *Server) clientFor(c echo.Context) (library.BuildClient, error) {
	id, err := pathID(c, "configId")
	if err != nil {
		return nil, err
	}

	server, err := s.store.GetBuildServer(c.Request().Context(), id)
	if err != nil {
		return nil, err
	}

	return s.clients(server), nil
}

func (s *Server) handleListJenkinsJobs(c echo.Context) error {
	client, err := s.clientFor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	jobs, err := client.ListJobs(c.Request().Context())
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// handleJenkinsJobDetail serves the wildcard routes under a
// configuration's job tree. The tail of the path selects the view:
// ".../<target>/parameters" or ".../<target>/branches", where the
// target itself may contain slashes.
func (s *Server) handleJenkinsJobDetail(c echo.Context) error {
	tail := c.Param("*")

	target, view, ok := cutLastSegment(tail)
	if !ok {
		return s.respondError(c, core.Validationf("missing job path"))
	}

	client, err := s.clientFor(c)
	if err != nil {
		return s.respondError(c, err)
	}

	ctx := c.Request().Context()

	switch view {
	case "parameters":
		defs, err := client.GetParameterDefinitions(ctx, target)
		if err != nil {
			return s.respondError(c, err)
		}
		return c.JSON(http.StatusOK, defs)
	case "branches":
		branches, err := client.GetGitBranches(ctx, target)
		if err != nil {
			return s.respondError(c, err)
		}
		return c.JSON(http.StatusOK, branches)
	default:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown job view"})
	}
}

// cutLastSegment splits "a/b/c" into ("a/b", "c").
func cutLastSegment(path string) (head, last string, ok bool) {
	path = strings.Trim(path, "/")
	i := strings.LastIndex(path, "/")
	if i < 0 || i == len(path)-1 {
		return "", "", false
	}
	return path[:i], path[i+1:], true
}
