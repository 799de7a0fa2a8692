package server

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultHistoryLimit = 10

// handleListHistory returns recent execution attempts, newest first.
// A jobId query parameter narrows the listing to one job, including
// jobs that have since been deleted.
func (s *Server) handleListHistory(c echo.Context) error {
	ctx := c.Request().Context()

	if raw := c.QueryParam("jobId"); raw != "" {
		jobID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || jobID <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid jobId"})
		}

		entries, err := s.store.ListHistoryByJob(ctx, jobID)
		if err != nil {
			return s.respondError(c, err)
		}
		return c.JSON(http.StatusOK, entries)
	}

	limit := defaultHistoryLimit
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.store.ListHistory(ctx, limit)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(http.StatusOK, entries)
}
