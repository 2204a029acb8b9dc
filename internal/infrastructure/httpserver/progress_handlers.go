package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver/helpers"
)

// Progress handlers
func (s *Server) getProgress(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	progress, err := s.progressSvc.GetUserProgress(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user progress not found")
	}

	return c.JSON(http.StatusOK, progress)
}

func (s *Server) getProgressCategories(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	progress, err := s.progressSvc.GetUserProgress(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "user progress not found")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"categories": progress.Categories,
	})
}
