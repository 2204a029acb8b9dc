package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/threat0512/HealthFactAI/internal/core/domain/auth"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver/helpers"
)

// Auth handlers
func (s *Server) register(c echo.Context) error {
	var req auth.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	u, err := s.authSvc.Register(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, u)
}

func (s *Server) login(c echo.Context) error {
	var req auth.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	tokens, err := s.authSvc.Login(c.Request().Context(), &req)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	return c.JSON(http.StatusOK, tokens)
}

func (s *Server) me(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}
	username, _ := helpers.GetUsernameRaw(c)
	email, _ := helpers.GetUserEmailRaw(c)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"id":       userID,
		"username": username,
		"email":    email,
	})
}
