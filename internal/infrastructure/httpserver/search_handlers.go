package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver/helpers"
)

// verifyClaim runs the claim-verification pipeline and saves a fact card on
// success.
func (s *Server) verifyClaim(c echo.Context) error {
	var req struct {
		Claim string `json:"claim"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	claim := strings.TrimSpace(req.Claim)
	if claim == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "claim is required")
	}

	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	verification := s.searchSvc.VerifyClaim(c.Request().Context(), userID, claim)

	if verification.IsVerified && s.factCardSvc != nil {
		if _, err := s.factCardSvc.SaveFromVerification(c.Request().Context(), userID, claim, verification); err != nil && s.logger != nil {
			s.logger.WithError(err).Warn("failed to save fact card for verified claim")
		}
	}

	return c.JSON(http.StatusOK, verification)
}
