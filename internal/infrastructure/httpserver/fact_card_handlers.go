package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/threat0512/HealthFactAI/internal/core/domain/factcard"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver/helpers"
)

// Fact card handlers
func (s *Server) listFactCards(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	category := c.QueryParam("category")
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	cards, total, err := s.factCardSvc.List(c.Request().Context(), userID, category, limit, offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list fact cards")
	}

	type cardView struct {
		*factcard.FactCard
		Sources []factcard.Source `json:"sources"`
	}
	views := make([]cardView, 0, len(cards))
	for _, card := range cards {
		views = append(views, cardView{FactCard: card, Sources: card.SourceList()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"fact_cards": views,
		"total":      total,
	})
}

func (s *Server) deleteFactCard(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid fact card id")
	}

	if err := s.factCardSvc.Delete(c.Request().Context(), id, userID); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "fact card not found")
	}

	return c.NoContent(http.StatusNoContent)
}

func (s *Server) factCardStats(c echo.Context) error {
	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	stats, err := s.factCardSvc.Stats(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load fact card stats")
	}

	return c.JSON(http.StatusOK, stats)
}
