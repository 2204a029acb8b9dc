package httpserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/threat0512/HealthFactAI/internal/infrastructure/httpserver/helpers"
)

// Quiz handlers
func (s *Server) quizFromClaim(c echo.Context) error {
	var req struct {
		Claim string `json:"claim"`
		Count int    `json:"count"`
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

	quiz, meta := s.quizSvc.GenerateFromClaim(c.Request().Context(), userID, claim, req.Count)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"quiz_id":    quiz.ID,
		"claim":      quiz.Claim,
		"items":      quiz.Items,
		"created_at": quiz.CreatedAt,
		"meta":       meta,
	})
}

func (s *Server) gradeQuiz(c echo.Context) error {
	var req struct {
		QuizID  string `json:"quiz_id"`
		Answers []int  `json:"answers"`
		Key     []int  `json:"key,omitempty"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.QuizID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "quiz_id is required")
	}

	userID, err := helpers.GetUserIDFromContext(c)
	if err != nil {
		return err
	}

	result := s.quizSvc.GradeQuiz(c.Request().Context(), userID, req.QuizID, req.Answers, req.Key)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"quiz_id":      req.QuizID,
		"score":        result.Score,
		"total":        result.Total,
		"explanations": result.Explanations,
	})
}
