package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
)

// QuizGenerator produces candidate multiple-choice items from contexts. The
// returned error is diagnostic only; callers treat any failure as zero items
// and fall back or degrade.
type QuizGenerator interface {
	Generate(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error)
}

// QuizService orchestrates context assembly, generation, validation and
// grading. It never returns an error: failures degrade to an empty item list
// with an explanatory Meta.
type QuizService interface {
	GenerateFromClaim(ctx context.Context, userID int64, claim string, count int) (*quiz.Quiz, quiz.Meta)
	GradeQuiz(ctx context.Context, userID int64, quizID string, answers []int, clientKey []int) quiz.GradeResult
}
