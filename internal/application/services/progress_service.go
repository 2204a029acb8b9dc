package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
)

const dateLayout = "2006-01-02"

// ProgressService tracks learned facts, streaks and category breakdowns on
// the user row.
type ProgressService struct {
	userRepo   ports.UserRepository
	classifier ports.ClaimClassifier
	logger     *logrus.Logger
}

func NewProgressService(userRepo ports.UserRepository, classifier ports.ClaimClassifier, logger *logrus.Logger) ports.ProgressService {
	return &ProgressService{
		userRepo:   userRepo,
		classifier: classifier,
		logger:     logger,
	}
}

// GetUserProgress assembles the dashboard view for a user.
func (s *ProgressService) GetUserProgress(ctx context.Context, userID int64) (*ports.Progress, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &ports.Progress{
		TotalFacts:    u.TotalFactsCount,
		CurrentStreak: u.CurrentStreak,
		LongestStreak: u.LongestStreak,
		Categories:    u.CategoryBreakdown(s.classifier.ValidCategories()),
		LastActivity:  u.LastActivityDate.String,
		FactsThisWeek: factsThisWeek(u),
	}, nil
}

// AddSearchFact records a verified claim as a learned fact, classified into a
// health category.
func (s *ProgressService) AddSearchFact(ctx context.Context, userID int64, claim, sourceURL string) bool {
	return s.addFact(ctx, userID, user.Fact{
		Content:   claim,
		Category:  s.classifier.Classify(claim),
		SourceURL: sourceURL,
		Type:      user.FactTypeSearch,
	})
}

// AddQuizFact records a generated quiz against the user. Quiz entries carry
// the Quiz category so they stay out of health-category breakdowns.
func (s *ProgressService) AddQuizFact(ctx context.Context, userID int64, claim, sourceURL string, questionCount int) bool {
	return s.addFact(ctx, userID, user.Fact{
		Content:   claim,
		Category:  "Quiz",
		SourceURL: sourceURL,
		Type:      user.FactTypeQuiz,
		Questions: questionCount,
	})
}

// AddQuizAnswers records a completed quiz grading as activity.
func (s *ProgressService) AddQuizAnswers(ctx context.Context, userID int64) bool {
	return s.addFact(ctx, userID, user.Fact{
		Content:  "Answered quiz questions",
		Category: "quiz_answer",
		Type:     user.FactTypeQuiz,
	})
}

// addFact appends the fact, advances the streak and persists the row. It is
// fire-and-forget: failures are logged and reported as false, never as an
// error to the caller's primary flow.
func (s *ProgressService) addFact(ctx context.Context, userID int64, f user.Fact) bool {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Warn("progress: failed to load user")
		}
		return false
	}

	u.AddFact(f)
	advanceStreak(u, time.Now().UTC())

	if err := s.userRepo.UpdateProgress(ctx, u); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Warn("progress: failed to persist progress")
		}
		return false
	}
	return true
}

// advanceStreak updates streak counters for activity on the given day.
// Same-day activity keeps the streak, consecutive-day activity extends it,
// and a gap resets it to one.
func advanceStreak(u *user.User, now time.Time) {
	today := now.Format(dateLayout)
	yesterday := now.AddDate(0, 0, -1).Format(dateLayout)

	switch u.LastActivityDate.String {
	case today:
		// already counted today
	case yesterday:
		u.CurrentStreak++
	default:
		u.CurrentStreak = 1
	}
	if u.CurrentStreak > u.LongestStreak {
		u.LongestStreak = u.CurrentStreak
	}
	u.LastActivityDate = sql.NullString{String: today, Valid: true}
}

// factsThisWeek counts history entries learned in the last seven days.
func factsThisWeek(u *user.User) int {
	cutoff := time.Now().UTC().AddDate(0, 0, -7)
	count := 0
	for _, f := range u.Facts() {
		learnedAt, err := time.Parse("2006-01-02T15:04:05Z", f.LearnedAt)
		if err != nil {
			continue
		}
		if learnedAt.After(cutoff) {
			count++
		}
	}
	return count
}
