package services_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	impl "github.com/threat0512/HealthFactAI/internal/application/services"
	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/classify"
	tmocks "github.com/threat0512/HealthFactAI/test/mocks"
)

// repoForUser wires a mock repository around a single mutable user row.
func repoForUser(u *user.User) *tmocks.UserRepositoryMock {
	return &tmocks.UserRepositoryMock{
		GetByIDFn: func(ctx context.Context, id int64) (*user.User, error) {
			return u, nil
		},
		UpdateProgressFn: func(ctx context.Context, updated *user.User) error {
			*u = *updated
			return nil
		},
	}
}

func TestAddSearchFactStartsStreak(t *testing.T) {
	u := &user.User{ID: 1, FactsLearned: "[]"}
	svc := impl.NewProgressService(repoForUser(u), classify.NewKeywordClassifier(), nil)

	if !svc.AddSearchFact(context.Background(), 1, "strength training builds muscle endurance", "https://www.who.int/x") {
		t.Fatal("expected fact to be recorded")
	}
	if u.CurrentStreak != 1 || u.LongestStreak != 1 || u.TotalFactsCount != 1 {
		t.Fatalf("unexpected progress state %+v", u)
	}
	facts := u.Facts()
	if len(facts) != 1 || facts[0].Category != "Exercise" || facts[0].Type != user.FactTypeSearch {
		t.Fatalf("unexpected fact %+v", facts)
	}
}

func TestStreakKeptOnSameDayActivity(t *testing.T) {
	today := time.Now().UTC().Format("2006-01-02")
	u := &user.User{ID: 1, FactsLearned: "[]", CurrentStreak: 4, LongestStreak: 4, LastActivityDate: sql.NullString{String: today, Valid: true}}
	svc := impl.NewProgressService(repoForUser(u), classify.NewKeywordClassifier(), nil)

	svc.AddSearchFact(context.Background(), 1, "drinking water is healthy", "")
	if u.CurrentStreak != 4 {
		t.Fatalf("same-day activity should keep streak, got %d", u.CurrentStreak)
	}
}

func TestStreakExtendedOnConsecutiveDay(t *testing.T) {
	yesterday := time.Now().UTC().AddDate(0, 0, -1).Format("2006-01-02")
	u := &user.User{ID: 1, FactsLearned: "[]", CurrentStreak: 4, LongestStreak: 4, LastActivityDate: sql.NullString{String: yesterday, Valid: true}}
	svc := impl.NewProgressService(repoForUser(u), classify.NewKeywordClassifier(), nil)

	svc.AddSearchFact(context.Background(), 1, "drinking water is healthy", "")
	if u.CurrentStreak != 5 || u.LongestStreak != 5 {
		t.Fatalf("consecutive-day activity should extend streak, got %d/%d", u.CurrentStreak, u.LongestStreak)
	}
}

func TestStreakResetAfterGap(t *testing.T) {
	lastWeek := time.Now().UTC().AddDate(0, 0, -6).Format("2006-01-02")
	u := &user.User{ID: 1, FactsLearned: "[]", CurrentStreak: 9, LongestStreak: 9, LastActivityDate: sql.NullString{String: lastWeek, Valid: true}}
	svc := impl.NewProgressService(repoForUser(u), classify.NewKeywordClassifier(), nil)

	svc.AddSearchFact(context.Background(), 1, "drinking water is healthy", "")
	if u.CurrentStreak != 1 {
		t.Fatalf("gap should reset streak to 1, got %d", u.CurrentStreak)
	}
	if u.LongestStreak != 9 {
		t.Fatalf("longest streak should survive reset, got %d", u.LongestStreak)
	}
}

func TestAddFactFailsClosedOnRepositoryError(t *testing.T) {
	svc := impl.NewProgressService(&tmocks.UserRepositoryMock{}, classify.NewKeywordClassifier(), nil)

	if svc.AddSearchFact(context.Background(), 99, "some claim", "") {
		t.Fatal("expected false when the user cannot be loaded")
	}
}

func TestGetUserProgressSkipsQuizEntriesInBreakdown(t *testing.T) {
	u := &user.User{ID: 1, FactsLearned: "[]", TotalFactsCount: 0}
	u.AddFact(user.Fact{Content: "running helps the heart", Category: "Exercise", Type: user.FactTypeSearch})
	u.AddFact(user.Fact{Content: "quiz about sleep", Category: "Quiz", Type: user.FactTypeQuiz})
	u.AddFact(user.Fact{Content: "Answered quiz questions", Category: "quiz_answer", Type: user.FactTypeQuiz})

	svc := impl.NewProgressService(repoForUser(u), classify.NewKeywordClassifier(), nil)
	p, err := svc.GetUserProgress(context.Background(), 1)
	if err != nil {
		t.Fatalf("progress failed: %v", err)
	}
	if p.TotalFacts != 3 {
		t.Fatalf("expected total 3, got %d", p.TotalFacts)
	}
	if p.Categories["Exercise"] != 1 {
		t.Fatalf("expected one Exercise fact, got %+v", p.Categories)
	}
	if _, ok := p.Categories["Quiz"]; ok {
		t.Fatalf("quiz entries must not appear in breakdown: %+v", p.Categories)
	}
	if p.FactsThisWeek != 3 {
		t.Fatalf("facts just added should count toward the week, got %d", p.FactsThisWeek)
	}
}
