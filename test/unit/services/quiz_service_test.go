package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	impl "github.com/threat0512/HealthFactAI/internal/application/services"
	"github.com/threat0512/HealthFactAI/internal/core/cloze"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/memcache"
	tmocks "github.com/threat0512/HealthFactAI/test/mocks"
)

func intPtr(i int) *int { return &i }

func quizSearcher() *tmocks.WebSearcherMock {
	return &tmocks.WebSearcherMock{VerifiedSearchFn: func(ctx context.Context, query string, top int) []evidence.SearchResult {
		return []evidence.SearchResult{{Title: "Sleep basics", URL: "https://www.who.int/news/item/sleep"}}
	}}
}

func quizExtractor() *tmocks.PageExtractorMock {
	return &tmocks.PageExtractorMock{FetchMainTextFn: func(ctx context.Context, url string) (*evidence.ExtractedPage, bool) {
		text := "Adults need seven or more hours of sleep every night for good health. " +
			"Poor sleep quality increases the risk of heart disease and diabetes over time. " +
			"Regular sleep schedules improve memory consolidation and daytime alertness for most people."
		return &evidence.ExtractedPage{Title: "Sleep basics", URL: url, Text: text}, true
	}}
}

func newQuizService(generator ports.QuizGenerator, progress ports.ProgressService) (ports.QuizService, *memcache.Cache[*quiz.Quiz]) {
	quizzes := memcache.New[*quiz.Quiz](16, time.Minute)
	svc := impl.NewQuizService(healthAllowlist(), quizSearcher(), quizExtractor(), generator, cloze.New(1), quizzes, progress, nil)
	return svc, quizzes
}

func TestGenerateFromClaimWithGenerator(t *testing.T) {
	generator := &tmocks.QuizGeneratorMock{GenerateFn: func(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error) {
		return []quiz.Candidate{{
			Question:     "How many hours of sleep do adults need?",
			Options:      []string{"Five", "Six", "Seven or more", "Ten"},
			CorrectIndex: intPtr(2),
			Explanation:  "Adults need seven or more hours per night.",
			SourceURL:    contexts[0].URL,
		}}, nil
	}}
	progress := &tmocks.ProgressServiceMock{}

	svc, _ := newQuizService(generator, progress)
	q, meta := svc.GenerateFromClaim(context.Background(), 42, "adults need seven hours of sleep", 3)

	if len(q.Items) != 1 {
		t.Fatalf("expected 1 item, got %d (meta %+v)", len(q.Items), meta)
	}
	if !strings.HasPrefix(q.ID, "quiz_42_") || len(q.ID) != len("quiz_42_")+8 {
		t.Fatalf("unexpected quiz id %q", q.ID)
	}
	if len(meta.ClaimHash) != 64 {
		t.Fatalf("expected full sha256 claim hash, got %q", meta.ClaimHash)
	}
	if meta.SourcesUsed != 1 || meta.Reason != "" {
		t.Fatalf("unexpected meta %+v", meta)
	}
	if progress.QuizFacts != 1 {
		t.Fatalf("expected one quiz fact recorded, got %d", progress.QuizFacts)
	}
}

func TestGenerateFromClaimNoSources(t *testing.T) {
	quizzes := memcache.New[*quiz.Quiz](16, time.Minute)
	svc := impl.NewQuizService(healthAllowlist(), &tmocks.WebSearcherMock{}, &tmocks.PageExtractorMock{}, nil, cloze.New(1), quizzes, nil, nil)

	q, meta := svc.GenerateFromClaim(context.Background(), 1, "some claim", 0)
	if len(q.Items) != 0 {
		t.Fatalf("expected no items, got %d", len(q.Items))
	}
	if q.Items == nil {
		t.Fatal("items must marshal as an empty list, not null")
	}
	if meta.Reason != "no reliable sources found to generate quiz" {
		t.Fatalf("unexpected reason %q", meta.Reason)
	}
}

func TestGenerateFromClaimClozeFallback(t *testing.T) {
	generator := &tmocks.QuizGeneratorMock{GenerateFn: func(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error) {
		return nil, errors.New("model unavailable")
	}}

	svc, _ := newQuizService(generator, nil)
	q, meta := svc.GenerateFromClaim(context.Background(), 7, "sleep and health", 3)

	if len(q.Items) == 0 {
		t.Fatalf("expected cloze fallback to produce items, meta %+v", meta)
	}
	// A successful fallback absorbs the LLM failure; Meta.Error only
	// surfaces when no items could be produced at all.
	if meta.Error != "" || meta.Reason != "" {
		t.Fatalf("unexpected meta diagnostics after successful fallback: %+v", meta)
	}
	for _, item := range q.Items {
		if len(item.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(item.Options))
		}
	}
}

func TestGradeQuizStoredKeyIsAuthoritative(t *testing.T) {
	generator := &tmocks.QuizGeneratorMock{GenerateFn: func(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error) {
		return []quiz.Candidate{{
			Question:     "How many hours of sleep do adults need?",
			Options:      []string{"Five", "Six", "Seven or more", "Ten"},
			CorrectIndex: intPtr(2),
			Explanation:  "Adults need seven or more hours per night.",
			SourceURL:    contexts[0].URL,
		}}, nil
	}}
	progress := &tmocks.ProgressServiceMock{}

	svc, _ := newQuizService(generator, progress)
	q, _ := svc.GenerateFromClaim(context.Background(), 9, "sleep claim", 3)

	// Client submits a forged key claiming its answer was right.
	result := svc.GradeQuiz(context.Background(), 9, q.ID, []int{0}, []int{0})
	if result.Score != 0 || result.Total != 1 {
		t.Fatalf("expected stored key to override client key, got %+v", result)
	}
	if progress.QuizAnswers != 1 {
		t.Fatalf("expected quiz answers recorded once, got %d", progress.QuizAnswers)
	}
}

func TestGradeQuizClientKeyForExpiredQuiz(t *testing.T) {
	svc, _ := newQuizService(nil, nil)

	result := svc.GradeQuiz(context.Background(), 9, "quiz_9_deadbeef", []int{2, 1}, []int{2, 0})
	if result.Score != 1 || result.Total != 2 {
		t.Fatalf("expected client key grading for unknown quiz, got %+v", result)
	}
}

func TestGenerateFromClaimCapsCount(t *testing.T) {
	generator := &tmocks.QuizGeneratorMock{GenerateFn: func(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error) {
		var out []quiz.Candidate
		for i := 0; i < n+5; i++ {
			out = append(out, quiz.Candidate{
				Question:     fmt.Sprintf("Question number %d about sleep?", i),
				Options:      []string{fmt.Sprintf("A%d", i), fmt.Sprintf("B%d", i), fmt.Sprintf("C%d", i), fmt.Sprintf("D%d", i)},
				CorrectIndex: intPtr(0),
				Explanation:  "Because the source says so.",
				SourceURL:    contexts[0].URL,
			})
		}
		return out, nil
	}}

	svc, _ := newQuizService(generator, nil)
	q, _ := svc.GenerateFromClaim(context.Background(), 1, "sleep claim", 50)
	if len(q.Items) > 10 {
		t.Fatalf("expected item count capped at 10, got %d", len(q.Items))
	}
}
