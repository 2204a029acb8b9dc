// Package mocks provides hand-rolled function-field mocks shared by the unit
// tests.
package mocks

import (
	"context"
	"errors"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
	"github.com/threat0512/HealthFactAI/internal/core/domain/user"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/core/retrieval"
)

// UserRepositoryMock implements ports.UserRepository with overridable funcs.
type UserRepositoryMock struct {
	CreateFn         func(ctx context.Context, u *user.User) error
	GetByIDFn        func(ctx context.Context, id int64) (*user.User, error)
	GetByUsernameFn  func(ctx context.Context, username string) (*user.User, error)
	ExistsUsernameFn func(ctx context.Context, username string) (bool, error)
	ExistsEmailFn    func(ctx context.Context, email string) (bool, error)
	UpdateProgressFn func(ctx context.Context, u *user.User) error
}

func (m *UserRepositoryMock) Create(ctx context.Context, u *user.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errors.New("not found")
}

func (m *UserRepositoryMock) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, errors.New("not found")
}

func (m *UserRepositoryMock) ExistsUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsUsernameFn != nil {
		return m.ExistsUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *UserRepositoryMock) ExistsEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsEmailFn != nil {
		return m.ExistsEmailFn(ctx, email)
	}
	return false, nil
}

func (m *UserRepositoryMock) UpdateProgress(ctx context.Context, u *user.User) error {
	if m.UpdateProgressFn != nil {
		return m.UpdateProgressFn(ctx, u)
	}
	return nil
}

// WebSearcherMock implements ports.WebSearcher.
type WebSearcherMock struct {
	VerifiedSearchFn func(ctx context.Context, query string, top int) []evidence.SearchResult
}

func (m *WebSearcherMock) VerifiedSearch(ctx context.Context, query string, top int) []evidence.SearchResult {
	if m.VerifiedSearchFn != nil {
		return m.VerifiedSearchFn(ctx, query, top)
	}
	return nil
}

// PageExtractorMock implements ports.PageExtractor.
type PageExtractorMock struct {
	FetchMainTextFn func(ctx context.Context, url string) (*evidence.ExtractedPage, bool)
}

func (m *PageExtractorMock) FetchMainText(ctx context.Context, url string) (*evidence.ExtractedPage, bool) {
	if m.FetchMainTextFn != nil {
		return m.FetchMainTextFn(ctx, url)
	}
	return nil, false
}

// RerankerMock implements ports.Reranker.
type RerankerMock struct {
	RerankFn func(ctx context.Context, query string, passages []string, topK int) []retrieval.ScoredPassage
}

func (m *RerankerMock) Rerank(ctx context.Context, query string, passages []string, topK int) []retrieval.ScoredPassage {
	if m.RerankFn != nil {
		return m.RerankFn(ctx, query, passages, topK)
	}
	return nil
}

// QuizGeneratorMock implements ports.QuizGenerator.
type QuizGeneratorMock struct {
	GenerateFn func(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error)
}

func (m *QuizGeneratorMock) Generate(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error) {
	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, contexts, claim, n)
	}
	return nil, errors.New("generator not configured")
}

// ProgressServiceMock implements ports.ProgressService and records calls.
type ProgressServiceMock struct {
	GetUserProgressFn func(ctx context.Context, userID int64) (*ports.Progress, error)
	SearchFacts       int
	QuizFacts         int
	QuizAnswers       int
}

func (m *ProgressServiceMock) GetUserProgress(ctx context.Context, userID int64) (*ports.Progress, error) {
	if m.GetUserProgressFn != nil {
		return m.GetUserProgressFn(ctx, userID)
	}
	return &ports.Progress{}, nil
}

func (m *ProgressServiceMock) AddSearchFact(ctx context.Context, userID int64, claim, sourceURL string) bool {
	m.SearchFacts++
	return true
}

func (m *ProgressServiceMock) AddQuizFact(ctx context.Context, userID int64, claim, sourceURL string, questionCount int) bool {
	m.QuizFacts++
	return true
}

func (m *ProgressServiceMock) AddQuizAnswers(ctx context.Context, userID int64) bool {
	m.QuizAnswers++
	return true
}
