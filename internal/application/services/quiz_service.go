package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/allowlist"
	"github.com/threat0512/HealthFactAI/internal/core/cloze"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/memcache"
)

// Quiz pipeline bounds.
const (
	quizTopURLs     = 4
	quizSnippetLen  = 1200
	quizMaxContexts = 6

	defaultQuizCount = 3
	maxQuizCount     = 10
)

// QuizService orchestrates context assembly, generation, validation and
// grading. Generated quizzes are retained in a TTL cache keyed by quiz ID so
// grading can use the authoritative answer key.
type QuizService struct {
	allow     *allowlist.Allowlist
	searcher  ports.WebSearcher
	extractor ports.PageExtractor
	generator ports.QuizGenerator
	cloze     *cloze.Generator
	quizzes   *memcache.Cache[*quiz.Quiz]
	progress  ports.ProgressService
	logger    *logrus.Logger
}

func NewQuizService(allow *allowlist.Allowlist, searcher ports.WebSearcher, extractor ports.PageExtractor, generator ports.QuizGenerator, clozeGen *cloze.Generator, quizzes *memcache.Cache[*quiz.Quiz], progress ports.ProgressService, logger *logrus.Logger) ports.QuizService {
	return &QuizService{
		allow:     allow,
		searcher:  searcher,
		extractor: extractor,
		generator: generator,
		cloze:     clozeGen,
		quizzes:   quizzes,
		progress:  progress,
		logger:    logger,
	}
}

// GenerateFromClaim builds a quiz grounded in allowlisted evidence for the
// claim. It never fails: every failure mode yields an empty item list with an
// explanatory Meta.
func (s *QuizService) GenerateFromClaim(ctx context.Context, userID int64, claim string, count int) (*quiz.Quiz, quiz.Meta) {
	if count <= 0 {
		count = defaultQuizCount
	}
	if count > maxQuizCount {
		count = maxQuizCount
	}

	claimHash := hashClaim(claim)
	q := &quiz.Quiz{
		ID:        fmt.Sprintf("quiz_%d_%s", userID, claimHash[:8]),
		Claim:     claim,
		Items:     []quiz.Item{},
		CreatedAt: time.Now().UTC(),
	}
	meta := quiz.Meta{ClaimHash: claimHash}

	contexts := s.buildContexts(ctx, claim)
	meta.SourcesUsed = len(contexts)
	if len(contexts) == 0 {
		meta.Reason = "no reliable sources found to generate quiz"
		return q, meta
	}

	candidates, genErr := s.generate(ctx, contexts, claim, count)
	if len(candidates) == 0 {
		meta.Reason = "quiz generation produced no candidates"
		meta.Error = genErr
		return q, meta
	}

	items := quiz.Validate(candidates, contexts, s.allow.IsAllowed)
	if len(items) == 0 {
		meta.Reason = "no valid questions could be generated"
		meta.Error = genErr
		return q, meta
	}
	if len(items) > count {
		items = items[:count]
	}
	q.Items = items

	s.quizzes.Set(q.ID, q)

	if s.progress != nil {
		s.progress.AddQuizFact(ctx, userID, claim, contexts[0].URL, len(items))
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id": userID,
			"quiz_id": q.ID,
			"items":   len(items),
			"sources": len(contexts),
		}).Info("quiz generated")
	}
	return q, meta
}

// GradeQuiz scores submitted answers. The stored quiz's answer key is
// authoritative; the client-supplied key only serves quizzes that already
// aged out of the cache.
func (s *QuizService) GradeQuiz(ctx context.Context, userID int64, quizID string, answers []int, clientKey []int) quiz.GradeResult {
	key := clientKey
	if stored, ok := s.quizzes.Get(quizID); ok {
		key = stored.Key()
	}

	result := quiz.Grade(answers, key)
	if result.Total > 0 && s.progress != nil {
		s.progress.AddQuizAnswers(ctx, userID)
	}
	return result
}

// buildContexts searches for the claim and extracts pages in provider order,
// turning each into a bounded snippet context.
func (s *QuizService) buildContexts(ctx context.Context, claim string) []evidence.Context {
	query := s.allow.BuildQuery(claim)
	results := s.searcher.VerifiedSearch(ctx, query, quizTopURLs)

	var contexts []evidence.Context
	for _, res := range results {
		page, ok := s.extractor.FetchMainText(ctx, res.URL)
		if !ok {
			continue
		}
		title := page.Title
		if title == "" {
			title = res.Title
		}
		contexts = append(contexts, evidence.Context{Title: title, URL: page.URL, Snippet: snippet(page.Text, quizSnippetLen)})
		if len(contexts) >= quizMaxContexts {
			break
		}
	}
	return contexts
}

// generate tries the LLM path first and falls back to cloze deletion. The
// returned string carries the LLM failure for Meta diagnostics.
func (s *QuizService) generate(ctx context.Context, contexts []evidence.Context, claim string, count int) ([]quiz.Candidate, string) {
	genErr := ""
	if s.generator != nil {
		candidates, err := s.generator.Generate(ctx, contexts, claim, count)
		if err == nil && len(candidates) > 0 {
			return candidates, ""
		}
		if err != nil {
			genErr = err.Error()
			if s.logger != nil {
				s.logger.WithError(err).Warn("llm quiz generation failed; falling back to cloze")
			}
		}
	}

	if s.cloze != nil {
		return s.cloze.Generate(contexts, count), genErr
	}
	return nil, genErr
}

func hashClaim(claim string) string {
	sum := sha256.Sum256([]byte(claim))
	return fmt.Sprintf("%x", sum)
}
