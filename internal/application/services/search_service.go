package services

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/allowlist"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/core/retrieval"
)

// Verification pipeline bounds.
const (
	verifyTopResults  = 6
	verifyMaxPages    = 4
	verifySnippetLen  = 500
	verifyChunkSize   = 200
	verifyOverlap     = 50
	verifyTopPassages = 3
)

// Confidence tiers for verification outcomes.
const (
	confidenceSupported = 0.75
	confidenceWeak      = 0.2
	confidenceNone      = 0.0
)

// SearchService verifies health claims against allowlisted sources: search,
// extract, chunk, rank, and summarize into a Verification. It never returns
// an error; every failure mode degrades to a lower-confidence result.
type SearchService struct {
	allow     *allowlist.Allowlist
	searcher  ports.WebSearcher
	extractor ports.PageExtractor
	reranker  ports.Reranker
	useRerank bool
	progress  ports.ProgressService
	logger    *logrus.Logger
}

func NewSearchService(allow *allowlist.Allowlist, searcher ports.WebSearcher, extractor ports.PageExtractor, reranker ports.Reranker, useRerank bool, progress ports.ProgressService, logger *logrus.Logger) ports.SearchService {
	return &SearchService{
		allow:     allow,
		searcher:  searcher,
		extractor: extractor,
		reranker:  reranker,
		useRerank: useRerank,
		progress:  progress,
		logger:    logger,
	}
}

// VerifyClaim runs the full verification pipeline for one claim.
func (s *SearchService) VerifyClaim(ctx context.Context, userID int64, claim string) *evidence.Verification {
	v := &evidence.Verification{Claim: claim, Confidence: confidenceNone}

	query := s.allow.BuildQuery(claim)
	results := s.searcher.VerifiedSearch(ctx, query, verifyTopResults)
	if len(results) == 0 {
		v.Explanation = "No reliable sources found to verify this claim."
		return v
	}

	contexts, passages := s.collectEvidence(ctx, results)
	if len(contexts) == 0 {
		// Sources exist but none could be read; list the hits with empty
		// snippets so callers still see what was found.
		for _, res := range results {
			v.Sources = append(v.Sources, evidence.Source{Title: res.Title, URL: res.URL})
		}
		v.Explanation = "Unable to extract meaningful content from available sources."
		v.Confidence = confidenceWeak
		return v
	}

	for _, c := range contexts {
		v.Sources = append(v.Sources, evidence.Source{Title: c.Title, URL: c.URL, Snippet: c.Snippet})
	}

	v.IsVerified = true
	v.Confidence = confidenceSupported

	ranked := s.rank(ctx, claim, passages)
	if len(ranked) == 0 {
		v.Explanation = fmt.Sprintf("The claim '%s' could not be verified from the available sources.", claim)
	} else {
		v.Explanation = "Based on scientific evidence, " + ranked[0].Passage
	}

	if s.progress != nil {
		s.progress.AddSearchFact(ctx, userID, claim, contexts[0].URL)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":  userID,
			"sources":  len(v.Sources),
			"passages": len(ranked),
		}).Info("claim verified")
	}
	return v
}

// collectEvidence extracts up to verifyMaxPages pages in provider order and
// turns each into a bounded snippet context plus ranked-passage chunks.
func (s *SearchService) collectEvidence(ctx context.Context, results []evidence.SearchResult) ([]evidence.Context, []string) {
	var (
		contexts []evidence.Context
		passages []string
	)
	for _, res := range results {
		if len(contexts) >= verifyMaxPages {
			break
		}
		page, ok := s.extractor.FetchMainText(ctx, res.URL)
		if !ok {
			continue
		}

		title := page.Title
		if title == "" {
			title = res.Title
		}
		contexts = append(contexts, evidence.Context{Title: title, URL: page.URL, Snippet: snippet(page.Text, verifySnippetLen)})
		passages = append(passages, retrieval.Chunk(page.Text, verifyChunkSize, verifyOverlap)...)
	}
	return contexts, passages
}

func (s *SearchService) rank(ctx context.Context, claim string, passages []string) []retrieval.ScoredPassage {
	if s.useRerank && s.reranker != nil {
		return s.reranker.Rerank(ctx, claim, passages, verifyTopPassages)
	}
	return retrieval.BM25Rank(claim, passages, verifyTopPassages)
}

// snippet returns a rune-safe prefix of text.
func snippet(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen])
}
