package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

// SearchProvider is one external web-search backend. Implementations filter
// results through the domain allowlist before returning them.
type SearchProvider interface {
	// Name identifies the provider for cache keys and logging.
	Name() string
	// Search returns up to top allowlisted results in provider relevance
	// order. Transport or decoding failures surface as errors so the
	// adapter above can log and degrade.
	Search(ctx context.Context, query string, top int) ([]evidence.SearchResult, error)
}

// WebSearcher is the verified-search entry point the pipeline consumes: a
// primary provider with keyword fallback, caching, and degrade-to-empty
// semantics. It never returns an error.
type WebSearcher interface {
	VerifiedSearch(ctx context.Context, query string, top int) []evidence.SearchResult
}

// SearchService verifies a claim against allowlisted sources.
type SearchService interface {
	VerifyClaim(ctx context.Context, userID int64, claim string) *evidence.Verification
}
