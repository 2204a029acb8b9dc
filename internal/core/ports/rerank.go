package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/retrieval"
)

// Reranker reorders passages by semantic relevance to the query. When the
// feature is disabled or the backing service fails, implementations return
// the first topK passages unscored instead of an error.
type Reranker interface {
	Rerank(ctx context.Context, query string, passages []string, topK int) []retrieval.ScoredPassage
}
