package ports

import (
	"context"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

// PageExtractor fetches a URL and returns its readable main text. ok=false
// covers every failure mode: disallowed URL, transport error, non-2xx status,
// and pages below the content floor.
type PageExtractor interface {
	FetchMainText(ctx context.Context, url string) (*evidence.ExtractedPage, bool)
}
