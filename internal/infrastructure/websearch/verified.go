// Package websearch adapts external search providers into the pipeline's
// verified-search operation: allowlist-filtered, cached, and degrading to an
// empty result on any provider failure.
package websearch

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/ports"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/memcache"
)

// userAgent identifies the service on every outbound provider call.
const userAgent = "HealthFactAI/1.0 (+verified-search)"

// ErrDisabled marks a provider whose API key is not configured; the adapter
// skips it without logging noise.
var ErrDisabled = errors.New("search provider disabled: missing API key")

// VerifiedSearcher tries the primary (semantic) provider and falls back to
// the keyword provider when it yields nothing. Per-provider results are
// cached keyed by (provider, query, top).
type VerifiedSearcher struct {
	primary  ports.SearchProvider
	fallback ports.SearchProvider
	cache    *memcache.Cache[[]evidence.SearchResult]
	logger   *logrus.Logger
}

func NewVerifiedSearcher(primary, fallback ports.SearchProvider, cache *memcache.Cache[[]evidence.SearchResult], logger *logrus.Logger) *VerifiedSearcher {
	return &VerifiedSearcher{primary: primary, fallback: fallback, cache: cache, logger: logger}
}

// VerifiedSearch returns up to top allowlisted results. It never fails: any
// provider error degrades to the next provider and finally to an empty list.
func (s *VerifiedSearcher) VerifiedSearch(ctx context.Context, query string, top int) []evidence.SearchResult {
	if results := s.providerSearch(ctx, s.primary, query, top); len(results) > 0 {
		return results
	}
	return s.providerSearch(ctx, s.fallback, query, top)
}

func (s *VerifiedSearcher) providerSearch(ctx context.Context, provider ports.SearchProvider, query string, top int) []evidence.SearchResult {
	if provider == nil {
		return nil
	}

	key := fmt.Sprintf("%s|%s|%d", provider.Name(), query, top)
	if cached, ok := s.cache.Get(key); ok {
		return cached
	}

	results, err := provider.Search(ctx, query, top)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			return nil
		}
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"provider": provider.Name(), "query": query}).
				WithError(err).Warn("search provider failed; degrading to empty result")
		}
		return nil
	}

	s.cache.Set(key, results)
	return results
}
