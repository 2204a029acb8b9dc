// Package rerank calls the LangSearch semantic rerank API to reorder
// retrieved passages, falling back to lexical order when the service is
// unavailable.
package rerank

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/retrieval"
)

const (
	rerankEndpoint = "https://api.langsearch.com/v1/semantic-rerank"
	userAgent      = "HealthFactAI/1.0 (+verified-search)"
)

// LangSearch reranks passages via the hosted semantic-rerank model. Any
// failure degrades to the first topK passages with zero scores so the
// pipeline keeps its BM25 ordering.
type LangSearch struct {
	apiKey   string
	enabled  bool
	endpoint string
	client   *http.Client
	logger   *logrus.Logger
}

func NewLangSearch(apiKey string, enabled bool, client *http.Client, logger *logrus.Logger) *LangSearch {
	if client == nil {
		client = http.DefaultClient
	}
	return &LangSearch{apiKey: apiKey, enabled: enabled, endpoint: rerankEndpoint, client: client, logger: logger}
}

type rerankRequest struct {
	Query     string   `json:"query"`
	Documents []string `json:"documents"`
	TopK      int      `json:"topK"`
}

type rerankResult struct {
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

// rerankResponse tolerates both response shapes the API serves: data as a
// bare result list, or data as an object wrapping a results list.
type rerankResponse struct {
	Data json.RawMessage `json:"data"`
}

func (r *rerankResponse) results() []rerankResult {
	if len(r.Data) == 0 {
		return nil
	}
	var list []rerankResult
	if err := json.Unmarshal(r.Data, &list); err == nil {
		return list
	}
	var wrapped struct {
		Results []rerankResult `json:"results"`
	}
	if err := json.Unmarshal(r.Data, &wrapped); err == nil {
		return wrapped.Results
	}
	return nil
}

// Rerank reorders passages by semantic relevance to the query and returns
// up to topK of them.
func (r *LangSearch) Rerank(ctx context.Context, query string, passages []string, topK int) []retrieval.ScoredPassage {
	if len(passages) == 0 || topK <= 0 {
		return nil
	}
	if !r.enabled || r.apiKey == "" {
		return passthrough(passages, topK)
	}

	scored, err := r.call(ctx, query, passages, topK)
	if err != nil {
		if r.logger != nil {
			r.logger.WithError(err).Warn("semantic rerank failed; keeping lexical order")
		}
		return passthrough(passages, topK)
	}
	return scored
}

func (r *LangSearch) call(ctx context.Context, query string, passages []string, topK int) ([]retrieval.ScoredPassage, error) {
	body, err := json.Marshal(rerankRequest{Query: query, Documents: passages, TopK: topK})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("rerank: unexpected status %d", resp.StatusCode)
	}

	var decoded rerankResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("rerank: decode response: %w", err)
	}

	ranked := make([]retrieval.ScoredPassage, 0, topK)
	for _, res := range decoded.results() {
		if res.Index < 0 || res.Index >= len(passages) {
			continue
		}
		ranked = append(ranked, retrieval.ScoredPassage{Score: res.Score, Passage: passages[res.Index]})
	}
	if len(ranked) == 0 {
		return nil, fmt.Errorf("rerank: no usable results in response")
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked, nil
}

func passthrough(passages []string, topK int) []retrieval.ScoredPassage {
	if topK > len(passages) {
		topK = len(passages)
	}
	out := make([]retrieval.ScoredPassage, 0, topK)
	for _, p := range passages[:topK] {
		out = append(out, retrieval.ScoredPassage{Score: 0, Passage: p})
	}
	return out
}
