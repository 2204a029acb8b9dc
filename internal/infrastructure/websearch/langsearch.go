package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/threat0512/HealthFactAI/internal/core/allowlist"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

const langSearchEndpoint = "https://api.langsearch.com/v1/web-search"

// LangSearch is the primary semantic web-search provider.
type LangSearch struct {
	apiKey string
	client *http.Client
	allow  *allowlist.Allowlist
}

func NewLangSearch(apiKey string, client *http.Client, allow *allowlist.Allowlist) *LangSearch {
	if client == nil {
		client = http.DefaultClient
	}
	return &LangSearch{apiKey: apiKey, client: client, allow: allow}
}

func (p *LangSearch) Name() string { return "langsearch" }

type langSearchRequest struct {
	Query     string `json:"query"`
	Freshness string `json:"freshness"`
	Summary   bool   `json:"summary"`
	Count     int    `json:"count"`
}

type langSearchResponse struct {
	Data struct {
		WebPages struct {
			Value []struct {
				Name string `json:"name"`
				URL  string `json:"url"`
			} `json:"value"`
		} `json:"webPages"`
	} `json:"data"`
}

// Search issues a semantic web search and returns allowlisted results in
// provider order.
func (p *LangSearch) Search(ctx context.Context, query string, top int) ([]evidence.SearchResult, error) {
	if p.apiKey == "" {
		return nil, ErrDisabled
	}

	body, err := json.Marshal(langSearchRequest{Query: query, Freshness: "noLimit", Summary: false, Count: top})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, langSearchEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("langsearch: unexpected status %d", resp.StatusCode)
	}

	var decoded langSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("langsearch: decode response: %w", err)
	}

	results := make([]evidence.SearchResult, 0, top)
	for _, item := range decoded.Data.WebPages.Value {
		if item.URL == "" || !p.allow.IsAllowed(item.URL) {
			continue
		}
		results = append(results, evidence.SearchResult{Title: item.Name, URL: item.URL})
	}
	return results, nil
}
