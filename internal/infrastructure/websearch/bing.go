package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/threat0512/HealthFactAI/internal/core/allowlist"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

const bingEndpoint = "https://api.bing.microsoft.com/v7.0/search"

// Bing is the keyword-search fallback provider.
type Bing struct {
	apiKey string
	client *http.Client
	allow  *allowlist.Allowlist
}

func NewBing(apiKey string, client *http.Client, allow *allowlist.Allowlist) *Bing {
	if client == nil {
		client = http.DefaultClient
	}
	return &Bing{apiKey: apiKey, client: client, allow: allow}
}

func (p *Bing) Name() string { return "bing" }

type bingResponse struct {
	WebPages struct {
		Value []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		} `json:"value"`
	} `json:"webPages"`
}

// Search issues a keyword web search and returns allowlisted results in
// provider order.
func (p *Bing) Search(ctx context.Context, query string, top int) ([]evidence.SearchResult, error) {
	if p.apiKey == "" {
		return nil, ErrDisabled
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("count", strconv.Itoa(top))
	params.Set("responseFilter", "Webpages")
	params.Set("safeSearch", "Strict")
	params.Set("textDecorations", "false")
	params.Set("setLang", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bingEndpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", p.apiKey)
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("bing: unexpected status %d", resp.StatusCode)
	}

	var decoded bingResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("bing: decode response: %w", err)
	}

	results := make([]evidence.SearchResult, 0, top)
	for _, item := range decoded.WebPages.Value {
		if item.URL == "" || !p.allow.IsAllowed(item.URL) {
			continue
		}
		results = append(results, evidence.SearchResult{Title: item.Name, URL: item.URL})
	}
	return results, nil
}
