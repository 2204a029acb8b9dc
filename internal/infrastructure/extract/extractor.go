// Package extract fetches allowlisted pages and reduces them to readable
// main text for the retrieval pipeline.
package extract

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/allowlist"
	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/infrastructure/memcache"
)

const (
	userAgent = "HealthFactAI/1.0 (+verified-search)"

	// minContentLength is the signal-quality floor: shorter extractions are
	// rarely useful evidence and are rejected outright.
	minContentLength = 400

	// maxBodyBytes bounds how much HTML is read from one page.
	maxBodyBytes = 5 << 20
)

// Extractor fetches a URL once, strips boilerplate and caches the result
// keyed by URL. Every failure mode reads as a miss; callers skip the URL and
// move on.
type Extractor struct {
	client *http.Client
	allow  *allowlist.Allowlist
	cache  *memcache.Cache[*evidence.ExtractedPage]
	logger *logrus.Logger
}

func New(client *http.Client, allow *allowlist.Allowlist, cache *memcache.Cache[*evidence.ExtractedPage], logger *logrus.Logger) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Extractor{client: client, allow: allow, cache: cache, logger: logger}
}

// FetchMainText returns the readable body of the page at rawURL. Disallowed
// URLs never reach the network.
func (e *Extractor) FetchMainText(ctx context.Context, rawURL string) (*evidence.ExtractedPage, bool) {
	if !e.allow.IsAllowed(rawURL) {
		return nil, false
	}

	if page, ok := e.cache.Get(rawURL); ok {
		return page, true
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		if e.logger != nil {
			e.logger.WithField("url", rawURL).WithError(err).Debug("page fetch failed")
		}
		return nil, false
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if e.logger != nil {
			e.logger.WithFields(logrus.Fields{"url": rawURL, "status": resp.StatusCode}).Debug("page fetch rejected")
		}
		return nil, false
	}

	html, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, false
	}

	title, text := extractContent(html, rawURL)
	text = normalizeWhitespace(text)
	if len(text) < minContentLength {
		return nil, false
	}

	page := &evidence.ExtractedPage{Title: title, URL: rawURL, Text: text}
	e.cache.Set(rawURL, page)
	return page, true
}

// extractContent runs the two-stage extraction: readability first, then a
// raw visible-text fallback when readability cannot parse the document.
func extractContent(html []byte, rawURL string) (title, text string) {
	pageURL, _ := url.Parse(rawURL)
	if article, err := readability.FromReader(bytes.NewReader(html), pageURL); err == nil {
		return article.Title, article.TextContent
	}
	return rawExtract(html)
}

func rawExtract(html []byte) (title, text string) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return "", ""
	}
	title = strings.TrimSpace(doc.Find("title").First().Text())
	doc.Find("script, style, noscript").Remove()
	text = doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}
	return title, text
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
