package quiz

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

var (
	letterPrefix = regexp.MustCompile(`^[A-Da-d][\)\.:]\s*`)
	numberPrefix = regexp.MustCompile(`^\d+[\)\.:]\s*`)
)

// stripOptionPrefix removes manual labels like "A) foo" or "1. bar" that
// models sometimes prepend to options.
func stripOptionPrefix(s string) string {
	s = strings.TrimSpace(s)
	s = letterPrefix.ReplaceAllString(s, "")
	s = numberPrefix.ReplaceAllString(s, "")
	return s
}

// normalizeURL reduces a URL to scheme://host/path with the query string and
// any trailing slash dropped, so that provider-added tracking parameters do
// not break provenance checks.
func normalizeURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimRight(raw, "/")
	}
	return strings.TrimRight(u.Scheme+"://"+u.Host+u.Path, "/")
}

// resolveCorrectIndex derives the canonical correct-answer index for a
// candidate. Resolution order: explicit integer, letter A-D, textual answer
// matched against the normalized options, then against the raw options.
// Returns -1 when nothing resolves to a valid index.
func resolveCorrectIndex(c Candidate, normOpts []string) int {
	if c.CorrectIndex != nil {
		if idx := *c.CorrectIndex; idx >= 0 && idx < len(normOpts) {
			return idx
		}
		return -1
	}
	ca := strings.TrimSpace(c.CorrectAnswer)
	if ca == "" {
		return -1
	}
	if len(ca) == 1 {
		if idx := strings.IndexByte("ABCD", byte(ca[0]&^0x20)); idx >= 0 {
			return idx
		}
	}
	caNorm := stripOptionPrefix(ca)
	for i, o := range normOpts {
		if o == caNorm {
			return i
		}
	}
	for i, o := range c.Options {
		if strings.TrimSpace(o) == ca {
			return i
		}
	}
	return -1
}

// Validate runs the full validation pipeline over generated candidates and
// returns only the items that satisfy every structural and provenance rule.
// allowed is the domain-allowlist predicate; contexts supply the only URLs a
// valid item may cite.
func Validate(candidates []Candidate, contexts []evidence.Context, allowed func(string) bool) []Item {
	exact := make(map[string]struct{}, len(contexts))
	normalized := make(map[string]struct{}, len(contexts))
	for _, c := range contexts {
		if !allowed(c.URL) {
			continue
		}
		exact[c.URL] = struct{}{}
		normalized[normalizeURL(c.URL)] = struct{}{}
	}

	var valid []Item
	for _, c := range candidates {
		normOpts := make([]string, 0, len(c.Options))
		for _, o := range c.Options {
			normOpts = append(normOpts, stripOptionPrefix(o))
		}
		if len(normOpts) != 4 {
			continue
		}

		idx := resolveCorrectIndex(c, normOpts)
		if idx < 0 || idx > 3 {
			continue
		}

		seen := make(map[string]struct{}, 4)
		for _, o := range normOpts {
			seen[strings.ToLower(strings.TrimSpace(o))] = struct{}{}
		}
		if len(seen) != 4 {
			continue
		}

		if c.SourceURL == "" {
			continue
		}
		if _, ok := exact[c.SourceURL]; !ok {
			if _, ok := normalized[normalizeURL(c.SourceURL)]; !ok {
				continue
			}
		}

		valid = append(valid, Item{
			Question:     strings.TrimSpace(c.Question),
			Options:      normOpts,
			CorrectIndex: idx,
			Explanation:  strings.TrimSpace(c.Explanation),
			SourceURL:    c.SourceURL,
		})
	}
	return valid
}
