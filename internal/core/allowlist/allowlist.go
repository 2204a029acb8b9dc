package allowlist

import (
	"fmt"
	"net/url"
	"strings"
)

// Allowlist is the configured set of trusted domain suffixes. Only URLs whose
// host matches it are ever fetched or cited.
type Allowlist struct {
	domains []string
}

// New builds an allowlist from lowercase domain suffixes.
func New(domains []string) *Allowlist {
	normalized := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			normalized = append(normalized, d)
		}
	}
	return &Allowlist{domains: normalized}
}

// Domains returns the configured suffixes in order.
func (a *Allowlist) Domains() []string {
	return a.domains
}

// IsAllowed reports whether the URL's host is one of the allowed domains or a
// proper subdomain of one. The match anchors on the dot boundary so that
// "evil-who.int" never matches "who.int". Malformed URLs are not allowed.
func (a *Allowlist) IsAllowed(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, d := range a.domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// BuildQuery scopes a claim to the allowlist with site: operators, e.g.
// `claim (site:who.int OR site:cdc.gov)`.
func (a *Allowlist) BuildQuery(claim string) string {
	sites := make([]string, 0, len(a.domains))
	for _, d := range a.domains {
		sites = append(sites, "site:"+d)
	}
	return fmt.Sprintf("%s (%s)", claim, strings.Join(sites, " OR "))
}
