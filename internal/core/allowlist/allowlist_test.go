package allowlist

import "testing"

func TestIsAllowed(t *testing.T) {
	al := New([]string{"who.int", "cdc.gov"})

	cases := []struct {
		url  string
		want bool
	}{
		{"https://www.who.int/news/item/123", true},
		{"https://who.int/", true},
		{"https://sub.cdc.gov/y", true},
		{"https://evilwho.int/x", false},
		{"https://evil-who.int/x", false},
		{"https://who.int.evil.com/x", false},
		{"https://nhs.uk/conditions", false},
		{"://not a url", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := al.IsAllowed(tc.url); got != tc.want {
			t.Errorf("IsAllowed(%q) = %v, want %v", tc.url, got, tc.want)
		}
	}
}

func TestIsAllowedCaseInsensitiveHost(t *testing.T) {
	al := New([]string{"who.int"})
	if !al.IsAllowed("https://WWW.WHO.INT/path") {
		t.Error("expected uppercase host to match")
	}
}

func TestBuildQuery(t *testing.T) {
	al := New([]string{"who.int", "cdc.gov"})
	got := al.BuildQuery("vitamin c prevents colds")
	want := "vitamin c prevents colds (site:who.int OR site:cdc.gov)"
	if got != want {
		t.Errorf("BuildQuery = %q, want %q", got, want)
	}
}

func TestNewNormalizesDomains(t *testing.T) {
	al := New([]string{" WHO.int ", "", "cdc.gov"})
	if len(al.Domains()) != 2 {
		t.Fatalf("expected 2 domains, got %d", len(al.Domains()))
	}
	if !al.IsAllowed("https://who.int/x") {
		t.Error("expected trimmed lowercase domain to match")
	}
}
