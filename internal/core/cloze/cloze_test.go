package cloze

import (
	"strings"
	"testing"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

const snippet = "Regular physical activity strengthens the cardiovascular system over time. " +
	"Moderate exercise reduces blood pressure and improves circulation throughout the body. " +
	"Short sentence here. " +
	"Adults should accumulate at least 150 minutes of moderate aerobic activity every week."

func testContexts() []evidence.Context {
	return []evidence.Context{{
		Title:   "Physical activity",
		URL:     "https://www.who.int/news-room/fact-sheets/physical-activity",
		Snippet: snippet,
	}}
}

func TestGenerateProducesValidCandidates(t *testing.T) {
	g := New(42)
	items := g.Generate(testContexts(), 3)
	if len(items) == 0 {
		t.Fatal("expected at least one cloze candidate")
	}
	for _, it := range items {
		if len(it.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(it.Options))
		}
		if it.CorrectIndex == nil || *it.CorrectIndex < 0 || *it.CorrectIndex > 3 {
			t.Fatal("correct index out of range")
		}
		if !strings.Contains(it.Question, "____") {
			t.Errorf("question has no blank: %q", it.Question)
		}
		// The blanked keyword must be among the options at the recorded index.
		keyword := it.Options[*it.CorrectIndex]
		if !strings.Contains(it.Explanation, keyword) {
			t.Errorf("explanation %q does not contain keyword %q", it.Explanation, keyword)
		}
		if it.SourceURL != testContexts()[0].URL {
			t.Errorf("unexpected source url %q", it.SourceURL)
		}
		seen := map[string]bool{}
		for _, o := range it.Options {
			if seen[strings.ToLower(o)] {
				t.Errorf("duplicate option %q", o)
			}
			seen[strings.ToLower(o)] = true
		}
	}
}

func TestGenerateSkipsShortSentences(t *testing.T) {
	g := New(1)
	items := g.Generate([]evidence.Context{{URL: "https://www.cdc.gov/x", Snippet: "Too short. Way too short."}}, 5)
	if len(items) != 0 {
		t.Fatalf("expected no candidates from short sentences, got %d", len(items))
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	a := New(7).Generate(testContexts(), 3)
	b := New(7).Generate(testContexts(), 3)
	if len(a) != len(b) {
		t.Fatalf("runs differ in length: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Question != b[i].Question || *a[i].CorrectIndex != *b[i].CorrectIndex {
			t.Fatal("same seed produced different output")
		}
	}
}

func TestGenerateRespectsLimit(t *testing.T) {
	g := New(3)
	items := g.Generate(testContexts(), 1)
	if len(items) > 1 {
		t.Fatalf("expected at most 1 item, got %d", len(items))
	}
}
