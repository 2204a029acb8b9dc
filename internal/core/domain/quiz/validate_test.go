package quiz

import (
	"strings"
	"testing"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

func intPtr(i int) *int { return &i }

func testContexts() []evidence.Context {
	return []evidence.Context{
		{Title: "WHO", URL: "https://www.who.int/news/item/sleep", Snippet: "..."},
		{Title: "CDC", URL: "https://www.cdc.gov/sleep/facts", Snippet: "..."},
	}
}

func allowAll(string) bool { return true }

func validCandidate() Candidate {
	return Candidate{
		Question:     "How many hours of sleep do adults need?",
		Options:      []string{"Five", "Six", "Seven or more", "Ten"},
		CorrectIndex: intPtr(2),
		Explanation:  "Adults need seven or more hours per night.",
		SourceURL:    "https://www.who.int/news/item/sleep",
	}
}

func TestValidateAcceptsWellFormedCandidate(t *testing.T) {
	items := Validate([]Candidate{validCandidate()}, testContexts(), allowAll)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].CorrectIndex != 2 {
		t.Fatalf("unexpected correct index %d", items[0].CorrectIndex)
	}
}

func TestValidateStripsOptionPrefixes(t *testing.T) {
	c := validCandidate()
	c.Options = []string{"A) Five", "B. Six", "C: Seven or more", "1. Ten"}
	items := Validate([]Candidate{c}, testContexts(), allowAll)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	for _, o := range items[0].Options {
		if strings.ContainsAny(o[:1], "ABC1") && len(o) > 1 && (o[1] == ')' || o[1] == '.') {
			t.Fatalf("prefix survived normalization: %q", o)
		}
	}
	if items[0].Options[2] != "Seven or more" {
		t.Fatalf("unexpected normalized option: %q", items[0].Options[2])
	}
}

func TestValidateRejectsWrongOptionCount(t *testing.T) {
	c := validCandidate()
	c.Options = c.Options[:3]
	if items := Validate([]Candidate{c}, testContexts(), allowAll); len(items) != 0 {
		t.Fatalf("expected rejection of 3-option candidate, got %+v", items)
	}
}

func TestValidateRejectsDuplicateOptions(t *testing.T) {
	c := validCandidate()
	c.Options = []string{"Seven", "seven", "SEVEN", "Eight"}
	if items := Validate([]Candidate{c}, testContexts(), allowAll); len(items) != 0 {
		t.Fatalf("expected rejection of case-duplicate options, got %+v", items)
	}
}

func TestValidateResolvesLetterAnswer(t *testing.T) {
	c := validCandidate()
	c.CorrectIndex = nil
	c.CorrectAnswer = "c"
	items := Validate([]Candidate{c}, testContexts(), allowAll)
	if len(items) != 1 || items[0].CorrectIndex != 2 {
		t.Fatalf("expected letter answer to resolve to index 2, got %+v", items)
	}
}

func TestValidateResolvesTextualAnswer(t *testing.T) {
	c := validCandidate()
	c.CorrectIndex = nil
	c.CorrectAnswer = "Seven or more"
	items := Validate([]Candidate{c}, testContexts(), allowAll)
	if len(items) != 1 || items[0].CorrectIndex != 2 {
		t.Fatalf("expected textual answer to resolve to index 2, got %+v", items)
	}
}

func TestValidateRejectsUnresolvableAnswer(t *testing.T) {
	c := validCandidate()
	c.CorrectIndex = nil
	c.CorrectAnswer = "Eleven"
	if items := Validate([]Candidate{c}, testContexts(), allowAll); len(items) != 0 {
		t.Fatalf("expected rejection of unresolvable answer, got %+v", items)
	}
}

func TestValidateRejectsOutOfRangeIndex(t *testing.T) {
	c := validCandidate()
	c.CorrectIndex = intPtr(7)
	if items := Validate([]Candidate{c}, testContexts(), allowAll); len(items) != 0 {
		t.Fatalf("expected rejection of out-of-range index, got %+v", items)
	}
}

func TestValidateRejectsUnknownSourceURL(t *testing.T) {
	c := validCandidate()
	c.SourceURL = "https://www.who.int/other-page"
	if items := Validate([]Candidate{c}, testContexts(), allowAll); len(items) != 0 {
		t.Fatalf("expected rejection of uncited source, got %+v", items)
	}
}

func TestValidateAcceptsNormalizedSourceURL(t *testing.T) {
	c := validCandidate()
	c.SourceURL = "https://www.who.int/news/item/sleep/?utm_source=share"
	items := Validate([]Candidate{c}, testContexts(), allowAll)
	if len(items) != 1 {
		t.Fatalf("expected query-string variant to match context URL, got %+v", items)
	}
}

func TestValidateRejectsDisallowedContextURL(t *testing.T) {
	denyAll := func(string) bool { return false }
	if items := Validate([]Candidate{validCandidate()}, testContexts(), denyAll); len(items) != 0 {
		t.Fatalf("expected rejection when no context URL is allowlisted, got %+v", items)
	}
}

func TestValidateTrimsQuestionAndExplanation(t *testing.T) {
	c := validCandidate()
	c.Question = "  " + c.Question + "  "
	c.Explanation = "\t" + c.Explanation + "\n"
	items := Validate([]Candidate{c}, testContexts(), allowAll)
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Question != strings.TrimSpace(c.Question) || items[0].Explanation != strings.TrimSpace(c.Explanation) {
		t.Fatalf("expected trimmed output, got %+v", items[0])
	}
}
