package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
)

func TestGeneratorDisabledWithoutKey(t *testing.T) {
	g := NewGenerator("", nil)
	if g.Enabled() {
		t.Fatal("generator must be disabled without an API key")
	}
	if _, err := g.Generate(context.Background(), []evidence.Context{{URL: "https://www.who.int/x"}}, "claim", 3); err == nil {
		t.Fatal("expected error from disabled generator")
	}
}

func TestSystemPromptAllowsEmptyItems(t *testing.T) {
	// The model must be told it may decline: validation cannot catch
	// fabricated items that cite real context URLs.
	if !strings.Contains(systemPrompt, "If insufficient context, return an empty items array.") {
		t.Fatal("system prompt is missing the empty-items instruction")
	}
}

func TestUserPromptNumbersContextBlocks(t *testing.T) {
	contexts := []evidence.Context{
		{Title: "WHO", URL: "https://www.who.int/a", Snippet: "first snippet"},
		{Title: "CDC", URL: "https://www.cdc.gov/b", Snippet: "second snippet"},
	}
	prompt := userPrompt(contexts, "sleep matters", 3)

	for _, want := range []string{"Claim under review: sleep matters", "[1] WHO", "[2] CDC", "first snippet", "second snippet", "Write 3 multiple-choice questions"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
