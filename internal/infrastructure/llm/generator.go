// Package llm generates quiz candidates from retrieved evidence with the
// OpenAI chat completions API.
package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"

	"github.com/threat0512/HealthFactAI/internal/core/domain/evidence"
	"github.com/threat0512/HealthFactAI/internal/core/domain/quiz"
)

const (
	model       = openai.ChatModelGPT4oMini
	temperature = 0.2

	systemPrompt = "You write multiple-choice health questions grounded strictly in the provided " +
		"context snippets from trusted sources (WHO, CDC, NHS and similar). Use only facts stated " +
		"in the context. Never invent statistics or sources. Respond with a JSON object of the form " +
		`{"items":[{"question":"...","options":["...","...","...","..."],"correct_index":0,` +
		`"explanation":"...","source_url":"..."}]}. Each item has exactly four options, one correct ` +
		"answer, and a source_url copied verbatim from one of the context blocks. " +
		"If insufficient context, return an empty items array."
)

// Generator produces quiz candidates by prompting a chat model with numbered
// context blocks. A missing API key disables it; the quiz service then falls
// back to cloze generation.
type Generator struct {
	client  *openai.Client
	enabled bool
	logger  *logrus.Logger
}

func NewGenerator(apiKey string, logger *logrus.Logger) *Generator {
	if apiKey == "" {
		return &Generator{enabled: false, logger: logger}
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Generator{client: &client, enabled: true, logger: logger}
}

// Enabled reports whether the generator has an API key to work with.
func (g *Generator) Enabled() bool { return g.enabled }

type itemsEnvelope struct {
	Items []quiz.Candidate `json:"items"`
}

// Generate asks the model for n candidates over the given contexts. Errors
// are diagnostic; the caller degrades to zero candidates.
func (g *Generator) Generate(ctx context.Context, contexts []evidence.Context, claim string, n int) ([]quiz.Candidate, error) {
	if !g.enabled {
		return nil, fmt.Errorf("llm generator disabled: missing API key")
	}
	if len(contexts) == 0 {
		return nil, fmt.Errorf("llm generator: no contexts")
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(contexts, claim, n)),
		},
		Temperature: openai.Float(temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &openai.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("llm generator: completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("llm generator: empty completion")
	}

	var envelope itemsEnvelope
	if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &envelope); err != nil {
		return nil, fmt.Errorf("llm generator: parse items: %w", err)
	}
	if g.logger != nil {
		g.logger.WithFields(logrus.Fields{"requested": n, "generated": len(envelope.Items)}).
			Debug("llm quiz generation completed")
	}
	return envelope.Items, nil
}

func userPrompt(contexts []evidence.Context, claim string, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Claim under review: %s\n\nContext:\n", claim)
	for i, c := range contexts {
		fmt.Fprintf(&b, "[%d] %s — %s\n%s\n\n", i+1, c.Title, c.URL, c.Snippet)
	}
	fmt.Fprintf(&b, "Write %d multiple-choice questions testing understanding of the claim against this context.", n)
	return b.String()
}
