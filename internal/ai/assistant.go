package ai

import "context"

// Generator produces a single text completion for a single text
// prompt. Providers are stateless from the caller's point of view:
// conversation history is never sent back, only re-embedded facts.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	Model() string
}
