package llm

import (
	"context"
)

// LLMClient is the single capability the engine's collaborators (extractor,
// disambiguation arbiter) need from a language model provider.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
