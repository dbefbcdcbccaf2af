// Package provider implements the clients that send rendered prompts to a
// chat-completion service.
package provider

import (
	"context"
	"fmt"

	"github.com/teilomillet/tutor/config"
)

// Generator sends one prompt as a single user message to model and returns
// the text of the first answer. Implementations make exactly one attempt.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(ctx context.Context, model, prompt string) (string, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context, model, prompt string) (string, error) {
	return f(ctx, model, prompt)
}

// New builds the Generator selected by cfg.Client.
func New(cfg config.LLMConfig) (Generator, error) {
	switch cfg.Client {
	case "", "openai":
		return NewOpenAIGenerator(cfg)
	case "gollm":
		return NewGollmGenerator(cfg)
	default:
		return nil, fmt.Errorf("unknown llm client %q", cfg.Client)
	}
}
