package provider

import (
	"context"
	"fmt"

	"github.com/teilomillet/gollm"
	"github.com/teilomillet/tutor/config"
)

// LLMFactory builds a gollm client bound to one model.
type LLMFactory func(model string) (gollm.LLM, error)

// GollmGenerator sends prompts through gollm, which covers vendor APIs
// (openai, anthropic, groq, mistral) and local Ollama. A client is built for
// every call because the model is chosen per request.
type GollmGenerator struct {
	newLLM LLMFactory
}

// NewGollmGenerator creates a generator for cfg.Provider.
func NewGollmGenerator(cfg config.LLMConfig) (*GollmGenerator, error) {
	if cfg.Provider == "" {
		return nil, fmt.Errorf("gollm client requires a provider")
	}
	return NewGollmGeneratorWithFactory(gollmFactory(cfg)), nil
}

// NewGollmGeneratorWithFactory creates a generator using newLLM to build clients.
func NewGollmGeneratorWithFactory(newLLM LLMFactory) *GollmGenerator {
	return &GollmGenerator{newLLM: newLLM}
}

// gollmOptions always sets the configured key, even when empty, so gollm's
// *_API_KEY environment scan never supplies a credential.
func gollmOptions(cfg config.LLMConfig, model string) []gollm.ConfigOption {
	return []gollm.ConfigOption{
		gollm.SetProvider(cfg.Provider),
		gollm.SetModel(model),
		gollm.SetAPIKey(cfg.APIKey),
	}
}

func gollmFactory(cfg config.LLMConfig) LLMFactory {
	return func(model string) (gollm.LLM, error) {
		llm, err := gollm.NewLLM(gollmOptions(cfg, model)...)
		if err != nil {
			return nil, err
		}

		if cfg.Provider == "ollama" && cfg.Endpoint != "" {
			if err := llm.SetOllamaEndpoint(cfg.Endpoint); err != nil {
				return nil, fmt.Errorf("set ollama endpoint: %w", err)
			}
		}
		return llm, nil
	}
}

// Generate builds a client for model and sends prompt as one user message.
func (g *GollmGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	llm, err := g.newLLM(model)
	if err != nil {
		return "", fmt.Errorf("%w: create client: %v", ErrGeneration, err)
	}

	resp, err := llm.Generate(ctx, &gollm.Prompt{
		Messages: []gollm.PromptMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return resp, nil
}
