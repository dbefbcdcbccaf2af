package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
	"github.com/teilomillet/tutor/config"
)

// OpenAIGenerator talks to any OpenAI-compatible chat completions API.
// Ollama Cloud exposes one under https://ollama.com/v1 and accepts the
// account key as a bearer token.
type OpenAIGenerator struct {
	client   openai.Client
	endpoint string
}

// NewOpenAIGenerator creates a generator for cfg.Endpoint authenticated with
// cfg.APIKey. The SDK's automatic retries are disabled, and the credentials it
// reads from OPENAI_API_KEY, OPENAI_ORG_ID and OPENAI_PROJECT_ID are replaced
// or removed so only the configured key reaches the endpoint.
func NewOpenAIGenerator(cfg config.LLMConfig, opts ...option.RequestOption) (*OpenAIGenerator, error) {
	endpoint, err := normalizeEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	clientOpts := []option.RequestOption{
		option.WithBaseURL(endpoint),
		option.WithMaxRetries(0),
		option.WithAPIKey(cfg.APIKey),
		option.WithHeaderDel("OpenAI-Organization"),
		option.WithHeaderDel("OpenAI-Project"),
	}
	if cfg.APIKey == "" {
		clientOpts = append(clientOpts, option.WithHeaderDel("Authorization"))
	}
	clientOpts = append(clientOpts, opts...)

	return &OpenAIGenerator{
		client:   openai.NewClient(clientOpts...),
		endpoint: endpoint,
	}, nil
}

// Endpoint returns the base URL requests are sent to.
func (g *OpenAIGenerator) Endpoint() string {
	return g.endpoint
}

// Generate issues one non-streaming chat completion.
func (g *OpenAIGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: %w", ErrGeneration, ErrEmptyResponse)
	}
	return completion.Choices[0].Message.Content, nil
}

// normalizeEndpoint makes sure the base URL ends with a slash. A bare host
// such as https://ollama.com gets the /v1/ prefix of the compatible API.
func normalizeEndpoint(raw string) (string, error) {
	if raw == "" {
		return "", fmt.Errorf("llm endpoint is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid llm endpoint %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid llm endpoint %q: scheme and host required", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/v1/"
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String(), nil
}
