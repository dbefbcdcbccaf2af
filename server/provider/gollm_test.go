package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teilomillet/gollm"
	"github.com/teilomillet/tutor/config"
	"github.com/teilomillet/tutor/server/mocks"
)

func TestGollmGenerator_Generate(t *testing.T) {
	mockLLM := mocks.NewMockLLM(func(ctx context.Context, prompt *gollm.Prompt) (string, error) {
		return "Leçon générée", nil
	})

	var models []string
	gen := NewGollmGeneratorWithFactory(func(model string) (gollm.LLM, error) {
		models = append(models, model)
		return mockLLM, nil
	})

	text, err := gen.Generate(context.Background(), "llama2:7b", "Créez une leçon")
	require.NoError(t, err)
	assert.Equal(t, "Leçon générée", text)
	assert.Equal(t, []string{"llama2:7b"}, models)

	prompts := mockLLM.Prompts()
	require.Len(t, prompts, 1)
	require.Len(t, prompts[0].Messages, 1)
	assert.Equal(t, "user", prompts[0].Messages[0].Role)
	assert.Equal(t, "Créez une leçon", prompts[0].Messages[0].Content)
}

func TestGollmGenerator_Errors(t *testing.T) {
	t.Run("client construction fails", func(t *testing.T) {
		gen := NewGollmGeneratorWithFactory(func(model string) (gollm.LLM, error) {
			return nil, errors.New("missing api key")
		})
		_, err := gen.Generate(context.Background(), "m", "p")
		assert.ErrorIs(t, err, ErrGeneration)
		assert.Contains(t, err.Error(), "missing api key")
	})

	t.Run("generation fails", func(t *testing.T) {
		mockLLM := mocks.NewMockLLM(func(ctx context.Context, prompt *gollm.Prompt) (string, error) {
			return "", errors.New("connection reset")
		})
		gen := NewGollmGeneratorWithFactory(func(model string) (gollm.LLM, error) {
			return mockLLM, nil
		})
		_, err := gen.Generate(context.Background(), "m", "p")
		assert.ErrorIs(t, err, ErrGeneration)
		assert.Contains(t, err.Error(), "connection reset")
	})
}

func TestGollmOptions_ConfiguredKeyOnly(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-ambient")
	t.Setenv("GROQ_API_KEY", "gsk-ambient")

	tests := []struct {
		name     string
		provider string
		key      string
	}{
		{name: "empty key hides ambient openai key", provider: "openai", key: ""},
		{name: "empty key hides ambient groq key", provider: "groq", key: ""},
		{name: "configured key is used", provider: "openai", key: "sk-configured"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := gollm.LoadConfig()
			require.NoError(t, err)

			gollm.ApplyOptions(cfg, gollmOptions(config.LLMConfig{Provider: tt.provider, APIKey: tt.key}, "m")...)
			assert.Equal(t, tt.provider, cfg.Provider)
			assert.Equal(t, "m", cfg.Model)
			assert.Equal(t, tt.key, cfg.APIKeys[tt.provider])
		})
	}
}

func TestNew(t *testing.T) {
	gen, err := New(config.LLMConfig{Client: "openai", Endpoint: "https://ollama.com"})
	require.NoError(t, err)
	openaiGen, ok := gen.(*OpenAIGenerator)
	require.True(t, ok)
	assert.Equal(t, "https://ollama.com/v1/", openaiGen.Endpoint())

	_, err = New(config.LLMConfig{Client: "gollm"})
	assert.Error(t, err, "gollm client needs a provider")

	_, err = New(config.LLMConfig{Client: "carrier-pigeon"})
	assert.Error(t, err)
}
