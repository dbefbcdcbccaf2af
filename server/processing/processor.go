// Package processing turns validated lesson requests into prompts and
// prompts into lesson text through a provider.Generator.
package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/teilomillet/tutor/config"
	"github.com/teilomillet/tutor/server/metrics"
	"github.com/teilomillet/tutor/server/provider"
	"go.uber.org/zap"
)

// OtherModelLabel is the metric label for models outside the configured list.
const OtherModelLabel = "other"

// Processor is the prompt pipeline. It holds no per-request state and is
// safe for concurrent use.
type Processor struct {
	generator    provider.Generator
	defaultModel string
	knownModels  map[string]bool
	inlineErrors bool
	timeout      time.Duration
	tokenizer    Tokenizer
	metrics      *metrics.Metrics
	logger       *zap.Logger
}

// Option configures optional Processor collaborators.
type Option func(*Processor)

// WithTokenizer enables prompt token accounting.
func WithTokenizer(t Tokenizer) Option {
	return func(p *Processor) { p.tokenizer = t }
}

// WithMetrics records generation metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Processor) { p.metrics = m }
}

// WithKnownModels lists the models that get their own metric label. Any
// other requested model is counted under OtherModelLabel.
func WithKnownModels(models []string) Option {
	return func(p *Processor) {
		for _, m := range models {
			p.knownModels[m] = true
		}
	}
}

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a pipeline around generator using the LLM settings
// read at startup.
func NewProcessor(cfg config.LLMConfig, generator provider.Generator, opts ...Option) (*Processor, error) {
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if cfg.DefaultModel == "" {
		return nil, fmt.Errorf("default model is required")
	}

	p := &Processor{
		generator:    generator,
		defaultModel: cfg.DefaultModel,
		knownModels:  map[string]bool{cfg.DefaultModel: true},
		inlineErrors: cfg.InlineErrors,
		timeout:      cfg.Timeout,
		logger:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// SelectModel returns the request's model, or the default when it is empty.
func (p *Processor) SelectModel(requested string) string {
	if requested != "" {
		return requested
	}
	return p.defaultModel
}

// Generate renders the prompt for req and makes a single generation call.
// Provider failures are returned as errors wrapping provider.ErrGeneration,
// unless inline errors are enabled, in which case the failure text becomes
// the lesson content.
func (p *Processor) Generate(ctx context.Context, req *LessonRequest) (*Lesson, error) {
	if req == nil {
		return nil, fmt.Errorf("request cannot be nil")
	}

	prompt := BuildPrompt(req.Subject, req.Level, req.LearningStyle, req.Topics, req.Duration)
	model := p.SelectModel(req.Model)

	tokens := -1
	if p.tokenizer != nil {
		tokens = p.tokenizer.CountTokens(prompt)
		if p.metrics != nil {
			p.metrics.PromptTokens.Observe(float64(tokens))
		}
	}

	p.logger.Debug("Sending prompt to provider",
		zap.String("model", model),
		zap.Int("prompt_length", len(prompt)),
		zap.Int("prompt_tokens", tokens),
	)

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	content, err := p.generator.Generate(ctx, model, prompt)
	elapsed := time.Since(start)

	if err != nil {
		p.observe(model, "error", elapsed)
		p.logger.Warn("Generation failed",
			zap.String("model", model),
			zap.Duration("duration", elapsed),
			zap.Error(err),
		)
		if p.inlineErrors {
			return &Lesson{Content: fmt.Sprintf("API error: %v", err), Model: model, PromptTokens: tokens}, nil
		}
		return nil, err
	}

	p.observe(model, "success", elapsed)
	return &Lesson{Content: content, Model: model, PromptTokens: tokens}, nil
}

func (p *Processor) observe(model, outcome string, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}
	label := p.modelLabel(model)
	p.metrics.GenerationsTotal.WithLabelValues(label, outcome).Inc()
	p.metrics.GenerationDuration.WithLabelValues(label).Observe(elapsed.Seconds())
}

// modelLabel keeps the model label set bounded; the model name comes from the
// request body.
func (p *Processor) modelLabel(model string) string {
	if p.knownModels[model] {
		return model
	}
	return OtherModelLabel
}
