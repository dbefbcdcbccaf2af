// Package config provides configuration management for the tutor server.
// Settings come from built-in defaults, an optional YAML file and a small set
// of environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the complete server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`

	// Models is the list advertised by GET /api/models
	Models []string `yaml:"models" validate:"dive,required"`

	// Debug switches the logger to development mode and debug level
	Debug bool `yaml:"debug"`
}

// ServerConfig holds server-specific configuration for the HTTP server.
type ServerConfig struct {
	// Port specifies the HTTP server port (default: 5000)
	Port int `yaml:"port" validate:"gte=0,lte=65535"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout time.Duration `yaml:"read_timeout" validate:"gte=0"`

	// WriteTimeout bounds the whole response, generation included, so it
	// must stay well above typical provider latency
	WriteTimeout time.Duration `yaml:"write_timeout" validate:"gte=0"`

	MaxHeaderBytes int `yaml:"max_header_bytes" validate:"gte=0"`

	// ShutdownTimeout specifies how long to wait for in-flight requests
	// on shutdown
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`

	// StaticDir overrides the embedded landing page when set
	StaticDir string `yaml:"static_dir"`

	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// CORSConfig controls the Cross-Origin headers set on /api routes.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins" validate:"min=1,dive,required"`
}

// RateLimitConfig defines the optional per-client limit on lesson generation.
type RateLimitConfig struct {
	Enabled bool `yaml:"enabled"`

	// Requests is the number of generations allowed per Window
	Requests int `yaml:"requests" validate:"required_if=Enabled true,gte=0"`

	Window time.Duration `yaml:"window" validate:"required_if=Enabled true,gte=0"`
}

// LLMConfig holds the generation provider settings.
type LLMConfig struct {
	// Client selects the provider client:
	// - "openai": OpenAI-compatible chat completions API (Ollama Cloud, OpenAI, vLLM...)
	// - "gollm": gollm multi-provider client, see Provider
	Client string `yaml:"client" validate:"oneof=openai gollm"`

	// Provider is the gollm provider name (e.g. "ollama", "anthropic", "openai").
	// Only used by the gollm client.
	Provider string `yaml:"provider" validate:"required_if=Client gollm"`

	// Endpoint is the provider base URL
	Endpoint string `yaml:"endpoint" validate:"omitempty,url"`

	// APIKey is sent as a bearer credential
	// Use environment variables (e.g. ${OLLAMA_API_KEY}) rather than literals
	APIKey string `yaml:"api_key"`

	// DefaultModel is used when a request does not name a model
	DefaultModel string `yaml:"default_model" validate:"required"`

	// Timeout caps a single generation call. Zero leaves it to the client
	// and provider defaults.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`

	// InlineErrors returns provider failures as lesson text with a 200
	// instead of answering 500
	InlineErrors bool `yaml:"inline_errors"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	// Level sets logging verbosity: debug, info, warn, error
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Format specifies log output format: json or console
	Format string `yaml:"format" validate:"oneof=json console"`
}

var validate = validator.New()

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            5000,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    5 * time.Minute,
			MaxHeaderBytes:  1 << 20,
			ShutdownTimeout: 30 * time.Second,
			CORS: CORSConfig{
				AllowedOrigins: []string{"*"},
			},
			RateLimit: RateLimitConfig{
				Enabled:  false,
				Requests: 10,
				Window:   time.Minute,
			},
		},
		LLM: LLMConfig{
			Client:       "openai",
			Provider:     "ollama",
			Endpoint:     "https://ollama.com/v1",
			DefaultModel: "gpt-oss:120b-cloud",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Models: []string{
			"gpt-oss:120b-cloud",
			"llama2:7b",
			"gemma:7b",
		},
	}
}

// LoadFile loads configuration from a YAML file on top of the defaults.
func LoadFile(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// LoadOptionalFile behaves like LoadFile but falls back to the defaults when
// filename is empty or does not exist.
func LoadOptionalFile(filename string) (*Config, error) {
	if filename == "" {
		return DefaultConfig(), nil
	}
	cfg, err := LoadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// Load decodes YAML from r on top of DefaultConfig and validates the result.
// ${VAR} and ${VAR:-default} references are expanded before decoding.
func Load(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded, err := expandEnvVars(string(data))
	if err != nil {
		return nil, fmt.Errorf("expand environment variables: %w", err)
	}

	cfg := DefaultConfig()
	if strings.TrimSpace(expanded) != "" {
		if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
			return nil, fmt.Errorf("decode config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// expandEnvVars resolves ${VAR} and ${VAR:-default} references. A reference
// that is opened but never closed is rejected rather than passed through.
func expandEnvVars(s string) (string, error) {
	if open := strings.Count(s, "${"); open > strings.Count(s, "}") {
		return "", fmt.Errorf("unterminated variable reference")
	}

	return os.Expand(s, func(key string) string {
		if i := strings.Index(key, ":-"); i >= 0 {
			if val := os.Getenv(key[:i]); val != "" {
				return val
			}
			return key[i+2:]
		}
		return os.Getenv(key)
	}), nil
}

// ApplyEnv overrides configuration values from the process environment.
// lookup is normally os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	// DEBUG is a common generic variable; anything that is not a true
	// boolean turns debug off instead of failing startup.
	for _, key := range []string{"FLASK_DEBUG", "DEBUG"} {
		if v, ok := lookup(key); ok && v != "" {
			debug, err := strconv.ParseBool(v)
			c.Debug = err == nil && debug
		}
	}

	if v, ok := lookup("OLLAMA_HOST"); ok && v != "" {
		c.LLM.Endpoint = v
	}
	if v, ok := lookup("OLLAMA_API_KEY"); ok && v != "" {
		c.LLM.APIKey = v
	}
	if v, ok := lookup("TUTOR_DEFAULT_MODEL"); ok && v != "" {
		c.LLM.DefaultModel = v
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		c.Logging.Level = strings.ToLower(v)
	}

	if c.Debug {
		c.Logging.Level = "debug"
		c.Logging.Format = "console"
	}

	return c.Validate()
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			first := verrs[0]
			return fmt.Errorf("invalid %s: failed %q constraint (value %v)",
				first.Namespace(), first.Tag(), first.Value())
		}
		return err
	}
	return nil
}

// ModelList returns the advertised models with the default model first and
// without duplicates.
func (c *Config) ModelList() []string {
	models := make([]string, 0, len(c.Models)+1)
	seen := make(map[string]bool, len(c.Models)+1)
	for _, m := range append([]string{c.LLM.DefaultModel}, c.Models...) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		models = append(models, m)
	}
	return models
}
