// Package commands implements the tutor command line actions.
package commands

import (
	"fmt"
	"os"

	"github.com/teilomillet/tutor/config"
	"github.com/teilomillet/tutor/errors"
	"github.com/teilomillet/tutor/server/metrics"
	"github.com/teilomillet/tutor/server/processing"
	"github.com/teilomillet/tutor/server/provider"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// AppContext holds what every command needs: configuration and a logger.
type AppContext struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewAppContext loads the .env file, the configuration file and the
// environment overrides, then builds the process logger.
func NewAppContext(cmd *cli.Command) (*AppContext, error) {
	if err := config.LoadEnvFile(cmd.String("env")); err != nil {
		return nil, err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	errors.SetLogger(logger)

	return &AppContext{Config: cfg, Logger: logger}, nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String("config")
	if cmd.IsSet("config") {
		// an explicit path must exist; the default one is optional
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
	}
	return config.FromEnvironment(path, os.LookupEnv)
}

// NewLogger builds a zap logger from the logging settings. Debug mode and the
// console format use the development encoder.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Debug || cfg.Logging.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	zc.Level = level

	return zc.Build()
}

// NewProcessor wires the provider client and the prompt pipeline. m may be nil.
// Token accounting is skipped when the encoding cannot be loaded.
func (a *AppContext) NewProcessor(m *metrics.Metrics) (*processing.Processor, error) {
	generator, err := provider.New(a.Config.LLM)
	if err != nil {
		return nil, fmt.Errorf("create provider: %w", err)
	}

	opts := []processing.Option{
		processing.WithLogger(a.Logger),
		processing.WithMetrics(m),
		processing.WithKnownModels(a.Config.ModelList()),
	}
	if tokenizer, err := processing.NewTokenizer(processing.DefaultEncoding); err != nil {
		a.Logger.Warn("Token counting disabled", zap.Error(err))
	} else {
		opts = append(opts, processing.WithTokenizer(tokenizer))
	}

	return processing.NewProcessor(a.Config.LLM, generator, opts...)
}

// Close flushes the logger.
func (a *AppContext) Close() {
	_ = a.Logger.Sync()
}
