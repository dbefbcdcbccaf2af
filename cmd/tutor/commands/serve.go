package commands

import (
	"context"
	"fmt"

	"github.com/teilomillet/tutor/server"
	"github.com/teilomillet/tutor/server/metrics"
	"github.com/teilomillet/tutor/server/routing"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// ServeAction starts the HTTP server and blocks until ctx is cancelled.
func ServeAction(ctx context.Context, cmd *cli.Command) error {
	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	m := metrics.NewMetrics()
	processor, err := app.NewProcessor(m)
	if err != nil {
		return err
	}

	router, err := routing.NewRouter(routing.Dependencies{
		Config:    app.Config,
		Generator: processor,
		Metrics:   m,
		Logger:    app.Logger,
	})
	if err != nil {
		return fmt.Errorf("create router: %w", err)
	}

	srv := server.NewServer(app.Config.Server, router, app.Logger)

	mode := "production"
	if app.Config.Debug {
		mode = "debug"
	}
	app.Logger.Info("Starting tutor",
		zap.String("version", cmd.Root().Version),
		zap.String("address", srv.Addr()),
		zap.String("mode", mode),
		zap.String("llm_client", app.Config.LLM.Client),
		zap.String("default_model", app.Config.LLM.DefaultModel),
		zap.Bool("api_key_set", app.Config.LLM.APIKey != ""),
	)

	return srv.Start(ctx)
}
