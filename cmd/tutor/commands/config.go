package commands

import (
	"context"
	"fmt"

	"github.com/teilomillet/tutor/config"
	"github.com/urfave/cli/v3"
)

// ConfigValidateAction loads the configuration and reports whether it is valid.
func ConfigValidateAction(ctx context.Context, cmd *cli.Command) error {
	if err := config.LoadEnvFile(cmd.String("env")); err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	fmt.Fprintln(w, "Configuration is valid")
	fmt.Fprintf(w, "  port:          %d\n", cfg.Server.Port)
	fmt.Fprintf(w, "  llm client:    %s\n", cfg.LLM.Client)
	fmt.Fprintf(w, "  endpoint:      %s\n", cfg.LLM.Endpoint)
	fmt.Fprintf(w, "  default model: %s\n", cfg.LLM.DefaultModel)
	fmt.Fprintf(w, "  models:        %v\n", cfg.ModelList())
	return nil
}
