package commands

import "github.com/urfave/cli/v3"

// NewRootCommand builds the tutor command tree. Without a subcommand the
// server is started.
func NewRootCommand(version string) *cli.Command {
	return &cli.Command{
		Name:    "tutor",
		Usage:   "Personalised lesson generator backed by a chat-completion model",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				Value:   "tutor.yaml",
				Sources: cli.EnvVars("TUTOR_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "env",
				Usage: "path to a .env file loaded before reading the environment",
				Value: ".env",
			},
		},
		Action: ServeAction,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server (default)",
				Action: ServeAction,
			},
			{
				Name:  "lesson",
				Usage: "generate one lesson and print it",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "subject",
						Usage:    "lesson subject",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "level",
						Usage:    "student level",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "style",
						Usage: "learning style (Visuel, Auditif, Kinesthésique, Lecture/Écriture)",
						Value: "Visuel",
					},
					&cli.StringSliceFlag{
						Name:     "topic",
						Usage:    "topic to cover, repeat for several",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "duration",
						Usage: "session length in minutes, 0 to omit",
					},
					&cli.StringFlag{
						Name:  "model",
						Usage: "model identifier, defaults to the configured model",
					},
					&cli.BoolFlag{
						Name:  "prompt-only",
						Usage: "print the rendered prompt without calling the provider",
					},
				},
				Action: LessonAction,
			},
			{
				Name:  "config",
				Usage: "configuration commands",
				Commands: []*cli.Command{
					{
						Name:   "validate",
						Usage:  "load and validate the configuration, then exit",
						Action: ConfigValidateAction,
					},
				},
			},
		},
	}
}
