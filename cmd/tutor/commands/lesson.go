package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/teilomillet/tutor/server/processing"
	"github.com/teilomillet/tutor/server/validation"
	"github.com/urfave/cli/v3"
)

// LessonAction generates a single lesson from flags and writes it to the
// command's writer. Flags go through the same checks as the HTTP API.
func LessonAction(ctx context.Context, cmd *cli.Command) error {
	req, err := lessonRequestFromFlags(cmd)
	if err != nil {
		return err
	}

	if cmd.Bool("prompt-only") {
		_, err := fmt.Fprintln(cmd.Root().Writer,
			processing.BuildPrompt(req.Subject, req.Level, req.LearningStyle, req.Topics, req.Duration))
		return err
	}

	app, err := NewAppContext(cmd)
	if err != nil {
		return err
	}
	defer app.Close()

	processor, err := app.NewProcessor(nil)
	if err != nil {
		return err
	}

	lesson, err := processor.Generate(ctx, req)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, lesson.Content)
	return err
}

func lessonRequestFromFlags(cmd *cli.Command) (*processing.LessonRequest, error) {
	body := map[string]interface{}{
		"subject":        cmd.String("subject"),
		"level":          cmd.String("level"),
		"learning_style": cmd.String("style"),
		"topics":         cmd.StringSlice("topic"),
	}
	if d := cmd.Int("duration"); d != 0 {
		body["duration"] = d
	}
	if m := cmd.String("model"); m != "" {
		body["model"] = m
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, ferr := validation.ParseLessonRequest(bytes.NewReader(data))
	if ferr != nil {
		return nil, fmt.Errorf("invalid lesson request: %w", ferr)
	}
	return req, nil
}
