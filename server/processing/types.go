package processing

// LessonRequest is a validated lesson request. Values reaching the pipeline
// have already passed every field check.
type LessonRequest struct {
	Subject       string
	Level         string
	LearningStyle string
	Topics        []string

	// Duration in minutes, nil when the client did not ask for one
	Duration *int

	// Model overrides the configured default when non-empty
	Model string
}

// Lesson is the outcome of a successful generation.
type Lesson struct {
	Content string

	// Model is the identifier the provider was asked for
	Model string

	// PromptTokens is the token count of the rendered prompt, -1 if unknown
	PromptTokens int
}
