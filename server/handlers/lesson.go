// Package handlers provides the HTTP handlers of the tutor server.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/teilomillet/tutor/errors"
	"github.com/teilomillet/tutor/server/middleware"
	"github.com/teilomillet/tutor/server/processing"
	"github.com/teilomillet/tutor/server/validation"
	"go.uber.org/zap"
)

// MaxBodyBytes caps the size of a lesson request body.
const MaxBodyBytes = 1 << 20

// LessonGenerator runs the prompt pipeline for a validated request.
type LessonGenerator interface {
	Generate(ctx context.Context, req *processing.LessonRequest) (*processing.Lesson, error)
}

// LessonResponse is the body of a successful generation.
type LessonResponse struct {
	Success       bool     `json:"success"`
	Lesson        string   `json:"lesson"`
	Subject       string   `json:"subject"`
	Level         string   `json:"level"`
	LearningStyle string   `json:"learning_style"`
	Topics        []string `json:"topics"`
	Duration      *int     `json:"duration"`
}

// LessonHandler serves POST /api/generate.
type LessonHandler struct {
	generator LessonGenerator
	logger    *zap.Logger
}

// NewLessonHandler creates a lesson handler.
func NewLessonHandler(generator LessonGenerator, logger *zap.Logger) *LessonHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LessonHandler{
		generator: generator,
		logger:    logger,
	}
}

// ServeHTTP validates the request, runs the pipeline once and writes either
// the lesson (200), the first validation failure (400, or 413 for an
// oversized body) or the generation failure (500).
func (h *LessonHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	logger := h.logger.With(zap.String("request_id", requestID))

	req, ferr := validation.ParseLessonRequest(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if ferr != nil {
		verr := errors.NewValidationError(requestID, ferr.Message, ferr.Details())
		if ferr.Code == validation.CodeBodyTooLarge {
			verr.Code = http.StatusRequestEntityTooLarge
		}
		errors.LogError(logger, verr, requestID)
		errors.WriteError(w, verr)
		return
	}

	logger.Info("Generating lesson",
		zap.String("subject", req.Subject),
		zap.String("level", req.Level),
		zap.String("learning_style", req.LearningStyle),
		zap.Strings("topics", req.Topics),
		zap.Intp("duration", req.Duration),
		zap.String("model", req.Model),
	)

	lesson, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		gerr := errors.NewGenerationError(requestID, err)
		errors.LogError(logger, gerr, requestID)
		errors.WriteError(w, gerr)
		return
	}

	logger.Info("Lesson generated",
		zap.String("model", lesson.Model),
		zap.Int("lesson_length", len(lesson.Content)),
		zap.Int("prompt_tokens", lesson.PromptTokens),
	)

	writeJSON(w, logger, http.StatusOK, LessonResponse{
		Success:       true,
		Lesson:        lesson.Content,
		Subject:       req.Subject,
		Level:         req.Level,
		LearningStyle: req.LearningStyle,
		Topics:        req.Topics,
		Duration:      req.Duration,
	})
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", zap.Error(err))
	}
}
