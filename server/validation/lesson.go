// Package validation decodes and checks lesson request bodies.
//
// Checks run in a fixed order and the first failure wins, so a client always
// gets exactly one message describing the earliest problem in its request.
package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/teilomillet/tutor/server/processing"
)

// Duration bounds in minutes, inclusive.
const (
	MinDuration = 15
	MaxDuration = 180
)

// Messages returned to clients.
const (
	MsgNoData          = "no data provided"
	MsgBodyTooLarge    = "request body too large"
	MsgNotObject       = "request body must be a JSON object"
	MsgNoTopics        = "at least one topic must be selected"
	MsgTopicsNotString = "topics must contain only strings"
	MsgDurationNaN     = "duration must be a valid number"
	MsgDurationRange   = "duration must be between 15 and 180 minutes"
	MsgModelNotString  = "model must be a string"
)

var validate = validator.New()

// FieldError describes the first check a request failed.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Message
}

// Details returns the error as a details map for an API error response.
func (e *FieldError) Details() map[string]interface{} {
	return map[string]interface{}{
		"field": e.Field,
		"code":  e.Code,
	}
}

// CodeBodyTooLarge marks a body cut off by http.MaxBytesReader.
const CodeBodyTooLarge = "too_large"

func fieldError(field, code, message string) *FieldError {
	return &FieldError{Field: field, Code: code, Message: message}
}

// ParseLessonRequest reads a JSON lesson request from r and validates it.
// The order of checks is: body, subject, level, learning_style, topics,
// duration, model.
func ParseLessonRequest(r io.Reader) (*processing.LessonRequest, *FieldError) {
	data, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, fieldError("body", CodeBodyTooLarge, MsgBodyTooLarge)
		}
		return nil, fieldError("body", "unreadable", MsgNoData)
	}

	fields, ferr := decodeObject(data)
	if ferr != nil {
		return nil, ferr
	}

	req := &processing.LessonRequest{}

	if req.Subject, ferr = requiredString(fields, "subject"); ferr != nil {
		return nil, ferr
	}
	if req.Level, ferr = requiredString(fields, "level"); ferr != nil {
		return nil, ferr
	}
	if req.LearningStyle, ferr = requiredString(fields, "learning_style"); ferr != nil {
		return nil, ferr
	}
	if req.Topics, ferr = topics(fields); ferr != nil {
		return nil, ferr
	}
	if req.Duration, ferr = duration(fields); ferr != nil {
		return nil, ferr
	}
	if req.Model, ferr = model(fields); ferr != nil {
		return nil, ferr
	}

	return req, nil
}

func decodeObject(data []byte) (map[string]json.RawMessage, *FieldError) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || !json.Valid(trimmed) {
		return nil, fieldError("body", "no_data", MsgNoData)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fieldError("body", "not_object", MsgNotObject)
	}
	if len(fields) == 0 {
		// null decodes to a nil map and {} to an empty one
		return nil, fieldError("body", "no_data", MsgNoData)
	}
	return fields, nil
}

func present(fields map[string]json.RawMessage, name string) (json.RawMessage, bool) {
	raw, ok := fields[name]
	if !ok || string(bytes.TrimSpace(raw)) == "null" {
		return nil, false
	}
	return raw, true
}

func requiredString(fields map[string]json.RawMessage, name string) (string, *FieldError) {
	missing := fieldError(name, "required", name+" is required")

	raw, ok := present(fields, name)
	if !ok {
		return "", missing
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fieldError(name, "type", name+" must be a string")
	}
	s = strings.TrimSpace(s)
	if err := validate.Var(s, "required"); err != nil {
		return "", missing
	}
	return s, nil
}

func topics(fields map[string]json.RawMessage) ([]string, *FieldError) {
	missing := fieldError("topics", "required", MsgNoTopics)

	raw, ok := present(fields, "topics")
	if !ok {
		return nil, missing
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, missing
	}
	if err := validate.Var(items, "min=1"); err != nil {
		return nil, missing
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			return nil, fieldError("topics", "type", MsgTopicsNotString)
		}
		out = append(out, s)
	}
	return out, nil
}

func duration(fields map[string]json.RawMessage) (*int, *FieldError) {
	raw, ok := present(fields, "duration")
	if !ok {
		return nil, nil
	}

	minutes, ok := parseMinutes(raw)
	if !ok {
		return nil, fieldError("duration", "type", MsgDurationNaN)
	}
	if err := validate.Var(minutes, "gte=15,lte=180"); err != nil {
		return nil, fieldError("duration", "range", MsgDurationRange)
	}

	d := int(minutes)
	return &d, nil
}

// parseMinutes accepts a JSON integer, a fractional number truncated toward
// zero, or a string holding an integer.
func parseMinutes(raw json.RawMessage) (int64, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n, err == nil
	}

	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return 0, false
	}
	if n, err := num.Int64(); err == nil {
		return n, true
	}
	f, err := num.Float64()
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	f = math.Trunc(f)
	if f > math.MaxInt32 || f < math.MinInt32 {
		// far out of range either way; clamp so the range check reports it
		return math.MaxInt32, true
	}
	return int64(f), true
}

func model(fields map[string]json.RawMessage) (string, *FieldError) {
	raw, ok := present(fields, "model")
	if !ok {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fieldError("model", "type", MsgModelNotString)
	}
	return strings.TrimSpace(s), nil
}
