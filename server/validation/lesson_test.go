package validation

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBody = `{
	"subject": "  Mathématiques ",
	"level": "Lycée",
	"learning_style": "Visuel",
	"topics": ["Algèbre", "Géométrie"],
	"duration": 60
}`

func TestParseLessonRequest_Valid(t *testing.T) {
	req, ferr := ParseLessonRequest(strings.NewReader(validBody))
	require.Nil(t, ferr)

	assert.Equal(t, "Mathématiques", req.Subject)
	assert.Equal(t, "Lycée", req.Level)
	assert.Equal(t, "Visuel", req.LearningStyle)
	assert.Equal(t, []string{"Algèbre", "Géométrie"}, req.Topics)
	require.NotNil(t, req.Duration)
	assert.Equal(t, 60, *req.Duration)
	assert.Empty(t, req.Model)
}

func TestParseLessonRequest_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		field   string
		message string
	}{
		{"empty body", ``, "body", MsgNoData},
		{"whitespace body", "  \n", "body", MsgNoData},
		{"invalid json", `{"subject":`, "body", MsgNoData},
		{"null body", `null`, "body", MsgNoData},
		{"empty object", `{}`, "body", MsgNoData},
		{"array body", `["Maths"]`, "body", MsgNotObject},
		{"string body", `"Maths"`, "body", MsgNotObject},

		{"missing subject", `{"level":"Lycée","learning_style":"Visuel","topics":["a"]}`, "subject", "subject is required"},
		{"blank subject", `{"subject":"   ","level":"Lycée","learning_style":"Visuel","topics":["a"]}`, "subject", "subject is required"},
		{"null subject", `{"subject":null,"level":"Lycée","learning_style":"Visuel","topics":["a"]}`, "subject", "subject is required"},
		{"numeric subject", `{"subject":42,"level":"Lycée","learning_style":"Visuel","topics":["a"]}`, "subject", "subject must be a string"},
		{"missing level", `{"subject":"Maths","learning_style":"Visuel","topics":["a"]}`, "level", "level is required"},
		{"missing learning style", `{"subject":"Maths","level":"Lycée","topics":["a"]}`, "learning_style", "learning_style is required"},

		{"missing topics", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel"}`, "topics", MsgNoTopics},
		{"empty topics", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":[]}`, "topics", MsgNoTopics},
		{"topics is a string", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":"Algèbre"}`, "topics", MsgNoTopics},
		{"topics is an object", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":{"a":1}}`, "topics", MsgNoTopics},
		{"topics with numbers", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a",2]}`, "topics", MsgTopicsNotString},

		{"duration too high", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":200}`, "duration", MsgDurationRange},
		{"duration too low", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":14}`, "duration", MsgDurationRange},
		{"duration negative", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":-30}`, "duration", MsgDurationRange},
		{"duration huge", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":1e12}`, "duration", MsgDurationRange},
		{"duration word", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":"abc"}`, "duration", MsgDurationNaN},
		{"duration decimal string", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":"45.5"}`, "duration", MsgDurationNaN},
		{"duration bool", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":true}`, "duration", MsgDurationNaN},
		{"duration list", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":[30]}`, "duration", MsgDurationNaN},

		{"model not a string", `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"model":7}`, "model", MsgModelNotString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, ferr := ParseLessonRequest(strings.NewReader(tt.body))
			assert.Nil(t, req)
			require.NotNil(t, ferr)
			assert.Equal(t, tt.field, ferr.Field)
			assert.Equal(t, tt.message, ferr.Message)
			assert.Equal(t, tt.message, ferr.Error())
		})
	}
}

func TestParseLessonRequest_FirstFailureWins(t *testing.T) {
	// every field is wrong, subject is checked first
	body := `{"subject":"","level":"","learning_style":"","topics":[],"duration":500,"model":1}`
	_, ferr := ParseLessonRequest(strings.NewReader(body))
	require.NotNil(t, ferr)
	assert.Equal(t, "subject", ferr.Field)

	// topics are checked before duration
	body = `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":[],"duration":500}`
	_, ferr = ParseLessonRequest(strings.NewReader(body))
	require.NotNil(t, ferr)
	assert.Equal(t, "topics", ferr.Field)
}

func TestParseLessonRequest_Duration(t *testing.T) {
	tests := []struct {
		raw  string
		want *int
	}{
		{"15", intPtr(15)},
		{"180", intPtr(180)},
		{"45.9", intPtr(45)},
		{`"90"`, intPtr(90)},
		{`" 30 "`, intPtr(30)},
		{"null", nil},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			body := `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"duration":` + tt.raw + `}`
			req, ferr := ParseLessonRequest(strings.NewReader(body))
			require.Nil(t, ferr)
			assert.Equal(t, tt.want, req.Duration)
		})
	}

	t.Run("absent", func(t *testing.T) {
		req, ferr := ParseLessonRequest(strings.NewReader(`{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"]}`))
		require.Nil(t, ferr)
		assert.Nil(t, req.Duration)
	})
}

func TestParseLessonRequest_KeepsTopicsAsGiven(t *testing.T) {
	body := `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["Géométrie"," Algèbre","Géométrie"]}`
	req, ferr := ParseLessonRequest(strings.NewReader(body))
	require.Nil(t, ferr)
	assert.Equal(t, []string{"Géométrie", " Algèbre", "Géométrie"}, req.Topics)
}

func TestParseLessonRequest_UnknownStyleAccepted(t *testing.T) {
	body := `{"subject":"Maths","level":"Lycée","learning_style":"Telepathic","topics":["a"]}`
	req, ferr := ParseLessonRequest(strings.NewReader(body))
	require.Nil(t, ferr)
	assert.Equal(t, "Telepathic", req.LearningStyle)
}

func TestParseLessonRequest_Model(t *testing.T) {
	body := `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"model":" gemma:7b "}`
	req, ferr := ParseLessonRequest(strings.NewReader(body))
	require.Nil(t, ferr)
	assert.Equal(t, "gemma:7b", req.Model)

	body = `{"subject":"Maths","level":"Lycée","learning_style":"Visuel","topics":["a"],"model":null}`
	req, ferr = ParseLessonRequest(strings.NewReader(body))
	require.Nil(t, ferr)
	assert.Empty(t, req.Model)
}

func TestParseLessonRequest_ReadError(t *testing.T) {
	_, ferr := ParseLessonRequest(iotest.ErrReader(errors.New("connection reset")))
	require.NotNil(t, ferr)
	assert.Equal(t, MsgNoData, ferr.Message)
}

func TestParseLessonRequest_BodyTooLarge(t *testing.T) {
	body := http.MaxBytesReader(httptest.NewRecorder(), io.NopCloser(strings.NewReader(validBody)), 16)

	_, ferr := ParseLessonRequest(body)
	require.NotNil(t, ferr)
	assert.Equal(t, CodeBodyTooLarge, ferr.Code)
	assert.Equal(t, MsgBodyTooLarge, ferr.Message)
}

func TestFieldError_Details(t *testing.T) {
	ferr := fieldError("duration", "range", MsgDurationRange)
	assert.Equal(t, map[string]interface{}{"field": "duration", "code": "range"}, ferr.Details())
}

func intPtr(i int) *int { return &i }
