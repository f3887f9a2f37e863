// File: services/intelligence/classifier_test.go
package intelligence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heysheets/models"
)

type fakeLLM struct {
	response string
	usage    models.TokenUsage
	err      error
	prompts  []string
	models   []string
}

func (f *fakeLLM) Complete(ctx context.Context, model, prompt string) (string, models.TokenUsage, error) {
	f.models = append(f.models, model)
	f.prompts = append(f.prompts, prompt)
	return f.response, f.usage, f.err
}

func TestParseClassification(t *testing.T) {
	raw := `{"intent":"BOOK_SERVICE","confidence":"HIGH","params":{"service_name":"hair color","date":"2025-11-28"},"functionToCall":"create_booking"}`
	got, ok := ParseClassification(raw)
	require.True(t, ok)
	assert.Equal(t, models.IntentBookService, got.Intent)
	assert.Equal(t, models.ConfidenceHigh, got.Confidence)
	require.NotNil(t, got.Params.ServiceName)
	assert.Equal(t, "hair color", *got.Params.ServiceName)
	require.NotNil(t, got.FunctionToCall)
	assert.Equal(t, models.ToolCreateBooking, *got.FunctionToCall)
}

func TestParseClassificationStripsFences(t *testing.T) {
	raw := "```json\n{\"intent\":\"GREETING\",\"confidence\":\"MEDIUM\"}\n```"
	got, ok := ParseClassification(raw)
	require.True(t, ok)
	assert.Equal(t, models.IntentGreeting, got.Intent)
	assert.Equal(t, models.ConfidenceMedium, got.Confidence)
}

func TestParseClassificationSurroundingProse(t *testing.T) {
	raw := `Sure! Here is the classification: {"intent":"CHECK_AVAILABILITY","confidence":"HIGH"} hope that helps`
	got, ok := ParseClassification(raw)
	require.True(t, ok)
	assert.Equal(t, models.IntentCheckAvailability, got.Intent)
}

func TestParseClassificationRejectsNonJSON(t *testing.T) {
	for _, raw := range []string{"", "I could not classify that.", "```\n\n```"} {
		_, ok := ParseClassification(raw)
		assert.False(t, ok, raw)
	}
}

func TestParseClassificationNormalizesEnums(t *testing.T) {
	raw := `{"intent":"book_service","confidence":"high"}`
	got, ok := ParseClassification(raw)
	require.True(t, ok)
	assert.Equal(t, models.IntentBookService, got.Intent)
	assert.Equal(t, models.ConfidenceHigh, got.Confidence)

	raw = `{"intent":"SOMETHING_ELSE","confidence":"VERY SURE"}`
	got, ok = ParseClassification(raw)
	require.True(t, ok)
	assert.Equal(t, models.IntentOther, got.Intent)
	assert.Equal(t, models.ConfidenceLow, got.Confidence)
}

func TestParseClassificationDropsUnknownFunction(t *testing.T) {
	raw := `{"intent":"BOOK_SERVICE","confidence":"HIGH","functionToCall":"delete_everything"}`
	got, ok := ParseClassification(raw)
	require.True(t, ok)
	assert.Nil(t, got.FunctionToCall)
}

func TestClassifyDegradesOnModelError(t *testing.T) {
	c := &DefaultClassifier{LLM: &fakeLLM{err: errors.New("model down")}}

	got, _ := c.Classify(context.Background(), "", nil, nil, time.Now())
	assert.Equal(t, models.IntentOther, got.Intent)
	assert.Equal(t, models.ConfidenceLow, got.Confidence)
	assert.Nil(t, got.FunctionToCall)
}

func TestClassifyDegradesOnGarbageOutput(t *testing.T) {
	c := &DefaultClassifier{LLM: &fakeLLM{response: "definitely not json"}}

	got, _ := c.Classify(context.Background(), "", nil, nil, time.Now())
	assert.Equal(t, models.DefaultClassification(), got)
}

func TestClassifyPromptCarriesContext(t *testing.T) {
	llm := &fakeLLM{response: `{"intent":"GREETING","confidence":"HIGH"}`}
	c := &DefaultClassifier{LLM: llm}

	now := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC) // a Thursday
	messages := []models.ChatMessage{{Role: "user", Content: "can I come tomorrow?"}}
	services := []models.Service{{Name: "Hair Color", DurationMinutes: 120, Price: 150}}

	c.Classify(context.Background(), "", messages, services, now)

	require.Len(t, llm.prompts, 1)
	prompt := llm.prompts[0]
	assert.Contains(t, prompt, "2025-11-27 (Thursday)")
	assert.Contains(t, prompt, "Hair Color (120 min, $150.00)")
	assert.Contains(t, prompt, "tomorrow (2025-11-28)")
}

func TestClassifyPassesModelOverride(t *testing.T) {
	llm := &fakeLLM{response: `{"intent":"GREETING","confidence":"HIGH"}`}
	c := &DefaultClassifier{LLM: llm}

	c.Classify(context.Background(), "gemini-1.5-flash", nil, nil, time.Now())
	require.Len(t, llm.models, 1)
	assert.Equal(t, "gemini-1.5-flash", llm.models[0])
}

func TestResolveRelativeDates(t *testing.T) {
	// 2025-11-27 is a Thursday.
	now := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		in   string
		want string
	}{
		{"book me today", "book me today (2025-11-27)"},
		{"free tonight?", "free tonight (2025-11-27)?"},
		{"how about tomorrow", "how about tomorrow (2025-11-28)"},
		{"see you Friday", "see you Friday (2025-11-28)"},
		{"next thursday works", "next thursday (2025-11-27) works"},
		{"monday morning", "monday (2025-12-01) morning"},
		{"no dates here", "no dates here"},
		{"Saturdays are busy", "Saturdays are busy"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveRelativeDates(tc.in, now), tc.in)
	}
}

func TestNextWeekdaySameDayIsToday(t *testing.T) {
	thursday := time.Date(2025, 11, 27, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, thursday, nextWeekday(thursday, time.Thursday))
	assert.Equal(t, thursday.AddDate(0, 0, 1), nextWeekday(thursday, time.Friday))
}
