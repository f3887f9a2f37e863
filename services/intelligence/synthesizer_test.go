// File: services/intelligence/synthesizer_test.go
package intelligence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heysheets/models"
)

func TestSynthesizeReturnsModelText(t *testing.T) {
	s := &DefaultSynthesizer{LLM: &fakeLLM{response: "  You're all set for Friday!  "}}

	text, _ := s.Synthesize(context.Background(), "", models.DefaultClassification(), nil)
	assert.Equal(t, "You're all set for Friday!", text)
}

func TestSynthesizeFallsBackToToolMessage(t *testing.T) {
	s := &DefaultSynthesizer{LLM: &fakeLLM{err: errors.New("model down")}}
	result := models.Failure(models.ToolCheckAvailability, models.CodeFullyBooked,
		"Hair Color at 09:00 on 2025-11-28 is fully booked.")

	text, _ := s.Synthesize(context.Background(), "", models.DefaultClassification(), &result)
	assert.Equal(t, result.Message, text)
}

func TestSynthesizeFallsBackToApology(t *testing.T) {
	s := &DefaultSynthesizer{LLM: &fakeLLM{err: errors.New("model down")}}

	text, _ := s.Synthesize(context.Background(), "", models.DefaultClassification(), nil)
	assert.Equal(t, fallbackApology, text)
}

func TestSynthesizeEmptyOutputIsAFailure(t *testing.T) {
	s := &DefaultSynthesizer{LLM: &fakeLLM{response: "   \n"}}

	text, _ := s.Synthesize(context.Background(), "", models.DefaultClassification(), nil)
	assert.Equal(t, fallbackApology, text)
}

func TestSynthesizePromptBranches(t *testing.T) {
	llm := &fakeLLM{response: "ok"}
	s := &DefaultSynthesizer{LLM: llm}
	cls := models.DefaultClassification()

	lastPrompt := func() string {
		require.NotEmpty(t, llm.prompts)
		return llm.prompts[len(llm.prompts)-1]
	}

	t.Run("no tool result", func(t *testing.T) {
		s.Synthesize(context.Background(), "", cls, nil)
		assert.Contains(t, lastPrompt(), "Answer conversationally")
	})

	t.Run("booking confirmation restates details", func(t *testing.T) {
		result := models.ToolResult{
			Tool: models.ToolCreateBooking, Success: true, Code: models.CodeOK,
			Booking: &models.Booking{
				ServiceName: "Hair Color", Date: "2025-11-28",
				Time: "09:00", EndTime: "11:00", Price: 150,
				CustomerName: "Alice Tan", CustomerEmail: "alice@example.com",
			},
		}
		s.Synthesize(context.Background(), "", cls, &result)
		prompt := lastPrompt()
		assert.Contains(t, prompt, "service Hair Color")
		assert.Contains(t, prompt, "time 09:00 to 11:00")
		assert.Contains(t, prompt, "alice@example.com")
	})

	t.Run("slot list enumerated", func(t *testing.T) {
		result := models.ToolResult{
			Tool: models.ToolGetBookingSlots, Success: true, Code: models.CodeOK,
			SlotList: &models.SlotList{
				ServiceName: "Hair Color",
				Slots:       []models.Slot{{Date: "2025-11-28", Time: "09:00", SpotsLeft: 1}},
			},
		}
		s.Synthesize(context.Background(), "", cls, &result)
		assert.Contains(t, lastPrompt(), "- 2025-11-28 at 09:00 (1 spots left)")
	})

	t.Run("clarification lists missing fields", func(t *testing.T) {
		result := models.Clarification(models.ToolCreateBooking, "need more", "customer_name", "email")
		s.Synthesize(context.Background(), "", cls, &result)
		assert.Contains(t, lastPrompt(), "customer_name, email")
	})

	t.Run("full class suggests other times", func(t *testing.T) {
		result := models.Failure(models.ToolCreateBooking, models.CodeFullyBooked, "full")
		s.Synthesize(context.Background(), "", cls, &result)
		assert.Contains(t, lastPrompt(), "suggest checking other available times")
	})

	t.Run("unknown service suggests browsing", func(t *testing.T) {
		result := models.Failure(models.ToolCheckAvailability, models.CodeServiceNotFound, "not found")
		s.Synthesize(context.Background(), "", cls, &result)
		assert.Contains(t, lastPrompt(), "Suggest browsing all services")
	})

	t.Run("tool error apologizes", func(t *testing.T) {
		result := models.Failure(models.ToolCheckAvailability, models.CodeToolError, "boom")
		s.Synthesize(context.Background(), "", cls, &result)
		assert.Contains(t, lastPrompt(), "Apologize briefly without technical detail")
	})
}

func TestEstimateCost(t *testing.T) {
	usage := models.TokenUsage{InputTokens: 1_000_000, OutputTokens: 1_000_000}
	assert.InDelta(t, 6.25, EstimateCost(usage), 0.0001)

	assert.Equal(t, 0.0, EstimateCost(models.TokenUsage{}))
}
