// File: services/intelligence/synthesizer.go
package intelligence

import (
	"context"
	"fmt"
	"strings"

	"heysheets/models"
	"heysheets/utils"

	"go.uber.org/zap"
)

// DefaultSynthesizer implements Synthesizer over an LLMClient.
type DefaultSynthesizer struct {
	LLM LLMClient
}

const fallbackApology = "Sorry, something went wrong on our side. Please try again in a moment."

func (s *DefaultSynthesizer) Synthesize(ctx context.Context, model string, classification models.Classification, result *models.ToolResult) (string, models.TokenUsage) {
	logger := utils.GetLogger()

	prompt := s.buildPrompt(classification, result)
	text, usage, err := s.LLM.Complete(ctx, model, prompt)
	if err != nil || strings.TrimSpace(text) == "" {
		logger.Error("synthesizer model call failed", zap.Error(err))
		// The tool messages are already user-safe; reuse them before
		// falling back to a generic apology.
		if result != nil && result.Message != "" {
			return result.Message, usage
		}
		return fallbackApology, usage
	}
	return strings.TrimSpace(text), usage
}

func (s *DefaultSynthesizer) buildPrompt(classification models.Classification, result *models.ToolResult) string {
	var sb strings.Builder
	sb.WriteString("You are a friendly assistant for a store's booking chat. ")
	sb.WriteString("Write one short reply to the customer. Plain text, no markdown.\n\n")
	sb.WriteString(fmt.Sprintf("The customer's intent was classified as %s.\n", classification.Intent))

	if result == nil {
		sb.WriteString("No store data was looked up for this turn. Answer conversationally, and offer to show services or check availability.\n")
		return sb.String()
	}

	switch {
	case result.Success && result.Booking != nil:
		b := result.Booking
		sb.WriteString("A booking was just confirmed. Restate every detail explicitly: ")
		sb.WriteString(fmt.Sprintf("service %s, date %s, time %s to %s, price $%.2f, booked for %s (%s).\n",
			b.ServiceName, b.Date, b.Time, b.EndTime, b.Price, b.CustomerName, b.CustomerEmail))

	case result.Success && result.SlotList != nil:
		sb.WriteString(fmt.Sprintf("Tool note: %s\n", result.Message))
		sb.WriteString("Describe these available times naturally, grouped by date:\n")
		for _, slot := range result.SlotList.Slots {
			sb.WriteString(fmt.Sprintf("- %s at %s (%d spots left)\n", slot.Date, slot.Time, slot.SpotsLeft))
		}
		if len(result.SlotList.Slots) == 0 {
			sb.WriteString("(none)\n")
		}

	case result.Success && result.Availability != nil:
		a := result.Availability
		sb.WriteString(fmt.Sprintf("Availability check result: %s on %s at %s has %d spot(s) left, %d minutes, $%.2f. Relay this and invite them to book.\n",
			a.ServiceName, a.Date, a.Time, a.SpotsLeft, a.DurationMinutes, a.Price))

	case result.Success && result.Services != nil:
		sb.WriteString("List these services descriptively:\n")
		for _, svc := range result.Services {
			sb.WriteString(fmt.Sprintf("- %s (%d min, $%.2f)\n", svc.Name, svc.DurationMinutes, svc.Price))
		}

	case result.Code == models.CodeNeedsClarification:
		sb.WriteString(fmt.Sprintf("Ask the customer for the missing details: %s.\n",
			strings.Join(result.MissingFields, ", ")))

	case result.Code == models.CodeFullyBooked || result.Code == models.CodeNoClassScheduled || result.Code == models.CodeNotAvailable:
		sb.WriteString(fmt.Sprintf("The requested time did not work out (%s). Apologize briefly and suggest checking other available times.\n", result.Message))

	case result.Code == models.CodeServiceNotFound:
		sb.WriteString(fmt.Sprintf("The service was not found (%s). Suggest browsing all services.\n", result.Message))

	default:
		sb.WriteString(fmt.Sprintf("Something went wrong (%s). Apologize briefly without technical detail.\n", result.Message))
	}

	return sb.String()
}
