// File: services/intelligence/classifier.go
package intelligence

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"heysheets/models"
	"heysheets/utils"

	"go.uber.org/zap"
)

// DefaultClassifier implements Classifier over an LLMClient.
type DefaultClassifier struct {
	LLM LLMClient
}

const classifierContract = `Respond with ONLY a JSON object, no prose, in exactly this shape:
{
  "intent": "BROWSE_SERVICES" | "CHECK_AVAILABILITY" | "BOOK_SERVICE" | "PRODUCT_QUESTION" | "GREETING" | "OTHER",
  "confidence": "HIGH" | "MEDIUM" | "LOW",
  "params": {
    "service_name": string or null,
    "date": "YYYY-MM-DD" or null,
    "time": "HH:MM" (24h) or null,
    "customer_name": string or null,
    "email": string or null,
    "phone": string or null
  },
  "functionToCall": "check_availability" | "get_booking_slots" | "create_booking" | "list_services" | null
}`

func (c *DefaultClassifier) Classify(ctx context.Context, model string, messages []models.ChatMessage, services []models.Service, now time.Time) (models.Classification, models.TokenUsage) {
	logger := utils.GetLogger()

	prompt := c.buildPrompt(messages, services, now)
	raw, usage, err := c.LLM.Complete(ctx, model, prompt)
	if err != nil {
		logger.Error("classifier model call failed", zap.Error(err))
		return models.DefaultClassification(), usage
	}

	classification, ok := ParseClassification(raw)
	if !ok {
		logger.Warn("classifier output was not valid JSON, using default",
			zap.String("raw", truncate(raw, 200)))
		return models.DefaultClassification(), usage
	}
	return classification, usage
}

func (c *DefaultClassifier) buildPrompt(messages []models.ChatMessage, services []models.Service, now time.Time) string {
	var sb strings.Builder
	sb.WriteString("You are the intent classifier for a store's booking chat widget.\n")
	sb.WriteString(fmt.Sprintf("The current date is %s (%s).\n\n", now.Format("2006-01-02"), now.Weekday()))

	if len(services) > 0 {
		sb.WriteString("The store offers these services:\n")
		for _, svc := range services {
			sb.WriteString(fmt.Sprintf("- %s (%d min, $%.2f)\n", svc.Name, svc.DurationMinutes, svc.Price))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Conversation so far:\n")
	for _, msg := range messages {
		// Relative date words are resolved here so the same transcript
		// always produces the same prompt for a given now.
		sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, ResolveRelativeDates(msg.Content, now)))
	}
	sb.WriteString("\n")
	sb.WriteString("Classify the user's latest message. " + classifierContract)
	return sb.String()
}

// ParseClassification extracts a Classification from raw model output,
// tolerating markdown code fences and surrounding prose. ok is false when no
// usable JSON object can be recovered; callers then fall back to the safe
// default rather than failing the turn.
func ParseClassification(raw string) (models.Classification, bool) {
	cleaned := stripFences(raw)

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first < 0 || last <= first {
		return models.Classification{}, false
	}

	var out models.Classification
	if err := json.Unmarshal([]byte(cleaned[first:last+1]), &out); err != nil {
		return models.Classification{}, false
	}

	out.Intent = normalizeEnum(out.Intent, []string{
		models.IntentBrowseServices, models.IntentCheckAvailability,
		models.IntentBookService, models.IntentProductQuestion,
		models.IntentGreeting, models.IntentOther,
	}, models.IntentOther)
	out.Confidence = normalizeEnum(out.Confidence, []string{
		models.ConfidenceHigh, models.ConfidenceMedium, models.ConfidenceLow,
	}, models.ConfidenceLow)

	if out.FunctionToCall != nil {
		switch *out.FunctionToCall {
		case models.ToolCheckAvailability, models.ToolGetBookingSlots,
			models.ToolCreateBooking, models.ToolListServices:
		default:
			out.FunctionToCall = nil
		}
	}
	return out, true
}

func stripFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	}
	return strings.TrimSpace(cleaned)
}

func normalizeEnum(value string, allowed []string, fallback string) string {
	upper := strings.ToUpper(strings.TrimSpace(value))
	for _, a := range allowed {
		if upper == a {
			return a
		}
	}
	return fallback
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
