// File: services/intelligence/interface.go
package intelligence

import (
	"context"
	"time"

	"heysheets/models"
)

// LLMClient is the minimal surface the pipeline needs from a language model.
type LLMClient interface {
	// Complete runs one prompt. model is an optional per-request override;
	// "" uses the client's configured default.
	Complete(ctx context.Context, model, prompt string) (string, models.TokenUsage, error)
}

// Classifier turns a conversation into a structured intent classification.
type Classifier interface {
	// Classify never fails: malformed model output degrades to the safe
	// default classification instead of propagating a parse error.
	Classify(ctx context.Context, model string, messages []models.ChatMessage, services []models.Service, now time.Time) (models.Classification, models.TokenUsage)
}

// Synthesizer produces the natural-language reply for a turn.
type Synthesizer interface {
	// Synthesize never surfaces raw error text to the user; an underlying
	// call failure yields a user-safe apology.
	Synthesize(ctx context.Context, model string, classification models.Classification, result *models.ToolResult) (string, models.TokenUsage)
}

// Pricing per million tokens, used for the debug cost estimate.
const (
	inputTokenCostPerMillion  = 1.25
	outputTokenCostPerMillion = 5.00
)

// EstimateCost converts token usage into an approximate dollar figure for
// the debug panel.
func EstimateCost(usage models.TokenUsage) float64 {
	in := float64(usage.InputTokens) / 1e6 * inputTokenCostPerMillion
	out := float64(usage.OutputTokens) / 1e6 * outputTokenCostPerMillion
	return in + out
}
