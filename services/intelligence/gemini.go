// File: services/intelligence/gemini.go
package intelligence

import (
	"context"
	"fmt"
	"strings"

	"heysheets/models"
	"heysheets/utils"

	genai "github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient implements LLMClient over the Gemini API.
type GeminiClient struct {
	client       *genai.Client
	defaultModel string
}

// allowedModels are the per-request model overrides the widget may ask for.
// The configured default is always usable regardless of this list.
var allowedModels = map[string]bool{
	"models/gemini-1.5-pro":   true,
	"models/gemini-1.5-flash": true,
	"models/gemini-2.0-flash": true,
}

// NewGeminiClient creates a Gemini-backed LLMClient.
func NewGeminiClient(ctx context.Context, apiKey, modelID string) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if modelID == "" {
		modelID = "models/gemini-1.5-pro"
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, defaultModel: modelID}, nil
}

// resolveModelID picks the effective model for a request. Unknown or
// disallowed overrides fall back to the default instead of failing the turn.
func (g *GeminiClient) resolveModelID(requested string) string {
	if requested == "" {
		return g.defaultModel
	}
	id := requested
	if !strings.HasPrefix(id, "models/") {
		id = "models/" + id
	}
	if id == g.defaultModel || allowedModels[id] {
		return id
	}
	utils.GetLogger().Warn("ignoring disallowed model override",
		zap.String("requested", requested))
	return g.defaultModel
}

func (g *GeminiClient) Complete(ctx context.Context, model, prompt string) (string, models.TokenUsage, error) {
	gm := g.client.GenerativeModel(g.resolveModelID(model))
	resp, err := gm.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", models.TokenUsage{}, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", models.TokenUsage{}, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	var usage models.TokenUsage
	if resp.UsageMetadata != nil {
		usage = models.TokenUsage{
			InputTokens:  resp.UsageMetadata.PromptTokenCount,
			OutputTokens: resp.UsageMetadata.CandidatesTokenCount,
			TotalTokens:  resp.UsageMetadata.TotalTokenCount,
		}
	}
	return sb.String(), usage, nil
}
