package models

// ChatMessage is one turn of the conversation as sent by the widget.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// ChatRequest is the payload coming from the chat widget into /api/chat.
type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	StoreID  string        `json:"storeId"`
	// Model optionally overrides the LLM for this turn; values outside the
	// allowlist fall back to the configured default.
	Model string `json:"model,omitempty"`
	// CachedData lets the widget replay catalog rows it already holds so a
	// turn can skip the sheet read.
	CachedData *CachedData `json:"cachedData,omitempty"`
}

// CachedData mirrors the widget's local copy of store data.
type CachedData struct {
	Services []Service `json:"services,omitempty"`
}

// TokenUsage reports model token consumption for one turn.
type TokenUsage struct {
	InputTokens  int32 `json:"inputTokens"`
	OutputTokens int32 `json:"outputTokens"`
	TotalTokens  int32 `json:"totalTokens"`
}

// Add accumulates usage across pipeline stages.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
	u.TotalTokens += other.TotalTokens
}

// StageTiming records wall-clock duration of one pipeline stage.
type StageTiming struct {
	Stage      string `json:"stage"`
	DurationMs int64  `json:"durationMs"`
}

// FunctionCall records one tool dispatch for the debug panel.
type FunctionCall struct {
	Name       string `json:"name"`
	Code       string `json:"code"`
	Success    bool   `json:"success"`
	DurationMs int64  `json:"durationMs"`
}

// ChatDebug is the debug block mirrored to the observability collaborator.
type ChatDebug struct {
	RequestID     string         `json:"requestId"`
	Intent        string         `json:"intent"`
	Confidence    string         `json:"confidence"`
	FunctionCalls []FunctionCall `json:"functionCalls"`
	Timings       []StageTiming  `json:"timings"`
	Tokens        TokenUsage     `json:"tokens"`
	CostUSD       float64        `json:"cost"`
}

// RichContent carries structured payloads the widget renders beside the text.
type RichContent struct {
	Type     string    `json:"type"` // "slots" or "services"
	SlotList *SlotList `json:"slotList,omitempty"`
	Services []Service `json:"services,omitempty"`
}

// ChatResponse is what the orchestrator returns to the widget.
type ChatResponse struct {
	Text        string       `json:"text"`
	RichContent *RichContent `json:"richContent,omitempty"`
	Suggestions []string     `json:"suggestions,omitempty"`
	Debug       ChatDebug    `json:"debug"`
}
