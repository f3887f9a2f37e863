package models

// Intent labels produced by the classifier.
const (
	IntentBrowseServices    = "BROWSE_SERVICES"
	IntentCheckAvailability = "CHECK_AVAILABILITY"
	IntentBookService       = "BOOK_SERVICE"
	IntentProductQuestion   = "PRODUCT_QUESTION"
	IntentGreeting          = "GREETING"
	IntentOther             = "OTHER"
)

// Confidence levels for a classification.
const (
	ConfidenceHigh   = "HIGH"
	ConfidenceMedium = "MEDIUM"
	ConfidenceLow    = "LOW"
)

// Tool names the classifier may recommend.
const (
	ToolCheckAvailability = "check_availability"
	ToolGetBookingSlots   = "get_booking_slots"
	ToolCreateBooking     = "create_booking"
	ToolListServices      = "list_services"
)

// ClassificationParams are the parameters extracted from the conversation.
// Every field is nullable: absence means the user has not supplied it yet.
type ClassificationParams struct {
	ServiceName  *string `json:"service_name"`
	Date         *string `json:"date"` // 2006-01-02, relative words already resolved
	Time         *string `json:"time"` // 15:04
	CustomerName *string `json:"customer_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
}

// Classification is the structured result of one classifier turn. It is
// request-scoped: produced once per user message and never persisted as a
// canonical record.
type Classification struct {
	Intent         string               `json:"intent"`
	Confidence     string               `json:"confidence"`
	Params         ClassificationParams `json:"params"`
	FunctionToCall *string              `json:"functionToCall"`
}

// DefaultClassification is the safe fallback when the model output cannot
// be parsed.
func DefaultClassification() Classification {
	return Classification{
		Intent:     IntentOther,
		Confidence: ConfidenceLow,
	}
}

// Tool returns the recommended tool name, or "" when none.
func (c Classification) Tool() string {
	if c.FunctionToCall == nil {
		return ""
	}
	return *c.FunctionToCall
}
