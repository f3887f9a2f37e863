package models

// Tool result codes. These drive both the synthesizer's presentation branch
// and the HTTP debug payload, so booking failures stay distinguishable:
// a time with no scheduled window is not the same thing as a full class.
const (
	CodeOK                 = "ok"
	CodeNeedsClarification = "needs_clarification"
	CodeNotConfigured      = "not_configured"
	CodeServiceNotFound    = "service_not_found"
	CodeServiceUnmapped    = "service_unmapped"
	CodeNotAvailable       = "not_available"
	CodeNoClassScheduled   = "no_class_scheduled"
	CodeFullyBooked        = "fully_booked"
	CodeToolError          = "tool_error"
)

// AvailabilityInfo is the payload of a successful availability check.
type AvailabilityInfo struct {
	ServiceID       string  `json:"serviceId"`
	ServiceName     string  `json:"serviceName"`
	Date            string  `json:"date"`
	Time            string  `json:"time"`    // resolved class start
	EndTime         string  `json:"endTime"` // resolved class end
	SpotsLeft       int     `json:"spotsLeft"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// SlotList is the payload of a booking-slots query.
type SlotList struct {
	ServiceID        string   `json:"serviceId"`
	ServiceName      string   `json:"serviceName"`
	Slots            []Slot   `json:"slots"`
	UnavailableDates []string `json:"unavailableDates"`
}

// ToolResult is the structured outcome of one tool dispatch. Exactly one of
// the payload fields is set on success; failures carry only Code and Message.
type ToolResult struct {
	Tool          string            `json:"tool"`
	Success       bool              `json:"success"`
	Code          string            `json:"code"`
	Message       string            `json:"message,omitempty"`
	MissingFields []string          `json:"missingFields,omitempty"`
	Availability  *AvailabilityInfo `json:"availability,omitempty"`
	SlotList      *SlotList         `json:"slotList,omitempty"`
	Booking       *Booking          `json:"booking,omitempty"`
	Services      []Service         `json:"services,omitempty"`
}

// Failure builds a failed result with the given code and user-facing message.
func Failure(tool, code, message string) ToolResult {
	return ToolResult{Tool: tool, Code: code, Message: message}
}

// Clarification builds a needs-clarification result. Missing input is a
// recoverable state, not an error.
func Clarification(tool, prompt string, missing ...string) ToolResult {
	return ToolResult{
		Tool:          tool,
		Code:          CodeNeedsClarification,
		Message:       prompt,
		MissingFields: missing,
	}
}
