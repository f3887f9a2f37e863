package models

import "time"

// CalendarEvent is one event read from an availability or invite calendar.
type CalendarEvent struct {
	ID      string    `json:"id"`
	Summary string    `json:"summary"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	// AllDay events carry no specific time and never match a requested slot.
	AllDay  bool              `json:"allDay"`
	Private map[string]string `json:"private,omitempty"`
}

// Duration returns the event length.
func (e CalendarEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Covers reports whether t falls inside the event's interval.
func (e CalendarEvent) Covers(t time.Time) bool {
	return !e.AllDay && !t.Before(e.Start) && t.Before(e.End)
}

// Slot is a computed bookable (date, time) pair with remaining capacity.
// Slots are derived from availability windows at query time, never stored.
type Slot struct {
	Date      string `json:"date"`    // 2006-01-02
	Time      string `json:"time"`    // 15:04
	EndTime   string `json:"endTime"` // 15:04
	SpotsLeft int    `json:"spotsLeft"`
}

// Booking is a confirmed booking recorded on the invite calendar.
type Booking struct {
	ID            string  `json:"id"` // correlation id, bk_<ts>_<rand>
	ServiceID     string  `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	Date          string  `json:"date"`
	Time          string  `json:"time"`
	EndTime       string  `json:"endTime"`
	Price         float64 `json:"price"`
	SpotsLeft     int     `json:"spotsLeft"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	EventID       string  `json:"eventId,omitempty"`
}
