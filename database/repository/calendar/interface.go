// File: database/repository/calendar/interface.go
package calendarRepo

import (
	"context"
	"time"

	"heysheets/models"
)

// EventInput describes a booking event to be created on the invite calendar.
// Private entries are stored as private extended properties so later
// occupancy counting can filter on them.
type EventInput struct {
	Summary       string
	Description   string
	Start         time.Time
	End           time.Time
	AttendeeEmail string
	Private       map[string]string
}

// CalendarRepository is the calendar collaborator surface. The pipeline only
// reads events and appends bookings; it never mutates or deletes.
type CalendarRepository interface {
	// ListEvents returns events on the calendar overlapping [start, end),
	// with recurring events expanded to single instances.
	ListEvents(ctx context.Context, calendarID string, start, end time.Time) ([]models.CalendarEvent, error)

	// CreateEvent appends a booking event. inviteMode controls whether the
	// attendee receives a calendar email ("all") or not ("none").
	CreateEvent(ctx context.Context, calendarID string, ev EventInput, inviteMode string) (*models.CalendarEvent, error)

	// CountBookings counts booking events on the calendar whose private
	// metadata matches the service id and resolved start time.
	CountBookings(ctx context.Context, calendarID, serviceID string, start time.Time) (int, error)
}
