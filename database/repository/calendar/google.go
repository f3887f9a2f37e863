// File: database/repository/calendar/google.go
package calendarRepo

import (
	"context"
	"fmt"
	"time"

	"heysheets/config"
	"heysheets/models"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type googleCalendarRepo struct {
	svc *gcal.Service
}

// NewGoogleCalendarRepo constructs a CalendarRepository over the Google
// Calendar API.
func NewGoogleCalendarRepo(ctx context.Context) (CalendarRepository, error) {
	var opts []option.ClientOption
	if config.AppConfig.GoogleCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(config.AppConfig.GoogleCredentialsFile))
	} else {
		opts = append(opts, option.WithAPIKey(config.AppConfig.GoogleAPIKey))
	}

	svc, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return &googleCalendarRepo{svc: svc}, nil
}

func (r *googleCalendarRepo) ListEvents(ctx context.Context, calendarID string, start, end time.Time) ([]models.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	call := r.svc.Events.List(calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("list events on %s: %w", calendarID, err)
	}

	events := make([]models.CalendarEvent, 0, len(resp.Items))
	for _, item := range resp.Items {
		ev, err := fromGoogleEvent(item)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func (r *googleCalendarRepo) CreateEvent(ctx context.Context, calendarID string, in EventInput, inviteMode string) (*models.CalendarEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	body := &gcal.Event{
		Summary:     in.Summary,
		Description: in.Description,
		Start:       &gcal.EventDateTime{DateTime: in.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: in.End.Format(time.RFC3339)},
	}
	if len(in.Private) > 0 {
		body.ExtendedProperties = &gcal.EventExtendedProperties{Private: in.Private}
	}

	sendUpdates := "none"
	if inviteMode == "all" || inviteMode == "externalOnly" {
		sendUpdates = inviteMode
		if in.AttendeeEmail != "" {
			body.Attendees = []*gcal.EventAttendee{{Email: in.AttendeeEmail}}
		}
	}

	created, err := r.svc.Events.Insert(calendarID, body).SendUpdates(sendUpdates).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("create event on %s: %w", calendarID, err)
	}

	ev, err := fromGoogleEvent(created)
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (r *googleCalendarRepo) CountBookings(ctx context.Context, calendarID, serviceID string, start time.Time) (int, error) {
	// The API filters on one private property; the start-time match is
	// applied client side.
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	call := r.svc.Events.List(calendarID).
		PrivateExtendedProperty("serviceId=" + serviceID).
		TimeMin(start.Add(-24 * time.Hour).Format(time.RFC3339)).
		TimeMax(start.Add(24 * time.Hour).Format(time.RFC3339)).
		SingleEvents(true).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return 0, fmt.Errorf("count bookings on %s: %w", calendarID, err)
	}

	count := 0
	for _, item := range resp.Items {
		if item.ExtendedProperties == nil || item.ExtendedProperties.Private == nil {
			continue
		}
		if bookedAt(item.ExtendedProperties.Private["startTime"], start) {
			count++
		}
	}
	return count, nil
}

// bookedAt reports whether a stored startTime property names the same
// instant as start. The stored string carries the writer's zone offset and
// start carries the calendar's, so the two are compared as instants, never
// as strings.
func bookedAt(stored string, start time.Time) bool {
	t, err := time.Parse(time.RFC3339, stored)
	if err != nil {
		return false
	}
	return t.Equal(start)
}

func fromGoogleEvent(item *gcal.Event) (models.CalendarEvent, error) {
	ev := models.CalendarEvent{
		ID:      item.Id,
		Summary: item.Summary,
	}
	if item.ExtendedProperties != nil {
		ev.Private = item.ExtendedProperties.Private
	}

	if item.Start != nil && item.Start.DateTime != "" {
		start, err := time.Parse(time.RFC3339, item.Start.DateTime)
		if err != nil {
			return ev, fmt.Errorf("parse event %s start: %w", item.Id, err)
		}
		ev.Start = start
	} else if item.Start != nil && item.Start.Date != "" {
		// All-day events carry a bare date and no usable slot time.
		start, err := time.Parse("2006-01-02", item.Start.Date)
		if err != nil {
			return ev, fmt.Errorf("parse event %s start date: %w", item.Id, err)
		}
		ev.Start = start
		ev.AllDay = true
	}

	if item.End != nil && item.End.DateTime != "" {
		end, err := time.Parse(time.RFC3339, item.End.DateTime)
		if err != nil {
			return ev, fmt.Errorf("parse event %s end: %w", item.Id, err)
		}
		ev.End = end
	} else if item.End != nil && item.End.Date != "" {
		end, err := time.Parse("2006-01-02", item.End.Date)
		if err != nil {
			return ev, fmt.Errorf("parse event %s end date: %w", item.Id, err)
		}
		ev.End = end
	}
	return ev, nil
}
