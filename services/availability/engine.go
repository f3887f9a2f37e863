package availability

import (
	"context"
	"fmt"
	"time"

	calendarRepo "heysheets/database/repository/calendar"
	"heysheets/models"
	"heysheets/services/catalog"
	"heysheets/utils"

	"go.uber.org/zap"
)

// AvailabilityEngine answers "can I book X at Y" and "what can I book"
// against the store's availability calendar.
type AvailabilityEngine interface {
	CheckAvailability(ctx context.Context, store models.Store, serviceName, date, timeStr string) models.ToolResult
	GetBookingSlots(ctx context.Context, store models.Store, serviceName, startDate, endDate, prefillDate, prefillTime string) models.ToolResult
}

// DefaultAvailabilityEngine implements AvailabilityEngine.
type DefaultAvailabilityEngine struct {
	Catalog  catalog.CatalogService
	Calendar calendarRepo.CalendarRepository
	// ClassSlotThreshold separates fixed class slots from open windows.
	// Zero means "use the configured default".
	ClassSlotThreshold time.Duration
	// Location overrides the business timezone; nil means configured default.
	Location *time.Location
}

func (e *DefaultAvailabilityEngine) threshold() time.Duration {
	if e.ClassSlotThreshold > 0 {
		return e.ClassSlotThreshold
	}
	return ClassSlotMax()
}

func (e *DefaultAvailabilityEngine) location() *time.Location {
	if e.Location != nil {
		return e.Location
	}
	return BusinessLocation()
}

// TimeZone exposes the engine's effective business timezone so collaborators
// compute day boundaries the same way.
func (e *DefaultAvailabilityEngine) TimeZone() *time.Location {
	return e.location()
}

// Resolution is the shared outcome of mapping a spoken service name to a
// catalog service and its availability calendar. The booking engine re-runs
// the same resolution rather than trusting an earlier check.
type Resolution struct {
	Service    models.Service
	CalendarID string
}

// Resolve runs the common resolution steps for a tool: store configured,
// catalog loaded, service matched, calendar mapped. A non-nil ToolResult
// means resolution failed and the result should be returned as-is.
func (e *DefaultAvailabilityEngine) Resolve(ctx context.Context, tool string, store models.Store, serviceName string) (*Resolution, *models.ToolResult) {
	logger := utils.GetLogger()

	if !store.HasBookingCalendar() {
		logger.Warn("store has no booking calendar", zap.String("storeID", store.ID))
		res := models.Failure(tool, models.CodeNotConfigured,
			"Bookings are not set up for this store yet. Please contact the store directly.")
		return nil, &res
	}

	services, err := e.Catalog.LoadServices(ctx, store)
	if err != nil {
		logger.Error("failed to load service catalog",
			zap.String("storeID", store.ID), zap.Error(err))
		res := models.Failure(tool, models.CodeToolError,
			"Sorry, I could not look that up right now. Please try again in a moment.")
		return nil, &res
	}

	svc := catalog.MatchService(serviceName, services)
	if svc == nil {
		res := models.Failure(tool, models.CodeServiceNotFound,
			fmt.Sprintf("I could not find a service called %q. Would you like to see all our services?", serviceName))
		return nil, &res
	}

	calendarID := catalog.ResolveCalendar(svc.ID, store)
	if calendarID == "" {
		logger.Warn("service has no calendar mapping",
			zap.String("storeID", store.ID), zap.String("serviceID", svc.ID))
		res := models.Failure(tool, models.CodeServiceUnmapped,
			fmt.Sprintf("%s is not linked to a booking calendar yet. Please contact the store.", svc.Name))
		return nil, &res
	}

	return &Resolution{Service: *svc, CalendarID: calendarID}, nil
}

// ResolveWindow pins the effective class start and end for a requested time
// inside a window. Short windows are fixed class slots: the class starts at
// the window's own start no matter what time inside it was asked for. Long
// windows are open ranges: the literal requested time is honored and the end
// is start plus the service duration.
func (e *DefaultAvailabilityEngine) ResolveWindow(window models.CalendarEvent, requested time.Time, svc models.Service) (start, end time.Time) {
	if window.Duration() <= e.threshold() {
		return window.Start, window.End
	}
	return requested, requested.Add(time.Duration(svc.DurationMinutes) * time.Minute)
}

// CheckAvailability determines whether a service can be booked at the given
// date and time, and with how many open spots.
func (e *DefaultAvailabilityEngine) CheckAvailability(ctx context.Context, store models.Store, serviceName, date, timeStr string) models.ToolResult {
	logger := utils.GetLogger()
	const tool = models.ToolCheckAvailability

	var missing []string
	if serviceName == "" {
		missing = append(missing, "service_name")
	}
	if date == "" {
		missing = append(missing, "date")
	}
	if timeStr == "" {
		missing = append(missing, "time")
	}
	if len(missing) > 0 {
		return models.Clarification(tool,
			"Which service, date and time would you like me to check?", missing...)
	}

	resolution, fail := e.Resolve(ctx, tool, store, serviceName)
	if fail != nil {
		return *fail
	}
	svc := resolution.Service

	loc := e.location()
	requested, err := ParseSlotTime(date, timeStr, loc)
	if err != nil {
		return models.Clarification(tool,
			fmt.Sprintf("I did not understand %q as a time on %s. Could you rephrase it?", timeStr, date),
			"time")
	}

	dayStart, dayEnd, err := DayBounds(date, loc)
	if err != nil {
		return models.Clarification(tool,
			fmt.Sprintf("I did not understand %q as a date. Could you rephrase it?", date),
			"date")
	}

	events, err := e.Calendar.ListEvents(ctx, resolution.CalendarID, dayStart, dayEnd)
	if err != nil {
		logger.Error("failed to list availability events",
			zap.String("calendarID", resolution.CalendarID), zap.Error(err))
		return models.Failure(tool, models.CodeToolError,
			"Sorry, I could not reach the calendar right now. Please try again in a moment.")
	}

	window := findCoveringWindow(events, requested)
	if window == nil {
		return models.Failure(tool, models.CodeNotAvailable,
			fmt.Sprintf("%s is not available at %s on %s. Would you like to see other times?", svc.Name, timeStr, date))
	}

	start, end := e.ResolveWindow(*window, requested, svc)

	booked, err := e.Calendar.CountBookings(ctx, store.InviteCalendarID, svc.ID, start)
	if err != nil {
		logger.Error("failed to count bookings",
			zap.String("serviceID", svc.ID), zap.Error(err))
		return models.Failure(tool, models.CodeToolError,
			"Sorry, I could not check current bookings. Please try again in a moment.")
	}

	spots := svc.Capacity - booked
	if spots <= 0 {
		return models.Failure(tool, models.CodeFullyBooked,
			fmt.Sprintf("%s at %s on %s is fully booked. Would you like another time?", svc.Name, start.Format("15:04"), date))
	}

	info := &models.AvailabilityInfo{
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		Date:            date,
		Time:            start.Format("15:04"),
		EndTime:         end.Format("15:04"),
		SpotsLeft:       spots,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
	}
	return models.ToolResult{
		Tool:    tool,
		Success: true,
		Code:    models.CodeOK,
		Message: fmt.Sprintf("%s is available on %s at %s (%d minutes, $%.2f, %d spot(s) left).",
			svc.Name, date, info.Time, svc.DurationMinutes, svc.Price, spots),
		Availability: info,
	}
}

// findCoveringWindow selects the event whose interval contains the requested
// timestamp. All-day events carry no specific time and are skipped.
func findCoveringWindow(events []models.CalendarEvent, requested time.Time) *models.CalendarEvent {
	for i := range events {
		if events[i].Covers(requested) {
			return &events[i]
		}
	}
	return nil
}
