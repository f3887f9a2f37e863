package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	calendarRepo "heysheets/database/repository/calendar"
	"heysheets/models"
	"heysheets/services/availability"
	"heysheets/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookingParams are the fields required to create a booking. Phone is the
// only optional one.
type BookingParams struct {
	ServiceName   string
	Date          string // 2006-01-02
	Time          string // 15:04
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// BookingEngine records customer bookings on the store's invite calendar.
type BookingEngine interface {
	CreateBooking(ctx context.Context, store models.Store, params BookingParams) models.ToolResult
}

// DefaultBookingEngine implements BookingEngine. It never trusts a prior
// availability check: the target window and its capacity are re-derived at
// booking time to close the gap between "shown as open" and "booked".
type DefaultBookingEngine struct {
	Availability *availability.DefaultAvailabilityEngine
	Calendar     calendarRepo.CalendarRepository
	// Locks serializes creation per (invite calendar, slot start). Nil
	// falls back to the optimistic path, with the calendar authoritative.
	Locks SlotLocker
	// LockRetryDelay is the pause between lock acquisition attempts.
	// Zero means the default.
	LockRetryDelay time.Duration
	// InviteMode is passed through to the calendar collaborator and
	// controls whether the customer receives a calendar email.
	InviteMode string
}

func (e *DefaultBookingEngine) lockRetryDelay() time.Duration {
	if e.LockRetryDelay > 0 {
		return e.LockRetryDelay
	}
	return 200 * time.Millisecond
}

func (e *DefaultBookingEngine) CreateBooking(ctx context.Context, store models.Store, params BookingParams) models.ToolResult {
	logger := utils.GetLogger()
	const tool = models.ToolCreateBooking

	var missing []string
	if params.ServiceName == "" {
		missing = append(missing, "service_name")
	}
	if params.Date == "" {
		missing = append(missing, "date")
	}
	if params.Time == "" {
		missing = append(missing, "time")
	}
	if params.CustomerName == "" {
		missing = append(missing, "customer_name")
	}
	if params.CustomerEmail == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return models.Clarification(tool,
			fmt.Sprintf("To book you in I still need: %s.", strings.Join(missing, ", ")),
			missing...)
	}

	resolution, fail := e.Availability.Resolve(ctx, tool, store, params.ServiceName)
	if fail != nil {
		return *fail
	}
	svc := resolution.Service

	loc := e.Availability.TimeZone()
	requested, err := availability.ParseSlotTime(params.Date, params.Time, loc)
	if err != nil {
		return models.Clarification(tool,
			fmt.Sprintf("I did not understand %q as a time on %s.", params.Time, params.Date),
			"time")
	}

	// Re-validate at booking time instead of trusting an earlier check.
	dayStart, dayEnd, err := availability.DayBounds(params.Date, loc)
	if err != nil {
		return models.Clarification(tool,
			fmt.Sprintf("I did not understand %q as a date.", params.Date), "date")
	}
	events, err := e.Calendar.ListEvents(ctx, resolution.CalendarID, dayStart, dayEnd)
	if err != nil {
		logger.Error("failed to re-validate availability",
			zap.String("calendarID", resolution.CalendarID), zap.Error(err))
		return models.Failure(tool, models.CodeToolError,
			"Sorry, I could not reach the calendar right now. Please try again in a moment.")
	}

	window := coveringWindow(events, requested)
	if window == nil {
		// Distinct from fully booked: nothing is scheduled at this time.
		return models.Failure(tool, models.CodeNoClassScheduled,
			fmt.Sprintf("There is no %s scheduled at %s on %s. Would you like to see available times?",
				svc.Name, params.Time, params.Date))
	}

	// Snap to the class's actual start when the window is a short fixed
	// slot, so a "2:05pm" request lands on the 2:00pm class.
	start, end := e.Availability.ResolveWindow(*window, requested, svc)

	lockKey := fmt.Sprintf("%s:%s:%s", store.InviteCalendarID, svc.ID, start.Format(time.RFC3339))
	if e.Locks != nil {
		ok, err := acquireWithRetry(ctx, e.Locks, lockKey, e.lockRetryDelay())
		if err != nil {
			// Lock store unreachable: degrade to the optimistic path and
			// let the calendar stay authoritative.
			logger.Warn("slot lock unavailable, proceeding optimistically",
				zap.String("key", lockKey), zap.Error(err))
		} else if !ok {
			return models.Failure(tool, models.CodeToolError,
				"Someone else is booking this slot right now. Please try again in a moment.")
		} else {
			defer e.Locks.Release(context.WithoutCancel(ctx), lockKey)
		}
	}

	booked, err := e.Calendar.CountBookings(ctx, store.InviteCalendarID, svc.ID, start)
	if err != nil {
		logger.Error("failed to count bookings",
			zap.String("serviceID", svc.ID), zap.Error(err))
		return models.Failure(tool, models.CodeToolError,
			"Sorry, I could not check current bookings. Please try again in a moment.")
	}
	if booked >= svc.Capacity {
		return models.Failure(tool, models.CodeFullyBooked,
			fmt.Sprintf("%s at %s on %s is fully booked. Would you like another time?",
				svc.Name, start.Format("15:04"), params.Date))
	}

	bookingID := newBookingID()
	input := calendarRepo.EventInput{
		Summary:       fmt.Sprintf("%s - %s", svc.Name, params.CustomerName),
		Description:   fmt.Sprintf("Booking %s via chat", bookingID),
		Start:         start,
		End:           end,
		AttendeeEmail: params.CustomerEmail,
		Private: map[string]string{
			"bookingId":     bookingID,
			"serviceId":     svc.ID,
			"startTime":     start.Format(time.RFC3339),
			"customerName":  params.CustomerName,
			"customerEmail": params.CustomerEmail,
			"customerPhone": params.CustomerPhone,
		},
	}

	created, err := e.Calendar.CreateEvent(ctx, store.InviteCalendarID, input, e.InviteMode)
	if err != nil {
		logger.Error("failed to create booking event",
			zap.String("bookingID", bookingID), zap.Error(err))
		return models.Failure(tool, models.CodeToolError,
			"Sorry, I could not complete the booking. Please try again in a moment.")
	}

	record := &models.Booking{
		ID:            bookingID,
		ServiceID:     svc.ID,
		ServiceName:   svc.Name,
		Date:          params.Date,
		Time:          start.Format("15:04"),
		EndTime:       end.Format("15:04"),
		Price:         svc.Price,
		SpotsLeft:     svc.Capacity - booked - 1,
		CustomerName:  params.CustomerName,
		CustomerEmail: params.CustomerEmail,
		CustomerPhone: params.CustomerPhone,
		EventID:       created.ID,
	}

	logger.Info("booking created",
		zap.String("bookingID", bookingID),
		zap.String("storeID", store.ID),
		zap.String("serviceID", svc.ID),
		zap.String("slot", start.Format(time.RFC3339)))

	return models.ToolResult{
		Tool:    tool,
		Success: true,
		Code:    models.CodeOK,
		Message: fmt.Sprintf("Booked %s for %s on %s at %s.", svc.Name, params.CustomerName, params.Date, record.Time),
		Booking: record,
	}
}

func coveringWindow(events []models.CalendarEvent, requested time.Time) *models.CalendarEvent {
	for i := range events {
		if events[i].Covers(requested) {
			return &events[i]
		}
	}
	return nil
}

// newBookingID generates the booking correlation id stored in the event's
// private metadata.
func newBookingID() string {
	return fmt.Sprintf("bk_%d_%s", time.Now().UnixMilli(), strings.Split(uuid.New().String(), "-")[0])
}
