package availability

import (
	"context"
	"fmt"
	"sort"
	"time"

	"heysheets/models"
	"heysheets/utils"

	"go.uber.org/zap"
)

// candidateSlot is a generated slot before capacity filtering.
type candidateSlot struct {
	start time.Time
	end   time.Time
	spots int
}

// GetBookingSlots generates every bookable slot for a service over a date
// range, together with the in-range dates that have nothing left. Slots are
// regenerated on every query; they are never stored.
func (e *DefaultAvailabilityEngine) GetBookingSlots(ctx context.Context, store models.Store, serviceName, startDate, endDate, prefillDate, prefillTime string) models.ToolResult {
	logger := utils.GetLogger()
	const tool = models.ToolGetBookingSlots

	if serviceName == "" {
		return models.Clarification(tool,
			"Which service would you like to see times for?", "service_name")
	}

	loc := e.location()
	if startDate == "" {
		startDate = time.Now().In(loc).Format("2006-01-02")
	}
	if endDate == "" {
		endDate = startDate
	}

	resolution, fail := e.Resolve(ctx, tool, store, serviceName)
	if fail != nil {
		return *fail
	}
	svc := resolution.Service

	rangeStart, _, err := DayBounds(startDate, loc)
	if err != nil {
		return models.Clarification(tool,
			fmt.Sprintf("I did not understand %q as a date.", startDate), "date")
	}
	_, rangeEnd, err := DayBounds(endDate, loc)
	if err != nil {
		return models.Clarification(tool,
			fmt.Sprintf("I did not understand %q as a date.", endDate), "date")
	}

	events, err := e.Calendar.ListEvents(ctx, resolution.CalendarID, rangeStart, rangeEnd)
	if err != nil {
		logger.Error("failed to list availability events",
			zap.String("calendarID", resolution.CalendarID), zap.Error(err))
		return models.Failure(tool, models.CodeToolError,
			"Sorry, I could not reach the calendar right now. Please try again in a moment.")
	}

	candidates := e.generateCandidates(events, svc)

	// Per-slot occupancy against the invite calendar.
	for i := range candidates {
		booked, err := e.Calendar.CountBookings(ctx, store.InviteCalendarID, svc.ID, candidates[i].start)
		if err != nil {
			logger.Error("failed to count bookings for slot",
				zap.String("serviceID", svc.ID),
				zap.Time("slot", candidates[i].start), zap.Error(err))
			return models.Failure(tool, models.CodeToolError,
				"Sorry, I could not check current bookings. Please try again in a moment.")
		}
		candidates[i].spots = svc.Capacity - booked
	}

	var slots []models.Slot
	for _, c := range candidates {
		if c.spots <= 0 {
			continue
		}
		slots = append(slots, models.Slot{
			Date:      c.start.In(loc).Format("2006-01-02"),
			Time:      c.start.In(loc).Format("15:04"),
			EndTime:   c.end.In(loc).Format("15:04"),
			SpotsLeft: c.spots,
		})
	}
	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Date == slots[j].Date {
			return slots[i].Time < slots[j].Time
		}
		return slots[i].Date < slots[j].Date
	})

	slotList := &models.SlotList{
		ServiceID:        svc.ID,
		ServiceName:      svc.Name,
		Slots:            slots,
		UnavailableDates: unavailableDates(startDate, endDate, slots, loc),
	}

	return models.ToolResult{
		Tool:     tool,
		Success:  true,
		Code:     models.CodeOK,
		Message:  slotsMessage(svc.Name, startDate, endDate, candidates, slots, prefillDate, prefillTime, loc),
		SlotList: slotList,
	}
}

// generateCandidates expands availability windows into concrete slots. A
// short window is one fixed class slot at exactly its own bounds; a long
// window is subdivided into service-duration slices while a whole slice
// still fits.
func (e *DefaultAvailabilityEngine) generateCandidates(events []models.CalendarEvent, svc models.Service) []candidateSlot {
	duration := time.Duration(svc.DurationMinutes) * time.Minute
	seen := make(map[int64]bool)
	var candidates []candidateSlot

	for _, ev := range events {
		if ev.AllDay || !ev.End.After(ev.Start) {
			continue
		}
		if ev.Duration() <= e.threshold() {
			if !seen[ev.Start.Unix()] {
				seen[ev.Start.Unix()] = true
				candidates = append(candidates, candidateSlot{start: ev.Start, end: ev.End})
			}
			continue
		}
		for cur := ev.Start; !cur.Add(duration).After(ev.End); cur = cur.Add(duration) {
			if seen[cur.Unix()] {
				continue
			}
			seen[cur.Unix()] = true
			candidates = append(candidates, candidateSlot{start: cur, end: cur.Add(duration)})
		}
	}
	return candidates
}

// unavailableDates lists every in-range date with no remaining slot, so the
// widget can disable them in its date picker.
func unavailableDates(startDate, endDate string, slots []models.Slot, loc *time.Location) []string {
	hasSlot := make(map[string]bool, len(slots))
	for _, s := range slots {
		hasSlot[s.Date] = true
	}

	start, err1 := time.ParseInLocation("2006-01-02", startDate, loc)
	end, err2 := time.ParseInLocation("2006-01-02", endDate, loc)
	if err1 != nil || err2 != nil {
		return nil
	}

	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format("2006-01-02")
		if !hasSlot[dateStr] {
			dates = append(dates, dateStr)
		}
	}
	return dates
}

// slotsMessage picks the user-facing summary. When the caller prefilled a
// date or time, the message speaks to that specific slot rather than the
// whole range.
func slotsMessage(serviceName, startDate, endDate string, candidates []candidateSlot, slots []models.Slot, prefillDate, prefillTime string, loc *time.Location) string {
	if len(candidates) == 0 {
		if startDate == endDate {
			return fmt.Sprintf("There are no bookable times for %s on %s.", serviceName, startDate)
		}
		return fmt.Sprintf("There are no bookable times for %s between %s and %s.", serviceName, startDate, endDate)
	}

	if prefillDate == "" {
		return fmt.Sprintf("Here are the available times for %s.", serviceName)
	}

	onDate := func(c candidateSlot) bool {
		return c.start.In(loc).Format("2006-01-02") == prefillDate
	}

	dateHasCandidates := false
	for _, c := range candidates {
		if onDate(c) {
			dateHasCandidates = true
			break
		}
	}
	if !dateHasCandidates {
		return fmt.Sprintf("%s has no times on %s. Here are the other available dates.", serviceName, prefillDate)
	}

	if prefillTime == "" {
		return fmt.Sprintf("Here are the available times for %s on %s.", serviceName, prefillDate)
	}

	for _, c := range candidates {
		if !onDate(c) || c.start.In(loc).Format("15:04") != prefillTime {
			continue
		}
		if c.spots > 0 {
			return fmt.Sprintf("Good news: %s at %s on %s is available.", serviceName, prefillTime, prefillDate)
		}
		return fmt.Sprintf("%s at %s on %s is fully booked. Here are the remaining times.", serviceName, prefillTime, prefillDate)
	}
	return fmt.Sprintf("%s is not offered at %s on %s. Here are the times that day.", serviceName, prefillTime, prefillDate)
}
