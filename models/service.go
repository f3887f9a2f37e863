package models

import (
	"encoding/json"
	"strings"
)

// Service is one bookable service row from the store's services tab.
type Service struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Capacity        int     `json:"capacity"`
	Location        string  `json:"location,omitempty"`
}

// DefaultCapacity applies when the services tab leaves capacity blank.
const DefaultCapacity = 1

// CalendarMapping associates a calendar with the set of services it hosts.
// Legacy store records persisted the service set in three shapes — an object
// `{"serviceIds":[...]}`, a bare array of ids, or a single id string. The
// decoder collapses all three into ServiceIDs once, at the boundary, so the
// rest of the pipeline has a single membership test.
type CalendarMapping struct {
	CalendarID string   `json:"calendarId"`
	ServiceIDs []string `json:"serviceIds"`
}

type rawMapping struct {
	ServiceIDs []string `json:"serviceIds"`
}

// DecodeServiceIDs normalizes any of the three legacy mapping value shapes
// into a flat id list.
func DecodeServiceIDs(raw json.RawMessage) []string {
	var obj rawMapping
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ServiceIDs != nil {
		return obj.ServiceIDs
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err == nil {
		return arr
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

// Contains reports whether the mapping services the given service id.
func (m CalendarMapping) Contains(serviceID string) bool {
	for _, id := range m.ServiceIDs {
		if strings.EqualFold(id, serviceID) {
			return true
		}
	}
	return false
}

// Store is the per-tenant configuration record written by the dashboard.
type Store struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	SpreadsheetID string `json:"spreadsheetId"`
	// Schema maps detected tab names to their header columns.
	Schema map[string][]string `json:"schema"`
	// CalendarMappings keys are availability calendar ids; values are the
	// raw mapping payloads as stored (any of the three legacy shapes).
	CalendarMappings map[string]json.RawMessage `json:"calendarMappings"`
	// InviteCalendarID is the separate calendar bookings are written to.
	InviteCalendarID string `json:"inviteCalendarId"`
}

// Mappings returns the store's calendar mappings in normalized form.
func (s Store) Mappings() []CalendarMapping {
	out := make([]CalendarMapping, 0, len(s.CalendarMappings))
	for calID, raw := range s.CalendarMappings {
		out = append(out, CalendarMapping{
			CalendarID: calID,
			ServiceIDs: DecodeServiceIDs(raw),
		})
	}
	return out
}

// HasBookingCalendar reports whether the store is configured for bookings.
func (s Store) HasBookingCalendar() bool {
	return len(s.CalendarMappings) > 0 && s.InviteCalendarID != ""
}
