package catalog

import (
	"sort"
	"strings"

	"heysheets/models"
)

// ResolveTab fuzzy-matches a logical tab name against the tab names detected
// for a store. Matching is case-insensitive, bidirectional substring
// containment; the first match in sorted tab order wins. Returns "" when
// nothing matches — a configuration gap for the caller to surface, not an
// error.
func ResolveTab(target string, schema map[string][]string) string {
	if target == "" || len(schema) == 0 {
		return ""
	}
	want := strings.ToLower(strings.TrimSpace(target))

	// Map iteration order is randomized, so candidates are scanned in
	// sorted order to keep "first match" deterministic across requests.
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == "" {
			continue
		}
		if strings.Contains(want, candidate) || strings.Contains(candidate, want) {
			return name
		}
	}
	return ""
}

// MatchService finds the first service whose display name contains the query
// (or vice versa), case-insensitively. Returns nil when nothing matches.
func MatchService(name string, services []models.Service) *models.Service {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return nil
	}
	for i := range services {
		candidate := strings.ToLower(services[i].Name)
		if strings.Contains(candidate, want) || strings.Contains(want, candidate) {
			return &services[i]
		}
	}
	return nil
}

// ResolveCalendar returns the id of the calendar whose mapping set contains
// the service, or "" when the service is not linked to any calendar.
func ResolveCalendar(serviceID string, store models.Store) string {
	mappings := store.Mappings()
	sort.Slice(mappings, func(i, j int) bool {
		return mappings[i].CalendarID < mappings[j].CalendarID
	})
	for _, m := range mappings {
		if m.Contains(serviceID) {
			return m.CalendarID
		}
	}
	return ""
}
