// File: services/intelligence/dates.go
package intelligence

import (
	"regexp"
	"strings"
	"time"
)

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var relativeDatePattern = regexp.MustCompile(`(?i)\b(today|tonight|tomorrow|sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)

// ResolveRelativeDates rewrites relative date words in the text into
// absolute dates against the supplied now, so the prompt handed to the model
// is deterministic for a given clock reading.
func ResolveRelativeDates(text string, now time.Time) string {
	return relativeDatePattern.ReplaceAllStringFunc(text, func(match string) string {
		switch strings.ToLower(match) {
		case "today", "tonight":
			return match + " (" + now.Format("2006-01-02") + ")"
		case "tomorrow":
			return match + " (" + now.AddDate(0, 0, 1).Format("2006-01-02") + ")"
		default:
			wd, ok := weekdayNames[strings.ToLower(match)]
			if !ok {
				return match
			}
			return match + " (" + nextWeekday(now, wd).Format("2006-01-02") + ")"
		}
	})
}

// nextWeekday returns the next occurrence of wd strictly within the coming
// week; a weekday naming today resolves to today.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	delta := (int(wd) - int(now.Weekday()) + 7) % 7
	return now.AddDate(0, 0, delta)
}
