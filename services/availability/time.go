package availability

import (
	"fmt"
	"time"

	"heysheets/config"
)

// BusinessLocation returns the store's fixed business timezone. Day
// boundaries for calendar queries are computed here regardless of the
// caller's locale.
func BusinessLocation() *time.Location {
	loc, err := time.LoadLocation(config.AppConfig.BusinessTimezone)
	if err != nil {
		// UTC+8 matches the historical default for this deployment.
		return time.FixedZone("UTC+8", 8*60*60)
	}
	return loc
}

// DayBounds returns the [start, end) interval of a calendar date in the
// business timezone.
func DayBounds(date string, loc *time.Location) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, day.AddDate(0, 0, 1), nil
}

// ParseSlotTime combines a date and an HH:MM time in the business timezone.
func ParseSlotTime(date, hhmm string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+hhmm, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q on %q: %w", hhmm, date, err)
	}
	return t, nil
}

// ClassSlotMax returns the configured threshold separating fixed class slots
// from open availability windows.
func ClassSlotMax() time.Duration {
	return time.Duration(config.AppConfig.ClassSlotMaxHours) * time.Hour
}
