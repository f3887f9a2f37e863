// File: database/repository/calendar/google_test.go
package calendarRepo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gcal "google.golang.org/api/calendar/v3"
)

func TestBookedAtComparesInstants(t *testing.T) {
	sgt := time.FixedZone("UTC+8", 8*60*60)
	start := time.Date(2025, 11, 28, 10, 0, 0, 0, sgt)

	// The same instant written with a different zone offset still matches.
	assert.True(t, bookedAt("2025-11-28T10:00:00+08:00", start))
	assert.True(t, bookedAt("2025-11-28T02:00:00Z", start))
	assert.True(t, bookedAt("2025-11-27T18:00:00-08:00", start))

	assert.False(t, bookedAt("2025-11-28T10:00:00Z", start))
	assert.False(t, bookedAt("2025-11-28T11:00:00+08:00", start))
	assert.False(t, bookedAt("", start))
	assert.False(t, bookedAt("not a timestamp", start))
}

func TestFromGoogleEventTimed(t *testing.T) {
	ev, err := fromGoogleEvent(&gcal.Event{
		Id:      "evt-1",
		Summary: "Hair Color",
		Start:   &gcal.EventDateTime{DateTime: "2025-11-28T09:00:00+08:00"},
		End:     &gcal.EventDateTime{DateTime: "2025-11-28T11:00:00+08:00"},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{"serviceId": "hair-color"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "evt-1", ev.ID)
	assert.False(t, ev.AllDay)
	assert.Equal(t, 2*time.Hour, ev.Duration())
	assert.Equal(t, "hair-color", ev.Private["serviceId"])
}

func TestFromGoogleEventAllDay(t *testing.T) {
	ev, err := fromGoogleEvent(&gcal.Event{
		Id:    "evt-2",
		Start: &gcal.EventDateTime{Date: "2025-11-28"},
		End:   &gcal.EventDateTime{Date: "2025-11-29"},
	})
	require.NoError(t, err)

	assert.True(t, ev.AllDay)
	assert.False(t, ev.Covers(time.Date(2025, 11, 28, 10, 0, 0, 0, time.UTC)))
}

func TestFromGoogleEventBadTimestamp(t *testing.T) {
	_, err := fromGoogleEvent(&gcal.Event{
		Id:    "evt-3",
		Start: &gcal.EventDateTime{DateTime: "yesterday-ish"},
	})
	assert.Error(t, err)
}
