package gcal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"01:01:2025", "2025-01-01"},
		{"15:03:2025", "2025-03-15"},
		{"29:02:2024", "2024-02-29"},
		{"31:12:1999", "1999-12-31"},
		{"1:1:2025", "2025-01-01"},
		{"1:3:2025", "2025-03-01"},
		{"01:3:2025", "2025-03-01"},
		{"1:03:2025", "2025-03-01"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseDate(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []string{"2025-01-01", "", "32:01:2025", "29:02:2025", "001:01:2025", "01:01:25", "01/01/2025", "01:01:2025 "} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseDate(in)
			assert.True(t, errors.Is(err, ErrInvalidDate), "ParseDate(%q) error = %v", in, err)
		})
	}
}

func TestParseReminder(t *testing.T) {
	n, err := ParseReminder("10")
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)

	for _, in := range []string{"abc", "", "1.5", "ten"} {
		_, err := ParseReminder(in)
		assert.ErrorIs(t, err, ErrInvalidReminder, "input %q", in)
	}
}

func TestParseSelection(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		n       int
		want    int
		wantErr bool
	}{
		{"first", "1", 3, 0, false},
		{"last", "3", 3, 2, false},
		{"zero", "0", 3, 0, true},
		{"past end", "4", 3, 0, true},
		{"negative", "-1", 3, 0, true},
		{"not a number", "two", 3, 0, true},
		{"empty", "", 3, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseSelection(tc.in, tc.n)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSelection)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNewEventBody(t *testing.T) {
	date, err := ParseDate("15:03:2025")
	require.NoError(t, err)

	ev := NewEvent("Standup", date, "09:00", "09:30", 10)

	assert.Equal(t, "2025-03-15T09:00:00", ev.Start.DateTime)
	assert.Equal(t, "2025-03-15T09:30:00", ev.End.DateTime)
	assert.Equal(t, TimeZone, ev.Start.TimeZone)
	assert.Equal(t, TimeZone, ev.End.TimeZone)

	body, err := json.Marshal(ev)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &decoded))
	reminders := decoded["reminders"].(map[string]interface{})
	assert.Equal(t, false, reminders["useDefault"])
	assert.Equal(t, []interface{}{
		map[string]interface{}{"method": "popup", "minutes": float64(10)},
	}, reminders["overrides"])
}

func TestReminderMinutes(t *testing.T) {
	assert.Equal(t, int64(10), ReminderMinutes(&calendar.Event{}, DefaultReminderMinutes))
	assert.Equal(t, int64(10), ReminderMinutes(&calendar.Event{Reminders: &calendar.EventReminders{UseDefault: true}}, DefaultReminderMinutes))
	assert.Equal(t, int64(30), ReminderMinutes(&calendar.Event{Reminders: PopupReminders(30)}, DefaultReminderMinutes))
}

func TestListTime(t *testing.T) {
	kolkata := time.FixedZone("IST", 5*3600+1800)

	got, ok := ListTime(&calendar.Event{Start: &calendar.EventDateTime{DateTime: "2025-06-01T09:00:00Z"}}, kolkata)
	require.True(t, ok)
	assert.Equal(t, "01:06:2025 14:30", got)

	_, ok = ListTime(&calendar.Event{Start: &calendar.EventDateTime{Date: "2025-06-01"}}, time.UTC)
	assert.False(t, ok)

	_, ok = ListTime(&calendar.Event{}, time.UTC)
	assert.False(t, ok)
}
