package gcal

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
)

const (
	// TimeZone is stamped on every start and end written to the calendar.
	TimeZone = "Asia/Kolkata"

	// DefaultReminderMinutes is used when an event has no reminder override.
	DefaultReminderMinutes int64 = 10

	// ReminderMethod is the notification type of the single reminder override.
	ReminderMethod = "popup"

	// Input and display layouts. Day and month may be given with one digit.
	parseDateLayout = "2:1:2006"
	inputDateLayout = "02:01:2006"
	wireDateLayout  = "2006-01-02"
	clockLayout     = "15:04"
	listLayout      = "02:01:2006 15:04"
)

var (
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidReminder  = errors.New("invalid reminder")
	ErrInvalidSelection = errors.New("invalid selection")
)

// ParseDate converts a DD:MM:YYYY string to YYYY-MM-DD.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(parseDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q is not DD:MM:YYYY", ErrInvalidDate, s)
	}
	return t.Format(wireDateLayout), nil
}

// ComposeDateTime joins a YYYY-MM-DD date and an HH:MM clock into the
// zoneless timestamp sent alongside TimeZone. The clock is not validated.
func ComposeDateTime(date, clock string) string {
	return date + "T" + clock + ":00"
}

// ParseReminder parses a lead time in minutes.
func ParseReminder(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidReminder, s)
	}
	return n, nil
}

// ParseSelection parses a 1-based index into a list of n items and returns
// the 0-based position.
func ParseSelection(s string, n int) (int, error) {
	idx, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || idx < 1 || idx > n {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSelection, s)
	}
	return idx - 1, nil
}

// PopupReminders returns reminders holding one popup override. UseDefault and
// Minutes are forced into the request body even when zero.
func PopupReminders(minutes int64) *calendar.EventReminders {
	return &calendar.EventReminders{
		UseDefault: false,
		Overrides: []*calendar.EventReminder{
			{Method: ReminderMethod, Minutes: minutes, ForceSendFields: []string{"Minutes"}},
		},
		ForceSendFields: []string{"UseDefault"},
	}
}

// ReminderMinutes returns the lead time of the first override, or fallback.
func ReminderMinutes(ev *calendar.Event, fallback int64) int64 {
	if ev.Reminders == nil || len(ev.Reminders.Overrides) == 0 {
		return fallback
	}
	return ev.Reminders.Overrides[0].Minutes
}

// NewEvent builds an event on a single day.
func NewEvent(title, date, startClock, endClock string, reminder int64) *calendar.Event {
	ev := &calendar.Event{}
	Edit{Title: title, Date: date, StartClock: startClock, EndClock: endClock, Reminder: reminder}.Apply(ev)
	return ev
}

// LocalTime parses an RFC3339 event timestamp and converts it to loc.
func LocalTime(edt *calendar.EventDateTime, loc *time.Location) (time.Time, bool) {
	if edt == nil || edt.DateTime == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, edt.DateTime)
	if err != nil {
		return time.Time{}, false
	}
	return t.In(loc), true
}

// ListTime renders an event start as DD:MM:YYYY HH:MM in loc. ok is false for
// events without a parseable dateTime, e.g. all-day events.
func ListTime(ev *calendar.Event, loc *time.Location) (string, bool) {
	t, ok := LocalTime(ev.Start, loc)
	if !ok {
		return "", false
	}
	return t.Format(listLayout), true
}

// InputDate formats t the way ParseDate accepts it.
func InputDate(t time.Time) string { return t.Format(inputDateLayout) }

// WireDate formats t as YYYY-MM-DD.
func WireDate(t time.Time) string { return t.Format(wireDateLayout) }

// Clock formats t as HH:MM.
func Clock(t time.Time) string { return t.Format(clockLayout) }
