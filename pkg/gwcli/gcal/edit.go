package gcal

import "google.golang.org/api/calendar/v3"

// Edit holds validated values for an existing event. Date is YYYY-MM-DD,
// the clocks are HH:MM.
type Edit struct {
	Title      string
	Date       string
	StartClock string
	EndClock   string
	Reminder   int64
}

// Apply writes e onto ev. Fields of ev not covered by an Edit, including
// the identifier, are left untouched.
func (e Edit) Apply(ev *calendar.Event) {
	ev.Summary = e.Title
	if ev.Start == nil {
		ev.Start = &calendar.EventDateTime{}
	}
	if ev.End == nil {
		ev.End = &calendar.EventDateTime{}
	}
	ev.Start.DateTime = ComposeDateTime(e.Date, e.StartClock)
	ev.Start.TimeZone = TimeZone
	ev.End.DateTime = ComposeDateTime(e.Date, e.EndClock)
	ev.End.TimeZone = TimeZone
	ev.Reminders = PopupReminders(e.Reminder)
}
