package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"

	gwcli "github.com/wesnick/gcalcli/pkg/gwcli"
	"github.com/wesnick/gcalcli/pkg/gwcli/gcal"
)

// now is replaced in tests.
var now = time.Now

// runEventsList fetches, orders and prints the upcoming events. The returned
// slice is in display order, so item i is shown as number i+1.
func runEventsList(ctx context.Context, conn *gwcli.CmdG, out *outputWriter) ([]*calendar.Event, error) {
	out.writeVerbose("Fetching upcoming events...")

	items, err := conn.ListUpcoming(ctx, now())
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	gcal.SortEvents(items)

	if len(items) == 0 {
		out.writeMessage("No upcoming events found")
		return []*calendar.Event{}, nil
	}

	out.writeMessage("\nUpcoming Events:")
	for i, ev := range items {
		// All-day events keep their number but are not shown.
		when, ok := gcal.ListTime(ev, out.loc)
		if !ok {
			out.writeVerbose("Skipping event %s without a start time", ev.Id)
			continue
		}
		out.writeMessagef("%d. %s | %s", i+1, when, ev.Summary)
	}
	return items, nil
}

// runEventsAdd prompts for a new event, creates it and shows the list again.
func runEventsAdd(ctx context.Context, conn *gwcli.CmdG, p *prompter, out *outputWriter) error {
	var answers [5]string
	labels := [...]string{
		"Event Title: ",
		"Date (DD:MM:YYYY): ",
		"Start Time (HH:MM, 24-hour): ",
		"End Time (HH:MM, 24-hour): ",
		"Reminder (minutes before): ",
	}
	for i, label := range labels {
		a, err := p.ask(label)
		if err != nil {
			return err
		}
		answers[i] = a
	}
	title, dateIn, startClock, endClock, reminderIn := answers[0], answers[1], answers[2], answers[3], answers[4]

	date, err := gcal.ParseDate(dateIn)
	if err != nil {
		out.writeVerbose("%v", err)
		out.writeFailure("Invalid date format. Use DD:MM:YYYY")
		return nil
	}
	reminder, err := gcal.ParseReminder(reminderIn)
	if err != nil {
		out.writeVerbose("%v", err)
		out.writeFailure("Reminder must be an integer")
		return nil
	}

	ev := gcal.NewEvent(title, date, startClock, endClock, reminder)
	if _, err := conn.InsertEvent(ctx, ev); err != nil {
		out.writeFailure(fmt.Sprintf("Failed to add event: %v", err))
	} else {
		out.writeSuccess("Event added successfully")
	}

	_, err = runEventsList(ctx, conn, out)
	return err
}

// runEventsUpdate lets the user pick an event and override its title, day,
// times and reminder. Nothing is sent unless every answer is valid.
func runEventsUpdate(ctx context.Context, conn *gwcli.CmdG, p *prompter, out *outputWriter) error {
	items, err := runEventsList(ctx, conn, out)
	if err != nil || len(items) == 0 {
		return err
	}

	ev, err := selectEvent(p, out, items, "Select event number to update: ")
	if err != nil || ev == nil {
		return err
	}

	start, okStart := gcal.LocalTime(ev.Start, out.loc)
	end, okEnd := gcal.LocalTime(ev.End, out.loc)
	if !okStart || !okEnd {
		out.writeFailure("All-day events cannot be updated")
		return nil
	}

	edit := gcal.Edit{
		Title:      ev.Summary,
		Date:       gcal.WireDate(start),
		StartClock: gcal.Clock(start),
		EndClock:   gcal.Clock(end),
		Reminder:   gcal.ReminderMinutes(ev, gcal.DefaultReminderMinutes),
	}

	in, err := p.ask(fmt.Sprintf("New title (press Enter to keep '%s'): ", ev.Summary))
	if err != nil {
		return err
	}
	if strings.TrimSpace(in) != "" {
		edit.Title = in
	}

	in, err = p.ask(fmt.Sprintf("New date DD:MM:YYYY (Enter to keep %s): ", gcal.InputDate(start)))
	if err != nil {
		return err
	}
	if strings.TrimSpace(in) != "" {
		if edit.Date, err = gcal.ParseDate(in); err != nil {
			out.writeVerbose("%v", err)
			out.writeFailure("Invalid date format")
			return nil
		}
	}

	in, err = p.ask(fmt.Sprintf("New start time HH:MM (Enter to keep %s): ", edit.StartClock))
	if err != nil {
		return err
	}
	if in != "" {
		edit.StartClock = in
	}

	in, err = p.ask(fmt.Sprintf("New end time HH:MM (Enter to keep %s): ", edit.EndClock))
	if err != nil {
		return err
	}
	if in != "" {
		edit.EndClock = in
	}

	in, err = p.ask(fmt.Sprintf("New reminder minutes (Enter to keep %d): ", edit.Reminder))
	if err != nil {
		return err
	}
	if strings.TrimSpace(in) != "" {
		if edit.Reminder, err = gcal.ParseReminder(in); err != nil {
			out.writeVerbose("%v", err)
			out.writeFailure("Invalid reminder value")
			return nil
		}
	}

	edit.Apply(ev)
	if _, err := conn.UpdateEvent(ctx, ev); err != nil {
		out.writeFailure(fmt.Sprintf("Failed to update event: %v", err))
		return nil
	}
	out.writeSuccess("Event updated successfully")
	return nil
}

// runEventsDelete lets the user pick an event and removes it.
func runEventsDelete(ctx context.Context, conn *gwcli.CmdG, p *prompter, out *outputWriter) error {
	items, err := runEventsList(ctx, conn, out)
	if err != nil || len(items) == 0 {
		return err
	}

	ev, err := selectEvent(p, out, items, "Select event number to delete: ")
	if err != nil || ev == nil {
		return err
	}

	if err := conn.DeleteEvent(ctx, ev.Id); err != nil {
		out.writeFailure(fmt.Sprintf("Failed to delete event: %v", err))
		return nil
	}
	out.writeSuccess("Event deleted successfully")
	return nil
}

// selectEvent asks for a 1-based number. A nil event with a nil error means
// the answer was rejected and reported.
func selectEvent(p *prompter, out *outputWriter, items []*calendar.Event, label string) (*calendar.Event, error) {
	in, err := p.ask(label)
	if err != nil {
		return nil, err
	}
	idx, err := gcal.ParseSelection(in, len(items))
	if err != nil {
		out.writeVerbose("%v", err)
		out.writeFailure("Invalid selection")
		return nil, nil
	}
	return items[idx], nil
}
