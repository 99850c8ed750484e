package gcal

import (
	"sort"

	"google.golang.org/api/calendar/v3"
)

// SortEvents orders events by start dateTime, end dateTime and summary, all
// compared as strings. Missing dateTimes sort as "". The sort is stable so
// full ties keep the server order.
func SortEvents(events []*calendar.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if as, bs := dateTimeOf(a.Start), dateTimeOf(b.Start); as != bs {
			return as < bs
		}
		if ae, be := dateTimeOf(a.End), dateTimeOf(b.End); ae != be {
			return ae < be
		}
		return a.Summary < b.Summary
	})
}

func dateTimeOf(edt *calendar.EventDateTime) string {
	if edt == nil {
		return ""
	}
	return edt.DateTime
}
