package models

import "time"

// EventDuration is the length of a timed event; the store keeps only the start.
const EventDuration = time.Hour

// CalendarEvent is a calendar entry. Start and End are wall-clock instants
// carried in UTC; the store has no zone information.
type CalendarEvent struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	AllDay bool      `json:"all_day"`
}

func (e CalendarEvent) Key() string { return e.ID }

func (e CalendarEvent) WithKey(id string) CalendarEvent {
	e.ID = id
	return e
}

// NewCalendarEvent derives End and normalizes Start for the all-day case:
// all-day events start at midnight and end at the next midnight, timed
// events end EventDuration after they start.
func NewCalendarEvent(id, title string, start time.Time, allDay bool) CalendarEvent {
	start = start.UTC()
	if allDay {
		day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
		return CalendarEvent{ID: id, Title: title, Start: day, End: day.AddDate(0, 0, 1), AllDay: true}
	}
	return CalendarEvent{ID: id, Title: title, Start: start, End: start.Add(EventDuration)}
}

// EventInput is what the operator supplies for a calendar event.
// Start is an ISO-8601 local instant, YYYY-MM-DDTHH:MM:SS or YYYY-MM-DD.
type EventInput struct {
	Title  string
	Start  string
	AllDay bool
}
