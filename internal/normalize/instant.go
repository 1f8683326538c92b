package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/models"
)

const (
	DayLayout     = "2006-01-02"
	TimeLayout    = "15:04:05"
	InstantLayout = DayLayout + "T" + TimeLayout
)

// StoredTime is an instant as the events table keeps it.
type StoredTime struct {
	Day       string // YYYY-MM-DD
	TimeOfDay string // HH:MM:SS, AllDaySentinel for all-day events
	AllDay    bool
}

// SplitInstant splits an ISO-8601 local instant into its stored form.
// A bare date is an all-day instant. Fractional seconds and a zone designator
// are accepted and dropped. A time-of-day of midnight is always all-day.
func SplitInstant(iso string, allDay bool) (StoredTime, error) {
	iso = strings.TrimSpace(iso)

	if len(iso) == len(DayLayout) {
		if _, err := time.Parse(DayLayout, iso); err != nil {
			return StoredTime{}, fmt.Errorf("%w: %q", common.ErrInvalidInstant, iso)
		}
		return StoredTime{Day: iso, TimeOfDay: common.AllDaySentinel, AllDay: true}, nil
	}

	if len(iso) < len(InstantLayout) {
		return StoredTime{}, fmt.Errorf("%w: %q", common.ErrInvalidInstant, iso)
	}
	if _, err := time.Parse(InstantLayout, iso[:len(InstantLayout)]); err != nil {
		return StoredTime{}, fmt.Errorf("%w: %q", common.ErrInvalidInstant, iso)
	}
	if !validSuffix(iso[len(InstantLayout):]) {
		return StoredTime{}, fmt.Errorf("%w: %q", common.ErrInvalidInstant, iso)
	}

	st := StoredTime{
		Day:       iso[:len(DayLayout)],
		TimeOfDay: iso[len(DayLayout)+1 : len(InstantLayout)],
	}
	if allDay || st.TimeOfDay == common.AllDaySentinel {
		st.TimeOfDay = common.AllDaySentinel
		st.AllDay = true
	}
	return st, nil
}

// validSuffix accepts an optional fraction followed by an optional zone:
// "", ".123", "Z", ".5+02:00", "-0700".
func validSuffix(s string) bool {
	if strings.HasPrefix(s, ".") {
		i := 1
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
		}
		if i == 1 {
			return false
		}
		s = s[i:]
	}
	switch {
	case s == "" || s == "Z":
		return true
	case s[0] == '+' || s[0] == '-':
		if _, err := time.Parse("-07:00", s); err == nil {
			return true
		}
		_, err := time.Parse("-0700", s)
		return err == nil
	}
	return false
}

// Combine joins a stored day and time-of-day into YYYY-MM-DDTHH:MM:SS.
// HH:MM is accepted for rows written by older clients.
func Combine(day, timeOfDay string) (string, error) {
	day = strings.TrimSpace(day)
	timeOfDay = strings.TrimSpace(timeOfDay)
	if len(timeOfDay) == len("15:04") {
		timeOfDay += ":00"
	}

	s := day + "T" + timeOfDay
	if _, err := time.Parse(InstantLayout, s); err != nil {
		return "", fmt.Errorf("%w: day=%q time=%q", common.ErrInvalidInstant, day, timeOfDay)
	}
	return s, nil
}

// FormatInstant renders t as YYYY-MM-DDTHH:MM:SS.
func FormatInstant(t time.Time) string {
	return t.Format(InstantLayout)
}

// EventFromStored builds a CalendarEvent from a stored row.
func EventFromStored(id, title, day, timeOfDay string) (models.CalendarEvent, error) {
	s, err := Combine(day, timeOfDay)
	if err != nil {
		return models.CalendarEvent{}, err
	}
	start, err := time.Parse(InstantLayout, s)
	if err != nil {
		return models.CalendarEvent{}, fmt.Errorf("%w: %q", common.ErrInvalidInstant, s)
	}
	allDay := s[len(DayLayout)+1:] == common.AllDaySentinel
	return models.NewCalendarEvent(id, title, start, allDay), nil
}

// EventFromInput validates in and builds the unsaved CalendarEvent it describes.
func EventFromInput(in models.EventInput) (models.CalendarEvent, StoredTime, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.CalendarEvent{}, StoredTime{}, fmt.Errorf("%w: title is required", common.ErrValidation)
	}
	st, err := SplitInstant(in.Start, in.AllDay)
	if err != nil {
		return models.CalendarEvent{}, StoredTime{}, err
	}
	ev, err := EventFromStored("", title, st.Day, st.TimeOfDay)
	if err != nil {
		return models.CalendarEvent{}, StoredTime{}, err
	}
	return ev, st, nil
}

// StoredFromEvent is the inverse of EventFromStored.
func StoredFromEvent(ev models.CalendarEvent) (StoredTime, error) {
	return SplitInstant(FormatInstant(ev.Start.UTC()), ev.AllDay)
}
