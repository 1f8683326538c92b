package normalize

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitInstant(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		allDay bool
		want   StoredTime
	}{
		{"timed", "2024-01-01T09:00:00", false, StoredTime{"2024-01-01", "09:00:00", false}},
		{"fraction and zone dropped", "2024-01-01T09:30:15.123Z", false, StoredTime{"2024-01-01", "09:30:15", false}},
		{"offset dropped", "2024-03-10T23:59:59+02:00", false, StoredTime{"2024-03-10", "23:59:59", false}},
		{"bare date", "2024-02-29", false, StoredTime{"2024-02-29", "00:00:00", true}},
		{"all-day flag wins", "2024-01-01T09:00:00", true, StoredTime{"2024-01-01", "00:00:00", true}},
		{"midnight is all-day", "2024-01-01T00:00:00", false, StoredTime{"2024-01-01", "00:00:00", true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitInstant(tt.in, tt.allDay)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitInstant_Invalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "2024-13-01", "2024-01-01T25:00:00", "2024-01-01T09:00", "2024-01-01T09:00:00junk", "2024-01-01T09:00:00."} {
		t.Run(in, func(t *testing.T) {
			_, err := SplitInstant(in, false)
			assert.ErrorIs(t, err, common.ErrInvalidInstant)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestCombineSplit_RoundTrip(t *testing.T) {
	base := time.Date(2023, 12, 31, 0, 0, 1, 0, time.UTC)
	for i := 0; i < 500; i++ {
		x := base.Add(time.Duration(i) * 7919 * time.Second).Format(InstantLayout)
		st, err := SplitInstant(x, false)
		require.NoError(t, err)
		if st.TimeOfDay == common.AllDaySentinel {
			assert.True(t, st.AllDay, x)
			continue
		}
		got, err := Combine(st.Day, st.TimeOfDay)
		require.NoError(t, err)
		require.Equal(t, x, got)
	}
}

func TestCombine(t *testing.T) {
	got, err := Combine("2024-01-01", "09:00:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T09:00:00", got)

	got, err = Combine("2024-01-01", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01T09:00:00", got)

	_, err = Combine("01/01/2024", "09:00:00")
	assert.ErrorIs(t, err, common.ErrInvalidInstant)
}

func TestEventFromStored(t *testing.T) {
	ev, err := EventFromStored("7", "Standup", "2024-01-01", "09:00:00")
	require.NoError(t, err)
	assert.Equal(t, "7", ev.ID)
	assert.False(t, ev.AllDay)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), ev.Start)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), ev.End)

	ev, err = EventFromStored("8", "Holiday", "2024-01-01", common.AllDaySentinel)
	require.NoError(t, err)
	assert.True(t, ev.AllDay)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), ev.End)
}

func TestEventFromInput(t *testing.T) {
	ev, st, err := EventFromInput(models.EventInput{Title: " Standup ", Start: "2024-01-01T09:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "Standup", ev.Title)
	assert.Equal(t, StoredTime{"2024-01-01", "09:00:00", false}, st)

	_, _, err = EventFromInput(models.EventInput{Title: "  ", Start: "2024-01-01T09:00:00"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, _, err = EventFromInput(models.EventInput{Title: "x", Start: "nope"})
	assert.ErrorIs(t, err, common.ErrInvalidInstant)
}

func TestStoredFromEvent(t *testing.T) {
	ev := models.NewCalendarEvent("1", "x", time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC), false)
	st, err := StoredFromEvent(ev)
	require.NoError(t, err)
	assert.Equal(t, StoredTime{"2024-05-06", "07:08:09", false}, st)
}
