package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timelog/models"
)

func TestWeeksShapeInvariants(t *testing.T) {
	tests := []struct {
		name      string
		year      int
		month     time.Month
		wantWeeks int
	}{
		// February 2021 starts on Monday and has exactly 28 days.
		{"minimal four-week month", 2021, time.February, 4},
		{"january 2024", 2024, time.January, 5},
		// August 2021 starts on Sunday with 31 days, forcing six rows.
		{"six-week month", 2021, time.August, 6},
		{"leap february", 2024, time.February, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cal, err := New(tt.year, tt.month, owner, &fakeSource{})
			require.NoError(t, err)

			weeks := cal.Weeks()
			require.Len(t, weeks, tt.wantWeeks)
			assert.GreaterOrEqual(t, len(weeks), 4)
			assert.LessOrEqual(t, len(weeks), 6)

			for i, week := range weeks {
				require.Len(t, week, 7, "week %d", i)
			}

			assert.Equal(t, time.Monday, weeks[0][0].Date.Weekday())
			lastWeek := weeks[len(weeks)-1]
			assert.Equal(t, time.Sunday, lastWeek[6].Date.Weekday())

			// Consecutive dates across the whole grid.
			prev := weeks[0][0].Date
			for _, week := range weeks {
				for _, day := range week {
					if day == weeks[0][0] {
						continue
					}
					assert.Equal(t, prev.AddDate(0, 0, 1), day.Date)
					prev = day.Date
				}
			}
		})
	}
}

func TestWeeksPaddingDays(t *testing.T) {
	// January 2024 starts on a Monday, so only trailing padding exists.
	jan, err := New(2024, time.January, owner, &fakeSource{})
	require.NoError(t, err)

	weeks := jan.Weeks()
	assert.Equal(t, InMonth, weeks[0][0].Origin)

	lastWeek := weeks[len(weeks)-1]
	assert.Equal(t, InMonth, lastWeek[2].Origin) // Jan 31, a Wednesday
	for _, day := range lastWeek[3:] {
		assert.Equal(t, PaddingAfter, day.Origin)
		assert.Equal(t, time.February, day.Date.Month())
	}

	// March 2024 starts on a Friday: four leading padding days.
	mar, err := New(2024, time.March, owner, &fakeSource{})
	require.NoError(t, err)

	weeks = mar.Weeks()
	for _, day := range weeks[0][:4] {
		assert.Equal(t, PaddingBefore, day.Origin)
		assert.Equal(t, time.February, day.Date.Month())
	}
	assert.Equal(t, InMonth, weeks[0][4].Origin)
	assert.Equal(t, 1, weeks[0][4].Date.Day())
}

func TestWeeksPaddingCarriesNoOverlays(t *testing.T) {
	// A recurring holiday and an entry on Feb 29 must not surface on the
	// padding day for Feb 29 in March's grid.
	src := &fakeSource{
		entries: []models.TimeEntry{entryOn(t, models.Date(2024, time.February, 29))},
		holidays: []models.PublicHoliday{
			{Name: "Schalttag", Date: models.Date(2024, time.February, 29)},
		},
	}

	cal, err := New(2024, time.March, owner, src)
	require.NoError(t, err)

	weeks := cal.Weeks()
	feb29 := weeks[0][3]
	require.True(t, models.SameDate(feb29.Date, models.Date(2024, time.February, 29)))
	assert.Equal(t, PaddingBefore, feb29.Origin)
	assert.False(t, feb29.HasEntry())
	assert.False(t, feb29.IsPublicHoliday)
}

func TestWeeksPaddingStillMarksWeekends(t *testing.T) {
	// August 2021 starts on a Sunday; the leading padding week ends with
	// Saturday July 31, which must still be flagged as a weekend day.
	cal, err := New(2021, time.August, owner, &fakeSource{})
	require.NoError(t, err)

	weeks := cal.Weeks()
	jul31 := weeks[0][5]
	require.Equal(t, PaddingBefore, jul31.Origin)
	require.Equal(t, time.Saturday, jul31.Date.Weekday())
	assert.True(t, jul31.IsWeekend)
}

func TestWeeksDoNotMutateDays(t *testing.T) {
	cal, err := New(2024, time.January, owner, &fakeSource{})
	require.NoError(t, err)

	require.Len(t, cal.Days, 31)
	_ = cal.Weeks()
	_ = cal.Weeks()
	assert.Len(t, cal.Days, 31)
	assert.Equal(t, 31, cal.Stats().TotalDays)
}
