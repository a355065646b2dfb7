package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHolidayAppliesTo(t *testing.T) {
	recurring := PublicHoliday{Name: "Neujahr", Date: Date(2020, time.January, 1), IsRecurring: true}
	oneOff := PublicHoliday{Name: "Betriebsfeier", Date: Date(2024, time.June, 14)}

	tests := []struct {
		name    string
		holiday PublicHoliday
		date    time.Time
		want    bool
	}{
		{"recurring matches same month and day in any year", recurring, Date(2024, time.January, 1), true},
		{"recurring matches its own year", recurring, Date(2020, time.January, 1), true},
		{"recurring rejects neighboring day", recurring, Date(2024, time.January, 2), false},
		{"recurring rejects same day other month", recurring, Date(2024, time.February, 1), false},
		{"one-off matches exact date", oneOff, Date(2024, time.June, 14), true},
		{"one-off rejects same date next year", oneOff, Date(2025, time.June, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.holiday.AppliesTo(tt.date))
		})
	}
}

func TestSameDateIgnoresClockAndZone(t *testing.T) {
	berlin := time.FixedZone("CET", 3600)
	a := time.Date(2024, time.January, 15, 23, 30, 0, 0, berlin)
	b := Date(2024, time.January, 15)
	assert.True(t, SameDate(a, b))
	assert.False(t, SameDate(a, Date(2024, time.January, 16)))
}

func TestMidnightNormalizes(t *testing.T) {
	noisy := time.Date(2024, time.March, 3, 17, 45, 12, 999, time.UTC)
	assert.Equal(t, Date(2024, time.March, 3), Midnight(noisy))
}
