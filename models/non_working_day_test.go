package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(year int, month time.Month, day int) *time.Time {
	d := Date(year, month, day)
	return &d
}

func weekdayPtr(wd time.Weekday) *time.Weekday {
	return &wd
}

func intPtr(n int) *int {
	return &n
}

func TestNonWorkingDayAppliesTo(t *testing.T) {
	tests := []struct {
		name string
		rule EmployeeNonWorkingDay
		date time.Time
		want bool
	}{
		{
			name: "specific date matches",
			rule: EmployeeNonWorkingDay{Pattern: PatternSpecific, Date: datePtr(2024, time.January, 10)},
			date: Date(2024, time.January, 10),
			want: true,
		},
		{
			name: "specific date other day",
			rule: EmployeeNonWorkingDay{Pattern: PatternSpecific, Date: datePtr(2024, time.January, 10)},
			date: Date(2024, time.January, 11),
			want: false,
		},
		{
			name: "weekly matches friday",
			rule: EmployeeNonWorkingDay{Pattern: PatternWeekly, Weekday: weekdayPtr(time.Friday)},
			date: Date(2024, time.January, 12), // a Friday
			want: true,
		},
		{
			name: "weekly rejects thursday",
			rule: EmployeeNonWorkingDay{Pattern: PatternWeekly, Weekday: weekdayPtr(time.Friday)},
			date: Date(2024, time.January, 11),
			want: false,
		},
		{
			name: "monthly matches the 15th in any month",
			rule: EmployeeNonWorkingDay{Pattern: PatternMonthly, DayOfMonth: intPtr(15)},
			date: Date(2025, time.July, 15),
			want: true,
		},
		{
			name: "monthly rejects the 16th",
			rule: EmployeeNonWorkingDay{Pattern: PatternMonthly, DayOfMonth: intPtr(15)},
			date: Date(2025, time.July, 16),
			want: false,
		},
		{
			name: "before validity window",
			rule: EmployeeNonWorkingDay{
				Pattern: PatternWeekly, Weekday: weekdayPtr(time.Friday),
				ValidFrom: datePtr(2024, time.February, 1),
			},
			date: Date(2024, time.January, 12),
			want: false,
		},
		{
			name: "after validity window",
			rule: EmployeeNonWorkingDay{
				Pattern: PatternWeekly, Weekday: weekdayPtr(time.Friday),
				ValidUntil: datePtr(2024, time.January, 1),
			},
			date: Date(2024, time.January, 12),
			want: false,
		},
		{
			name: "window bounds are inclusive",
			rule: EmployeeNonWorkingDay{
				Pattern: PatternSpecific, Date: datePtr(2024, time.January, 10),
				ValidFrom:  datePtr(2024, time.January, 10),
				ValidUntil: datePtr(2024, time.January, 10),
			},
			date: Date(2024, time.January, 10),
			want: true,
		},
		{
			name: "missing pattern field never matches",
			rule: EmployeeNonWorkingDay{Pattern: PatternSpecific},
			date: Date(2024, time.January, 10),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rule.AppliesTo(tt.date))
		})
	}
}

func TestNonWorkingDayValidate(t *testing.T) {
	tests := []struct {
		name    string
		rule    EmployeeNonWorkingDay
		wantErr bool
	}{
		{"specific with date", EmployeeNonWorkingDay{Pattern: PatternSpecific, Date: datePtr(2024, time.January, 10)}, false},
		{"specific without date", EmployeeNonWorkingDay{Pattern: PatternSpecific}, true},
		{"weekly with weekday", EmployeeNonWorkingDay{Pattern: PatternWeekly, Weekday: weekdayPtr(time.Monday)}, false},
		{"weekly without weekday", EmployeeNonWorkingDay{Pattern: PatternWeekly}, true},
		{"monthly with day", EmployeeNonWorkingDay{Pattern: PatternMonthly, DayOfMonth: intPtr(31)}, false},
		{"monthly without day", EmployeeNonWorkingDay{Pattern: PatternMonthly}, true},
		{"monthly day out of range", EmployeeNonWorkingDay{Pattern: PatternMonthly, DayOfMonth: intPtr(32)}, true},
		{"unknown pattern", EmployeeNonWorkingDay{Pattern: "yearly"}, true},
		{
			"window reversed",
			EmployeeNonWorkingDay{
				Pattern: PatternWeekly, Weekday: weekdayPtr(time.Monday),
				ValidFrom:  datePtr(2024, time.February, 1),
				ValidUntil: datePtr(2024, time.January, 1),
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
