// Package calendar builds the monthly attendance view for one user. It
// overlays recorded time entries, public holidays and per-employee
// non-working-day rules onto the plain dates of a month and derives the
// per-day status the dashboard renders.
package calendar

import (
	"fmt"
	"time"

	"timelog/models"
)

// DayOrigin tells whether a day belongs to the requested month or is
// week-grid padding from an adjacent month.
type DayOrigin int

const (
	InMonth DayOrigin = iota
	PaddingBefore
	PaddingAfter
)

// Day is one resolved calendar date for one user. It is built once
// during the monthly build and read-only afterwards.
type Day struct {
	Date             time.Time
	Owner            *models.User
	Entry            *models.TimeEntry
	IsWeekend        bool
	IsPublicHoliday  bool
	HolidayName      string
	IsNonWorkingDay  bool
	NonWorkingReason string
	Origin           DayOrigin
}

func newDay(date time.Time, owner *models.User, origin DayOrigin) *Day {
	wd := date.Weekday()
	return &Day{
		Date:      date,
		Owner:     owner,
		IsWeekend: wd == time.Saturday || wd == time.Sunday,
		Origin:    origin,
	}
}

// IsWorkday reports whether the owner is expected to work on this date:
// not a weekend, not a public holiday, not covered by a non-working rule.
func (d *Day) IsWorkday() bool {
	return !(d.IsWeekend || d.IsPublicHoliday || d.IsNonWorkingDay)
}

func (d *Day) HasEntry() bool {
	return d.Entry != nil
}

// IsMissingEntry reports whether this workday lacks a recorded session,
// the actionable signal the calendar exists to surface.
func (d *Day) IsMissingEntry() bool {
	return d.IsWorkday() && !d.HasEntry()
}

// StatusClass is the presentation hint for the day, checked in priority
// order: weekend, holiday, non-working, has-entry, missing-entry.
func (d *Day) StatusClass() string {
	switch {
	case d.IsWeekend:
		return "weekend"
	case d.IsPublicHoliday:
		return "public-holiday"
	case d.IsNonWorkingDay:
		return "employee-non-working"
	case d.HasEntry():
		return "has-entry"
	case d.IsWorkday():
		return "missing-entry"
	}
	return ""
}

// DisplayInfo is the short in-cell label: holiday name, non-working
// reason, or the worked hours.
func (d *Day) DisplayInfo() string {
	switch {
	case d.IsPublicHoliday:
		return d.HolidayName
	case d.IsNonWorkingDay && d.NonWorkingReason != "":
		return d.NonWorkingReason
	case d.HasEntry():
		return fmt.Sprintf("%.1fh", d.Entry.TotalWorkHours())
	}
	return ""
}

// TooltipText is the hover detail for the day.
func (d *Day) TooltipText() string {
	switch {
	case d.IsPublicHoliday:
		return fmt.Sprintf("Feiertag: %s", d.HolidayName)
	case d.IsNonWorkingDay:
		reason := d.NonWorkingReason
		if reason == "" {
			reason = "Nicht-Arbeitstag"
		}
		return fmt.Sprintf("Nicht-Arbeitstag: %s", reason)
	case d.HasEntry():
		e := d.Entry
		return fmt.Sprintf("Arbeitszeit: %s - %s (%.1fh)\nPause: %d Min\nVerschmutzung: %s",
			e.StartTime.Format("15:04"), e.EndTime.Format("15:04"), e.TotalWorkHours(),
			e.LunchBreakMinutes, e.PollutionLevel)
	case d.IsWeekend:
		name := "Sonntag"
		if d.Date.Weekday() == time.Saturday {
			name = "Samstag"
		}
		return fmt.Sprintf("Wochenende: %s", name)
	}
	return "Fehlender Zeiteintrag"
}
