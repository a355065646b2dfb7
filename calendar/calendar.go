package calendar

import (
	"fmt"
	"sort"
	"time"

	"timelog/models"
)

// Source provides the three reads the monthly build depends on. Every
// method either succeeds completely or fails the whole build.
type Source interface {
	// EntriesBetween returns the owner's time entries with a date in
	// [first, last], at most one per date.
	EntriesBetween(ownerID uint, first, last time.Time) ([]models.TimeEntry, error)
	// HolidaysForYear returns holidays dated in the year plus all
	// recurring holidays.
	HolidaysForYear(year int) ([]models.PublicHoliday, error)
	// NonWorkingRules returns the owner's rules that can apply inside
	// [first, last]: specific dates in range, and weekly/monthly rules
	// whose validity window overlaps it.
	NonWorkingRules(ownerID uint, first, last time.Time) ([]models.EmployeeNonWorkingDay, error)
}

// Monthly is the resolved calendar of one month for one user. Built
// eagerly, read-only afterwards, never persisted.
type Monthly struct {
	Year  int
	Month time.Month
	Owner *models.User
	Days  []*Day
}

// New builds the calendar for (year, month, owner), loading all overlay
// data through src. Any failed read aborts the build; no partial
// calendar is ever returned.
func New(year int, month time.Month, owner *models.User, src Source) (*Monthly, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("invalid month %d", month)
	}

	c := &Monthly{Year: year, Month: month, Owner: owner}

	first := models.Date(year, month, 1)
	last := first.AddDate(0, 1, -1)

	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		c.Days = append(c.Days, newDay(d, owner, InMonth))
	}

	entries, err := src.EntriesBetween(owner.ID, first, last)
	if err != nil {
		return nil, fmt.Errorf("load time entries: %w", err)
	}
	entriesByDate := make(map[time.Time]*models.TimeEntry, len(entries))
	for i := range entries {
		entriesByDate[models.Midnight(entries[i].Date)] = &entries[i]
	}

	holidays, err := src.HolidaysForYear(year)
	if err != nil {
		return nil, fmt.Errorf("load holidays: %w", err)
	}
	holidaysByDate := make(map[time.Time]models.PublicHoliday)
	for _, h := range holidays {
		if h.IsRecurring {
			// A recurring holiday is considered only when its stored
			// month equals the requested month.
			if h.Date.Month() != month {
				continue
			}
			date := models.Date(year, h.Date.Month(), h.Date.Day())
			if !date.Before(first) && !date.After(last) {
				holidaysByDate[date] = h
			}
		} else {
			date := models.Midnight(h.Date)
			if !date.Before(first) && !date.After(last) {
				holidaysByDate[date] = h
			}
		}
	}

	rules, err := src.NonWorkingRules(owner.ID, first, last)
	if err != nil {
		return nil, fmt.Errorf("load non-working rules: %w", err)
	}
	sortRulesBySpecificity(rules)

	for _, day := range c.Days {
		if entry, ok := entriesByDate[day.Date]; ok {
			day.Entry = entry
		}
		if holiday, ok := holidaysByDate[day.Date]; ok {
			day.IsPublicHoliday = true
			day.HolidayName = holiday.Name
		}
		for i := range rules {
			if rules[i].AppliesTo(day.Date) {
				day.IsNonWorkingDay = true
				day.NonWorkingReason = rules[i].Reason
				break // one reason per day
			}
		}
	}

	return c, nil
}

// sortRulesBySpecificity orders overlapping rules by the tie-break
// policy: specific dates beat weekly recurrences beat monthly ones, and
// older rules beat newer ones. The first rule in this order that applies
// to a date supplies its reason.
func sortRulesBySpecificity(rules []models.EmployeeNonWorkingDay) {
	rank := func(p models.NonWorkingPattern) int {
		switch p {
		case models.PatternSpecific:
			return 0
		case models.PatternWeekly:
			return 1
		case models.PatternMonthly:
			return 2
		}
		return 3
	}
	sort.SliceStable(rules, func(i, j int) bool {
		ri, rj := rank(rules[i].Pattern), rank(rules[j].Pattern)
		if ri != rj {
			return ri < rj
		}
		return rules[i].ID < rules[j].ID
	})
}

var monthNames = [...]string{
	"", "Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember",
}

// MonthName is the German month label, matching the rest of the UI.
func (c *Monthly) MonthName() string {
	return monthNames[c.Month]
}

func (c *Monthly) Title() string {
	return fmt.Sprintf("%s %d", c.MonthName(), c.Year)
}

// PrevMonth returns the preceding (year, month), rolling over at January.
func (c *Monthly) PrevMonth() (int, time.Month) {
	if c.Month == time.January {
		return c.Year - 1, time.December
	}
	return c.Year, c.Month - 1
}

// NextMonth returns the following (year, month), rolling over at December.
func (c *Monthly) NextMonth() (int, time.Month) {
	if c.Month == time.December {
		return c.Year + 1, time.January
	}
	return c.Year, c.Month + 1
}

// Stats are the aggregate counters over the month's days.
type Stats struct {
	TotalDays      int `json:"total_days"`
	Workdays       int `json:"workdays"`
	EntriesCount   int `json:"entries_count"`
	MissingEntries int `json:"missing_entries"`
	Weekends       int `json:"weekends"`
	Holidays       int `json:"holidays"`
	NonWorkingDays int `json:"non_working_days"`
}

func (c *Monthly) Stats() Stats {
	s := Stats{TotalDays: len(c.Days)}
	for _, d := range c.Days {
		if d.IsWorkday() {
			s.Workdays++
		}
		if d.HasEntry() {
			s.EntriesCount++
		}
		if d.IsMissingEntry() {
			s.MissingEntries++
		}
		if d.IsWeekend {
			s.Weekends++
		}
		if d.IsPublicHoliday {
			s.Holidays++
		}
		if d.IsNonWorkingDay {
			s.NonWorkingDays++
		}
	}
	return s
}
