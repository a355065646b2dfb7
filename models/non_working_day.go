package models

import (
	"fmt"
	"time"
)

type NonWorkingPattern string

const (
	PatternSpecific NonWorkingPattern = "specific"
	PatternWeekly   NonWorkingPattern = "weekly"
	PatternMonthly  NonWorkingPattern = "monthly"
)

// EmployeeNonWorkingDay marks days a single employee is not expected to
// work, beyond weekends and public holidays. Depending on the pattern it
// is a one-off date, a weekly recurrence, or a day-of-month recurrence,
// optionally bounded by a validity window.
type EmployeeNonWorkingDay struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
	EmployeeID uint              `gorm:"not null;index" json:"employee_id"`
	Employee   User              `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Pattern    NonWorkingPattern `gorm:"not null;size:20;default:specific" json:"pattern"`
	Date       *time.Time        `gorm:"type:date" json:"date,omitempty"`
	Weekday    *time.Weekday     `json:"weekday,omitempty"`
	DayOfMonth *int              `json:"day_of_month,omitempty"`
	ValidFrom  *time.Time        `gorm:"type:date" json:"valid_from,omitempty"`
	ValidUntil *time.Time        `gorm:"type:date" json:"valid_until,omitempty"`
	Reason     string            `gorm:"size:200" json:"reason"`
}

// AppliesTo reports whether the rule covers the given date. The validity
// window is checked first; bounds are inclusive and either may be open.
func (r *EmployeeNonWorkingDay) AppliesTo(date time.Time) bool {
	if r.ValidFrom != nil && Midnight(date).Before(Midnight(*r.ValidFrom)) {
		return false
	}
	if r.ValidUntil != nil && Midnight(date).After(Midnight(*r.ValidUntil)) {
		return false
	}

	switch r.Pattern {
	case PatternSpecific:
		return r.Date != nil && SameDate(*r.Date, date)
	case PatternWeekly:
		return r.Weekday != nil && date.Weekday() == *r.Weekday
	case PatternMonthly:
		return r.DayOfMonth != nil && date.Day() == *r.DayOfMonth
	}
	return false
}

func (r *EmployeeNonWorkingDay) Validate() error {
	switch r.Pattern {
	case PatternSpecific:
		if r.Date == nil {
			return fmt.Errorf("date is required for specific-date rules")
		}
	case PatternWeekly:
		if r.Weekday == nil {
			return fmt.Errorf("weekday is required for weekly rules")
		}
	case PatternMonthly:
		if r.DayOfMonth == nil {
			return fmt.Errorf("day of month is required for monthly rules")
		}
	default:
		return fmt.Errorf("unknown pattern %q", r.Pattern)
	}

	if r.DayOfMonth != nil && (*r.DayOfMonth < 1 || *r.DayOfMonth > 31) {
		return fmt.Errorf("day of month must be between 1 and 31")
	}
	if r.ValidFrom != nil && r.ValidUntil != nil && r.ValidFrom.After(*r.ValidUntil) {
		return fmt.Errorf("valid_until must not precede valid_from")
	}
	return nil
}
