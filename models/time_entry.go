package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type PollutionLevel int

const (
	PollutionLow    PollutionLevel = 1
	PollutionMedium PollutionLevel = 2
	PollutionHigh   PollutionLevel = 3
)

func (p PollutionLevel) String() string {
	switch p {
	case PollutionLow:
		return "Niedrig"
	case PollutionMedium:
		return "Mittel"
	case PollutionHigh:
		return "Hoch"
	}
	return "Unbekannt"
}

// TimeEntry is one recorded work session. At most one entry exists per
// (user, date), enforced by the composite unique index.
type TimeEntry struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
	UserID            uint           `gorm:"not null;uniqueIndex:idx_entries_user_date" json:"user_id"`
	User              User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date              time.Time      `gorm:"not null;type:date;uniqueIndex:idx_entries_user_date" json:"date"`
	StartTime         time.Time      `gorm:"not null;type:time" json:"start_time"`
	EndTime           time.Time      `gorm:"not null;type:time" json:"end_time"`
	LunchBreakMinutes int            `gorm:"not null;default:0" json:"lunch_break_minutes"`
	PollutionLevel    PollutionLevel `gorm:"not null;default:1" json:"pollution_level"`
	Notes             string         `gorm:"size:1000" json:"notes"`
	CreatedByID       uint           `gorm:"not null" json:"created_by_id"`
	UpdatedByID       uint           `gorm:"not null" json:"updated_by_id"`
	Usage             *VehicleUsage  `gorm:"foreignKey:TimeEntryID" json:"usage,omitempty"`
}

type TimeEntryFilter struct {
	UserID uint
	Month  int
	Year   int
}

// IsOvernight reports whether this entry looks like a night shift:
// starting in the evening and ending before noon of the next day.
func (e *TimeEntry) IsOvernight() bool {
	return e.StartTime.Hour() >= 18 && e.EndTime.Hour() <= 12
}

// TotalWorkMinutes is the worked time excluding the lunch break.
// An end time at or before the start time is treated as ending on the
// following day.
func (e *TimeEntry) TotalWorkMinutes() int {
	start := e.StartTime.Hour()*60 + e.StartTime.Minute()
	end := e.EndTime.Hour()*60 + e.EndTime.Minute()
	if end <= start {
		end += 24 * 60
	}
	minutes := end - start - e.LunchBreakMinutes
	if minutes < 0 {
		return 0
	}
	return minutes
}

func (e *TimeEntry) TotalWorkHours() float64 {
	return float64(e.TotalWorkMinutes()) / 60
}

func (e *TimeEntry) Validate() error {
	start := e.StartTime.Hour()*60 + e.StartTime.Minute()
	end := e.EndTime.Hour()*60 + e.EndTime.Minute()
	if end <= start && !e.IsOvernight() {
		return fmt.Errorf("end time must be after start time")
	}
	if e.LunchBreakMinutes < 0 {
		return fmt.Errorf("lunch break cannot be negative")
	}
	if e.Date.After(Midnight(time.Now())) {
		return fmt.Errorf("date cannot be in the future")
	}
	return nil
}

// ParseClock parses an "HH:MM" clock time as used by the entry forms.
func ParseClock(s string) (time.Time, error) {
	return time.Parse("15:04", s)
}
