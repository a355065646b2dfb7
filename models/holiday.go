package models

import (
	"time"

	"gorm.io/gorm"
)

// PublicHoliday exempts all users from workday status on its date.
// Recurring holidays repeat every year on the same month and day.
type PublicHoliday struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Name        string    `gorm:"not null;size:100;uniqueIndex:idx_holiday_name_date" json:"name"`
	Date        time.Time `gorm:"not null;type:date;uniqueIndex:idx_holiday_name_date" json:"date"`
	IsRecurring bool      `gorm:"default:false" json:"is_recurring"`
	Description string    `gorm:"size:1000" json:"description"`
}

// AppliesTo reports whether the holiday falls on the given date.
// Recurring holidays match on month and day in any year.
func (h *PublicHoliday) AppliesTo(date time.Time) bool {
	if h.IsRecurring {
		return h.Date.Month() == date.Month() && h.Date.Day() == date.Day()
	}
	return SameDate(h.Date, date)
}

// HolidaysForYear returns the holidays relevant to a year: rows dated in
// that year plus every recurring row regardless of its stored year.
func HolidaysForYear(db *gorm.DB, year int) ([]PublicHoliday, error) {
	var holidays []PublicHoliday
	err := db.
		Where("EXTRACT(YEAR FROM date) = ? OR is_recurring = ?", year, true).
		Order("date asc").
		Find(&holidays).Error
	return holidays, err
}
