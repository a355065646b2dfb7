package calendar

import (
	"time"

	"gorm.io/gorm"

	"timelog/models"
)

// DBSource implements Source against the application database.
type DBSource struct {
	db *gorm.DB
}

func NewDBSource(db *gorm.DB) *DBSource {
	return &DBSource{db: db}
}

func (s *DBSource) EntriesBetween(ownerID uint, first, last time.Time) ([]models.TimeEntry, error) {
	var entries []models.TimeEntry
	err := s.db.
		Where("user_id = ? AND date >= ? AND date <= ?", ownerID, first, last).
		Order("date asc").
		Find(&entries).Error
	return entries, err
}

func (s *DBSource) HolidaysForYear(year int) ([]models.PublicHoliday, error) {
	return models.HolidaysForYear(s.db, year)
}

func (s *DBSource) NonWorkingRules(ownerID uint, first, last time.Time) ([]models.EmployeeNonWorkingDay, error) {
	specific := s.db.
		Where("pattern = ?", models.PatternSpecific).
		Where("date >= ? AND date <= ?", first, last)
	recurring := s.db.
		Where("pattern IN ?", []models.NonWorkingPattern{models.PatternWeekly, models.PatternMonthly}).
		Where("valid_from IS NULL OR valid_from <= ?", last).
		Where("valid_until IS NULL OR valid_until >= ?", first)

	var rules []models.EmployeeNonWorkingDay
	err := s.db.
		Where("employee_id = ?", ownerID).
		Where(specific.Or(recurring)).
		Order("id asc").
		Find(&rules).Error
	return rules, err
}
