package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"timelog/database"
	"timelog/middleware"
	"timelog/models"
)

type TimeEntryHandler struct{}

func NewTimeEntryHandler() *TimeEntryHandler {
	return &TimeEntryHandler{}
}

type usagePayload struct {
	VehicleID       *uint  `json:"vehicle_id"`
	StartKilometers *int   `json:"start_kilometers"`
	EndKilometers   *int   `json:"end_kilometers"`
	NoVehicleUsed   bool   `json:"no_vehicle_used"`
	Notes           string `json:"notes"`
}

type entryPayload struct {
	UserID            uint                  `json:"user_id"`
	Date              string                `json:"date"`
	StartTime         string                `json:"start_time"`
	EndTime           string                `json:"end_time"`
	LunchBreakMinutes int                   `json:"lunch_break_minutes"`
	PollutionLevel    models.PollutionLevel `json:"pollution_level"`
	Notes             string                `json:"notes"`
	Usage             *usagePayload         `json:"usage"`
}

func (p *entryPayload) toEntry(actor *models.User) (*models.TimeEntry, error) {
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date format")
	}
	start, err := models.ParseClock(p.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time")
	}
	end, err := models.ParseClock(p.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time")
	}

	targetUserID := actor.ID
	if p.UserID != 0 && actor.IsBackoffice() {
		targetUserID = p.UserID
	}

	if p.PollutionLevel == 0 {
		p.PollutionLevel = models.PollutionLow
	}
	if p.PollutionLevel < models.PollutionLow || p.PollutionLevel > models.PollutionHigh {
		return nil, fmt.Errorf("invalid pollution level")
	}

	entry := &models.TimeEntry{
		UserID:            targetUserID,
		Date:              models.Midnight(date),
		StartTime:         start,
		EndTime:           end,
		LunchBreakMinutes: p.LunchBreakMinutes,
		PollutionLevel:    p.PollutionLevel,
		Notes:             p.Notes,
		CreatedByID:       actor.ID,
		UpdatedByID:       actor.ID,
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if p.Usage != nil {
		usage := &models.VehicleUsage{
			VehicleID:       p.Usage.VehicleID,
			StartKilometers: p.Usage.StartKilometers,
			EndKilometers:   p.Usage.EndKilometers,
			NoVehicleUsed:   p.Usage.NoVehicleUsed,
			Notes:           p.Usage.Notes,
		}
		if err := usage.Validate(); err != nil {
			return nil, err
		}
		entry.Usage = usage
	}

	return entry, nil
}

// List returns entries visible to the caller, newest first, optionally
// filtered by user, month and year.
func (h *TimeEntryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := database.GetDB().Preload("User").Preload("Usage").Preload("Usage.Vehicle")
	if !user.CanViewAllEntries() {
		query = query.Where("user_id = ?", user.ID)
	} else if uid := queryUint(r, "user_id"); uid > 0 {
		query = query.Where("user_id = ?", uid)
	}

	month := queryInt(r, "month", 0)
	year := queryInt(r, "year", 0)
	if month >= 1 && month <= 12 && year > 0 {
		start := models.Date(year, time.Month(month), 1)
		end := start.AddDate(0, 1, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	} else if year > 0 {
		start := models.Date(year, time.January, 1)
		end := start.AddDate(1, 0, 0)
		query = query.Where("date >= ? AND date < ?", start, end)
	}

	var entries []models.TimeEntry
	if err := query.Order("date desc").Limit(100).Find(&entries).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load entries")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *TimeEntryHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var payload entryPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := payload.toEntry(user)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if !user.CanManageEntriesFor(entry.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := database.GetDB().Create(entry).Error; err != nil {
		respondError(w, http.StatusConflict, "failed to create entry, one entry per user and date")
		return
	}

	respondJSON(w, http.StatusCreated, entry)
}

func (h *TimeEntryHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	var entry models.TimeEntry
	if err := database.GetDB().Preload("Usage").First(&entry, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}

	if !user.CanManageEntriesFor(entry.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	var payload entryPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := payload.toEntry(user)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	entry.Date = updated.Date
	entry.StartTime = updated.StartTime
	entry.EndTime = updated.EndTime
	entry.LunchBreakMinutes = updated.LunchBreakMinutes
	entry.PollutionLevel = updated.PollutionLevel
	entry.Notes = updated.Notes
	entry.UpdatedByID = user.ID

	if updated.Usage != nil {
		if entry.Usage != nil {
			updated.Usage.ID = entry.Usage.ID
			updated.Usage.TimeEntryID = entry.ID
		}
		entry.Usage = updated.Usage
	}

	if err := database.GetDB().Session(&gorm.Session{FullSaveAssociations: true}).Save(&entry).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update entry")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

func (h *TimeEntryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid entry id")
		return
	}

	var entry models.TimeEntry
	if err := database.GetDB().First(&entry, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}

	if !user.CanManageEntriesFor(entry.UserID) {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	if err := database.GetDB().Delete(&entry).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ExportCSV streams one month of entries for all users, backoffice only.
func (h *TimeEntryHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanExport() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	month := queryInt(r, "month", 0)
	if month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}
	year := queryInt(r, "year", 0)
	if year < 2000 || year > 2100 {
		respondError(w, http.StatusBadRequest, "invalid year")
		return
	}

	start := models.Date(year, time.Month(month), 1)
	end := start.AddDate(0, 1, 0)

	var entries []models.TimeEntry
	err := database.GetDB().
		Preload("User").Preload("Usage").Preload("Usage.Vehicle").
		Where("date >= ? AND date < ?", start, end).
		Order("date asc, user_id asc").
		Find(&entries).Error
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load entries")
		return
	}

	filename := fmt.Sprintf("timelog_%d_%02d.csv", year, month)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	writer := csv.NewWriter(w)
	defer writer.Flush()

	writer.Write([]string{"Employee", "Date", "Start", "End", "Break (min)", "Hours", "Pollution", "Vehicle", "Distance (km)", "Notes"})

	for _, entry := range entries {
		vehicle := ""
		distance := ""
		if entry.Usage != nil && entry.Usage.Vehicle != nil {
			vehicle = entry.Usage.Vehicle.LicensePlate
			distance = strconv.Itoa(entry.Usage.DailyDistance())
		}
		writer.Write([]string{
			entry.User.DisplayName(),
			entry.Date.Format("2006-01-02"),
			entry.StartTime.Format("15:04"),
			entry.EndTime.Format("15:04"),
			strconv.Itoa(entry.LunchBreakMinutes),
			fmt.Sprintf("%.2f", entry.TotalWorkHours()),
			entry.PollutionLevel.String(),
			vehicle,
			distance,
			entry.Notes,
		})
	}
}
