package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"timelog/database"
	"timelog/models"
)

// AdminHandler serves the backoffice administration of holidays,
// per-employee non-working rules and the vehicle fleet.
type AdminHandler struct{}

func NewAdminHandler() *AdminHandler {
	return &AdminHandler{}
}

func urlID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// --- public holidays ---

type holidayPayload struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	IsRecurring bool   `json:"is_recurring"`
	Description string `json:"description"`
}

func (p *holidayPayload) apply(h *models.PublicHoliday) error {
	date, err := time.Parse("2006-01-02", p.Date)
	if err != nil {
		return err
	}
	h.Name = p.Name
	h.Date = models.Midnight(date)
	h.IsRecurring = p.IsRecurring
	h.Description = p.Description
	return nil
}

func (h *AdminHandler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	var holidays []models.PublicHoliday
	if err := database.GetDB().Order("date asc").Find(&holidays).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load holidays")
		return
	}
	respondJSON(w, http.StatusOK, holidays)
}

func (h *AdminHandler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var payload holidayPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	var holiday models.PublicHoliday
	if err := payload.apply(&holiday); err != nil {
		respondError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	if err := database.GetDB().Create(&holiday).Error; err != nil {
		respondError(w, http.StatusConflict, "failed to create holiday")
		return
	}
	respondJSON(w, http.StatusCreated, holiday)
}

func (h *AdminHandler) UpdateHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid holiday id")
		return
	}

	var holiday models.PublicHoliday
	if err := database.GetDB().First(&holiday, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "holiday not found")
		return
	}

	var payload holidayPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.apply(&holiday); err != nil {
		respondError(w, http.StatusBadRequest, "invalid date format")
		return
	}

	if err := database.GetDB().Save(&holiday).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update holiday")
		return
	}
	respondJSON(w, http.StatusOK, holiday)
}

func (h *AdminHandler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid holiday id")
		return
	}
	if err := database.GetDB().Delete(&models.PublicHoliday{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete holiday")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- employee non-working-day rules ---

type nonWorkingPayload struct {
	EmployeeID uint                     `json:"employee_id"`
	Pattern    models.NonWorkingPattern `json:"pattern"`
	Date       *string                  `json:"date"`
	Weekday    *int                     `json:"weekday"`
	DayOfMonth *int                     `json:"day_of_month"`
	ValidFrom  *string                  `json:"valid_from"`
	ValidUntil *string                  `json:"valid_until"`
	Reason     string                   `json:"reason"`
}

func parseDatePtr(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, err
	}
	midnight := models.Midnight(date)
	return &midnight, nil
}

func (p *nonWorkingPayload) apply(rule *models.EmployeeNonWorkingDay) error {
	date, err := parseDatePtr(p.Date)
	if err != nil {
		return err
	}
	validFrom, err := parseDatePtr(p.ValidFrom)
	if err != nil {
		return err
	}
	validUntil, err := parseDatePtr(p.ValidUntil)
	if err != nil {
		return err
	}

	rule.EmployeeID = p.EmployeeID
	rule.Pattern = p.Pattern
	rule.Date = date
	rule.Weekday = nil
	if p.Weekday != nil {
		wd := time.Weekday(*p.Weekday)
		rule.Weekday = &wd
	}
	rule.DayOfMonth = p.DayOfMonth
	rule.ValidFrom = validFrom
	rule.ValidUntil = validUntil
	rule.Reason = p.Reason
	return rule.Validate()
}

func (h *AdminHandler) ListNonWorkingDays(w http.ResponseWriter, r *http.Request) {
	query := database.GetDB().Preload("Employee")
	if uid := queryUint(r, "employee_id"); uid > 0 {
		query = query.Where("employee_id = ?", uid)
	}

	var rules []models.EmployeeNonWorkingDay
	if err := query.Order("employee_id asc, id asc").Find(&rules).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load rules")
		return
	}
	respondJSON(w, http.StatusOK, rules)
}

func (h *AdminHandler) CreateNonWorkingDay(w http.ResponseWriter, r *http.Request) {
	var payload nonWorkingPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.EmployeeID == 0 {
		respondError(w, http.StatusBadRequest, "employee_id is required")
		return
	}

	var rule models.EmployeeNonWorkingDay
	if err := payload.apply(&rule); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.GetDB().Create(&rule).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create rule")
		return
	}
	respondJSON(w, http.StatusCreated, rule)
}

func (h *AdminHandler) UpdateNonWorkingDay(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid rule id")
		return
	}

	var rule models.EmployeeNonWorkingDay
	if err := database.GetDB().First(&rule, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "rule not found")
		return
	}

	var payload nonWorkingPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.EmployeeID == 0 {
		payload.EmployeeID = rule.EmployeeID
	}
	if err := payload.apply(&rule); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.GetDB().Save(&rule).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update rule")
		return
	}
	respondJSON(w, http.StatusOK, rule)
}

func (h *AdminHandler) DeleteNonWorkingDay(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid rule id")
		return
	}
	if err := database.GetDB().Delete(&models.EmployeeNonWorkingDay{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete rule")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// --- vehicles ---

func (h *AdminHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	var vehicles []models.Vehicle
	if err := database.GetDB().Order("license_plate asc").Find(&vehicles).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load vehicles")
		return
	}
	respondJSON(w, http.StatusOK, vehicles)
}

func (h *AdminHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var vehicle models.Vehicle
	if err := decodeJSON(r, &vehicle); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := vehicle.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := database.GetDB().Create(&vehicle).Error; err != nil {
		respondError(w, http.StatusConflict, "failed to create vehicle")
		return
	}
	respondJSON(w, http.StatusCreated, vehicle)
}

func (h *AdminHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var vehicle models.Vehicle
	if err := database.GetDB().First(&vehicle, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "vehicle not found")
		return
	}

	var payload models.Vehicle
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	payload.ID = vehicle.ID
	payload.CreatedAt = vehicle.CreatedAt
	if err := payload.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.GetDB().Save(&payload).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update vehicle")
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

func (h *AdminHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}
	if err := database.GetDB().Delete(&models.Vehicle{}, id).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete vehicle")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
