package handlers

import (
	"net/http"
	"time"

	"timelog/calendar"
	"timelog/database"
	"timelog/middleware"
	"timelog/models"
)

type CalendarHandler struct{}

func NewCalendarHandler() *CalendarHandler {
	return &CalendarHandler{}
}

type calendarDayResponse struct {
	Date             string             `json:"date"`
	Weekday          string             `json:"weekday"`
	InMonth          bool               `json:"in_month"`
	IsWeekend        bool               `json:"is_weekend"`
	IsPublicHoliday  bool               `json:"is_public_holiday"`
	HolidayName      string             `json:"holiday_name,omitempty"`
	IsNonWorkingDay  bool               `json:"is_non_working_day"`
	NonWorkingReason string             `json:"non_working_reason,omitempty"`
	IsWorkday        bool               `json:"is_workday"`
	HasEntry         bool               `json:"has_entry"`
	IsMissingEntry   bool               `json:"is_missing_entry"`
	StatusClass      string             `json:"status_class"`
	DisplayInfo      string             `json:"display_info,omitempty"`
	Entry            *models.TimeEntry `json:"entry,omitempty"`
}

type monthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type calendarResponse struct {
	Title     string                  `json:"title"`
	Year      int                     `json:"year"`
	Month     int                     `json:"month"`
	Owner     string                  `json:"owner"`
	PrevMonth monthRef                `json:"prev_month"`
	NextMonth monthRef                `json:"next_month"`
	Stats     calendar.Stats          `json:"stats"`
	Weeks     [][]calendarDayResponse `json:"weeks"`
}

func toDayResponse(d *calendar.Day) calendarDayResponse {
	return calendarDayResponse{
		Date:             d.Date.Format("2006-01-02"),
		Weekday:          d.Date.Weekday().String(),
		InMonth:          d.Origin == calendar.InMonth,
		IsWeekend:        d.IsWeekend,
		IsPublicHoliday:  d.IsPublicHoliday,
		HolidayName:      d.HolidayName,
		IsNonWorkingDay:  d.IsNonWorkingDay,
		NonWorkingReason: d.NonWorkingReason,
		IsWorkday:        d.IsWorkday(),
		HasEntry:         d.HasEntry(),
		IsMissingEntry:   d.IsMissingEntry(),
		StatusClass:      d.StatusClass(),
		DisplayInfo:      d.DisplayInfo(),
		Entry:            d.Entry,
	}
}

// Month serves the monthly attendance calendar. Employees always get
// their own; backoffice may request any user via user_id.
func (h *CalendarHandler) Month(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	now := time.Now()
	year := queryInt(r, "year", now.Year())
	month := queryInt(r, "month", int(now.Month()))
	if month < 1 || month > 12 {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	owner := user
	if uid := queryUint(r, "user_id"); uid > 0 && uid != user.ID {
		if !user.CanViewAllEntries() {
			respondError(w, http.StatusForbidden, "forbidden")
			return
		}
		var other models.User
		if err := database.GetDB().First(&other, uid).Error; err != nil {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		owner = &other
	}

	cal, err := calendar.New(year, time.Month(month), owner, calendar.NewDBSource(database.GetDB()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to build calendar")
		return
	}

	prevYear, prevMonth := cal.PrevMonth()
	nextYear, nextMonth := cal.NextMonth()

	weeks := cal.Weeks()
	weekRows := make([][]calendarDayResponse, 0, len(weeks))
	for _, week := range weeks {
		row := make([]calendarDayResponse, 0, len(week))
		for _, day := range week {
			row = append(row, toDayResponse(day))
		}
		weekRows = append(weekRows, row)
	}

	respondJSON(w, http.StatusOK, calendarResponse{
		Title:     cal.Title(),
		Year:      cal.Year,
		Month:     int(cal.Month),
		Owner:     owner.DisplayName(),
		PrevMonth: monthRef{Year: prevYear, Month: int(prevMonth)},
		NextMonth: monthRef{Year: nextYear, Month: int(nextMonth)},
		Stats:     cal.Stats(),
		Weeks:     weekRows,
	})
}
