package handlers

import (
	"net/http"
	"time"

	"timelog/database"
	"timelog/middleware"
	"timelog/models"
)

// FuelReceiptHandler covers receipt submission by employees and the
// backoffice review workflow.
type FuelReceiptHandler struct{}

func NewFuelReceiptHandler() *FuelReceiptHandler {
	return &FuelReceiptHandler{}
}

type receiptPayload struct {
	VehicleID        uint     `json:"vehicle_id"`
	OdometerReading  int      `json:"odometer_reading"`
	ImageKey         string   `json:"image_key"`
	FuelAmountLiters *float64 `json:"fuel_amount_liters"`
	TotalCost        *float64 `json:"total_cost"`
	GasStation       string   `json:"gas_station"`
	FuelPurchaseDate *string  `json:"fuel_purchase_date"`
	Notes            string   `json:"notes"`
}

func (p *receiptPayload) apply(receipt *models.FuelReceipt) error {
	var purchaseDate *time.Time
	if p.FuelPurchaseDate != nil && *p.FuelPurchaseDate != "" {
		parsed, err := time.Parse("2006-01-02", *p.FuelPurchaseDate)
		if err != nil {
			return err
		}
		midnight := models.Midnight(parsed)
		purchaseDate = &midnight
	}

	receipt.VehicleID = p.VehicleID
	receipt.OdometerReading = p.OdometerReading
	receipt.ImageKey = p.ImageKey
	receipt.FuelAmountLiters = p.FuelAmountLiters
	receipt.TotalCost = p.TotalCost
	receipt.GasStation = p.GasStation
	receipt.FuelPurchaseDate = purchaseDate
	receipt.Notes = p.Notes
	return receipt.Validate()
}

// List returns the caller's own receipts; backoffice sees all of them
// and may filter by status.
func (h *FuelReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	query := database.GetDB().Preload("Vehicle").Preload("Employee").Preload("ApprovedBy")
	if !user.CanAdminister() {
		query = query.Where("employee_id = ?", user.ID)
	} else if status := r.URL.Query().Get("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var receipts []models.FuelReceipt
	if err := query.Order("created_at desc").Find(&receipts).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load receipts")
		return
	}
	respondJSON(w, http.StatusOK, receipts)
}

func (h *FuelReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var payload receiptPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if payload.VehicleID == 0 || payload.ImageKey == "" {
		respondError(w, http.StatusBadRequest, "vehicle_id and image_key are required")
		return
	}

	var vehicle models.Vehicle
	if err := database.GetDB().First(&vehicle, payload.VehicleID).Error; err != nil {
		respondError(w, http.StatusNotFound, "vehicle not found")
		return
	}

	receipt := models.FuelReceipt{
		EmployeeID: user.ID,
		Status:     models.ReceiptPending,
	}
	if err := payload.apply(&receipt); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := receipt.ValidateOdometer(database.GetDB()); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.GetDB().Create(&receipt).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to create receipt")
		return
	}
	respondJSON(w, http.StatusCreated, receipt)
}

// Update lets the submitting employee fix a receipt while it is still
// pending and inside the 24h edit window.
func (h *FuelReceiptHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid receipt id")
		return
	}

	var receipt models.FuelReceipt
	if err := database.GetDB().First(&receipt, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "receipt not found")
		return
	}

	if receipt.EmployeeID != user.ID && !user.CanAdminister() {
		respondError(w, http.StatusForbidden, "forbidden")
		return
	}
	if !receipt.CanBeEdited() {
		respondError(w, http.StatusConflict, "receipt can no longer be edited")
		return
	}

	var payload receiptPayload
	if err := decodeJSON(r, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := payload.apply(&receipt); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := receipt.ValidateOdometer(database.GetDB()); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := database.GetDB().Save(&receipt).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update receipt")
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

func (h *FuelReceiptHandler) Approve(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid receipt id")
		return
	}

	var receipt models.FuelReceipt
	if err := database.GetDB().First(&receipt, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "receipt not found")
		return
	}

	if err := receipt.Approve(user); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err := database.GetDB().Save(&receipt).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update receipt")
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *FuelReceiptHandler) Reject(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, ok := urlID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid receipt id")
		return
	}

	var req rejectRequest
	if err := decodeJSON(r, &req); err != nil || req.Reason == "" {
		respondError(w, http.StatusBadRequest, "a rejection reason is required")
		return
	}

	var receipt models.FuelReceipt
	if err := database.GetDB().First(&receipt, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "receipt not found")
		return
	}

	if err := receipt.Reject(user, req.Reason); err != nil {
		respondError(w, http.StatusConflict, err.Error())
		return
	}
	if err := database.GetDB().Save(&receipt).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "failed to update receipt")
		return
	}
	respondJSON(w, http.StatusOK, receipt)
}
