package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type ReceiptStatus string

const (
	ReceiptPending  ReceiptStatus = "pending"
	ReceiptApproved ReceiptStatus = "approved"
	ReceiptRejected ReceiptStatus = "rejected"
)

// Receipts must be handed in within this many days of refuelling, and may
// only be edited within this window after upload while still pending.
const (
	receiptMaxAgeDays  = 30
	receiptEditWindow  = 24 * time.Hour
	maxOdometerReading = 9999999
)

// FuelReceipt is a fuel purchase submitted by an employee for a company
// vehicle. The receipt image itself lives in object storage; only its key
// is kept here.
type FuelReceipt struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	VehicleID        uint          `gorm:"not null;index" json:"vehicle_id"`
	Vehicle          Vehicle       `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	EmployeeID       uint          `gorm:"not null;index" json:"employee_id"`
	Employee         User          `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	OdometerReading  int           `gorm:"not null" json:"odometer_reading"`
	ImageKey         string        `gorm:"not null;size:500" json:"image_key"`
	FuelAmountLiters *float64      `json:"fuel_amount_liters,omitempty"`
	TotalCost        *float64      `json:"total_cost,omitempty"`
	GasStation       string        `gorm:"size:100" json:"gas_station"`
	FuelPurchaseDate *time.Time    `gorm:"type:date" json:"fuel_purchase_date,omitempty"`
	Notes            string        `gorm:"size:1000" json:"notes"`
	Status           ReceiptStatus `gorm:"not null;size:20;default:pending" json:"status"`
	ApprovedByID     *uint         `json:"approved_by_id,omitempty"`
	ApprovedBy       *User         `gorm:"foreignKey:ApprovedByID" json:"approved_by,omitempty"`
	RejectionReason  string        `gorm:"size:1000" json:"rejection_reason"`
}

func (r *FuelReceipt) Validate() error {
	if r.OdometerReading <= 0 || r.OdometerReading > maxOdometerReading {
		return fmt.Errorf("odometer reading looks implausible")
	}
	if r.FuelAmountLiters != nil && *r.FuelAmountLiters < 0 {
		return fmt.Errorf("fuel amount must be positive")
	}
	if r.TotalCost != nil && *r.TotalCost < 0 {
		return fmt.Errorf("total cost must be positive")
	}
	if r.FuelPurchaseDate != nil {
		today := Midnight(time.Now())
		purchase := Midnight(*r.FuelPurchaseDate)
		if purchase.After(today) {
			return fmt.Errorf("purchase date cannot be in the future")
		}
		if today.Sub(purchase) > receiptMaxAgeDays*24*time.Hour {
			return fmt.Errorf("purchase date is more than %d days old, receipts must be handed in promptly", receiptMaxAgeDays)
		}
	}
	return nil
}

// ValidateOdometer enforces that readings per vehicle never decrease.
func (r *FuelReceipt) ValidateOdometer(db *gorm.DB) error {
	var latest FuelReceipt
	err := db.
		Where("vehicle_id = ? AND id <> ?", r.VehicleID, r.ID).
		Order("odometer_reading desc").
		First(&latest).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}
	if r.OdometerReading < latest.OdometerReading {
		return fmt.Errorf("odometer reading (%dkm) must not be lower than the latest recorded reading (%dkm)",
			r.OdometerReading, latest.OdometerReading)
	}
	return nil
}

// CanBeEdited reports whether the submitting employee may still change
// the receipt: only while pending and within 24 hours of upload.
func (r *FuelReceipt) CanBeEdited() bool {
	if r.Status != ReceiptPending {
		return false
	}
	return time.Since(r.CreatedAt) < receiptEditWindow
}

func (r *FuelReceipt) DaysSinceUpload() int {
	return int(time.Since(r.CreatedAt).Hours() / 24)
}

func (r *FuelReceipt) Approve(by *User) error {
	if r.Status == ReceiptApproved {
		return fmt.Errorf("receipt is already approved")
	}
	r.Status = ReceiptApproved
	r.ApprovedByID = &by.ID
	r.RejectionReason = ""
	return nil
}

func (r *FuelReceipt) Reject(by *User, reason string) error {
	if r.Status == ReceiptApproved {
		return fmt.Errorf("approved receipts cannot be rejected")
	}
	r.Status = ReceiptRejected
	r.ApprovedByID = &by.ID
	r.RejectionReason = reason
	return nil
}
