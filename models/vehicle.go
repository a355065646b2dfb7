package models

import (
	"fmt"
	"strings"
	"time"
)

type FuelType string

const (
	FuelPetrol   FuelType = "petrol"
	FuelDiesel   FuelType = "diesel"
	FuelElectric FuelType = "electric"
	FuelHybrid   FuelType = "hybrid"
	FuelOther    FuelType = "other"
)

// Vehicle is a company vehicle available for employee use.
type Vehicle struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LicensePlate string    `gorm:"uniqueIndex;not null;size:20" json:"license_plate"`
	Make         string    `gorm:"not null;size:50" json:"make"`
	Model        string    `gorm:"not null;size:50" json:"model"`
	Year         int       `gorm:"not null" json:"year"`
	Color        string    `gorm:"size:30" json:"color"`
	FuelType     FuelType  `gorm:"not null;size:20;default:petrol" json:"fuel_type"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`
	Notes        string    `gorm:"size:1000" json:"notes"`
}

func (v *Vehicle) Label() string {
	return fmt.Sprintf("%s (%s %s)", v.LicensePlate, v.Make, v.Model)
}

// Validate checks the vehicle data and normalizes the license plate
// (uppercase, no spaces).
func (v *Vehicle) Validate() error {
	v.LicensePlate = strings.ToUpper(strings.ReplaceAll(v.LicensePlate, " ", ""))
	if v.LicensePlate == "" {
		return fmt.Errorf("license plate is required")
	}
	if v.Year < 1900 {
		return fmt.Errorf("year must be after 1900")
	}
	if v.Year > time.Now().Year()+1 {
		return fmt.Errorf("year cannot be in the future")
	}
	return nil
}

// maxDailyDistanceKm flags implausible mileage input.
const maxDailyDistanceKm = 500

// VehicleUsage records mileage for the vehicle used on one work day,
// linked one-to-one with the day's time entry.
type VehicleUsage struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	TimeEntryID     uint       `gorm:"not null;uniqueIndex" json:"time_entry_id"`
	VehicleID       *uint      `gorm:"index" json:"vehicle_id"`
	Vehicle         *Vehicle   `gorm:"foreignKey:VehicleID" json:"vehicle,omitempty"`
	StartKilometers *int       `json:"start_kilometers,omitempty"`
	EndKilometers   *int       `json:"end_kilometers,omitempty"`
	NoVehicleUsed   bool       `gorm:"default:false" json:"no_vehicle_used"`
	Notes           string     `gorm:"size:1000" json:"notes"`
}

// DailyDistance is the kilometers driven, zero when incomplete or no
// vehicle was used.
func (u *VehicleUsage) DailyDistance() int {
	if u.NoVehicleUsed || u.StartKilometers == nil || u.EndKilometers == nil {
		return 0
	}
	d := *u.EndKilometers - *u.StartKilometers
	if d < 0 {
		return 0
	}
	return d
}

// Validate checks mileage consistency. When no vehicle was used, all
// vehicle fields are cleared.
func (u *VehicleUsage) Validate() error {
	if u.NoVehicleUsed {
		u.VehicleID = nil
		u.Vehicle = nil
		u.StartKilometers = nil
		u.EndKilometers = nil
		return nil
	}

	if u.VehicleID != nil && (u.StartKilometers == nil || u.EndKilometers == nil) {
		return fmt.Errorf("start and end kilometers are required when a vehicle is used")
	}
	if u.StartKilometers != nil && u.EndKilometers != nil && *u.EndKilometers < *u.StartKilometers {
		return fmt.Errorf("end kilometers must not be lower than start kilometers")
	}
	if u.DailyDistance() > maxDailyDistanceKm {
		return fmt.Errorf("daily distance of %dkm looks implausible, please check the input", u.DailyDistance())
	}
	return nil
}
