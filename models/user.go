package models

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleEmployee   Role = "employee"
	RoleBackoffice Role = "backoffice"
)

type User struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
	Username         string         `gorm:"uniqueIndex;not null;size:100" json:"username"`
	FullName         string         `gorm:"not null;size:200" json:"full_name"`
	Email            string         `gorm:"size:200" json:"email"`
	PasswordHash     string         `gorm:"not null" json:"-"`
	Role             Role           `gorm:"not null;size:20;default:employee" json:"role"`
	IsInvited        bool           `gorm:"default:false" json:"is_invited"`
	FirstLoginToken  string         `gorm:"size:64;index" json:"-"`
	MustSetPassword  bool           `gorm:"default:false" json:"must_set_password"`
	DefaultVehicleID *uint          `gorm:"index" json:"default_vehicle_id"`
	DefaultVehicle   *Vehicle       `gorm:"foreignKey:DefaultVehicleID" json:"default_vehicle,omitempty"`
	TimeEntries      []TimeEntry    `gorm:"foreignKey:UserID" json:"time_entries,omitempty"`
}

func (u *User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

func (u *User) IsBackoffice() bool {
	return u.Role == RoleBackoffice
}

func (u *User) IsEmployee() bool {
	return u.Role == RoleEmployee
}

func (u *User) CanManageEntriesFor(userID uint) bool {
	if u.IsBackoffice() {
		return true
	}
	return u.ID == userID
}

func (u *User) CanViewAllEntries() bool {
	return u.IsBackoffice()
}

func (u *User) CanExport() bool {
	return u.IsBackoffice()
}

func (u *User) CanAdminister() bool {
	return u.IsBackoffice()
}

// GenerateFirstLoginToken creates the one-time token handed to invited
// employees so they can set their initial password.
func GenerateFirstLoginToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
