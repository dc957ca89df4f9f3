package models

import "time"

const (
	StoreActive    = "active"
	StoreExpired   = "expired"
	StoreSuspended = "suspended"
)

// Store is one licensed venue. All other entities optionally reference a
// store; rows without a store id belong to single-tenant legacy mode.
type Store struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null;index" json:"name"`
	LicenseKey     string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_key"`
	Username       *string   `gorm:"type:varchar(100);uniqueIndex" json:"username,omitempty"`
	HashedPassword string    `gorm:"type:varchar(255)" json:"-"`
	ManagerPIN     string    `gorm:"type:varchar(20)" json:"-"`
	StaffPIN       string    `gorm:"type:varchar(20)" json:"-"`
	ExpiresAt      time.Time `gorm:"not null" json:"expires_at"`
	Status         string    `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Plan           string    `gorm:"type:varchar(20);not null;default:'standard'" json:"plan"`
	MonthlyFee     int       `gorm:"not null;default:30000" json:"monthly_fee"`
	OwnerName      string    `gorm:"type:varchar(100)" json:"owner_name,omitempty"`
	Phone          string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Email          string    `gorm:"type:varchar(255)" json:"email,omitempty"`
	Address        string    `gorm:"type:varchar(255)" json:"address,omitempty"`
	Notes          string    `gorm:"type:text" json:"notes,omitempty"`

	// Business-day boundary. The minute fields are authoritative, the hour
	// fields are kept in sync for older clients.
	BusinessStartHour    int `gorm:"not null;default:18" json:"business_start_hour"`
	BusinessEndHour      int `gorm:"not null;default:6" json:"business_end_hour"`
	BusinessStartMinutes int `gorm:"not null;default:1080" json:"business_start_minutes"`
	BusinessEndMinutes   int `gorm:"not null;default:360" json:"business_end_minutes"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
