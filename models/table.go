package models

import "time"

const (
	TableAvailable = "available"
	TableOccupied  = "occupied"
)

type Table struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   *uint     `gorm:"index" json:"store_id,omitempty"`
	Name      string    `gorm:"type:varchar(50);not null;index" json:"name"`
	Status    string    `gorm:"type:varchar(20);not null;default:'available'" json:"status"`
	IsVIP     bool      `gorm:"not null;default:false" json:"is_vip"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
