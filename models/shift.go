package models

import "time"

type Shift struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   *uint     `gorm:"index" json:"store_id,omitempty"`
	CastID    uint      `gorm:"not null;index" json:"cast_id"`
	Cast      Cast      `gorm:"foreignKey:CastID" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"`
	StartTime string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime   string    `gorm:"type:varchar(5);not null" json:"end_time"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
