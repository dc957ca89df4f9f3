package models

import "time"

type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StoreID     *uint     `gorm:"index" json:"store_id,omitempty"`
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`
	Category    string    `gorm:"type:varchar(50);not null;index" json:"category"`
	Price       int       `gorm:"not null" json:"price"`
	Cost        int       `gorm:"not null;default:0" json:"cost"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Stock       *int      `json:"stock,omitempty"`
	Premium     bool      `gorm:"not null;default:false" json:"premium"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
