package models

import "time"

type Staff struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StoreID      *uint     `gorm:"index" json:"store_id,omitempty"`
	Name         string    `gorm:"type:varchar(100);not null;index" json:"name"`
	Role         string    `gorm:"type:varchar(50);not null" json:"role"` // waiter, kitchen, manager, catch, driver, other
	SalaryType   string    `gorm:"type:varchar(20);not null;default:'hourly'" json:"salary_type"` // hourly, daily, monthly
	SalaryAmount int       `gorm:"not null;default:1000" json:"salary_amount"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	IsActive     bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
