package models

import "time"

// Attendance is a cast time card. Clock times are "HH:MM" strings; shifts
// routinely cross midnight, so durations are derived with a +24h wrap.
type Attendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoreID   *uint     `gorm:"index" json:"store_id,omitempty"`
	CastID    uint      `gorm:"not null;index" json:"cast_id"`
	Cast      Cast      `gorm:"foreignKey:CastID" json:"-"`
	Date      string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	ClockIn   string    `gorm:"type:varchar(5);not null" json:"clock_in"`    // HH:MM
	ClockOut  string    `gorm:"type:varchar(5)" json:"clock_out,omitempty"`
	Status    string    `gorm:"type:varchar(20);not null;default:'working'" json:"status"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
