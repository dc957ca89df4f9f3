package models

import "time"

// StaffAttendance records one working day for support staff. HoursWorked and
// DailyWage are computed once at clock-out and never recomputed.
type StaffAttendance struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StoreID     *uint     `gorm:"index" json:"store_id,omitempty"`
	StaffID     uint      `gorm:"not null;index" json:"staff_id"`
	Staff       Staff     `gorm:"foreignKey:StaffID" json:"-"`
	Date        string    `gorm:"type:varchar(10);not null;index" json:"date"` // YYYY-MM-DD
	ClockIn     string    `gorm:"type:varchar(5);not null" json:"clock_in"`
	ClockOut    string    `gorm:"type:varchar(5)" json:"clock_out,omitempty"`
	HoursWorked float64   `gorm:"not null;default:0" json:"hours_worked"`
	DailyWage   int       `gorm:"not null;default:0" json:"daily_wage"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}
