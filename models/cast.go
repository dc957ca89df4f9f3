package models

import "time"

// Cast is a hostess identified by her stage name. The stage name is the
// join key for all commission attribution, so it must stay unique per store.
type Cast struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StoreID       *uint     `gorm:"index" json:"store_id,omitempty"`
	StageName     string    `gorm:"type:varchar(100);not null;index" json:"stage_name"`
	Rank          string    `gorm:"type:varchar(50);not null;default:'regular'" json:"rank"`
	SalaryType    string    `gorm:"type:varchar(20);not null;default:'hourly'" json:"salary_type"` // hourly or monthly
	HourlyRate    int       `gorm:"not null;default:0" json:"hourly_rate"`
	MonthlySalary int       `gorm:"not null;default:0" json:"monthly_salary"`
	DrinkBackRate int       `gorm:"not null;default:10" json:"drink_back_rate"` // % of drink-flagged order value
	CompanionBack int       `gorm:"not null;default:3000" json:"companion_back"`
	NominationBack int      `gorm:"not null;default:1000" json:"nomination_back"`
	SalesBackRate int       `gorm:"not null;default:0" json:"sales_back_rate"` // % of attributed session revenue
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null" json:"updated_at"`
}
