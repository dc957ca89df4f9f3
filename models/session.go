package models

import "time"

const (
	SessionActive    = "active"
	SessionCompleted = "completed"
)

// Session is one seated guest party at a table, from check-in to checkout.
// CurrentTotal accumulates every order and ad-hoc charge in integer yen.
type Session struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	StoreID        *uint      `gorm:"index" json:"store_id,omitempty"`
	TableID        uint       `gorm:"not null;index" json:"table_id"`
	Table          Table      `gorm:"foreignKey:TableID" json:"-"`
	CastID         *uint      `gorm:"index" json:"cast_id,omitempty"`
	Cast           *Cast      `gorm:"foreignKey:CastID" json:"cast,omitempty"`
	Guests         int        `gorm:"not null;default:1" json:"guests"`
	CatchStaff     string     `gorm:"type:varchar(100)" json:"catch_staff,omitempty"`
	StartTime      time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime        *time.Time `json:"end_time,omitempty"`
	CurrentTotal   int        `gorm:"not null;default:0" json:"current_total"`
	HasCompanion   bool       `gorm:"not null;default:false" json:"has_companion"`
	CompanionName  string     `gorm:"type:varchar(100)" json:"companion_name,omitempty"`
	NominationType string     `gorm:"type:varchar(50)" json:"nomination_type,omitempty"`
	NominationFee  int        `gorm:"not null;default:0" json:"nomination_fee"`
	ShimeiCasts    string     `gorm:"type:varchar(255)" json:"shimei_casts,omitempty"` // comma-joined stage names
	TaxRate        int        `gorm:"not null;default:20" json:"tax_rate"`
	ExtensionCount int        `gorm:"not null;default:0" json:"extension_count"`
	Status         string     `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// Settlement lock. Best effort: the check and the write are separate
	// statements, the 180s expiry bounds how long a crashed holder blocks.
	IsSettling bool       `gorm:"not null;default:false" json:"is_settling"`
	SettlingBy string     `gorm:"type:varchar(100)" json:"settling_by,omitempty"`
	SettlingAt *time.Time `json:"settling_at,omitempty"`

	Orders    []Order   `gorm:"foreignKey:SessionID" json:"orders,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
