package models

import "time"

const (
	// OrderKindCatalog is a line backed by a menu item, with the price
	// snapshotted at creation time.
	OrderKindCatalog = "catalog"
	// OrderKindCharge is an ad-hoc billable line (set fee, in-house
	// nomination fee) carrying a free-text label instead of a menu item.
	OrderKindCharge = "charge"
)

// InHouseNominationPrefix marks ad-hoc charges the extension engine
// re-applies once per extension block, e.g. "場内指名料:れな".
const InHouseNominationPrefix = "場内指名料"

type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	StoreID     *uint     `gorm:"index" json:"store_id,omitempty"`
	SessionID   uint      `gorm:"not null;index" json:"session_id"`
	Session     Session   `gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Kind        string    `gorm:"type:varchar(20);not null;default:'catalog'" json:"kind"`
	MenuItemID  *uint     `gorm:"index" json:"menu_item_id,omitempty"`
	MenuItem    *MenuItem `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
	ItemName    string    `gorm:"type:varchar(255)" json:"item_name,omitempty"`    // custom display name, wins over the catalog name
	ChargeLabel string    `gorm:"type:varchar(255);index" json:"charge_label,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Price       int       `gorm:"not null" json:"price"`
	IsDrinkBack bool      `gorm:"not null;default:false" json:"is_drink_back"`
	IsServed    bool      `gorm:"not null;default:false" json:"is_served"`
	CastName    string    `gorm:"type:varchar(100);index" json:"cast_name,omitempty"`
	CreatedAt   time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// LineTotal is the billable value of this line.
func (o *Order) LineTotal() int {
	return o.Price * o.Quantity
}

// DisplayName resolves what the floor sees on the slip: a custom name takes
// precedence over the catalog name, charges fall back to their label.
func (o *Order) DisplayName() string {
	if o.ItemName != "" {
		return o.ItemName
	}
	if o.MenuItem != nil && o.MenuItem.Name != "" {
		return o.MenuItem.Name
	}
	if o.ChargeLabel != "" {
		return o.ChargeLabel
	}
	return "料金"
}
