package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Quantity int `gorm:"default:1" json:"quantity"`

	// Price captured when the order was placed. Never updated afterwards,
	// even if the menu item's price changes.
	FixedPrice float64 `gorm:"not null" json:"fixedPrice"`

	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	ItemID uint     `gorm:"not null;index" json:"itemId"`
	Item   MenuItem `json:"-"` // best-effort lookup; the item may be gone
}
