package entity

import (
	"gorm.io/gorm"
)

// MenuGroup sits between a restaurant and its categories (Food, Drinks...).
type MenuGroup struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`

	RestaurantID uint       `gorm:"not null;index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"` // preload when the restaurant name is needed

	Categories []Category `json:"-"`
}
