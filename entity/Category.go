package entity

import (
	"gorm.io/gorm"
)

type Category struct {
	gorm.Model
	Name string `gorm:"not null" json:"name"`

	GroupID uint      `gorm:"not null;index" json:"groupId"`
	Group   MenuGroup `json:"-"` // preload for the "back" target of an item view

	Items []MenuItem `json:"-"`
}
