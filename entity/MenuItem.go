package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Composition string `json:"composition"`
	Weight      string `json:"weight"`

	Calories      float64 `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Fats          float64 `json:"fats"`
	Carbohydrates float64 `json:"carbohydrates"`
	Price         float64 `gorm:"not null" json:"price"`

	CategoryID uint     `gorm:"not null;index" json:"categoryId"`
	Category   Category `json:"-"` // preload only on detail views

	Orders []Order `gorm:"foreignKey:ItemID" json:"-"`
}
