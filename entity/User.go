package entity

import (
	"gorm.io/gorm"
)

// User is created lazily from the external chat identity on first contact.
type User struct {
	gorm.Model
	ExternalID  int64  `gorm:"uniqueIndex;not null" json:"externalId"`
	DisplayName string `json:"displayName"`

	Orders []Order `json:"-"`
}
