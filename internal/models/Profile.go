package models

import "gorm.io/gorm"

// Profile holds the role-agnostic contact data every user gets at
// registration.
type Profile struct {
	gorm.Model
	UserID  uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	Name    string  `json:"name"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
	Image   *string `json:"image"`
}
