package models

import "gorm.io/gorm"

// Meal is a catalog entry; it has no relation to users.
type Meal struct {
	gorm.Model
	Name                   string  `json:"name" gorm:"not null"`
	Ingredients            string  `json:"ingredients" gorm:"type:text;not null"`
	AllergyInformation     *string `json:"allergy_information" gorm:"type:text"`
	NutritionalInformation *string `json:"nutritional_information" gorm:"type:text"`
	DietaryRestrictions    *string `json:"dietary_restrictions" gorm:"type:text"`
	Price                  float64 `json:"price"`
	IsFrozen               bool    `json:"is_frozen"`
	DeliveryStatus         bool    `json:"delivery_status"`
	Image                  *string `json:"image"`
}
