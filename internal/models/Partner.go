package models

import "gorm.io/gorm"

// Partner is a shop supplying meals.
type Partner struct {
	gorm.Model
	UserID      uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Address     string  `json:"address"`
	PhoneNumber string  `json:"phone_number"`
	ShopName    string  `json:"shop_name"`
	ShopAddress string  `json:"shop_address"`
	Image       *string `json:"image"`
}

func (*Partner) Role() Role { return RolePartner }

func (p *Partner) AttachTo(userID uint) { p.UserID = userID }

func (p *Partner) SetImage(path string) { p.Image = &path }

func (*Partner) roleRecord() {}
