package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Donor carries no image; SetImage is a no-op.
type Donor struct {
	gorm.Model
	UserID         uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	DonationAmount *float64        `json:"donation_amount"`
	DonationDate   *datatypes.Date `json:"donation_date"`
}

func (*Donor) Role() Role { return RoleDonor }

func (d *Donor) AttachTo(userID uint) { d.UserID = userID }

func (*Donor) SetImage(string) {}

func (*Donor) roleRecord() {}
