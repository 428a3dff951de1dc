package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Volunteer struct {
	gorm.Model
	UserID        uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Gender        string          `json:"gender" gorm:"size:10"`
	PhoneNumber   string          `json:"phone_number"`
	DateOfBirth   *datatypes.Date `json:"date_of_birth"`
	Address       string          `json:"address"`
	VolunteerType string          `json:"volunteer_type"`
	Availability  string          `json:"availability"`
	Image         *string         `json:"image"`
}

func (*Volunteer) Role() Role { return RoleVolunteer }

func (v *Volunteer) AttachTo(userID uint) { v.UserID = userID }

func (v *Volunteer) SetImage(path string) { v.Image = &path }

func (*Volunteer) roleRecord() {}
