package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Member struct {
	gorm.Model
	UserID                 uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName              string          `json:"first_name"`
	LastName               string          `json:"last_name"`
	Gender                 string          `json:"gender" gorm:"size:10"`
	Age                    int             `json:"age"`
	PhoneNumber            string          `json:"phone_number"`
	EmergencyContactNumber string          `json:"emergency_contact_number"`
	DateOfBirth            *datatypes.Date `json:"date_of_birth"`
	Address                string          `json:"address"`
	DietaryRestriction     string          `json:"dietary_restriction"`
	Image                  *string         `json:"image"`
}

func (*Member) Role() Role { return RoleMember }

func (m *Member) AttachTo(userID uint) { m.UserID = userID }

func (m *Member) SetImage(path string) { m.Image = &path }

func (*Member) roleRecord() {}
