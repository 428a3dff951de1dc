package models

import "gorm.io/gorm"

type Caregiver struct {
	gorm.Model
	UserID                 uint    `json:"user_id" gorm:"uniqueIndex;not null"`
	FirstName              string  `json:"first_name"`
	LastName               string  `json:"last_name"`
	RelationshipWithMember string  `json:"relationship_with_member"`
	Image                  *string `json:"image"`
}

func (*Caregiver) Role() Role { return RoleCaregiver }

func (c *Caregiver) AttachTo(userID uint) { c.UserID = userID }

func (c *Caregiver) SetImage(path string) { c.Image = &path }

func (*Caregiver) roleRecord() {}
