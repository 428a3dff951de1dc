package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Name     string `json:"name"`
	Email    string `json:"email" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Type     Role   `json:"type" gorm:"size:20;not null;index"` // "member", "caregiver", "partner", "volunteer", "donor"

	Profile *Profile `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"profile,omitempty"`

	// Role-specific relations; at most one is populated, matching Type.
	Member    *Member    `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"member,omitempty"`
	Caregiver *Caregiver `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"caregiver,omitempty"`
	Partner   *Partner   `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"partner,omitempty"`
	Volunteer *Volunteer `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"volunteer,omitempty"`
	Donor     *Donor     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"donor,omitempty"`
}

// RoleRecord returns the populated role-specific record, or nil when none
// was loaded.
func (u *User) RoleRecord() RoleRecord {
	switch {
	case u.Member != nil:
		return u.Member
	case u.Caregiver != nil:
		return u.Caregiver
	case u.Partner != nil:
		return u.Partner
	case u.Volunteer != nil:
		return u.Volunteer
	case u.Donor != nil:
		return u.Donor
	}
	return nil
}

// Attach places rec on the matching relation field.
func (u *User) Attach(rec RoleRecord) {
	switch r := rec.(type) {
	case *Member:
		u.Member = r
	case *Caregiver:
		u.Caregiver = r
	case *Partner:
		u.Partner = r
	case *Volunteer:
		u.Volunteer = r
	case *Donor:
		u.Donor = r
	}
}
