package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Role is the discriminant stored on User.Type.
type Role string

const (
	RoleMember    Role = "member"
	RoleCaregiver Role = "caregiver"
	RolePartner   Role = "partner"
	RoleVolunteer Role = "volunteer"
	RoleDonor     Role = "donor"
)

// Roles lists every accepted role tag in display order.
var Roles = []Role{RoleMember, RoleCaregiver, RolePartner, RoleVolunteer, RoleDonor}

// ParseRole normalises s and checks it against the known role tags.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("invalid role %q", s)
}

// RoleRecord is the closed set of role-specific records: *Member,
// *Caregiver, *Partner, *Volunteer and *Donor.
type RoleRecord interface {
	Role() Role
	AttachTo(userID uint)
	SetImage(path string)
	roleRecord()
}

// RoleAttributes is the flat union of every role field accepted at
// registration. NewRoleRecord picks the subset valid for a role.
type RoleAttributes struct {
	FirstName              string
	LastName               string
	Gender                 string
	Age                    int
	PhoneNumber            string
	EmergencyContactNumber string
	DateOfBirth            *time.Time
	Address                string
	DietaryRestriction     string
	RelationshipWithMember string
	ShopName               string
	ShopAddress            string
	VolunteerType          string
	Availability           string
	DonationAmount         *float64
	DonationDate           *time.Time
}

// NewRoleRecord builds the record variant for role from attrs.
func NewRoleRecord(role Role, attrs RoleAttributes) (RoleRecord, error) {
	switch role {
	case RoleMember:
		return &Member{
			FirstName:              attrs.FirstName,
			LastName:               attrs.LastName,
			Gender:                 attrs.Gender,
			Age:                    attrs.Age,
			PhoneNumber:            attrs.PhoneNumber,
			EmergencyContactNumber: attrs.EmergencyContactNumber,
			DateOfBirth:            toDate(attrs.DateOfBirth),
			Address:                attrs.Address,
			DietaryRestriction:     attrs.DietaryRestriction,
		}, nil
	case RoleCaregiver:
		return &Caregiver{
			FirstName:              attrs.FirstName,
			LastName:               attrs.LastName,
			RelationshipWithMember: attrs.RelationshipWithMember,
		}, nil
	case RolePartner:
		return &Partner{
			FirstName:   attrs.FirstName,
			LastName:    attrs.LastName,
			Address:     attrs.Address,
			PhoneNumber: attrs.PhoneNumber,
			ShopName:    attrs.ShopName,
			ShopAddress: attrs.ShopAddress,
		}, nil
	case RoleVolunteer:
		return &Volunteer{
			FirstName:     attrs.FirstName,
			LastName:      attrs.LastName,
			Gender:        attrs.Gender,
			PhoneNumber:   attrs.PhoneNumber,
			DateOfBirth:   toDate(attrs.DateOfBirth),
			Address:       attrs.Address,
			VolunteerType: attrs.VolunteerType,
			Availability:  attrs.Availability,
		}, nil
	case RoleDonor:
		return &Donor{
			DonationAmount: attrs.DonationAmount,
			DonationDate:   toDate(attrs.DonationDate),
		}, nil
	}
	return nil, fmt.Errorf("no role record for %q", role)
}

func toDate(t *time.Time) *datatypes.Date {
	if t == nil {
		return nil
	}
	d := datatypes.Date(*t)
	return &d
}
