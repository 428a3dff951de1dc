package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Member ")
	require.NoError(t, err)
	assert.Equal(t, RoleMember, r)

	_, err = ParseRole("admin")
	assert.Error(t, err)

	_, err = ParseRole("")
	assert.Error(t, err)
}

func TestNewRoleRecordSelectsVariant(t *testing.T) {
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	attrs := RoleAttributes{
		FirstName:              "Ada",
		LastName:               "Lovelace",
		Gender:                 "female",
		Age:                    30,
		PhoneNumber:            "123",
		EmergencyContactNumber: "999",
		DateOfBirth:            &dob,
		Address:                "addr",
		DietaryRestriction:     "none",
		RelationshipWithMember: "daughter",
		ShopName:               "Corner Shop",
		ShopAddress:            "1 Main St",
		VolunteerType:          "driver",
		Availability:           "weekends",
	}

	for _, role := range Roles {
		rec, err := NewRoleRecord(role, attrs)
		require.NoError(t, err, role)
		assert.Equal(t, role, rec.Role())
	}

	rec, _ := NewRoleRecord(RoleMember, attrs)
	m, ok := rec.(*Member)
	require.True(t, ok)
	assert.Equal(t, 30, m.Age)
	assert.Equal(t, "none", m.DietaryRestriction)
	require.NotNil(t, m.DateOfBirth)
	assert.Equal(t, dob, time.Time(*m.DateOfBirth))

	rec, _ = NewRoleRecord(RoleCaregiver, attrs)
	cg := rec.(*Caregiver)
	assert.Equal(t, "daughter", cg.RelationshipWithMember)

	rec, _ = NewRoleRecord(RolePartner, attrs)
	p := rec.(*Partner)
	assert.Equal(t, "Corner Shop", p.ShopName)
	assert.Equal(t, "123", p.PhoneNumber)

	rec, _ = NewRoleRecord(RoleDonor, attrs)
	d := rec.(*Donor)
	assert.Nil(t, d.DonationAmount)
	assert.Nil(t, d.DonationDate)

	_, err := NewRoleRecord(Role("admin"), attrs)
	assert.Error(t, err)
}

func TestRoleRecordAttachAndImage(t *testing.T) {
	rec, err := NewRoleRecord(RoleVolunteer, RoleAttributes{})
	require.NoError(t, err)
	rec.AttachTo(42)
	rec.SetImage("images/a.png")

	v := rec.(*Volunteer)
	assert.Equal(t, uint(42), v.UserID)
	require.NotNil(t, v.Image)
	assert.Equal(t, "images/a.png", *v.Image)

	var u User
	u.Attach(rec)
	assert.Same(t, v, u.Volunteer)
	assert.Equal(t, rec, u.RoleRecord())
}

func TestAccessTokenValidity(t *testing.T) {
	tok := AccessToken{ExpiresAt: time.Now().Add(time.Hour)}
	assert.True(t, tok.IsValid())

	tok.Revoked = true
	assert.False(t, tok.IsValid())

	tok = AccessToken{ExpiresAt: time.Now().Add(-time.Minute)}
	assert.True(t, tok.IsExpired())
	assert.False(t, tok.IsValid())
}
