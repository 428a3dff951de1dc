package validation

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"meals_on_wheels/internal/models"
)

const dateLayout = "2006-01-02"

// RegisterRequest is the flat registration payload, accepted as JSON or
// multipart form.
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8,bcrypt_len"`
	Type     string `json:"type" form:"type" validate:"required,oneof=member caregiver partner volunteer donor"`

	PhoneNumber string `json:"phone_number" form:"phone_number" validate:"required"`
	Address     string `json:"address" form:"address" validate:"required"`

	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`

	Age                    *Integer `json:"age" form:"age" validate:"omitempty,gte=0"`
	EmergencyContactNumber string   `json:"emergency_contact_number" form:"emergency_contact_number"`
	DateOfBirth            string   `json:"date_of_birth" form:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender                 string   `json:"gender" form:"gender" validate:"omitempty,oneof=male female other"`
	DietaryRestriction     string   `json:"dietary_restriction" form:"dietary_restriction"`

	RelationshipWithMember string `json:"relationship_with_member" form:"relationship_with_member"`

	ShopName    string `json:"shop_name" form:"shop_name"`
	ShopAddress string `json:"shop_address" form:"shop_address"`

	VolunteerType string `json:"volunteer_type" form:"volunteer_type"`
	Availability  string `json:"availability" form:"availability"`

	DonationAmount *Number `json:"donation_amount" form:"donation_amount" validate:"omitempty,gte=0"`
	DonationDate   string  `json:"donation_date" form:"donation_date" validate:"omitempty,datetime=2006-01-02"`
}

type conditionalField struct {
	name    string
	roles   []models.Role
	present func(*RegisterRequest) bool
}

// roleRules lists the fields that become required for particular roles.
var roleRules = []conditionalField{
	{"age", []models.Role{models.RoleMember}, func(r *RegisterRequest) bool { return r.Age != nil }},
	{"emergency_contact_number", []models.Role{models.RoleMember}, func(r *RegisterRequest) bool { return r.EmergencyContactNumber != "" }},
	{"dietary_restriction", []models.Role{models.RoleMember}, func(r *RegisterRequest) bool { return r.DietaryRestriction != "" }},
	{"date_of_birth", []models.Role{models.RoleMember, models.RoleVolunteer}, func(r *RegisterRequest) bool { return r.DateOfBirth != "" }},
	{"gender", []models.Role{models.RoleMember, models.RoleVolunteer}, func(r *RegisterRequest) bool { return r.Gender != "" }},
	{"relationship_with_member", []models.Role{models.RoleCaregiver}, func(r *RegisterRequest) bool { return r.RelationshipWithMember != "" }},
	{"shop_name", []models.Role{models.RolePartner}, func(r *RegisterRequest) bool { return r.ShopName != "" }},
	{"shop_address", []models.Role{models.RolePartner}, func(r *RegisterRequest) bool { return r.ShopAddress != "" }},
	{"volunteer_type", []models.Role{models.RoleVolunteer}, func(r *RegisterRequest) bool { return r.VolunteerType != "" }},
	{"availability", []models.Role{models.RoleVolunteer}, func(r *RegisterRequest) bool { return r.Availability != "" }},
}

func registerRoleRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(RegisterRequest)
	role := models.Role(req.Type)

	for _, rule := range roleRules {
		for _, r := range rule.roles {
			if r != role || rule.present(&req) {
				continue
			}
			sl.ReportError("", rule.name, rule.name, "required_if", joinRoles(rule.roles))
		}
	}
}

func joinRoles(roles []models.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, " / ")
}

// Normalize trims surrounding whitespace from every text field.
func (r *RegisterRequest) Normalize() {
	for _, s := range []*string{
		&r.Name, &r.Email, &r.Type, &r.PhoneNumber, &r.Address, &r.FirstName, &r.LastName,
		&r.EmergencyContactNumber, &r.DateOfBirth, &r.Gender, &r.DietaryRestriction,
		&r.RelationshipWithMember, &r.ShopName, &r.ShopAddress, &r.VolunteerType,
		&r.Availability, &r.DonationDate,
	} {
		*s = strings.TrimSpace(*s)
	}
	r.Type = strings.ToLower(r.Type)
}

// Validate normalizes and checks the request.
func (r *RegisterRequest) Validate() Errors {
	r.Normalize()
	return Struct(*r)
}

// Role parses the requested role tag.
func (r *RegisterRequest) Role() (models.Role, error) {
	return models.ParseRole(r.Type)
}

// Attributes converts a validated request into role record input.
func (r *RegisterRequest) Attributes() models.RoleAttributes {
	attrs := models.RoleAttributes{
		FirstName:              r.FirstName,
		LastName:               r.LastName,
		Gender:                 r.Gender,
		PhoneNumber:            r.PhoneNumber,
		EmergencyContactNumber: r.EmergencyContactNumber,
		DateOfBirth:            parseDate(r.DateOfBirth),
		Address:                r.Address,
		DietaryRestriction:     r.DietaryRestriction,
		RelationshipWithMember: r.RelationshipWithMember,
		ShopName:               r.ShopName,
		ShopAddress:            r.ShopAddress,
		VolunteerType:          r.VolunteerType,
		Availability:           r.Availability,
		DonationAmount:         r.DonationAmount.Float(),
		DonationDate:           parseDate(r.DonationDate),
	}
	if r.Age != nil {
		attrs.Age = int(*r.Age)
	}
	return attrs
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}

// LoginRequest is the credential payload for /login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8,bcrypt_len"`
}

func (r *LoginRequest) Validate() Errors {
	r.Email = strings.TrimSpace(r.Email)
	return Struct(*r)
}
