package validation

import (
	"math"
	"strings"

	"meals_on_wheels/internal/models"
)

// MealRequest is the create/update payload for a meal. Pointer fields let
// a missing value be told apart from a zero one.
type MealRequest struct {
	Name                   string   `json:"name" form:"name" validate:"required"`
	Ingredients            string   `json:"ingredients" form:"ingredients" validate:"required"`
	AllergyInformation     *string  `json:"allergy_information" form:"allergy_information"`
	NutritionalInformation *string  `json:"nutritional_information" form:"nutritional_information"`
	DietaryRestrictions    *string  `json:"dietary_restrictions" form:"dietary_restrictions"`
	Price                  *Number  `json:"price" form:"price" validate:"required"`
	IsFrozen               *Boolean `json:"is_frozen" form:"is_frozen" validate:"required"`
	DeliveryStatus         *Boolean `json:"delivery_status" form:"delivery_status" validate:"required"`
}

func (r *MealRequest) Validate() Errors {
	r.Name = strings.TrimSpace(r.Name)
	r.Ingredients = strings.TrimSpace(r.Ingredients)

	errs := Struct(*r)
	if r.Price != nil {
		if p := float64(*r.Price); math.IsNaN(p) || math.IsInf(p, 0) {
			if errs == nil {
				errs = Errors{}
			}
			errs.Add("price", "The price field must be a number.")
		}
	}
	return errs
}

// Apply copies a validated request onto meal, leaving its image alone.
func (r *MealRequest) Apply(meal *models.Meal) {
	meal.Name = r.Name
	meal.Ingredients = r.Ingredients
	meal.AllergyInformation = nullable(r.AllergyInformation)
	meal.NutritionalInformation = nullable(r.NutritionalInformation)
	meal.DietaryRestrictions = nullable(r.DietaryRestrictions)
	meal.Price = float64(*r.Price)
	meal.IsFrozen = bool(*r.IsFrozen)
	meal.DeliveryStatus = bool(*r.DeliveryStatus)
}

// nullable treats blank text as absent.
func nullable(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
