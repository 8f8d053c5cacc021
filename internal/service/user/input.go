package user

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	maxNameLength     = 100
	maxLocationLength = 100
	maxHouseholdSize  = 50
)

// UpdateProfileInput holds optional profile changes. Nil fields are untouched.
type UpdateProfileInput struct {
	Name          *string
	Location      *string
	HouseholdSize *int
	CarbonGoal    *float64
}

// Validate validates the update profile input.
func (i UpdateProfileInput) Validate() error {
	var errs []domain.FieldError

	if i.Name != nil {
		n := utf8.RuneCountInString(strings.TrimSpace(*i.Name))
		if n == 0 {
			errs = append(errs, domain.FieldError{Field: "name", Message: "cannot be empty"})
		} else if n > maxNameLength {
			errs = append(errs, domain.FieldError{Field: "name", Message: "too long"})
		}
	}

	if i.Location != nil && utf8.RuneCountInString(*i.Location) > maxLocationLength {
		errs = append(errs, domain.FieldError{Field: "location", Message: "too long"})
	}

	if i.HouseholdSize != nil && (*i.HouseholdSize < 1 || *i.HouseholdSize > maxHouseholdSize) {
		errs = append(errs, domain.FieldError{Field: "household_size", Message: "must be between 1 and 50"})
	}

	if i.CarbonGoal != nil {
		g := *i.CarbonGoal
		if math.IsNaN(g) || math.IsInf(g, 0) || g < 0 {
			errs = append(errs, domain.FieldError{Field: "carbon_goal", Message: "must be a non-negative number"})
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func (i UpdateProfileInput) toUpdate() domain.ProfileUpdate {
	upd := domain.ProfileUpdate{
		HouseholdSize: i.HouseholdSize,
		CarbonGoal:    i.CarbonGoal,
	}
	if i.Name != nil {
		name := strings.TrimSpace(*i.Name)
		upd.Name = &name
	}
	if i.Location != nil {
		loc := strings.TrimSpace(*i.Location)
		upd.Location = &loc
	}
	return upd
}
