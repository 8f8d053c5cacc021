package footprint

import (
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	maxActivityLength = 200
	maxUnitLength     = 32
)

// CreateInput holds the parameters for logging a footprint entry.
// A nil CarbonEmission is estimated from Category and Details.
type CreateInput struct {
	Category       domain.Category
	Activity       string
	Date           *time.Time
	CarbonEmission *float64
	Unit           string
	Details        map[string]any
	Source         domain.FootprintSource
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	errs = append(errs, validateActivity(i.Activity)...)
	errs = append(errs, validateEmission(i.CarbonEmission)...)
	if utf8.RuneCountInString(i.Unit) > maxUnitLength {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "max 32 characters"})
	}
	if i.Source != "" && !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds optional changes to a footprint entry. Nil fields are
// left as they are.
type UpdateInput struct {
	Category       *domain.Category
	Activity       *string
	Date           *time.Time
	CarbonEmission *float64
	Unit           *string
	Details        map[string]any
	Source         *domain.FootprintSource
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != nil && !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	if i.Activity != nil {
		errs = append(errs, validateActivity(*i.Activity)...)
	}
	errs = append(errs, validateEmission(i.CarbonEmission)...)
	if i.Unit != nil && utf8.RuneCountInString(*i.Unit) > maxUnitLength {
		errs = append(errs, domain.FieldError{Field: "unit", Message: "max 32 characters"})
	}
	if i.Source != nil && !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds the parameters for listing footprint entries.
type ListInput struct {
	Category *domain.Category
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != nil && !i.Category.IsValid() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	if i.From != nil && i.To != nil && i.From.After(*i.To) {
		errs = append(errs, domain.FieldError{Field: "from", Message: "must not be after to"})
	}
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > MaxLimit {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateActivity(activity string) []domain.FieldError {
	trimmed := strings.TrimSpace(activity)
	switch {
	case trimmed == "":
		return []domain.FieldError{{Field: "activity", Message: "required"}}
	case utf8.RuneCountInString(trimmed) > maxActivityLength:
		return []domain.FieldError{{Field: "activity", Message: "max 200 characters"}}
	}
	return nil
}

func validateEmission(v *float64) []domain.FieldError {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return []domain.FieldError{{Field: "carbon_emission", Message: "must be a finite number"}}
	}
	if *v < 0 {
		return []domain.FieldError{{Field: "carbon_emission", Message: "must be non-negative"}}
	}
	return nil
}
