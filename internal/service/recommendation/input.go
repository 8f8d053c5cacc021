package recommendation

import (
	"math"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 2000
)

// CreateInput holds the parameters for a user-authored recommendation.
type CreateInput struct {
	Category        domain.Category
	Title           string
	Description     string
	PotentialImpact *float64
	Difficulty      domain.Difficulty
	Source          domain.RecommendationSource
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if !i.Category.IsValidForRecommendation() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	errs = append(errs, validateText("title", i.Title, maxTitleLength)...)
	errs = append(errs, validateText("description", i.Description, maxDescriptionLength)...)
	errs = append(errs, validateImpact(i.PotentialImpact)...)
	if i.Difficulty != "" && !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "invalid value"})
	}
	if i.Source != "" && !i.Source.IsValid() {
		errs = append(errs, domain.FieldError{Field: "source", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds optional changes to a recommendation.
type UpdateInput struct {
	Category        *domain.Category
	Title           *string
	Description     *string
	PotentialImpact *float64
	Difficulty      *domain.Difficulty
	IsImplemented   *bool
}

// Validate checks all fields and collects all errors.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Category != nil && !i.Category.IsValidForRecommendation() {
		errs = append(errs, domain.FieldError{Field: "category", Message: "invalid value"})
	}
	if i.Title != nil {
		errs = append(errs, validateText("title", *i.Title, maxTitleLength)...)
	}
	if i.Description != nil {
		errs = append(errs, validateText("description", *i.Description, maxDescriptionLength)...)
	}
	errs = append(errs, validateImpact(i.PotentialImpact)...)
	if i.Difficulty != nil && !i.Difficulty.IsValid() {
		errs = append(errs, domain.FieldError{Field: "difficulty", Message: "invalid value"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput narrows a recommendation listing.
type ListInput struct {
	Category    *domain.Category
	Implemented *bool
}

// Validate checks all fields and collects all errors.
func (i ListInput) Validate() error {
	if i.Category != nil && !i.Category.IsValidForRecommendation() {
		return domain.NewValidationError("category", "invalid value")
	}
	return nil
}

func validateText(field, value string, max int) []domain.FieldError {
	trimmed := strings.TrimSpace(value)
	switch {
	case trimmed == "":
		return []domain.FieldError{{Field: field, Message: "required"}}
	case utf8.RuneCountInString(trimmed) > max:
		return []domain.FieldError{{Field: field, Message: "too long"}}
	}
	return nil
}

func validateImpact(v *float64) []domain.FieldError {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
		return []domain.FieldError{{Field: "potential_impact", Message: "must be a non-negative number"}}
	}
	return nil
}
