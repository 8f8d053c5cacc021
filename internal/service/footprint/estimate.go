package footprint

import (
	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// EstimateInput is a dry-run request for the emission estimator.
type EstimateInput struct {
	Category domain.Category
	Details  map[string]any
}

// Validate checks all fields and collects all errors.
func (i EstimateInput) Validate() error {
	if !i.Category.IsValid() {
		return domain.NewValidationError("category", "invalid value")
	}
	return nil
}

// Estimate computes an emission without storing anything.
func (s *Service) Estimate(input EstimateInput) (float64, error) {
	if err := input.Validate(); err != nil {
		return 0, err
	}
	return carbon.Estimate(input.Category, input.Details), nil
}
