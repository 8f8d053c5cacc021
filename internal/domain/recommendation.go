package domain

import (
	"time"

	"github.com/google/uuid"
)

// Recommendation is a stored suggestion for reducing emissions.
type Recommendation struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Category    Category
	Title       string
	Description string
	// PotentialImpact is the estimated saving in kg CO2e.
	PotentialImpact float64
	Difficulty      Difficulty
	IsImplemented   bool
	Source          RecommendationSource
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// RecommendationDraft is a recommendation that has not been persisted yet.
type RecommendationDraft struct {
	Category        Category
	Title           string
	Description     string
	PotentialImpact float64
	Difficulty      Difficulty
	Source          RecommendationSource
}

// ToRecommendation binds the draft to an owner.
func (d RecommendationDraft) ToRecommendation(userID uuid.UUID) *Recommendation {
	return &Recommendation{
		UserID:          userID,
		Category:        d.Category,
		Title:           d.Title,
		Description:     d.Description,
		PotentialImpact: d.PotentialImpact,
		Difficulty:      d.Difficulty,
		Source:          d.Source,
	}
}

// RecommendationFilter narrows a recommendation listing. Nil fields are ignored.
type RecommendationFilter struct {
	Category    *Category
	Implemented *bool
}
