package rest

import (
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/carbon"
	"github.com/heartmarshall/carbontrack-backend/internal/domain"
	footprintsvc "github.com/heartmarshall/carbontrack-backend/internal/service/footprint"
)

type userResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Username      string    `json:"username"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Location      string    `json:"location"`
	HouseholdSize int       `json:"householdSize"`
	CarbonGoal    float64   `json:"carbonGoal"`
	CreatedAt     time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            u.ID.String(),
		Email:         u.Email,
		Username:      u.Username,
		Name:          u.Name,
		Role:          u.Role.String(),
		Location:      u.Location,
		HouseholdSize: u.HouseholdSize,
		CarbonGoal:    u.CarbonGoal,
		CreatedAt:     u.CreatedAt,
	}
}

type footprintResponse struct {
	ID             string         `json:"id"`
	Category       string         `json:"category"`
	Activity       string         `json:"activity"`
	Date           time.Time      `json:"date"`
	CarbonEmission float64        `json:"carbonEmission"`
	Unit           string         `json:"unit"`
	Details        map[string]any `json:"details"`
	Source         string         `json:"source"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

func toFootprintResponse(fp *domain.Footprint) footprintResponse {
	details := fp.Details
	if details == nil {
		details = map[string]any{}
	}
	return footprintResponse{
		ID:             fp.ID.String(),
		Category:       fp.Category.String(),
		Activity:       fp.Activity,
		Date:           fp.Date.UTC(),
		CarbonEmission: fp.CarbonEmission,
		Unit:           fp.Unit,
		Details:        details,
		Source:         fp.Source.String(),
		CreatedAt:      fp.CreatedAt,
		UpdatedAt:      fp.UpdatedAt,
	}
}

type footprintListResponse struct {
	Items []footprintResponse `json:"items"`
	Total int                 `json:"total"`
}

type categoryTotalResponse struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type monthTotalResponse struct {
	YearMonth string  `json:"yearMonth"`
	Total     float64 `json:"total"`
}

type summaryResponse struct {
	Total      float64                 `json:"total"`
	ByCategory []categoryTotalResponse `json:"byCategory"`
	ByMonth    []monthTotalResponse    `json:"byMonth"`
}

func toSummaryResponse(s domain.Summary) summaryResponse {
	out := summaryResponse{
		Total:      s.Total,
		ByCategory: make([]categoryTotalResponse, 0, len(s.ByCategory)),
		ByMonth:    make([]monthTotalResponse, 0, len(s.ByMonth)),
	}
	for _, c := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, categoryTotalResponse{Category: c.Category.String(), Total: c.Total})
	}
	for _, m := range s.ByMonth {
		out.ByMonth = append(out.ByMonth, monthTotalResponse{YearMonth: m.YearMonth, Total: m.Total})
	}
	return out
}

type equivalencyItem struct {
	Kind      string  `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

type equivalencyResponse struct {
	InputKg     float64           `json:"inputKg"`
	Results     []equivalencyItem `json:"results"`
	DisplayText string            `json:"displayText,omitempty"`
	Comparison  string            `json:"comparison"`
}

type goalResponse struct {
	Goal         float64 `json:"goal"`
	Percent      float64 `json:"percent"`
	OnTrack      bool    `json:"onTrack"`
	DeltaPercent float64 `json:"deltaPercent"`
}

type insightsResponse struct {
	Summary         summaryResponse     `json:"summary"`
	Equivalency     equivalencyResponse `json:"equivalency"`
	Goal            *goalResponse       `json:"goal"`
	HighestCategory *string             `json:"highestCategory"`
}

func toEquivalencyResponse(e carbon.Equivalency) equivalencyResponse {
	out := equivalencyResponse{
		InputKg:     e.InputKg,
		Results:     make([]equivalencyItem, 0, len(e.Results)),
		DisplayText: e.DisplayText,
		Comparison:  e.Comparison,
	}
	for _, r := range e.Results {
		out.Results = append(out.Results, equivalencyItem{
			Kind:      string(r.Kind),
			Value:     r.Value,
			Formatted: r.Formatted,
			Label:     r.Label,
		})
	}
	return out
}

func toInsightsResponse(in *footprintsvc.Insights) insightsResponse {
	out := insightsResponse{
		Summary:     toSummaryResponse(in.Summary),
		Equivalency: toEquivalencyResponse(in.Equivalency),
	}
	if in.Goal != nil {
		out.Goal = &goalResponse{
			Goal:         in.Goal.Goal,
			Percent:      in.Goal.Percent,
			OnTrack:      in.Goal.OnTrack,
			DeltaPercent: in.Goal.DeltaPercent,
		}
	}
	if in.HighestCategory != nil {
		c := in.HighestCategory.String()
		out.HighestCategory = &c
	}
	return out
}

type recommendationResponse struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	PotentialImpact float64   `json:"potentialImpact"`
	Difficulty      string    `json:"difficulty"`
	IsImplemented   bool      `json:"isImplemented"`
	Source          string    `json:"source"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toRecommendationResponse(r *domain.Recommendation) recommendationResponse {
	return recommendationResponse{
		ID:              r.ID.String(),
		Category:        r.Category.String(),
		Title:           r.Title,
		Description:     r.Description,
		PotentialImpact: r.PotentialImpact,
		Difficulty:      r.Difficulty.String(),
		IsImplemented:   r.IsImplemented,
		Source:          r.Source.String(),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

func toRecommendationList(recs []domain.Recommendation) []recommendationResponse {
	out := make([]recommendationResponse, 0, len(recs))
	for i := range recs {
		out = append(out, toRecommendationResponse(&recs[i]))
	}
	return out
}

type deleteResponse struct {
	ID string `json:"id"`
}
