package prompt

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// MaxDrafts caps how many generated recommendations are kept.
const MaxDrafts = 3

// ErrNoValidDrafts is returned when a reply holds no usable recommendation.
var ErrNoValidDrafts = errors.New("no valid recommendations in reply")

// arrayOfObjects matches the opening of a JSON array of objects.
var arrayOfObjects = regexp.MustCompile(`\[\s*\{`)

// Recommendation asks for three recommendations focused on highest.
// recent must already be ordered newest first.
func Recommendation(perCategory map[domain.Category]float64, total float64, highest domain.Category, recent []domain.Footprint) domain.Prompt {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Based on the following carbon footprint data for a user, provide 3 specific, actionable recommendations "+
		"to reduce their carbon footprint. Focus especially on the category with highest emissions: %s.\n\n", highest)
	fmt.Fprintf(&sb, "Total Carbon Footprint: %.2f kg CO2e\n\n", total)
	sb.WriteString("Emissions by Category:\n")
	sb.WriteString(categoryLines(perCategory))
	sb.WriteString("\n\nRecent Activities:\n")
	sb.WriteString(activityLines(recent))
	sb.WriteString(`

Provide 3 recommendations in the following JSON format:
[{
  "category": "category name",
  "title": "short recommendation title",
  "description": "detailed explanation of the recommendation",
  "potentialImpact": numeric estimate of kg CO2e savings,
  "difficulty": "easy", "medium", or "hard"
}]
Respond with the JSON array only.`)

	return domain.NewUserPrompt(sb.String())
}

type rawDraft struct {
	Category        string          `json:"category"`
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	PotentialImpact json.RawMessage `json:"potentialImpact"`
	Difficulty      string          `json:"difficulty"`
}

// ParseRecommendations extracts recommendation drafts from a generator reply.
// The span from the first "[" that opens an object ("[{", whitespace allowed)
// to the last "]" is decoded when present, otherwise the whole text. Items missing a valid category, title, description, non-negative
// numeric potentialImpact or difficulty are dropped. At most MaxDrafts are
// returned, all with source ai.
func ParseRecommendations(text string) ([]domain.RecommendationDraft, error) {
	payload := strings.TrimSpace(text)
	start := -1
	if loc := arrayOfObjects.FindStringIndex(payload); loc != nil {
		start = loc[0]
	}
	end := strings.LastIndex(payload, "]")
	if start != -1 && end > start {
		payload = payload[start : end+1]
	}

	var raw []rawDraft
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, fmt.Errorf("decode recommendations: %w", err)
	}

	drafts := make([]domain.RecommendationDraft, 0, MaxDrafts)
	for _, r := range raw {
		d, ok := r.toDraft()
		if !ok {
			continue
		}
		drafts = append(drafts, d)
		if len(drafts) == MaxDrafts {
			break
		}
	}

	if len(drafts) == 0 {
		return nil, ErrNoValidDrafts
	}
	return drafts, nil
}

func (r rawDraft) toDraft() (domain.RecommendationDraft, bool) {
	category := domain.Category(strings.ToLower(strings.TrimSpace(r.Category)))
	difficulty := domain.Difficulty(strings.ToLower(strings.TrimSpace(r.Difficulty)))
	title := strings.TrimSpace(r.Title)
	description := strings.TrimSpace(r.Description)

	if !category.IsValidForRecommendation() || !difficulty.IsValid() || title == "" || description == "" {
		return domain.RecommendationDraft{}, false
	}

	// Only JSON numbers count; quoted numbers and null are rejected.
	if len(r.PotentialImpact) == 0 || string(r.PotentialImpact) == "null" {
		return domain.RecommendationDraft{}, false
	}
	var impact float64
	if err := json.Unmarshal(r.PotentialImpact, &impact); err != nil {
		return domain.RecommendationDraft{}, false
	}
	if impact < 0 || math.IsNaN(impact) || math.IsInf(impact, 0) {
		return domain.RecommendationDraft{}, false
	}

	return domain.RecommendationDraft{
		Category:        category,
		Title:           title,
		Description:     description,
		PotentialImpact: impact,
		Difficulty:      difficulty,
		Source:          domain.RecommendationSourceAI,
	}, true
}
