package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

func recent(n int) []domain.Footprint {
	out := make([]domain.Footprint, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Footprint{Activity: "bus ride", Category: domain.CategoryTransportation, CarbonEmission: 1.5})
	}
	return out
}

// ---------------------------------------------------------------------------
// Recommendation
// ---------------------------------------------------------------------------

func TestRecommendation_Content(t *testing.T) {
	t.Parallel()

	perCategory := map[domain.Category]float64{
		domain.CategoryFood:           4.5,
		domain.CategoryTransportation: 17,
	}
	p := Recommendation(perCategory, 21.5, domain.CategoryTransportation, recent(12))

	require.NoError(t, p.Validate())
	text := p.Turns[0].Content

	assert.Contains(t, text, "highest emissions: transportation.")
	assert.Contains(t, text, "Total Carbon Footprint: 21.50 kg CO2e")
	assert.Contains(t, text, "- transportation: 17.00 kg CO2e\n- food: 4.50 kg CO2e", "canonical category order")
	assert.Equal(t, MaxRecentActivities, strings.Count(text, "- bus ride (transportation): 1.50 kg CO2e"))
	assert.Contains(t, text, `"potentialImpact"`)
}

func TestParseRecommendations_ExtractsArray(t *testing.T) {
	t.Parallel()

	reply := "Here you go:\n```json\n[" +
		`{"category":"food","title":"Eat less beef","description":"Swap beef for beans.","potentialImpact":12.5,"difficulty":"Medium"},` +
		`{"category":"general","title":"Track","description":"Log weekly.","potentialImpact":0,"difficulty":"easy"}` +
		"]\n```\nGood luck!"

	drafts, err := ParseRecommendations(reply)
	require.NoError(t, err)
	require.Len(t, drafts, 2)

	assert.Equal(t, domain.CategoryFood, drafts[0].Category)
	assert.Equal(t, domain.DifficultyMedium, drafts[0].Difficulty)
	assert.Equal(t, 12.5, drafts[0].PotentialImpact)
	assert.Equal(t, domain.RecommendationSourceAI, drafts[0].Source)
	assert.Equal(t, domain.CategoryGeneral, drafts[1].Category)
}

func TestParseRecommendations_SkipsBracketedProse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{"bracket before array", "Here are 3 ideas [ranked]: [" +
			`{"category":"energy","title":"Lower the thermostat","description":"Drop it by 1C.","potentialImpact":4.2,"difficulty":"easy"}]`},
		{"whitespace inside opening", "Ideas [v2] follow:\n[\n  " +
			`{"category":"energy","title":"Lower the thermostat","description":"Drop it by 1C.","potentialImpact":4.2,"difficulty":"easy"}` +
			"\n]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			drafts, err := ParseRecommendations(tt.reply)
			require.NoError(t, err)
			require.Len(t, drafts, 1)
			assert.Equal(t, domain.CategoryEnergy, drafts[0].Category)
			assert.Equal(t, 4.2, drafts[0].PotentialImpact)
		})
	}
}

func TestParseRecommendations_DropsInvalidItems(t *testing.T) {
	t.Parallel()

	reply := `[
		{"category":"food","title":"","description":"d","potentialImpact":1,"difficulty":"easy"},
		{"category":"space","title":"t","description":"d","potentialImpact":1,"difficulty":"easy"},
		{"category":"food","title":"t","description":"d","potentialImpact":"5","difficulty":"easy"},
		{"category":"food","title":"t","description":"d","potentialImpact":null,"difficulty":"easy"},
		{"category":"food","title":"t","description":"d","difficulty":"easy"},
		{"category":"food","title":"t","description":"d","potentialImpact":-2,"difficulty":"easy"},
		{"category":"food","title":"t","description":"d","potentialImpact":1,"difficulty":"trivial"},
		{"category":"energy","title":"ok","description":"d","potentialImpact":3,"difficulty":"hard"}
	]`

	drafts, err := ParseRecommendations(reply)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "ok", drafts[0].Title)
}

func TestParseRecommendations_CapsAtMax(t *testing.T) {
	t.Parallel()

	item := `{"category":"waste","title":"t","description":"d","potentialImpact":1,"difficulty":"easy"}`
	reply := "[" + strings.Repeat(item+",", 4) + item + "]"

	drafts, err := ParseRecommendations(reply)
	require.NoError(t, err)
	assert.Len(t, drafts, MaxDrafts)
}

func TestParseRecommendations_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		reply string
	}{
		{"empty", ""},
		{"prose", "Sorry, I cannot help with that."},
		{"object instead of array", `{"category":"food"}`},
		{"empty array", "[]"},
		{"all invalid", `[{"category":"food"}]`},
		{"truncated", `[{"category":"food","title":"t"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			drafts, err := ParseRecommendations(tt.reply)
			assert.Error(t, err)
			assert.Nil(t, drafts)
		})
	}
}

// ---------------------------------------------------------------------------
// Coach
// ---------------------------------------------------------------------------

func TestCoachSystem_WithData(t *testing.T) {
	t.Parallel()

	sys := CoachSystem(CoachContext{
		UserName:    "Ada",
		CarbonGoal:  150,
		PerCategory: map[domain.Category]float64{domain.CategoryEnergy: 30},
		Total:       30,
		Highest:     domain.CategoryEnergy,
		Recent:      []domain.Footprint{{Activity: "heating", Category: domain.CategoryEnergy, CarbonEmission: 30}},
	})

	assert.Contains(t, sys, "Carbon Coach")
	assert.Contains(t, sys, "- Total Carbon Footprint: 30.00 kg CO2e")
	assert.Contains(t, sys, "- Highest emission category: energy")
	assert.Contains(t, sys, "- heating (energy): 30.00 kg CO2e")
	assert.Contains(t, sys, "User's name: Ada")
	assert.Contains(t, sys, "User's carbon goal: 150 kg CO2e")
	assert.True(t, strings.HasSuffix(sys, coachStyle))
}

func TestCoachSystem_WithoutData(t *testing.T) {
	t.Parallel()

	sys := CoachSystem(CoachContext{UserName: "Ada"})

	assert.True(t, strings.HasPrefix(sys, coachPersona))
	assert.NotContains(t, sys, "Carbon Coach")
	assert.NotContains(t, sys, "Ada")
}

func TestSuggestionHelpers(t *testing.T) {
	t.Parallel()

	p := Suggestion(domain.CategoryFood, 12)
	require.NoError(t, p.Validate())
	assert.Contains(t, p.Turns[0].Content, "food")

	assert.Equal(t, "How can I reduce my food emissions?", FallbackSuggestion(domain.CategoryFood))
	assert.Equal(t, "Is beef worse than chicken?", CleanSuggestion("  \"Is beef worse than chicken?\"\nExtra line"))
}
