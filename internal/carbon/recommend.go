package carbon

import "github.com/heartmarshall/carbontrack-backend/internal/domain"

// MaxDrafts is the maximum number of drafts produced per generation.
const MaxDrafts = 3

// GeneralImpactFraction is applied to the overall total for the general draft.
const GeneralImpactFraction = 0.1

type template struct {
	title       string
	description string
	difficulty  domain.Difficulty
	// fraction of the category total that the action is expected to save
	fraction float64
}

var categoryTemplates = map[domain.Category][2]template{
	domain.CategoryTransportation: {
		{
			title:       "Switch to Public Transit",
			description: "Replace 2 car trips per week with public transportation. This can reduce your carbon footprint by approximately 20-30% for transportation emissions.",
			difficulty:  domain.DifficultyMedium,
			fraction:    0.25,
		},
		{
			title:       "Carpool to Work",
			description: "Share rides with colleagues or use carpooling apps. Carpooling with just one other person can cut your transportation emissions in half.",
			difficulty:  domain.DifficultyEasy,
			fraction:    0.3,
		},
	},
	domain.CategoryEnergy: {
		{
			title:       "Switch to LED Bulbs",
			description: "Replace all household bulbs with LED alternatives. LED bulbs use 75% less energy and last 25 times longer than incandescent lighting.",
			difficulty:  domain.DifficultyEasy,
			fraction:    0.15,
		},
		{
			title:       "Adjust Thermostat Settings",
			description: "Lower your thermostat by 2°C in winter and raise it by 2°C in summer. This simple change can reduce energy consumption by up to 10%.",
			difficulty:  domain.DifficultyEasy,
			fraction:    0.1,
		},
	},
	domain.CategoryFood: {
		{
			title:       "Reduce Meat Consumption",
			description: `Adopt "Meatless Mondays" or reduce meat consumption by 50%. Plant-based meals have significantly lower carbon footprints than meat-based meals.`,
			difficulty:  domain.DifficultyMedium,
			fraction:    0.3,
		},
		{
			title:       "Buy Local and Seasonal",
			description: "Choose locally grown, seasonal produce to reduce transportation emissions from food imports.",
			difficulty:  domain.DifficultyEasy,
			fraction:    0.15,
		},
	},
	domain.CategoryShopping: {
		{
			title:       "Buy Second-hand Items",
			description: "Purchase used items instead of new ones. Second-hand shopping reduces demand for new production and associated emissions.",
			difficulty:  domain.DifficultyEasy,
			fraction:    0.4,
		},
		{
			title:       "Choose Sustainable Brands",
			description: "Support companies with strong environmental practices and sustainable manufacturing processes.",
			difficulty:  domain.DifficultyMedium,
			fraction:    0.2,
		},
	},
	domain.CategoryWaste: {
		{
			title:       "Start Composting",
			description: "Compost food scraps and yard waste to reduce methane emissions from landfills and create nutrient-rich soil.",
			difficulty:  domain.DifficultyMedium,
			fraction:    0.5,
		},
		{
			title:       "Reduce Single-use Plastics",
			description: "Use reusable bags, containers, and water bottles to minimize plastic waste and associated production emissions.",
			difficulty:  domain.DifficultyEasy,
			fraction:    0.25,
		},
	},
}

var generalTemplate = template{
	title:       "Track Your Progress",
	description: "Continue monitoring your carbon footprint regularly. Awareness is the first step toward meaningful reduction. Set monthly goals to reduce your total emissions by 10%.",
	difficulty:  domain.DifficultyEasy,
	fraction:    GeneralImpactFraction,
}

// HighestCategory returns the category with the largest positive total.
// Ties are broken by domain.AllCategories order. Reports false when no
// category has a positive total.
func HighestCategory(perCategory map[domain.Category]float64) (domain.Category, bool) {
	var (
		best      domain.Category
		bestTotal float64
		found     bool
	)
	for c, total := range perCategory {
		if total <= 0 {
			continue
		}
		if !found || total > bestTotal || (total == bestTotal && c.Rank() < best.Rank()) {
			best, bestTotal, found = c, total, true
		}
	}
	return best, found
}

// Select returns up to MaxDrafts rule-based drafts: the two templates of the
// highest category, if it has any, followed by one general draft whose
// impact is total × GeneralImpactFraction.
func Select(perCategory map[domain.Category]float64, total float64) []domain.RecommendationDraft {
	drafts := make([]domain.RecommendationDraft, 0, MaxDrafts)

	if highest, ok := HighestCategory(perCategory); ok {
		if tmpls, ok := categoryTemplates[highest]; ok {
			for _, t := range tmpls {
				drafts = append(drafts, t.draft(highest, perCategory[highest]))
			}
		}
	}

	drafts = append(drafts, generalTemplate.draft(domain.CategoryGeneral, total))

	if len(drafts) > MaxDrafts {
		drafts = drafts[:MaxDrafts]
	}
	return drafts
}

func (t template) draft(category domain.Category, base float64) domain.RecommendationDraft {
	return domain.RecommendationDraft{
		Category:        category,
		Title:           t.title,
		Description:     t.description,
		PotentialImpact: base * t.fraction,
		Difficulty:      t.difficulty,
		Source:          domain.RecommendationSourceSystem,
	}
}
