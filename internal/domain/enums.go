package domain

// Category classifies a footprint entry or a recommendation.
type Category string

const (
	CategoryTransportation Category = "transportation"
	CategoryEnergy         Category = "energy"
	CategoryFood           Category = "food"
	CategoryShopping       Category = "shopping"
	CategoryWaste          Category = "waste"
	CategoryOther          Category = "other"

	// CategoryGeneral is only valid for recommendations.
	CategoryGeneral Category = "general"
)

// AllCategories returns the footprint categories in canonical order.
// The order is used wherever a deterministic tie-break between categories is needed.
func AllCategories() []Category {
	return []Category{
		CategoryTransportation,
		CategoryEnergy,
		CategoryFood,
		CategoryShopping,
		CategoryWaste,
		CategoryOther,
	}
}

func (c Category) String() string { return string(c) }

// IsValid reports whether c is a valid footprint category.
func (c Category) IsValid() bool {
	switch c {
	case CategoryTransportation, CategoryEnergy, CategoryFood,
		CategoryShopping, CategoryWaste, CategoryOther:
		return true
	}
	return false
}

// IsValidForRecommendation reports whether c may be used on a recommendation.
func (c Category) IsValidForRecommendation() bool {
	return c == CategoryGeneral || c.IsValid()
}

// Rank returns the position of c in AllCategories, or len(AllCategories())
// for unknown values.
func (c Category) Rank() int {
	for i, known := range AllCategories() {
		if known == c {
			return i
		}
	}
	return len(AllCategories())
}

// Difficulty is how hard a recommendation is to put into practice.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// FootprintSource records where a footprint entry came from.
type FootprintSource string

const (
	FootprintSourceManual      FootprintSource = "manual"
	FootprintSourceAPI         FootprintSource = "api"
	FootprintSourceAIEstimated FootprintSource = "ai-estimated"
)

func (s FootprintSource) String() string { return string(s) }

func (s FootprintSource) IsValid() bool {
	switch s {
	case FootprintSourceManual, FootprintSourceAPI, FootprintSourceAIEstimated:
		return true
	}
	return false
}

// RecommendationSource records who produced a recommendation.
type RecommendationSource string

const (
	RecommendationSourceAI        RecommendationSource = "ai"
	RecommendationSourceSystem    RecommendationSource = "system"
	RecommendationSourceCommunity RecommendationSource = "community"
)

func (s RecommendationSource) String() string { return string(s) }

func (s RecommendationSource) IsValid() bool {
	switch s {
	case RecommendationSourceAI, RecommendationSourceSystem, RecommendationSourceCommunity:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// ChatRole identifies the author of a chat turn.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

func (r ChatRole) String() string { return string(r) }

func (r ChatRole) IsValid() bool {
	return r == ChatRoleUser || r == ChatRoleAssistant
}
