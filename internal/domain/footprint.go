package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultEmissionUnit is the display unit stored when none is supplied.
const DefaultEmissionUnit = "kg CO2e"

// Footprint is a single logged activity and its carbon-equivalent emission.
type Footprint struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	Category Category
	Activity string
	Date     time.Time
	// CarbonEmission is in kg CO2e and is never negative.
	CarbonEmission float64
	Unit           string
	// Details holds category-specific estimator input such as
	// {"type": "car", "distance": 12}. It is not validated against a schema.
	Details   map[string]any
	Source    FootprintSource
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FootprintFilter narrows a footprint listing. Nil fields are ignored.
type FootprintFilter struct {
	Category *Category
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}

// CategoryTotal is the summed emission of one category.
type CategoryTotal struct {
	Category Category
	Total    float64
}

// MonthTotal is the summed emission of one calendar month, keyed "YYYY-MM".
type MonthTotal struct {
	YearMonth string
	Total     float64
}

// Summary is the aggregated view of a user's footprint entries.
type Summary struct {
	Total      float64
	ByCategory []CategoryTotal
	ByMonth    []MonthTotal
}
