package carbon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// EPA greenhouse gas equivalency factors, kg CO2e per unit of the
// equivalent activity: equivalency = kg / factor.
const (
	MilesDrivenFactor      = 0.192
	SmartphoneChargeFactor = 0.00822
	TreeSeedlingFactor     = 60.0
	HomeEnergyDayFactor    = 18.3
)

// MinEquivalencyKg is the smallest total for which equivalencies are shown.
const MinEquivalencyKg = 1.0

var printer = message.NewPrinter(language.English)

// EquivalencyKind identifies an everyday activity used for comparison.
type EquivalencyKind string

const (
	EquivalencyMilesDriven       EquivalencyKind = "miles_driven"
	EquivalencySmartphoneCharges EquivalencyKind = "smartphones_charged"
	EquivalencyTreeSeedlings     EquivalencyKind = "tree_seedlings_grown_10_years"
	EquivalencyHomeEnergyDays    EquivalencyKind = "home_energy_days"
)

// EquivalencyResult is one comparison value.
type EquivalencyResult struct {
	Kind      EquivalencyKind
	Value     float64
	Formatted string
	Label     string
}

// Equivalency expresses an emission total in everyday terms.
type Equivalency struct {
	InputKg     float64
	Results     []EquivalencyResult
	DisplayText string
	Comparison  string
}

// Equivalents converts kg CO2e into everyday equivalencies. Totals below
// MinEquivalencyKg only carry the comparison text.
func Equivalents(kg float64) Equivalency {
	out := Equivalency{InputKg: kg, Comparison: CompareEmission(kg)}
	if kg < MinEquivalencyKg || math.IsInf(kg, 0) || math.IsNaN(kg) {
		return out
	}

	miles := kg / MilesDrivenFactor
	phones := kg / SmartphoneChargeFactor
	trees := kg / TreeSeedlingFactor
	homeDays := kg / HomeEnergyDayFactor

	out.Results = []EquivalencyResult{
		{Kind: EquivalencyMilesDriven, Value: miles, Formatted: FormatQuantity(miles), Label: "miles driven"},
		{Kind: EquivalencySmartphoneCharges, Value: phones, Formatted: FormatQuantity(phones), Label: "smartphones charged"},
		{Kind: EquivalencyTreeSeedlings, Value: trees, Formatted: FormatFloat(trees, 1), Label: "tree seedlings grown for 10 years"},
		{Kind: EquivalencyHomeEnergyDays, Value: homeDays, Formatted: FormatFloat(homeDays, 1), Label: "days of home electricity"},
	}
	out.DisplayText = fmt.Sprintf("Equivalent to driving ~%s miles or charging ~%s smartphones",
		out.Results[0].Formatted, out.Results[1].Formatted)

	return out
}

// CompareEmission describes an emission amount relative to familiar trips.
func CompareEmission(kg float64) string {
	switch {
	case kg <= 0:
		return "no significant emissions"
	case kg < 1:
		return "less than a typical car trip"
	case kg < 5:
		return "about the same as a short car trip"
	case kg < 20:
		return "similar to a long car journey"
	case kg < 50:
		return "equivalent to a domestic flight"
	default:
		return "a significant carbon footprint"
	}
}

// GoalProgress compares a total against the user's carbon goal.
type GoalProgress struct {
	Goal float64
	// Percent is total/goal×100 capped at 100.
	Percent float64
	OnTrack bool
	// DeltaPercent is how far below (negative) or above (positive) the goal
	// the total is, relative to the goal.
	DeltaPercent float64
}

// ProgressTowardGoal reports progress against goal. Reports false when no
// goal is set.
func ProgressTowardGoal(total, goal float64) (GoalProgress, bool) {
	if goal <= 0 {
		return GoalProgress{}, false
	}
	return GoalProgress{
		Goal:         goal,
		Percent:      math.Min(100, total/goal*100),
		OnTrack:      total <= goal,
		DeltaPercent: (total - goal) / goal * 100,
	}, true
}

// FormatQuantity formats a value as a rounded integer with thousand
// separators, abbreviating millions and billions.
func FormatQuantity(n float64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("~%.1f billion", n/1_000_000_000)
	case n >= 1_000_000:
		return fmt.Sprintf("~%.1f million", n/1_000_000)
	default:
		return printer.Sprintf("%d", int64(math.Round(n)))
	}
}

// FormatFloat formats f with the given precision and thousand separators
// in the integer part.
func FormatFloat(f float64, precision int) string {
	formatted := strconv.FormatFloat(f, 'f', precision, 64)
	intPart, frac, hasFrac := strings.Cut(formatted, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return formatted
	}
	grouped := printer.Sprintf("%d", n)
	if intPart == "-0" {
		grouped = "-0"
	}
	if !hasFrac {
		return grouped
	}
	return grouped + "." + frac
}
