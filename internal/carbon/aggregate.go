package carbon

import (
	"slices"
	"sort"
	"time"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// MonthWindow is the number of calendar months covered by Summary.ByMonth.
const MonthWindow = 6

const yearMonthLayout = "2006-01"

// Summarize reduces entries into a total, per-category totals sorted
// descending and per-month totals over the trailing MonthWindow months
// sorted ascending.
//
// Category ties keep the order in which the categories first appear in
// entries. Month keys are computed in UTC. The input is not modified.
func Summarize(entries []domain.Footprint, now time.Time) domain.Summary {
	summary := domain.Summary{
		ByCategory: []domain.CategoryTotal{},
		ByMonth:    []domain.MonthTotal{},
	}

	categoryIdx := make(map[domain.Category]int)
	monthTotals := make(map[string]float64)
	windowStart := now.AddDate(0, -MonthWindow, 0)

	for _, e := range entries {
		summary.Total += e.CarbonEmission

		if i, ok := categoryIdx[e.Category]; ok {
			summary.ByCategory[i].Total += e.CarbonEmission
		} else {
			categoryIdx[e.Category] = len(summary.ByCategory)
			summary.ByCategory = append(summary.ByCategory, domain.CategoryTotal{
				Category: e.Category,
				Total:    e.CarbonEmission,
			})
		}

		if e.Date.Before(windowStart) || e.Date.After(now) {
			continue
		}
		monthTotals[e.Date.UTC().Format(yearMonthLayout)] += e.CarbonEmission
	}

	sort.SliceStable(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total > summary.ByCategory[j].Total
	})

	keys := make([]string, 0, len(monthTotals))
	for k := range monthTotals {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		summary.ByMonth = append(summary.ByMonth, domain.MonthTotal{YearMonth: k, Total: monthTotals[k]})
	}

	return summary
}

// CategoryTotals returns the summed emission per category and the overall total.
func CategoryTotals(entries []domain.Footprint) (map[domain.Category]float64, float64) {
	totals := make(map[domain.Category]float64)
	var total float64
	for _, e := range entries {
		totals[e.Category] += e.CarbonEmission
		total += e.CarbonEmission
	}
	return totals, total
}
