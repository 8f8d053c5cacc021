// Package prompt renders the text sent to generators and parses their replies.
package prompt

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

// MaxRecentActivities is how many recent entries are quoted in a prompt.
const MaxRecentActivities = 10

// categoryLines lists per-category totals in canonical category order.
// Categories without entries are omitted.
func categoryLines(perCategory map[domain.Category]float64) string {
	var sb strings.Builder
	for _, c := range domain.AllCategories() {
		total, ok := perCategory[c]
		if !ok {
			continue
		}
		fmt.Fprintf(&sb, "- %s: %.2f kg CO2e\n", c, total)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// activityLines quotes up to MaxRecentActivities entries in the given order.
func activityLines(recent []domain.Footprint) string {
	if len(recent) > MaxRecentActivities {
		recent = recent[:MaxRecentActivities]
	}

	lines := make([]string, 0, len(recent))
	for _, fp := range recent {
		lines = append(lines, fmt.Sprintf("- %s (%s): %.2f kg CO2e", fp.Activity, fp.Category, fp.CarbonEmission))
	}
	return strings.Join(lines, "\n")
}
