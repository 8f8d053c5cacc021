package prompt

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/carbontrack-backend/internal/domain"
)

const coachPersona = "You are a helpful AI assistant that can answer any question the user asks. "

const coachStyle = "Respond in a helpful, conversational way. If asked about carbon footprint, provide specific, " +
	"actionable advice based on the user's data if available. Keep responses concise (2-3 sentences). " +
	"If asked about categories with no data, suggest ways to start tracking them. " +
	"For any other questions, provide accurate and helpful information."

// CoachContext is the user data the coach may refer to.
type CoachContext struct {
	UserName    string
	CarbonGoal  float64
	PerCategory map[domain.Category]float64
	Total       float64
	// Highest is empty when there are no emissions.
	Highest domain.Category
	// Recent must be ordered newest first.
	Recent []domain.Footprint
}

// HasData reports whether any footprint data is available.
func (c CoachContext) HasData() bool {
	return len(c.Recent) > 0 || len(c.PerCategory) > 0
}

// CoachSystem renders the coach persona, enriched with the user's data when
// there is any.
func CoachSystem(c CoachContext) string {
	var sb strings.Builder
	sb.WriteString(coachPersona)

	if c.HasData() {
		sb.WriteString("You are also a Carbon Coach that helps users understand and reduce their carbon footprint.\n\n")
		sb.WriteString("User's carbon footprint data:\n")
		fmt.Fprintf(&sb, "- Total Carbon Footprint: %.2f kg CO2e\n", c.Total)
		highest := string(c.Highest)
		if highest == "" {
			highest = "No data"
		}
		fmt.Fprintf(&sb, "- Highest emission category: %s\n", highest)
		if lines := categoryLines(c.PerCategory); lines != "" {
			sb.WriteString(lines)
			sb.WriteString("\n")
		}

		sb.WriteString("\nRecent Activities:\n")
		if lines := activityLines(c.Recent); lines != "" {
			sb.WriteString(lines)
		} else {
			sb.WriteString("No recent activities")
		}

		name := c.UserName
		if name == "" {
			name = "User"
		}
		goal := "Not set"
		if c.CarbonGoal > 0 {
			goal = fmt.Sprintf("%g kg CO2e", c.CarbonGoal)
		}
		fmt.Fprintf(&sb, "\n\nUser's name: %s\nUser's carbon goal: %s\n", name, goal)
	}

	sb.WriteString("\n")
	sb.WriteString(coachStyle)
	return sb.String()
}

// Suggestion asks for one short question the user could put to the coach
// about their highest category.
func Suggestion(highest domain.Category, total float64) domain.Prompt {
	text := fmt.Sprintf("A user's highest emission category is %s, and their total footprint is %.2f kg CO2e. "+
		"Suggest one short question (under 15 words) they could ask a carbon coach to reduce it. "+
		"Reply with the question only.", highest, total)
	return domain.NewUserPrompt(text)
}

// FallbackSuggestion is used when the generator cannot produce a question.
func FallbackSuggestion(highest domain.Category) string {
	return fmt.Sprintf("How can I reduce my %s emissions?", highest)
}

// CleanSuggestion trims quotes and whitespace and keeps only the first line.
func CleanSuggestion(text string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(text), "\n")
	return strings.Trim(strings.TrimSpace(line), `"'`)
}
