package scoring

import (
	"strings"
	"time"
)

// Known lead sources.
const (
	SourceHeroForm    = "hero_form"
	SourceContactForm = "contact_form"
	SourceExitPopup   = "exit_popup"
	SourceChatWidget  = "chat_widget"
	SourceLinkedIn    = "linkedin"
)

// Input is the slice of a lead the calculator reads. Missing fields are
// valid and simply contribute zero points.
type Input struct {
	Email     string
	Company   string
	Message   string
	Source    string
	CreatedAt time.Time
}

// Calculator scores leads against a rule table.
type Calculator struct {
	rules Rules
}

// NewCalculator creates a calculator with the given rules.
func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

// Score computes the additive lead score, clamped to the configured maximum.
// Deterministic, no side effects.
func (c *Calculator) Score(in Input) int {
	score := 0

	// Demographics
	if strings.TrimSpace(in.Company) != "" {
		score += c.rules.CompanyBonus
	}
	email := strings.ToLower(in.Email)
	if email != "" {
		for _, marker := range c.rules.EmailDomainMarkers {
			if strings.Contains(email, marker) {
				score += c.rules.EmailDomainBonus
				break
			}
		}
	}

	// Source
	score += c.rules.SourceBonuses[in.Source]

	// Timing
	createdAt := in.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	hour := createdAt.Hour()
	switch {
	case hour >= 9 && hour < 18:
		score += c.rules.BusinessHoursBonus
	case hour >= 18 && hour < 21:
		score += c.rules.EveningHoursBonus
	}
	if weekday := createdAt.Weekday(); weekday >= time.Monday && weekday <= time.Friday {
		score += c.rules.WeekdayBonus
	}

	// Message content
	message := strings.ToLower(in.Message)
	score += countMatches(message, c.rules.HighIntentKeywords) * c.rules.HighIntentBonus
	score += countMatches(message, c.rules.TechKeywords) * c.rules.TechBonus
	score += countMatches(message, c.rules.CompanySizeKeywords) * c.rules.CompanySizeBonus

	// Length bonus
	length := len([]rune(message))
	switch {
	case length > c.rules.LongMessageChars:
		score += c.rules.LongMessageBonus
	case length > c.rules.ShortMessageChars:
		score += c.rules.ShortMessageBonus
	}

	if score > c.rules.MaxScore {
		score = c.rules.MaxScore
	}
	return score
}

func countMatches(message string, keywords []string) int {
	if message == "" {
		return 0
	}
	matches := 0
	for _, keyword := range keywords {
		if strings.Contains(message, keyword) {
			matches++
		}
	}
	return matches
}
