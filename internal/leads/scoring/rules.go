// Package scoring implements the lead qualification engine: an additive
// score calculator, a priority classifier, the nurturing sequence builder
// and the approach suggester. Everything in this package is a pure function
// over its inputs; persistence and alerting live in the service layer.
package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules holds the tunable tables for the score calculator. Values not set in
// an override file keep their defaults.
type Rules struct {
	CompanyBonus int `yaml:"companyBonus"`

	EmailDomainBonus   int      `yaml:"emailDomainBonus"`
	EmailDomainMarkers []string `yaml:"emailDomainMarkers"`

	SourceBonuses map[string]int `yaml:"sourceBonuses"`

	BusinessHoursBonus int `yaml:"businessHoursBonus"`
	EveningHoursBonus  int `yaml:"eveningHoursBonus"`
	WeekdayBonus       int `yaml:"weekdayBonus"`

	HighIntentKeywords []string `yaml:"highIntentKeywords"`
	HighIntentBonus    int      `yaml:"highIntentBonus"`

	TechKeywords []string `yaml:"techKeywords"`
	TechBonus    int      `yaml:"techBonus"`

	CompanySizeKeywords []string `yaml:"companySizeKeywords"`
	CompanySizeBonus    int      `yaml:"companySizeBonus"`

	LongMessageChars  int `yaml:"longMessageChars"`
	LongMessageBonus  int `yaml:"longMessageBonus"`
	ShortMessageChars int `yaml:"shortMessageChars"`
	ShortMessageBonus int `yaml:"shortMessageBonus"`

	MaxScore int `yaml:"maxScore"`
}

// DefaultRules returns the canonical rule tables.
func DefaultRules() Rules {
	return Rules{
		CompanyBonus: 15,

		EmailDomainBonus:   10,
		EmailDomainMarkers: []string{".pt", ".es", ".com"},

		SourceBonuses: map[string]int{
			SourceHeroForm:    25,
			SourceExitPopup:   20,
			SourceContactForm: 15,
		},

		BusinessHoursBonus: 10,
		EveningHoursBonus:  5,
		WeekdayBonus:       5,

		HighIntentKeywords: []string{
			"urgente", "imediato", "agora", "hoje", "amanhã",
			"orçamento", "preço", "custo", "investimento",
			"demo", "demonstração", "reunião", "apresentação",
			"implementar", "começar", "iniciar", "contratar",
		},
		HighIntentBonus: 5,

		TechKeywords: []string{
			"automação", "ia", "inteligência artificial", "bot",
			"crm", "sistema", "integração", "api", "dashboard",
		},
		TechBonus: 3,

		CompanySizeKeywords: []string{
			"equipa", "funcionários", "colaboradores", "empresa",
			"negócio", "startup", "scale", "crescimento",
		},
		CompanySizeBonus: 2,

		LongMessageChars:  100,
		LongMessageBonus:  10,
		ShortMessageChars: 50,
		ShortMessageBonus: 5,

		MaxScore: 150,
	}
}

// LoadRules reads a YAML override file on top of the defaults. An empty path
// returns the defaults unchanged.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read scoring rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse scoring rules %s: %w", path, err)
	}
	return rules, nil
}
