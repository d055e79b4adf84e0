package scoring

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Monday 2025-03-10 at 10:00 UTC, inside business hours.
var mondayMorning = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

// Saturday 2025-03-15 at 23:00 UTC, outside all timing buckets.
var saturdayNight = time.Date(2025, 3, 15, 23, 0, 0, 0, time.UTC)

func TestScoreHotLeadScenario(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	score := calc.Score(Input{
		Email:     "a@x.pt",
		Company:   "X",
		Source:    SourceHeroForm,
		Message:   "Preciso de orçamento urgente, reunião hoje",
		CreatedAt: mondayMorning,
	})

	// 15 company + 10 domain + 25 hero_form + 10 business hours + 5 weekday
	// + 4 high-intent keywords x5 = 85, no length bonus (42 runes)
	if score != 85 {
		t.Fatalf("expected score 85, got %d", score)
	}
}

func TestScoreColdLeadScenario(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	score := calc.Score(Input{
		Email:     "a@b.xyz",
		Source:    "unknown",
		Message:   "ola",
		CreatedAt: saturdayNight,
	})

	if score != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
}

func TestScoreEmptyInputsAreValid(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	score := calc.Score(Input{CreatedAt: saturdayNight})
	if score != 0 {
		t.Fatalf("expected score 0 for empty lead, got %d", score)
	}
}

func TestScoreClampedAtMaximum(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	// Every keyword list fully matched plus all structural bonuses.
	message := "urgente imediato agora hoje amanhã orçamento preço custo investimento " +
		"demo demonstração reunião apresentação implementar começar iniciar contratar " +
		"automação ia inteligência artificial bot crm sistema integração api dashboard " +
		"equipa funcionários colaboradores empresa negócio startup scale crescimento"

	score := calc.Score(Input{
		Email:     "ceo@empresa.pt",
		Company:   "Empresa Lda",
		Source:    SourceHeroForm,
		Message:   message,
		CreatedAt: mondayMorning,
	})

	if score != 150 {
		t.Fatalf("expected clamped score 150, got %d", score)
	}
}

func TestScoreTimingBuckets(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	cases := []struct {
		name string
		hour int
		want int
	}{
		{"early morning", 8, 5},
		{"business hours start", 9, 15},
		{"business hours end", 17, 15},
		{"evening start", 18, 10},
		{"evening end", 20, 10},
		{"late night", 21, 5},
	}

	for _, tc := range cases {
		createdAt := time.Date(2025, 3, 10, tc.hour, 0, 0, 0, time.UTC) // Monday
		score := calc.Score(Input{CreatedAt: createdAt})
		if score != tc.want {
			t.Fatalf("%s: expected score %d, got %d", tc.name, tc.want, score)
		}
	}
}

func TestScoreWeekendHasNoWeekdayBonus(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	sundayMorning := time.Date(2025, 3, 16, 10, 0, 0, 0, time.UTC)
	score := calc.Score(Input{CreatedAt: sundayMorning})
	if score != 10 {
		t.Fatalf("expected only business hours bonus 10, got %d", score)
	}
}

func TestScoreMessageLengthBonus(t *testing.T) {
	calc := NewCalculator(DefaultRules())

	medium := make([]byte, 60)
	long := make([]byte, 120)
	for i := range medium {
		medium[i] = 'x'
	}
	for i := range long {
		long[i] = 'x'
	}

	base := Input{CreatedAt: saturdayNight}

	short := base
	short.Message = "xxx"
	if got := calc.Score(short); got != 0 {
		t.Fatalf("short message: expected 0, got %d", got)
	}

	mediumIn := base
	mediumIn.Message = string(medium)
	if got := calc.Score(mediumIn); got != 5 {
		t.Fatalf("medium message: expected 5, got %d", got)
	}

	longIn := base
	longIn.Message = string(long)
	if got := calc.Score(longIn); got != 10 {
		t.Fatalf("long message: expected 10, got %d", got)
	}
}

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{0, PriorityLow},
		{39, PriorityLow},
		{40, PriorityMedium},
		{69, PriorityMedium},
		{70, PriorityHigh},
		{99, PriorityHigh},
		{100, PriorityUrgent},
		{150, PriorityUrgent},
	}

	for _, tc := range cases {
		if got := Classify(tc.score); got != tc.want {
			t.Fatalf("classify(%d): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

func TestClassifyMonotonic(t *testing.T) {
	previous := 0
	for score := 0; score <= 150; score++ {
		rank := Rank(Classify(score))
		if rank < previous {
			t.Fatalf("rank decreased at score %d", score)
		}
		previous = rank
	}
}

func TestRequiresAlert(t *testing.T) {
	if RequiresAlert(PriorityLow) || RequiresAlert(PriorityMedium) {
		t.Fatal("low and medium tiers must not alert")
	}
	if !RequiresAlert(PriorityHigh) || !RequiresAlert(PriorityUrgent) {
		t.Fatal("high and urgent tiers must alert")
	}
}

func TestBuildSequencePerPriority(t *testing.T) {
	cases := []struct {
		priority      string
		length        int
		firstTemplate string
		lastDelay     int
	}{
		{PriorityUrgent, 3, "welcome_urgent", 24},
		{PriorityHigh, 4, "welcome_hot", 168},
		{PriorityMedium, 5, "welcome_warm", 336},
		{PriorityLow, 4, "welcome_cold", 504},
	}

	for _, tc := range cases {
		sequence := BuildSequence(tc.priority)
		if len(sequence) != tc.length {
			t.Fatalf("%s: expected %d touchpoints, got %d", tc.priority, tc.length, len(sequence))
		}
		if sequence[0].DelayHours != 0 {
			t.Fatalf("%s: first touchpoint must be immediate", tc.priority)
		}
		if sequence[0].Template != tc.firstTemplate {
			t.Fatalf("%s: expected first template %s, got %s", tc.priority, tc.firstTemplate, sequence[0].Template)
		}
		if sequence[len(sequence)-1].DelayHours != tc.lastDelay {
			t.Fatalf("%s: expected last delay %d, got %d", tc.priority, tc.lastDelay, sequence[len(sequence)-1].DelayHours)
		}
		for i := 1; i < len(sequence); i++ {
			if sequence[i].DelayHours < sequence[i-1].DelayHours {
				t.Fatalf("%s: delays must be non-decreasing", tc.priority)
			}
		}
	}
}

func TestBuildSequenceUnknownPriorityFallsBackToCold(t *testing.T) {
	sequence := BuildSequence("whatever")
	if len(sequence) != 4 || sequence[0].Template != "welcome_cold" {
		t.Fatalf("expected cold-lead fallback, got %+v", sequence)
	}
}

func TestBuildSequenceReturnsCopy(t *testing.T) {
	first := BuildSequence(PriorityUrgent)
	first[0].Template = "mutated"

	second := BuildSequence(PriorityUrgent)
	if second[0].Template != "welcome_urgent" {
		t.Fatal("BuildSequence must not share backing arrays with callers")
	}
}

func TestSuggestRuleOrder(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		score int
		want  string
	}{
		{
			name:  "urgent score wins over everything",
			in:    Input{Message: "quero um orçamento e uma demo", Source: SourceHeroForm},
			score: 100,
			want:  "Ligar imediatamente. Lead muito quente com alta intenção de compra.",
		},
		{
			name:  "pricing beats demo",
			in:    Input{Message: "quanto custa? preço e demo por favor"},
			score: 50,
			want:  "Focar no ROI e valor. Preparar proposta comercial.",
		},
		{
			name:  "demo keyword",
			in:    Input{Message: "gostava de ver uma demonstração"},
			score: 50,
			want:  "Agendar demo personalizada. Lead quer ver o produto.",
		},
		{
			name:  "hero form source",
			in:    Input{Message: "ola", Source: SourceHeroForm},
			score: 50,
			want:  "Lead captado no hero, interesse inicial. Oferecer análise gratuita.",
		},
		{
			name:  "exit popup source",
			in:    Input{Message: "ola", Source: SourceExitPopup},
			score: 50,
			want:  "Lead captado no exit popup. Aproveitar desconto de 20%.",
		},
		{
			name:  "urgency keyword",
			in:    Input{Message: "é urgente", Source: SourceChatWidget},
			score: 50,
			want:  "Situação urgente. Contactar por telefone primeiro.",
		},
		{
			name:  "default",
			in:    Input{Message: "ola", Source: SourceChatWidget},
			score: 10,
			want:  "Enviar email personalizado com caso de estudo relevante.",
		},
	}

	for _, tc := range cases {
		if got := Suggest(tc.in, tc.score); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestLoadRulesEmptyPathReturnsDefaults(t *testing.T) {
	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.CompanyBonus != 15 || rules.MaxScore != 150 {
		t.Fatalf("expected defaults, got %+v", rules)
	}
}

func TestLoadRulesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	content := "companyBonus: 20\nmaxScore: 200\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write rules file: %v", err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rules.CompanyBonus != 20 {
		t.Fatalf("expected override companyBonus 20, got %d", rules.CompanyBonus)
	}
	if rules.MaxScore != 200 {
		t.Fatalf("expected override maxScore 200, got %d", rules.MaxScore)
	}
	if rules.EmailDomainBonus != 10 {
		t.Fatalf("untouched fields must keep defaults, got %d", rules.EmailDomainBonus)
	}
}
