package scoring

// Priority tiers, ordered from coldest to hottest.
const (
	PriorityLow    = "baixa"
	PriorityMedium = "media"
	PriorityHigh   = "alta"
	PriorityUrgent = "urgente"
)

// Classification thresholds (inclusive lower bounds). Exported so callers
// and tests can assert boundary behavior exactly.
const (
	ThresholdMedium = 40
	ThresholdHigh   = 70
	ThresholdUrgent = 100
)

// Classify maps a score to a priority tier. Pure and deterministic.
func Classify(score int) string {
	switch {
	case score >= ThresholdUrgent:
		return PriorityUrgent
	case score >= ThresholdHigh:
		return PriorityHigh
	case score >= ThresholdMedium:
		return PriorityMedium
	default:
		return PriorityLow
	}
}

// Rank returns the ordinal position of a priority tier, with baixa lowest.
// Unknown tiers rank below baixa.
func Rank(priority string) int {
	switch priority {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	default:
		return 0
	}
}

// RequiresAlert reports whether leads of this tier trigger a sales alert.
func RequiresAlert(priority string) bool {
	return priority == PriorityHigh || priority == PriorityUrgent
}

// ActionWindow returns the human-readable contact window for a tier that
// requires an alert, or an empty string otherwise.
func ActionWindow(priority string) string {
	switch priority {
	case PriorityUrgent:
		return "nos próximos 15 minutos"
	case PriorityHigh:
		return "nas próximas 4 horas"
	default:
		return ""
	}
}
