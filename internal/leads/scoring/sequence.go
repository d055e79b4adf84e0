package scoring

// Touchpoint is a single planned follow-up in a nurturing sequence.
type Touchpoint struct {
	DelayHours int    `json:"delayHours"`
	Template   string `json:"template"`
}

// nurturingSequences maps priority tiers to their follow-up plans. Urgent
// leads get a short accelerated sequence, cold leads a long educational one.
var nurturingSequences = map[string][]Touchpoint{
	PriorityUrgent: {
		{DelayHours: 0, Template: "welcome_urgent"},
		{DelayHours: 2, Template: "case_study_relevant"},
		{DelayHours: 24, Template: "demo_invitation"},
	},
	PriorityHigh: {
		{DelayHours: 0, Template: "welcome_hot"},
		{DelayHours: 4, Template: "value_proposition"},
		{DelayHours: 48, Template: "social_proof"},
		{DelayHours: 168, Template: "special_offer"},
	},
	PriorityMedium: {
		{DelayHours: 0, Template: "welcome_warm"},
		{DelayHours: 24, Template: "educational_content"},
		{DelayHours: 72, Template: "case_study"},
		{DelayHours: 168, Template: "webinar_invitation"},
		{DelayHours: 336, Template: "final_offer"},
	},
	PriorityLow: {
		{DelayHours: 0, Template: "welcome_cold"},
		{DelayHours: 72, Template: "industry_insights"},
		{DelayHours: 168, Template: "educational_series"},
		{DelayHours: 504, Template: "reengagement"},
	},
}

// BuildSequence returns the nurturing plan for a priority tier. Unknown
// tiers fall back to the cold-lead sequence. The returned slice is a copy.
func BuildSequence(priority string) []Touchpoint {
	sequence, ok := nurturingSequences[priority]
	if !ok {
		sequence = nurturingSequences[PriorityLow]
	}
	return append([]Touchpoint(nil), sequence...)
}
