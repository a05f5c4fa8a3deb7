package domain

// PriorityLevel is the dashboard's triage classification for an order.
type PriorityLevel string

const (
	// PriorityNormal means the order is within the expected delivery window.
	PriorityNormal PriorityLevel = "normal"
	// PriorityMedium means 10+ business days without delivery.
	PriorityMedium PriorityLevel = "medium"
	// PriorityHigh means 15+ business days without delivery.
	PriorityHigh PriorityLevel = "high"
	// PriorityCritical means an abnormal tracking status was detected.
	PriorityCritical PriorityLevel = "critical"
)

// priorityRank orders tiers for sorting: critical first.
var priorityRank = map[PriorityLevel]int{
	PriorityCritical: 0,
	PriorityHigh:     1,
	PriorityMedium:   2,
	PriorityNormal:   3,
}

// Rank returns the sort position of the tier; critical sorts first.
// Unknown tiers sort last.
func (p PriorityLevel) Rank() int {
	if rank, ok := priorityRank[p]; ok {
		return rank
	}
	return len(priorityRank)
}

// DeterminePriority assigns the triage tier. An abnormal status always
// dominates the age-based thresholds.
func DeterminePriority(businessDays int, hasAbnormalStatus bool) PriorityLevel {
	if hasAbnormalStatus {
		return PriorityCritical
	}
	if businessDays >= 15 {
		return PriorityHigh
	}
	if businessDays >= 10 {
		return PriorityMedium
	}
	return PriorityNormal
}

// PriorityStyle carries the presentation hints for one tier.
type PriorityStyle struct {
	// Label is the user-facing tier name.
	Label string `json:"label"`
	// Icon is the tier's badge glyph.
	Icon string `json:"icon"`
	// Color is the visual intent (green, yellow, red).
	Color string `json:"color"`
}

var priorityStyles = map[PriorityLevel]PriorityStyle{
	PriorityNormal:   {Label: "Normal", Icon: "✓", Color: "green"},
	PriorityMedium:   {Label: "Atenção", Icon: "⚡", Color: "yellow"},
	PriorityHigh:     {Label: "Atrasado", Icon: "⚠️", Color: "red"},
	PriorityCritical: {Label: "Crítico", Icon: "🚨", Color: "red"},
}

// Style returns the presentation hints for the tier, falling back to
// the normal style for unknown values.
func (p PriorityLevel) Style() PriorityStyle {
	if style, ok := priorityStyles[p]; ok {
		return style
	}
	return priorityStyles[PriorityNormal]
}
