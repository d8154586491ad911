package theme

import "task-dashboard/internal/domain"

type Theme struct {
	Name string

	// semantic
	Primary   string
	Secondary string
	Success   string
	Error     string
	Warning   string
	Info      string

	// text
	TextPrimary   string
	TextSecondary string
	TextMuted     string

	// background
	BgPrimary   string
	BgSecondary string

	// priority
	PriorityCritical string
	PriorityUrgent   string
	PriorityHigh     string
	PriorityNormal   string
	PriorityLow      string
	PriorityLowest   string

	// status
	StatusCompleted string
	StatusActive    string
	StatusOverdue   string

	// UI element
	BorderColor   string
	SelectedBg    string
	SelectedFg    string
	HeaderBg      string
	HeaderFg      string
	Separator     string
	HelpText      string
	SubtitleText  string
	TableSelected string
}

// PriorityColor returns the theme color for p; unknown priorities use the normal color.
func (t *Theme) PriorityColor(p domain.Priority) string {
	switch p {
	case domain.PriorityCritical:
		return t.PriorityCritical
	case domain.PriorityUrgent:
		return t.PriorityUrgent
	case domain.PriorityHigh:
		return t.PriorityHigh
	case domain.PriorityLow:
		return t.PriorityLow
	case domain.PriorityLowest:
		return t.PriorityLowest
	default:
		return t.PriorityNormal
	}
}
