package theme

import (
	"task-dashboard/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

type Styles struct {
	// cli
	Success   lipgloss.Style
	Error     lipgloss.Style
	Info      lipgloss.Style
	Warning   lipgloss.Style
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Header    lipgloss.Style
	Cell      lipgloss.Style
	Muted     lipgloss.Style
	Separator lipgloss.Style

	// priority
	PriorityRows map[domain.Priority]lipgloss.Style
	PriorityText map[domain.Priority]lipgloss.Style

	// tui
	TUITitle        lipgloss.Style
	TUISubtitle     lipgloss.Style
	TUIHelp         lipgloss.Style
	Sidebar         lipgloss.Style
	SidebarSelected lipgloss.Style
	SidebarActive   lipgloss.Style
	DetailContainer lipgloss.Style
	DetailLabel     lipgloss.Style
	DetailValue     lipgloss.Style
	CompletedText   lipgloss.Style
	ActiveText      lipgloss.Style
	OverdueText     lipgloss.Style
}

// creates all styles based on the given theme
func NewStyles(t *Theme) *Styles {
	s := &Styles{
		// cli
		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Error)).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.Secondary)).
			PaddingTop(1).
			PaddingBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SubtitleText)).
			Italic(true),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.HeaderFg)).
			Background(lipgloss.Color(t.HeaderBg)).
			PaddingLeft(1).
			PaddingRight(1),

		Cell: lipgloss.NewStyle().
			PaddingLeft(1).
			PaddingRight(1),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextMuted)),

		Separator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Separator)),

		PriorityRows: make(map[domain.Priority]lipgloss.Style, len(domain.Priorities)),
		PriorityText: make(map[domain.Priority]lipgloss.Style, len(domain.Priorities)),

		// tui
		TUITitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(t.TextPrimary)).
			Background(lipgloss.Color(t.HeaderBg)).
			Padding(0, 1),

		TUISubtitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextSecondary)),

		TUIHelp: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.HelpText)),

		Sidebar: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderRight(true).
			BorderForeground(lipgloss.Color(t.Separator)).
			PaddingRight(1),

		SidebarSelected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.SelectedFg)).
			Background(lipgloss.Color(t.SelectedBg)),

		SidebarActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		DetailContainer: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.BorderColor)).
			Padding(1, 2),

		DetailLabel: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Primary)).
			Bold(true),

		DetailValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.TextPrimary)),

		// status
		CompletedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.StatusCompleted)).
			Strikethrough(true),

		ActiveText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.StatusActive)),

		OverdueText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.StatusOverdue)).
			Bold(true),
	}

	for _, p := range domain.Priorities {
		color := lipgloss.Color(t.PriorityColor(p))
		s.PriorityRows[p] = lipgloss.NewStyle().Foreground(color)
		text := lipgloss.NewStyle().Foreground(color)
		if p.Rank() >= domain.PriorityUrgent.Rank() {
			text = text.Bold(true)
		}
		s.PriorityText[p] = text
	}

	return s
}

func (s *Styles) GetPriorityStyle(priority domain.Priority) lipgloss.Style {
	if style, ok := s.PriorityRows[priority]; ok {
		return style
	}
	return s.Cell
}

func (s *Styles) GetPriorityTextStyle(priority domain.Priority) lipgloss.Style {
	if style, ok := s.PriorityText[priority]; ok {
		return style
	}
	return s.DetailValue
}

// GetTaskStyle picks the status style of a task row: completed, overdue or active.
func (s *Styles) GetTaskStyle(task *domain.Task, overdue bool) lipgloss.Style {
	switch {
	case task.Completed:
		return s.CompletedText
	case overdue:
		return s.OverdueText
	default:
		return s.ActiveText
	}
}

// Swatch renders text in an arbitrary hex color, such as a folder color.
func Swatch(color, text string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(text)
}
