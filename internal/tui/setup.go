package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"task-dashboard/internal/display"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/theme"
)

// SetupModel is the theme selector: a theme list with a live preview.
type SetupModel struct {
	save          func(name string) error
	selected      string
	err           error
	themes        []string
	selectedIndex int
	currentTheme  *theme.Theme
	width         int
	height        int
	quitting      bool
	confirmed     bool
}

// NewSetupModel creates a theme selector; save persists the chosen theme.
func NewSetupModel(save func(name string) error) SetupModel {
	themes := theme.ListThemes()
	currentTheme, _ := theme.GetTheme(themes[0])

	return SetupModel{
		save:          save,
		themes:        themes,
		selectedIndex: 0,
		currentTheme:  currentTheme,
		width:         100, // default width
		height:        30,  // default height
	}
}

// Selected is the confirmed theme name, empty when the selector was cancelled.
func (m SetupModel) Selected() string {
	return m.selected
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("q", "ctrl+c"))):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if m.selectedIndex > 0 {
				m.selectedIndex--
				t, _ := theme.GetTheme(m.themes[m.selectedIndex])
				m.currentTheme = t
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if m.selectedIndex < len(m.themes)-1 {
				m.selectedIndex++
				t, _ := theme.GetTheme(m.themes[m.selectedIndex])
				m.currentTheme = t
			}
			return m, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			selectedTheme := m.themes[m.selectedIndex]
			if m.save != nil {
				if err := m.save(selectedTheme); err != nil {
					m.err = err
					return m, nil
				}
			}
			m.selected = selectedTheme
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m SetupModel) View() string {
	if m.quitting {
		if m.confirmed {
			return ""
		}
		return "Theme selection cancelled.\n"
	}

	// create styles for the current theme
	styles := theme.NewStyles(m.currentTheme)

	// calculate dimensions with safety checks
	leftWidth := m.width / 3
	if leftWidth < 30 {
		leftWidth = 30
	}
	rightWidth := m.width - leftWidth - 4
	if rightWidth < 30 {
		rightWidth = 30
	}

	// ensure minimum dimensions
	if m.width < 60 || m.height < 10 {
		return "Terminal too small. Please resize and try again.\n"
	}

	// render left side (theme list)
	leftContent := m.renderThemeList(styles, leftWidth)

	// render right side (preview)
	rightContent := m.renderPreview(styles, rightWidth)

	// combine left and right with lipgloss
	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(m.height - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.currentTheme.BorderColor)).
		Padding(1).
		Render(leftContent)

	right := lipgloss.NewStyle().
		Width(rightWidth).
		Height(m.height - 4).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.currentTheme.BorderColor)).
		Padding(1).
		Render(rightContent)

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	// header
	header := styles.TUITitle.Render("Task Dashboard Theme")
	subtitle := styles.TUISubtitle.Render("Pick a theme; the preview follows the highlighted row")

	// footer
	help := styles.TUIHelp.Render("↑/k: up • ↓/j: down • enter: confirm • q: quit")
	if m.err != nil {
		help = styles.Error.Render(fmt.Sprintf("✗ failed to save theme: %v", m.err)) + "\n" + help
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s", header, subtitle, main, help)
}

func (m SetupModel) renderThemeList(styles *theme.Styles, width int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.currentTheme.Primary)).
		Render("Available Themes")

	b.WriteString(title)
	b.WriteString("\n\n")

	for i, themeName := range m.themes {
		prefix := "  "
		if i == m.selectedIndex {
			prefix = "▶ "
		}

		line := fmt.Sprintf("%s%s", prefix, themeName)

		if i == m.selectedIndex {
			// highlight selected theme
			line = lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.currentTheme.SelectedFg)).
				Background(lipgloss.Color(m.currentTheme.SelectedBg)).
				Bold(true).
				Width(width - 4).
				Render(line)
		} else {
			line = lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.currentTheme.TextSecondary)).
				Width(width - 4).
				Render(line)
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}

func (m SetupModel) renderPreview(styles *theme.Styles, width int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(m.currentTheme.Primary)).
		Render("Preview")

	b.WriteString(title)
	b.WriteString("\n\n")

	now := time.Now()
	day := func(offset int) string {
		return now.AddDate(0, 0, offset).Format(domain.DateLayout)
	}
	done := now.Add(-time.Hour)

	sampleTasks := []struct {
		task   *domain.Task
		folder string
		color  string
	}{
		{
			task: &domain.Task{
				ID:        1,
				Title:     "Quarterly report draft",
				Priority:  domain.PriorityUrgent,
				StartDate: day(-2),
				EndDate:   day(1),
				Subtasks:  []domain.Subtask{{Text: "Collect numbers", Completed: true}, {Text: "Write summary"}},
			},
			folder: "Project A",
			color:  domain.PaletteColor(2),
		},
		{
			task: &domain.Task{
				ID:        2,
				Title:     "Summer vacation",
				Priority:  domain.PriorityNormal,
				StartDate: day(10),
				EndDate:   day(14),
				LeaveDays: 5,
			},
			folder: "Leave Requests",
			color:  domain.PaletteColor(1),
		},
		{
			task: &domain.Task{
				ID:          3,
				Title:       "Renew office lease",
				Priority:    domain.PriorityHigh,
				EndDate:     day(-3),
				Completed:   true,
				CompletedAt: &done,
			},
			folder: "General",
			color:  domain.PaletteColor(0),
		},
		{
			task: &domain.Task{
				ID:       4,
				Title:    "Update vendor contacts",
				Priority: domain.PriorityCritical,
				EndDate:  day(-1),
			},
			folder: "General",
			color:  domain.PaletteColor(0),
		},
	}

	for i, sample := range sampleTasks {
		if i > 0 {
			sepWidth := width - 4
			if sepWidth < 1 {
				sepWidth = 1
			}
			sep := strings.Repeat("─", sepWidth)
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.currentTheme.Separator)).
				Render(sep))
			b.WriteString("\n")
		}

		b.WriteString(m.renderTaskPreview(styles, sample.task, sample.folder, sample.color, now))
	}

	return b.String()
}

func (m SetupModel) renderTaskPreview(styles *theme.Styles, task *domain.Task, folder, color string, now time.Time) string {
	var b strings.Builder

	overdue := !task.Completed && strings.HasPrefix(display.FormatDDay(task.EndDate, now), "D+")

	statusIcon := display.GetStatusIcon(task)
	titleLine := fmt.Sprintf("%s %s", statusIcon, task.Title)
	b.WriteString(styles.GetTaskStyle(task, overdue).Bold(true).Render(titleLine))
	if n := display.FormatSubtasks(task); n != "" {
		b.WriteString(styles.Muted.Render(" [" + n + "]"))
	}
	b.WriteString("\n")

	priorityIcon := display.GetPriorityIcon(task.Priority)
	priorityStyle := styles.GetPriorityTextStyle(task.Priority)
	infoLine := fmt.Sprintf("  %s %s | %s | %s",
		priorityIcon,
		priorityStyle.Render(display.PriorityLabel(task.Priority)),
		display.FormatPeriod(task),
		display.FormatDDay(task.EndDate, now),
	)
	b.WriteString(infoLine)
	b.WriteString("\n")

	b.WriteString("  ")
	b.WriteString(theme.Swatch(color, fmt.Sprintf("📁 %s", folder)))
	b.WriteString("\n\n")

	return b.String()
}
