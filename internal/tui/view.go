package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"task-dashboard/internal/display"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/stats"
	"task-dashboard/internal/theme"
)

const (
	sidebarWidth  = 28
	chromeHeight  = 9
	minListHeight = 3
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.TUITitle.Render("  Task Dashboard  "))
	b.WriteString("\n\n")
	b.WriteString(m.renderCounters())
	b.WriteString("\n\n")

	var main string
	switch {
	case m.uiMode == detailMode:
		main = m.renderDetailView()
	case m.board.Session.View == domain.ViewDashboard:
		main = m.renderDashboard()
	case m.board.Session.View == domain.ViewCalendar:
		main = m.renderCalendar()
	default:
		main = m.renderTaskList()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Sidebar.Width(sidebarWidth).Render(m.renderSidebar()),
		lipgloss.NewStyle().PaddingLeft(2).Render(main),
	)
	b.WriteString(body)
	b.WriteString("\n\n")

	if m.uiMode == searchingMode {
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(m.styles.TUIHelp.Render(m.help.View(m.keys)))

	return b.String()
}

// renderCounters draws the four quick-stat cards; the active stat is framed.
func (m Model) renderCounters() string {
	c := m.result.Counters
	cards := []struct {
		stat  string
		label string
		value int
		color string
	}{
		{query.StatAll, "Total", c.Total, m.theme.Primary},
		{query.StatActive, "Active", c.Active, m.theme.StatusActive},
		{query.StatCompleted, "Completed", c.Completed, m.theme.StatusCompleted},
		{query.StatUrgent, "Urgent", c.Urgent, m.theme.PriorityUrgent},
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		style := lipgloss.NewStyle().
			Foreground(lipgloss.Color(card.color)).
			Padding(0, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(m.theme.Separator))
		if card.stat == m.board.Session.Stat {
			style = style.BorderForeground(lipgloss.Color(card.color)).Bold(true)
		}
		rendered = append(rendered, style.Render(fmt.Sprintf("%s %d", card.label, card.value)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderSidebar() string {
	var b strings.Builder

	for i, item := range m.items {
		if i == 3 {
			b.WriteString(m.styles.Muted.Render("Folders"))
			b.WriteString("\n")
		}

		line := strings.Repeat("  ", item.depth)
		if item.folder {
			marker := "  "
			if item.hasChildren {
				marker = "▾ "
				if item.collapsed {
					marker = "▸ "
				}
			}
			line += marker + theme.Swatch(item.color, "●") + " " + display.Truncate(item.label, sidebarWidth-6-2*item.depth)
		} else {
			line += item.label
		}

		switch {
		case i == m.sidebarCursor && m.focus == sidebarFocus:
			line = m.styles.SidebarSelected.Render("▶ " + line)
		case item.view == m.board.Session.View:
			line = m.styles.SidebarActive.Render("  " + line)
		default:
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(m.items) == 3 {
		b.WriteString(m.styles.Muted.Render("No folders yet"))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTaskList() string {
	var b strings.Builder

	b.WriteString(m.styles.DetailLabel.Render(m.viewTitle()))
	if m.board.Session.ManualSort {
		b.WriteString(m.styles.Muted.Render("  (manual order)"))
	}
	b.WriteString("\n\n")

	if len(m.tasks) == 0 {
		if m.hasActiveFilters() {
			b.WriteString(m.styles.Info.Render("No tasks found matching the filters."))
		} else {
			b.WriteString(m.styles.Info.Render("No tasks yet."))
		}
		b.WriteString("\n")
		return b.String()
	}

	now := m.now()
	start, end := window(len(m.tasks), m.listCursor, m.listHeight())
	for i := start; i < end; i++ {
		task := m.tasks[i]
		if i == len(m.result.Active) && i > 0 {
			b.WriteString(m.styles.Separator.Render(strings.Repeat("─", 20) + " completed"))
			b.WriteString("\n")
		}
		b.WriteString(m.renderTaskRow(task, i == m.listCursor && m.focus == listFocus, now))
		b.WriteString("\n")
	}
	if end < len(m.tasks) || start > 0 {
		b.WriteString(m.styles.Muted.Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(m.tasks))))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTaskRow(task *domain.Task, selected bool, now time.Time) string {
	days, dated := query.DaysUntil(task.EndDate, now)
	overdue := dated && days < 0 && !task.Completed

	title := display.Truncate(task.Title, 40)
	if n := display.FormatSubtasks(task); n != "" {
		title += " [" + n + "]"
	}
	if len(task.Attachments) > 0 {
		title += " 📎"
	}

	folder := theme.Swatch(m.board.FolderColor(task), "●") + " " + display.Truncate(m.board.FolderName(task), 14)
	row := fmt.Sprintf("%s %s %-46s %s  %s",
		display.GetStatusIcon(task),
		m.styles.GetPriorityTextStyle(task.Priority).Render(display.GetPriorityIcon(task.Priority)),
		m.styles.GetTaskStyle(task, overdue).Render(title),
		folder,
		display.FormatDDay(task.EndDate, now),
	)

	if selected {
		return m.styles.SidebarSelected.Render("▶ ") + row
	}
	return "  " + row
}

func (m Model) renderDetailView() string {
	task := m.selectedTask()
	if task == nil {
		return m.styles.Info.Render("No task selected.")
	}
	now := m.now()

	var b strings.Builder
	b.WriteString(m.styles.DetailLabel.Render(fmt.Sprintf("#%d %s", task.ID, task.Title)))
	b.WriteString("\n\n")

	members := strings.Join(m.board.MemberNames(task), ", ")
	if members == "" {
		members = "-"
	}
	rows := [][2]string{
		{"Folder", m.board.Tree.Path(task.FolderID)},
		{"Priority", display.GetPriorityIcon(task.Priority) + " " + display.PriorityLabel(task.Priority)},
		{"Period", display.FormatPeriod(task)},
		{"Due", display.FormatDueDate(task.EndDate, now) + "  " + display.FormatDDay(task.EndDate, now)},
		{"Members", members},
		{"Status", m.statusLabel(task)},
		{"Created", display.FormatRelative(&task.CreatedAt)},
	}
	if rows[0][1] == "" {
		rows[0][1] = m.board.FolderName(task)
	}
	for _, r := range rows {
		b.WriteString(m.renderDetailRow(r[0], r[1]))
	}

	if len(task.Subtasks) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailLabel.Render("Subtasks " + display.FormatSubtasks(task)))
		b.WriteString("\n")
		for _, s := range task.Subtasks {
			box := "[ ]"
			if s.Completed {
				box = "[x]"
			}
			b.WriteString(fmt.Sprintf("  %s %s\n", box, s.Text))
		}
	}

	if len(task.Attachments) > 0 {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailLabel.Render("Attachments"))
		b.WriteString("\n")
		for _, a := range task.Attachments {
			b.WriteString(fmt.Sprintf("  📎 %s (%s)\n", a.Name, display.FormatSize(a.Size)))
		}
	}

	if task.Notes != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.DetailLabel.Render("Notes"))
		b.WriteString("\n")
		b.WriteString(m.styles.DetailValue.Render(task.Notes))
		b.WriteString("\n")
	}

	return m.styles.DetailContainer.Render(b.String())
}

func (m Model) renderDetailRow(label, value string) string {
	return fmt.Sprintf("%s %s\n",
		m.styles.DetailLabel.Render(fmt.Sprintf("%-9s", label+":")),
		m.styles.DetailValue.Render(value))
}

func (m Model) statusLabel(task *domain.Task) string {
	if task.Completed {
		if task.CompletedAt != nil {
			return "Completed " + display.FormatRelative(task.CompletedAt)
		}
		return "Completed"
	}
	return "Active"
}

func (m Model) renderDashboard() string {
	d := stats.Dashboard(m.board, m.now())
	var b strings.Builder

	b.WriteString(m.styles.DetailLabel.Render("Dashboard"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Completion: %.1f%%\n", d.Counters.CompletionRate()))
	b.WriteString(fmt.Sprintf("Priorities: %s\n\n", d.GetPriorityDistribution()))

	b.WriteString(m.styles.DetailLabel.Render("Progress by folder"))
	b.WriteString("\n")
	if len(d.Progress) == 0 {
		b.WriteString(m.styles.Muted.Render("  No folders"))
		b.WriteString("\n")
	}
	for _, p := range d.Progress {
		bar := progressBar(p.Percent, 20)
		b.WriteString(fmt.Sprintf("  %s %-16s %s %3d%% (%d/%d)\n",
			theme.Swatch(p.Color, "●"), display.Truncate(p.Name, 16),
			theme.Swatch(p.Color, bar), p.Percent, p.Completed, p.Total))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.DetailLabel.Render("Top urgent"))
	b.WriteString("\n")
	if len(d.TopUrgent) == 0 {
		b.WriteString(m.styles.Muted.Render("  Nothing due"))
		b.WriteString("\n")
	}
	now := m.now()
	for _, t := range d.TopUrgent {
		b.WriteString(fmt.Sprintf("  %-6s %s %s\n",
			display.FormatDDay(t.EndDate, now),
			m.styles.GetPriorityTextStyle(t.Priority).Render(display.GetPriorityIcon(t.Priority)),
			display.Truncate(t.Title, 40)))
	}

	return b.String()
}

func (m Model) renderCalendar() string {
	events := stats.CalendarEvents(m.board.Tree, m.board.Tasks.All())
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})

	var b strings.Builder
	b.WriteString(m.styles.DetailLabel.Render("Calendar"))
	b.WriteString("\n\n")

	if len(events) == 0 {
		b.WriteString(m.styles.Muted.Render("No dated tasks."))
		b.WriteString("\n")
		return b.String()
	}

	today := query.FormatDay(m.now())
	limit := m.listHeight()
	shown := 0
	month := ""
	for _, e := range events {
		if e.End <= today {
			continue
		}
		if shown == limit {
			break
		}
		if mo := e.Start[:7]; mo != month {
			month = mo
			b.WriteString(m.styles.Subtitle.Render(month))
			b.WriteString("\n")
		}
		title := display.Truncate(e.Title, 40)
		if e.Completed {
			title = m.styles.CompletedText.Render(title)
		}
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", theme.Swatch(e.Color, "●"), e.Start, title))
		shown++
	}
	if shown == 0 {
		b.WriteString(m.styles.Muted.Render("Nothing upcoming."))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderStatusBar() string {
	s := m.board.Session
	parts := []string{m.viewTitle()}
	if s.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", s.Search))
	}
	if s.Stat != query.StatAll {
		parts = append(parts, "stat: "+s.Stat)
	}
	if !s.ShowCompleted {
		parts = append(parts, "completed hidden")
	}
	if m.saving > 0 {
		parts = append(parts, "saving...")
	}

	bar := m.styles.Muted.Render(strings.Join(parts, " • "))
	if m.err != nil {
		return bar + "  " + m.styles.Error.Render("✗ "+m.err.Error())
	}
	if m.message != "" {
		return bar + "  " + m.styles.Success.Render(m.message)
	}
	return bar
}

func (m Model) viewTitle() string {
	switch v := m.board.Session.View; v {
	case domain.ViewDashboard:
		return "Dashboard"
	case domain.ViewCalendar:
		return "Calendar"
	case domain.ViewAll, domain.ViewForm:
		return "All Tasks"
	default:
		if f, ok := m.board.Tree.Get(v); ok {
			return f.Name
		}
		return v
	}
}

func (m Model) hasActiveFilters() bool {
	s := m.board.Session
	return s.Search != "" || s.Stat != query.StatAll ||
		(s.Category != "" && s.Category != "all") ||
		(s.Assignee != "" && s.Assignee != "all") ||
		(s.Priority != "" && s.Priority != "all")
}

func (m Model) listHeight() int {
	h := m.height - chromeHeight
	if h < minListHeight {
		return minListHeight
	}
	return h
}

// window returns the slice bounds of size rows that keep cursor visible.
func window(total, cursor, size int) (int, int) {
	if total <= size {
		return 0, total
	}
	start := cursor - size/2
	if start < 0 {
		start = 0
	}
	if start+size > total {
		start = total - size
	}
	return start, start + size
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
