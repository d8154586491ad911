package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-dashboard/internal/board"
	"task-dashboard/internal/display"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/stats"
	"task-dashboard/internal/theme"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard statistics",
		Long: `Display the dashboard for a sidebar view:
  - counters (total, active, completed, urgent)
  - completion progress per folder
  - task distribution per folder and per priority
  - a 7-day trend (completions, or tasks per due date)
  - the five most urgent open tasks

Examples:
  taskdash dashboard
  taskdash dashboard --view Backend --stat active`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				if err := applySessionFlags(cmd, s.board); err != nil {
					return err
				}
				t := now()
				displayDashboard(s.out, s.board, stats.Dashboard(s.board, t), s.styles, t)
				return nil
			})
		},
	}
	addSessionFlags(cmd)
	return cmd
}

func displayDashboard(w io.Writer, b *board.Board, d *domain.Dashboard, styles *theme.Styles, now time.Time) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Title.Render("📊 Dashboard · "+viewTitle(b)))

	c := d.Counters
	fmt.Fprintln(w, styles.Subtitle.Render("Tasks"))
	fmt.Fprintf(w, "  Total:      %s\n", styles.Info.Render(fmt.Sprintf("%d", c.Total)))
	fmt.Fprintf(w, "  Active:     %s\n", styles.ActiveText.Render(fmt.Sprintf("%d", c.Active)))
	fmt.Fprintf(w, "  Completed:  %s\n", styles.Success.Render(fmt.Sprintf("%d", c.Completed)))
	fmt.Fprintf(w, "  Urgent:     %s\n", styles.OverdueText.Render(fmt.Sprintf("%d", c.Urgent)))
	fmt.Fprintf(w, "  Completion: %s\n", renderCompletionRate(c.CompletionRate(), styles))
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Progress by Folder"))
	if len(d.Progress) == 0 {
		fmt.Fprintln(w, "  No tasks yet")
	}
	for _, p := range d.Progress {
		label := display.Truncate(p.Name, 18)
		if p.IsDone() {
			label += " ✓"
		}
		fmt.Fprintf(w, "  %s %-20s %s %d/%d (%d%%)\n",
			theme.Swatch(p.Color, "●"), label, renderBar(p.Percent/5, 20, "█"), p.Completed, p.Total, p.Percent)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Distribution"))
	if len(d.Distribution) == 0 {
		fmt.Fprintln(w, "  No tasks")
	}
	for _, slice := range d.Distribution {
		fmt.Fprintf(w, "  %s %-20s %s %d\n",
			theme.Swatch(slice.Color, "●"), display.Truncate(slice.Label, 20), renderBar(slice.Count, 20, "▓"), slice.Count)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, styles.Subtitle.Render("Open Tasks by Priority"))
	for _, pc := range d.Priorities {
		fmt.Fprintf(w, "  %s %s %d\n",
			styles.GetPriorityTextStyle(pc.Priority).Render(fmt.Sprintf("%-9s", display.PriorityLabel(pc.Priority))),
			renderBar(pc.Count, 20, "█"), pc.Count)
	}
	fmt.Fprintln(w)

	displayTrend(w, d.Trend, styles)

	fmt.Fprintln(w, styles.Subtitle.Render("Most Urgent"))
	if len(d.TopUrgent) == 0 {
		fmt.Fprintln(w, "  Nothing due")
	}
	for _, t := range d.TopUrgent {
		fmt.Fprintf(w, "  %-6s %s %s %s\n",
			display.FormatDDay(t.EndDate, now),
			styles.GetPriorityTextStyle(t.Priority).Render(display.GetPriorityIcon(t.Priority)),
			display.Truncate(t.Title, 40),
			styles.Muted.Render(b.FolderName(t)))
	}
	fmt.Fprintln(w)
}

func displayTrend(w io.Writer, ts domain.TrendSeries, styles *theme.Styles) {
	fmt.Fprintln(w, styles.Subtitle.Render(ts.Label))
	if len(ts.Counts) == 0 {
		fmt.Fprintln(w, "  No dated tasks")
		fmt.Fprintln(w)
		return
	}

	char := "█"
	if ts.Mode == domain.TrendLine {
		char = "▪"
	}
	width := ts.Max()
	if width < 1 {
		width = 1
	}
	for i, label := range ts.Labels {
		n := ts.Counts[i]
		fmt.Fprintf(w, "  %s %s %d\n", label, renderBar(n*20/width, 20, char), n)
	}
	fmt.Fprintln(w)
}

func renderBar(value, maxWidth int, char string) string {
	if value > maxWidth {
		value = maxWidth
	}
	if value < 0 {
		value = 0
	}
	return strings.Repeat(char, value)
}

func renderCompletionRate(rate float64, styles *theme.Styles) string {
	bar := renderBar(int(rate/5), 20, "█")
	rateStr := fmt.Sprintf("%.1f%%", rate)

	if rate >= 80 {
		return fmt.Sprintf("%s %s", bar, styles.Success.Render(rateStr))
	} else if rate >= 50 {
		return fmt.Sprintf("%s %s", bar, styles.Info.Render(rateStr))
	} else if rate >= 25 {
		return fmt.Sprintf("%s %s", bar, styles.Cell.Render(rateStr))
	}
	return fmt.Sprintf("%s %s", bar, styles.Error.Render(rateStr))
}

func newCalendarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "List dated tasks as calendar events",
		Long: `List every dated task as an all-day calendar event, ordered by start
date. Use --month to show a single month (YYYY-MM).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			month, _ := cmd.Flags().GetString("month")
			if month != "" {
				if _, err := time.Parse("2006-01", month); err != nil {
					return fmt.Errorf("invalid --month %q (expected YYYY-MM)", month)
				}
			}

			return withSession(cmd, func(s *session) error {
				events := stats.CalendarEvents(s.board.Tree, s.board.Tasks.All())
				displayCalendar(s.out, events, month, s.styles)
				return nil
			})
		},
	}
	cmd.Flags().String("month", "", "Only events overlapping this month (YYYY-MM)")
	return cmd
}

func displayCalendar(w io.Writer, events []domain.CalendarEvent, month string, styles *theme.Styles) {
	events = append([]domain.CalendarEvent{}, events...)
	sortEvents(events)

	fmt.Fprintln(w)
	shown := 0
	current := ""
	for _, e := range events {
		// End is exclusive
		if month != "" && !(e.Start < nextMonth(month) && e.End > month+"-01") {
			continue
		}
		if m := e.Start[:7]; m != current {
			current = m
			fmt.Fprintln(w, styles.Subtitle.Render(m))
		}

		last := e.End
		if d, err := domain.ParseDay(e.End); err == nil {
			last = d.AddDate(0, 0, -1).Format(domain.DateLayout)
		}
		span := e.Start
		if last != e.Start {
			span += " → " + last
		}

		title := e.Title
		if e.Completed {
			title = styles.CompletedText.Render(title)
		}
		fmt.Fprintf(w, "  %s %-25s %s %s\n", theme.Swatch(e.Color, "■"), span, styles.GetPriorityTextStyle(e.Priority).Render(display.GetPriorityIcon(e.Priority)), title)
		shown++
	}

	if shown == 0 {
		printInfo(w, styles, "No dated tasks.")
	}
	fmt.Fprintln(w)
}

func nextMonth(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.AddDate(0, 1, 0).Format("2006-01") + "-01"
}

func sortEvents(events []domain.CalendarEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Start < events[j].Start
	})
}
