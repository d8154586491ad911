package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"task-dashboard/internal/board"
	"task-dashboard/internal/display"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/theme"
)

func newTaskListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks of a sidebar view with optional filtering.

Active tasks come first; completed tasks follow unless --hide-completed
is set. The order is smart (due date, then priority) unless the board is
in manual order.

Examples:
  taskdash task list
  taskdash task list --view Backend
  taskdash task list --stat urgent
  taskdash task list --search report --assignee "Alex Kim" --priority high
  taskdash task list --filter '#Backend !urgent is:active deploy'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				if err := applySessionFlags(cmd, s.board); err != nil {
					return err
				}
				displayTaskList(s.out, s.board, s.styles, now())
				return nil
			})
		},
	}
	addSessionFlags(cmd)
	cmd.Flags().Bool("hide-completed", false, "Hide the completed section")
	return cmd
}

func addSessionFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringP("view", "v", "", "Sidebar view: all, dashboard, calendar or a folder")
	flags.StringP("search", "q", "", "Search title and notes")
	flags.StringP("category", "c", "", "Folder facet")
	flags.StringP("assignee", "a", "", "Member facet")
	flags.StringP("priority", "p", "", "Priority facet")
	flags.StringP("stat", "s", "", "Quick stat: all, active, completed or urgent")
	flags.String("filter", "", `Shorthand filter, e.g. '#Work @"Alex Kim" !high is:urgent report'`)
}

// applySessionFlags narrows the session for this invocation only.
func applySessionFlags(cmd *cobra.Command, b *board.Board) error {
	flags := cmd.Flags()

	if view, _ := flags.GetString("view"); view != "" {
		if !domain.IsSpecialView(view) {
			f, err := b.ResolveFolder(view)
			if err != nil {
				return err
			}
			view = f.ID
		}
		if err := b.SelectView(view); err != nil {
			return err
		}
	}

	b.Session.Search, _ = flags.GetString("search")

	if ref, _ := flags.GetString("category"); ref != "" && ref != "all" {
		f, err := b.ResolveFolder(ref)
		if err != nil {
			return err
		}
		b.Session.Category = f.ID
	}

	if ref, _ := flags.GetString("assignee"); ref != "" && ref != "all" {
		m, err := b.ResolveMember(ref)
		if err != nil {
			return err
		}
		b.Session.Assignee = m.ID
	}

	if p, _ := flags.GetString("priority"); p != "" {
		p = strings.ToLower(p)
		if p != "all" && !domain.IsValidPriority(domain.Priority(p)) {
			return fmt.Errorf("invalid priority: %s", p)
		}
		b.Session.Priority = p
	}

	if stat, _ := flags.GetString("stat"); stat != "" {
		if !query.IsValidStat(stat) {
			return fmt.Errorf("invalid stat: %s (must be all, active, completed or urgent)", stat)
		}
		b.Session.Stat = stat
	}

	if raw, _ := flags.GetString("filter"); raw != "" {
		if err := applyExpression(b, raw); err != nil {
			return err
		}
	}

	if flags.Lookup("hide-completed") != nil {
		hide, _ := flags.GetBool("hide-completed")
		b.Session.ShowCompleted = !hide
	}

	return nil
}

// applyExpression layers a shorthand filter over the session facets.
func applyExpression(b *board.Board, raw string) error {
	expr, err := query.ParseExpression(raw)
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	if expr.Text != "" {
		if b.Session.Search != "" {
			return fmt.Errorf("invalid filter: search text given twice (--search and --filter)")
		}
		b.Session.Search = expr.Text
	}
	if expr.Folder != "" {
		f, err := b.ResolveFolder(expr.Folder)
		if err != nil {
			return err
		}
		b.Session.Category = f.ID
	}
	if expr.Member != "" {
		m, err := b.ResolveMember(expr.Member)
		if err != nil {
			return err
		}
		b.Session.Assignee = m.ID
	}
	if expr.Priority != "" {
		b.Session.Priority = expr.Priority
	}
	if expr.Stat != "" {
		b.Session.Stat = expr.Stat
	}
	return nil
}

func viewTitle(b *board.Board) string {
	switch b.Session.View {
	case domain.ViewAll, domain.ViewForm:
		return "All Tasks"
	case domain.ViewDashboard:
		return "Dashboard"
	case domain.ViewCalendar:
		return "Calendar"
	default:
		return b.Tree.Path(b.Session.View)
	}
}

func displayTaskList(w io.Writer, b *board.Board, styles *theme.Styles, now time.Time) {
	result := b.Run(now)
	c := result.Counters

	fmt.Fprintln(w)
	fmt.Fprintln(w, styles.Header.Render(" "+viewTitle(b)+" "))
	fmt.Fprintf(w, "%s  %s  %s  %s\n",
		styles.Info.Render(fmt.Sprintf("Total %d", c.Total)),
		styles.ActiveText.Render(fmt.Sprintf("Active %d", c.Active)),
		styles.Success.Render(fmt.Sprintf("Completed %d", c.Completed)),
		styles.OverdueText.Render(fmt.Sprintf("Urgent %d", c.Urgent)))
	if b.Session.ManualSort {
		fmt.Fprintln(w, styles.Muted.Render("manual order ('taskdash task sort' to restore smart sort)"))
	}
	fmt.Fprintln(w)

	if len(result.Active) == 0 && len(result.Completed) == 0 {
		printInfo(w, styles, "No tasks match.")
		fmt.Fprintln(w)
		return
	}

	displayTasksTable(w, b, result.Active, styles, now)

	if len(result.Completed) > 0 {
		fmt.Fprintln(w, styles.Subtitle.Render(fmt.Sprintf("Completed (%d)", len(result.Completed))))
		displayTasksTable(w, b, result.Completed, styles, now)
	}
}

func displayTasksTable(w io.Writer, b *board.Board, tasks []*domain.Task, styles *theme.Styles, now time.Time) {
	if len(tasks) == 0 {
		return
	}

	headers := []string{
		styles.Header.Render(fmt.Sprintf("%-15s", "ID")),
		styles.Header.Render(fmt.Sprintf("%-10s", "Priority")),
		styles.Header.Render(fmt.Sprintf("%-36s", "Title")),
		styles.Header.Render(fmt.Sprintf("%-16s", "Folder")),
		styles.Header.Render(fmt.Sprintf("%-18s", "Members")),
		styles.Header.Render(fmt.Sprintf("%-8s", "Due")),
	}
	fmt.Fprintln(w, strings.Join(headers, " "))
	fmt.Fprintln(w, styles.Separator.Render(strings.Repeat("─", 118)))

	for _, task := range tasks {
		printTaskRow(w, b, task, styles, now)
	}
	fmt.Fprintln(w)
}

func printTaskRow(w io.Writer, b *board.Board, task *domain.Task, styles *theme.Styles, now time.Time) {
	rowStyle := styles.GetPriorityStyle(task.Priority)
	days, dated := query.DaysUntil(task.EndDate, now)
	overdue := dated && days < 0 && !task.Completed
	if task.Completed || overdue {
		rowStyle = styles.GetTaskStyle(task, overdue)
	}

	id := fmt.Sprintf("%s %d", display.GetStatusIcon(task), task.ID)
	priority := fmt.Sprintf("%s %s", display.GetPriorityIcon(task.Priority), task.Priority)

	title := task.Title
	if st := display.FormatSubtasks(task); st != "" {
		title += " [" + st + "]"
	}
	if len(task.Attachments) > 0 {
		title += " 📎"
	}

	members := strings.Join(b.MemberNames(task), ", ")
	if members == "" {
		members = "-"
	}

	due := display.FormatDDay(task.EndDate, now)
	if task.Completed {
		due = "-"
	}

	cells := []string{
		rowStyle.Render(styles.Cell.Render(fmt.Sprintf("%-15s", id))),
		rowStyle.Render(styles.Cell.Render(fmt.Sprintf("%-10s", priority))),
		rowStyle.Render(styles.Cell.Render(fmt.Sprintf("%-36s", display.Truncate(title, 36)))),
		rowStyle.Render(styles.Cell.Render(fmt.Sprintf("%-16s", display.Truncate(b.FolderName(task), 16)))),
		rowStyle.Render(styles.Cell.Render(fmt.Sprintf("%-18s", display.Truncate(members, 18)))),
		rowStyle.Render(styles.Cell.Render(fmt.Sprintf("%-8s", due))),
	}

	fmt.Fprintln(w, strings.Join(cells, " "))
}
