package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/display"
	"task-dashboard/internal/query"
)

type MarkdownExporter struct {
	board *board.Board
	now   time.Time
}

func NewMarkdownExporter(b *board.Board, now time.Time) *MarkdownExporter {
	return &MarkdownExporter{board: b, now: now}
}

// Export renders the folder tree as nested headings, each followed by its
// tasks in smart order. Tasks whose folder no longer exists go under Unfiled.
func (e *MarkdownExporter) Export(w io.Writer) error {
	byFolder := make(map[string][]*domain.Task)
	var unfiled []*domain.Task
	for _, task := range e.board.Tasks.All() {
		if _, ok := e.board.Tree.Get(task.FolderID); ok {
			byFolder[task.FolderID] = append(byFolder[task.FolderID], task)
		} else {
			unfiled = append(unfiled, task)
		}
	}

	fmt.Fprintln(w, "# Task Dashboard")
	fmt.Fprintln(w)

	counters := query.Count(e.board.Tasks.All(), e.now)
	fmt.Fprintf(w, "**Total**: %d | **Active**: %d | **Completed**: %d | **Urgent**: %d\n\n",
		counters.Total, counters.Active, counters.Completed, counters.Urgent)

	for _, node := range e.board.Tree.Flatten() {
		level := node.Depth + 2
		if level > 6 {
			level = 6
		}
		e.writeSection(w, strings.Repeat("#", level)+" 📁 "+node.Folder.Name, byFolder[node.Folder.ID])
	}

	if len(unfiled) > 0 {
		e.writeSection(w, "## Unfiled", unfiled)
	}

	return nil
}

func (e *MarkdownExporter) writeSection(w io.Writer, heading string, tasks []*domain.Task) {
	completed := 0
	for _, task := range tasks {
		if task.Completed {
			completed++
		}
	}

	fmt.Fprintln(w, heading)
	fmt.Fprintln(w)
	if len(tasks) == 0 {
		fmt.Fprintln(w, "_No tasks_")
		fmt.Fprintln(w)
		return
	}

	fmt.Fprintf(w, "Tasks (%d/%d completed)\n\n", completed, len(tasks))

	sorted := append([]*domain.Task{}, tasks...)
	query.SmartSort(sorted)
	for _, task := range sorted {
		e.writeTask(w, task)
	}
	fmt.Fprintln(w)
}

func (e *MarkdownExporter) writeTask(w io.Writer, task *domain.Task) {
	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	priority := ""
	switch task.Priority {
	case domain.PriorityCritical:
		priority = "🟣 "
	case domain.PriorityUrgent:
		priority = "🔴 "
	case domain.PriorityHigh:
		priority = "🟠 "
	case domain.PriorityNormal:
		priority = "🟡 "
	case domain.PriorityLow:
		priority = "🟢 "
	case domain.PriorityLowest:
		priority = "⚪ "
	}

	fmt.Fprintf(w, "- %s %s**%s**", checkbox, priority, task.Title)

	metadata := []string{}

	if task.StartDate != "" || task.EndDate != "" {
		metadata = append(metadata, "📅 "+display.FormatPeriod(task))
	}
	if !task.Completed && task.EndDate != "" {
		metadata = append(metadata, display.FormatDDay(task.EndDate, e.now))
	}

	if names := e.board.MemberNames(task); len(names) > 0 {
		tags := make([]string, len(names))
		for i, n := range names {
			tags[i] = fmt.Sprintf("`@%s`", n)
		}
		metadata = append(metadata, strings.Join(tags, " "))
	}

	if len(metadata) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(metadata, ", "))
	}

	fmt.Fprintln(w)

	for _, s := range task.Subtasks {
		box := "[ ]"
		if s.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "  - %s %s\n", box, s.Text)
	}

	for _, a := range task.Attachments {
		fmt.Fprintf(w, "  - 📎 [%s](%s) %s\n", a.Name, a.URL, display.FormatSize(a.Size))
	}

	if task.Notes != "" {
		for _, line := range strings.Split(task.Notes, "\n") {
			fmt.Fprintf(w, "  > %s\n", line)
		}
	}
}
