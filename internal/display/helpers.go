package display

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"

	"github.com/dustin/go-humanize"
)

func GetStatusIcon(task *domain.Task) string {
	if task.Completed {
		return "✓"
	}
	return "○"
}

func GetPriorityIcon(priority domain.Priority) string {
	switch priority {
	case domain.PriorityCritical:
		return "‼"
	case domain.PriorityUrgent:
		return "🔥"
	case domain.PriorityHigh:
		return "⬆"
	case domain.PriorityNormal:
		return "➡"
	case domain.PriorityLow:
		return "⬇"
	case domain.PriorityLowest:
		return "⇊"
	default:
		return "?"
	}
}

// PriorityLabel capitalizes a priority for display; unknown values read as Normal.
func PriorityLabel(priority domain.Priority) string {
	p := string(priority.OrDefault())
	return strings.ToUpper(p[:1]) + p[1:]
}

// FormatDDay renders the distance to an end date as D-3, D-Day or D+2.
func FormatDDay(endDate string, now time.Time) string {
	days, ok := query.DaysUntil(endDate, now)
	if !ok {
		return "-"
	}
	switch {
	case days == 0:
		return "D-Day"
	case days > 0:
		return fmt.Sprintf("D-%d", days)
	default:
		return fmt.Sprintf("D+%d", -days)
	}
}

func FormatDueDate(endDate string, now time.Time) string {
	days, ok := query.DaysUntil(endDate, now)
	if !ok {
		return "-"
	}

	// overdue
	if days < 0 {
		return fmt.Sprintf("-%dd", -days)
	}

	// due soon
	if days == 0 {
		return "Today"
	} else if days == 1 {
		return "Tomorrow"
	} else if days <= 7 {
		return fmt.Sprintf("%dd", days)
	}

	return endDate
}

// FormatPeriod shows a task's date span and its leave-day count.
func FormatPeriod(task *domain.Task) string {
	switch {
	case task.StartDate == "" && task.EndDate == "":
		return "-"
	case task.StartDate == "" || task.StartDate == task.EndDate:
		return task.EndDate
	case task.EndDate == "":
		return task.StartDate + " ~"
	}
	return fmt.Sprintf("%s ~ %s (%dd)", task.StartDate, task.EndDate, task.LeaveDays)
}

func FormatSize(size int64) string {
	if size < 0 {
		size = 0
	}
	return humanize.Bytes(uint64(size))
}

func FormatRelative(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return humanize.Time(*t)
}

func FormatSubtasks(task *domain.Task) string {
	if len(task.Subtasks) == 0 {
		return ""
	}
	done := 0
	for _, s := range task.Subtasks {
		if s.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d", done, len(task.Subtasks))
}

func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
