package stats

import (
	"math"
	"sort"
	"time"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/tree"
)

const (
	TopUrgentLimit = 5
	TrendDays      = 7
	trendLabel     = "01/02"
)

// CategoryProgress reports, per folder in storage order, how many of its
// tasks are done. Folders without tasks are omitted.
func CategoryProgress(folders []*domain.Folder, tasks []*domain.Task) []domain.CategoryProgress {
	type tally struct{ total, done int }
	counts := make(map[string]*tally)
	for _, t := range tasks {
		c, ok := counts[t.FolderID]
		if !ok {
			c = &tally{}
			counts[t.FolderID] = c
		}
		c.total++
		if t.Completed {
			c.done++
		}
	}

	out := make([]domain.CategoryProgress, 0, len(folders))
	for _, f := range folders {
		c, ok := counts[f.ID]
		if !ok || c.total == 0 {
			continue
		}
		out = append(out, domain.CategoryProgress{
			FolderID:  f.ID,
			Name:      f.Name,
			Color:     f.Color,
			Total:     c.total,
			Completed: c.done,
			Percent:   int(math.Round(100 * float64(c.done) / float64(c.total))),
		})
	}
	return out
}

// CategoryDistribution counts tasks per folder in first-seen order. Tasks
// whose folder no longer exists keep their stored label and the default color.
func CategoryDistribution(t *tree.Tree, tasks []*domain.Task) []domain.CategorySlice {
	index := make(map[string]int)
	var out []domain.CategorySlice
	for _, task := range tasks {
		i, seen := index[task.FolderID]
		if !seen {
			slice := domain.CategorySlice{FolderID: task.FolderID, Label: task.Folder, Color: domain.DefaultColor}
			if f, ok := t.Get(task.FolderID); ok {
				slice.Label = f.Name
				if f.Color != "" {
					slice.Color = f.Color
				}
			}
			if slice.Label == "" {
				slice.Label = task.FolderID
			}
			index[task.FolderID] = len(out)
			out = append(out, slice)
			i = len(out) - 1
		}
		out[i].Count++
	}
	if out == nil {
		out = []domain.CategorySlice{}
	}
	return out
}

// PriorityHistogram counts incomplete tasks per priority, most important first.
func PriorityHistogram(tasks []*domain.Task) []domain.PriorityCount {
	counts := make(map[domain.Priority]int, len(domain.Priorities))
	for _, t := range tasks {
		if !t.Completed {
			counts[t.Priority.OrDefault()]++
		}
	}
	out := make([]domain.PriorityCount, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		out = append(out, domain.PriorityCount{Priority: p, Count: counts[p]})
	}
	return out
}

// Trend builds the trend chart. The all and completed stats chart completions
// over the trailing week; other stats chart tasks per due date.
func Trend(tasks []*domain.Task, stat string, now time.Time) domain.TrendSeries {
	if stat == query.StatAll || stat == query.StatCompleted || stat == "" {
		return completionTrend(tasks, now)
	}
	return dueDateTrend(tasks)
}

func completionTrend(tasks []*domain.Task, now time.Time) domain.TrendSeries {
	ts := domain.TrendSeries{Mode: domain.TrendLine, Label: "Completed"}
	today := query.StartOfDay(now)
	pos := make(map[string]int, TrendDays)
	for i := TrendDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		key := query.FormatDay(day)
		pos[key] = len(ts.Dates)
		ts.Dates = append(ts.Dates, key)
		ts.Labels = append(ts.Labels, day.Format(trendLabel))
		ts.Counts = append(ts.Counts, 0)
	}
	for _, t := range tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		if i, ok := pos[query.FormatDay(t.CompletedAt.In(now.Location()))]; ok {
			ts.Counts[i]++
		}
	}
	return ts
}

func dueDateTrend(tasks []*domain.Task) domain.TrendSeries {
	ts := domain.TrendSeries{Mode: domain.TrendBar, Label: "Tasks"}
	counts := make(map[string]int)
	for _, t := range tasks {
		key := t.EndDate
		if key == "" {
			key = t.StartDate
		}
		if _, err := domain.ParseDay(key); err != nil {
			continue
		}
		counts[key]++
	}

	dates := make([]string, 0, len(counts))
	for d := range counts {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	if len(dates) > TrendDays {
		dates = dates[:TrendDays]
	}

	ts.Dates = dates
	ts.Labels = make([]string, 0, len(dates))
	ts.Counts = make([]int, 0, len(dates))
	for _, d := range dates {
		day, _ := domain.ParseDay(d)
		ts.Labels = append(ts.Labels, day.Format(trendLabel))
		ts.Counts = append(ts.Counts, counts[d])
	}
	return ts
}

// TopUrgent returns up to n incomplete dated tasks, soonest due first.
func TopUrgent(tasks []*domain.Task, n int) []*domain.Task {
	out := make([]*domain.Task, 0, n)
	for _, t := range tasks {
		if t.Completed {
			continue
		}
		if _, ok := t.DueDate(); ok {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].DueDate()
		b, _ := out[j].DueDate()
		return a.Before(b)
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// CalendarEvents maps dated tasks to all-day events. End is exclusive.
func CalendarEvents(t *tree.Tree, tasks []*domain.Task) []domain.CalendarEvent {
	out := make([]domain.CalendarEvent, 0, len(tasks))
	for _, task := range tasks {
		start, end := task.StartDate, task.EndDate
		if start == "" {
			start = end
		}
		if end == "" {
			end = start
		}
		s, err := domain.ParseDay(start)
		if err != nil {
			continue
		}
		e, err := domain.ParseDay(end)
		if err != nil {
			continue
		}
		if e.Before(s) {
			s, e = e, s
		}

		color := domain.DefaultColor
		if f, ok := t.Get(task.FolderID); ok && f.Color != "" {
			color = f.Color
		}
		out = append(out, domain.CalendarEvent{
			ID:        task.ID,
			Title:     task.Title,
			Start:     query.FormatDay(s),
			End:       query.FormatDay(e.AddDate(0, 0, 1)),
			AllDay:    true,
			Color:     color,
			Priority:  task.Priority.OrDefault(),
			Completed: task.Completed,
		})
	}
	return out
}

// Dashboard computes every aggregate for the board's current session. Charts
// follow the scoped set narrowed by the quick-stat; progress and the urgent
// list cover every task.
func Dashboard(b *board.Board, now time.Time) *domain.Dashboard {
	all := b.Tasks.All()
	scoped := query.Scope(all, b.Session.View)
	charted := make([]*domain.Task, 0, len(scoped))
	for _, t := range scoped {
		if query.MatchesStat(t, b.Session.Stat, now) {
			charted = append(charted, t)
		}
	}

	return &domain.Dashboard{
		View:         b.Session.View,
		Stat:         b.Session.Stat,
		Counters:     query.Count(scoped, now),
		Progress:     CategoryProgress(b.Tree.Folders(), all),
		Distribution: CategoryDistribution(b.Tree, charted),
		Priorities:   PriorityHistogram(charted),
		Trend:        Trend(charted, b.Session.Stat, now),
		TopUrgent:    TopUrgent(all, TopUrgentLimit),
		CalculatedAt: now,
	}
}
