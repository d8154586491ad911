package query

import (
	"sort"
	"strings"
	"time"

	"task-dashboard/internal/domain"
)

// quick-stat filters
const (
	StatAll       = "all"
	StatActive    = "active"
	StatCompleted = "completed"
	StatUrgent    = "urgent"
)

// UrgentWindowDays is the number of days ahead a due date counts as urgent.
const UrgentWindowDays = 3

func IsValidStat(s string) bool {
	switch s {
	case StatAll, StatActive, StatCompleted, StatUrgent:
		return true
	default:
		return false
	}
}

// Filter is the session state driving the task list.
type Filter struct {
	View          string
	Search        string
	Category      string
	Assignee      string
	Priority      string
	Stat          string
	ManualSort    bool
	ShowCompleted bool
}

// DefaultFilter shows every task with smart ordering.
func DefaultFilter() Filter {
	return Filter{View: domain.ViewAll, Stat: StatAll, ShowCompleted: true}
}

// Result holds the ordered view lists and the counters of the scoped set.
type Result struct {
	Active    []*domain.Task
	Completed []*domain.Task
	Counters  domain.Counters
}

// Tasks returns the active list followed by the completed list.
func (r Result) Tasks() []*domain.Task {
	out := make([]*domain.Task, 0, len(r.Active)+len(r.Completed))
	out = append(out, r.Active...)
	return append(out, r.Completed...)
}

// Run applies scope, search, facets and quick-stat to tasks, orders the
// result and splits it into active and completed lists. Counters cover the
// scoped set only.
func Run(tasks []*domain.Task, f Filter, now time.Time) Result {
	scoped := Scope(tasks, f.View)

	var res Result
	res.Counters = Count(scoped, now)

	list := Filtered(scoped, f, now)
	if !f.ManualSort {
		SmartSort(list)
	}

	res.Active = []*domain.Task{}
	res.Completed = []*domain.Task{}
	for _, t := range list {
		if t.Completed {
			if f.ShowCompleted {
				res.Completed = append(res.Completed, t)
			}
		} else {
			res.Active = append(res.Active, t)
		}
	}
	return res
}

// Scope keeps the tasks belonging to a sidebar view. Special views are unscoped.
func Scope(tasks []*domain.Task, view string) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if view == "" || domain.IsSpecialView(view) || t.FolderID == view {
			out = append(out, t)
		}
	}
	return out
}

// Filtered applies search, facets and quick-stat without ordering.
func Filtered(tasks []*domain.Task, f Filter, now time.Time) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if MatchesSearch(t, f.Search) && MatchesFacets(t, f) && MatchesStat(t, f.Stat, now) {
			out = append(out, t)
		}
	}
	return out
}

func MatchesSearch(t *domain.Task, search string) bool {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Notes), q)
}

func MatchesFacets(t *domain.Task, f Filter) bool {
	if !isNoFilter(f.Category) && t.FolderID != f.Category {
		return false
	}
	if !isNoFilter(f.Assignee) && !t.HasMember(f.Assignee) {
		return false
	}
	if !isNoFilter(f.Priority) && t.Priority.OrDefault() != domain.Priority(f.Priority) {
		return false
	}
	return true
}

func MatchesStat(t *domain.Task, stat string, now time.Time) bool {
	switch stat {
	case StatActive:
		return !t.Completed
	case StatCompleted:
		return t.Completed
	case StatUrgent:
		return IsUrgent(t, now)
	default:
		return true
	}
}

// IsUrgent reports whether an incomplete task is due within the urgent window.
// Overdue tasks are not urgent.
func IsUrgent(t *domain.Task, now time.Time) bool {
	if t.Completed {
		return false
	}
	days, ok := DaysUntil(t.EndDate, now)
	return ok && days >= 0 && days <= UrgentWindowDays
}

func Count(tasks []*domain.Task, now time.Time) domain.Counters {
	c := domain.Counters{Total: len(tasks)}
	for _, t := range tasks {
		if MatchesStat(t, StatCompleted, now) {
			c.Completed++
		}
		if MatchesStat(t, StatActive, now) {
			c.Active++
		}
		if MatchesStat(t, StatUrgent, now) {
			c.Urgent++
		}
	}
	return c
}

// SmartSort orders tasks: incomplete first, then soonest due date with
// undated tasks last, then higher priority, then newest ID.
func SmartSort(tasks []*domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return Less(tasks[i], tasks[j])
	})
}

func Less(a, b *domain.Task) bool {
	if a.Completed != b.Completed {
		return !a.Completed
	}

	ad, aok := a.DueDate()
	bd, bok := b.DueDate()
	switch {
	case aok && !bok:
		return true
	case !aok && bok:
		return false
	case aok && bok && !ad.Equal(bd):
		return ad.Before(bd)
	}

	if ar, br := a.Priority.Rank(), b.Priority.Rank(); ar != br {
		return ar > br
	}

	return a.ID > b.ID
}

func isNoFilter(v string) bool {
	return v == "" || v == "all"
}
