package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/tree"
)

var now = time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)

func at(day int) *time.Time {
	t := time.Date(2024, 6, day, 18, 30, 0, 0, time.Local)
	return &t
}

func testTree() *tree.Tree {
	return tree.Load([]*domain.Folder{
		{ID: "a", Name: "Alpha", Color: "#111111"},
		{ID: "b", Name: "Beta", Color: "#222222"},
		{ID: "c", Name: "Gamma", Color: "#333333"},
	}, nil)
}

func TestCategoryProgress(t *testing.T) {
	tasks := []*domain.Task{
		{ID: 1, FolderID: "b", Completed: true},
		{ID: 2, FolderID: "a"},
		{ID: 3, FolderID: "a", Completed: true},
		{ID: 4, FolderID: "a"},
		{ID: 5, FolderID: "gone"},
	}

	got := CategoryProgress(testTree().Folders(), tasks)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, 3, got[0].Total)
	assert.Equal(t, 33, got[0].Percent)
	assert.Equal(t, "Beta", got[1].Name)
	assert.Equal(t, 100, got[1].Percent)
	assert.True(t, got[1].IsDone())
}

func TestCategoryDistribution(t *testing.T) {
	tasks := []*domain.Task{
		{ID: 1, FolderID: "b"},
		{ID: 2, FolderID: "gone", Folder: "Old"},
		{ID: 3, FolderID: "b"},
		{ID: 4, FolderID: "a"},
	}

	got := CategoryDistribution(testTree(), tasks)
	assert.Equal(t, []domain.CategorySlice{
		{FolderID: "b", Label: "Beta", Color: "#222222", Count: 2},
		{FolderID: "gone", Label: "Old", Color: domain.DefaultColor, Count: 1},
		{FolderID: "a", Label: "Alpha", Color: "#111111", Count: 1},
	}, got)

	assert.Empty(t, CategoryDistribution(testTree(), nil))
}

func TestPriorityHistogram(t *testing.T) {
	tasks := []*domain.Task{
		{Priority: domain.PriorityCritical},
		{Priority: domain.PriorityCritical, Completed: true},
		{Priority: ""},
		{Priority: "bogus"},
		{Priority: domain.PriorityLowest},
	}

	got := PriorityHistogram(tasks)
	require.Len(t, got, 6)
	assert.Equal(t, domain.PriorityCritical, got[0].Priority)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, 2, got[3].Count)
	assert.Equal(t, 1, got[5].Count)
	assert.Equal(t, 0, got[1].Count)
}

func TestTrend_CompletionLine(t *testing.T) {
	tasks := []*domain.Task{
		{Completed: true, CompletedAt: at(10)},
		{Completed: true, CompletedAt: at(10)},
		{Completed: true, CompletedAt: at(4)},
		{Completed: true, CompletedAt: at(3)},
		{Completed: false, CompletedAt: at(9)},
	}

	ts := Trend(tasks, query.StatAll, now)
	assert.Equal(t, domain.TrendLine, ts.Mode)
	assert.Equal(t, []string{"06/04", "06/05", "06/06", "06/07", "06/08", "06/09", "06/10"}, ts.Labels)
	assert.Equal(t, []int{1, 0, 0, 0, 0, 0, 2}, ts.Counts)
	assert.Equal(t, 2, ts.Max())

	assert.Equal(t, domain.TrendLine, Trend(tasks, query.StatCompleted, now).Mode)
}

func TestTrend_DueDateBars(t *testing.T) {
	tasks := []*domain.Task{
		{EndDate: "2024-06-12"},
		{EndDate: "2024-06-11"},
		{StartDate: "2024-06-11"},
		{},
	}
	for d := 13; d <= 20; d++ {
		tasks = append(tasks, &domain.Task{EndDate: time.Date(2024, 6, d, 0, 0, 0, 0, time.Local).Format(domain.DateLayout)})
	}

	ts := Trend(tasks, query.StatActive, now)
	assert.Equal(t, domain.TrendBar, ts.Mode)
	require.Len(t, ts.Dates, 7)
	assert.Equal(t, "2024-06-11", ts.Dates[0])
	assert.Equal(t, "06/11", ts.Labels[0])
	assert.Equal(t, 2, ts.Counts[0])
	assert.Equal(t, "2024-06-17", ts.Dates[6])
}

func TestTopUrgent(t *testing.T) {
	var tasks []*domain.Task
	for i, d := range []string{"2024-06-20", "", "2024-06-01", "2024-06-15", "2024-06-11", "2024-06-12", "2024-06-30", "2024-06-13"} {
		tasks = append(tasks, &domain.Task{ID: int64(i + 1), EndDate: d})
	}
	tasks = append(tasks, &domain.Task{ID: 99, EndDate: "2024-05-01", Completed: true})

	got := TopUrgent(tasks, TopUrgentLimit)
	var due []string
	for _, task := range got {
		due = append(due, task.EndDate)
	}
	assert.Equal(t, []string{"2024-06-01", "2024-06-11", "2024-06-12", "2024-06-13", "2024-06-15"}, due)
}

func TestCalendarEvents(t *testing.T) {
	tasks := []*domain.Task{
		{ID: 1, Title: "Trip", FolderID: "a", StartDate: "2024-06-10", EndDate: "2024-06-12", Priority: domain.PriorityHigh},
		{ID: 2, Title: "Call", FolderID: "gone", EndDate: "2024-06-30"},
		{ID: 3, Title: "Someday"},
	}

	got := CalendarEvents(testTree(), tasks)
	require.Len(t, got, 2)
	assert.Equal(t, domain.CalendarEvent{
		ID: 1, Title: "Trip", Start: "2024-06-10", End: "2024-06-13", AllDay: true,
		Color: "#111111", Priority: domain.PriorityHigh,
	}, got[0])
	assert.Equal(t, "2024-06-30", got[1].Start)
	assert.Equal(t, "2024-07-01", got[1].End)
	assert.Equal(t, domain.DefaultColor, got[1].Color)
	assert.Equal(t, domain.PriorityNormal, got[1].Priority)
}

func TestDashboard(t *testing.T) {
	snap := &domain.Snapshot{
		Folders: []*domain.Folder{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}},
		Tasks: []*domain.Task{
			{ID: 1, FolderID: "a", EndDate: "2024-06-11", Priority: domain.PriorityHigh},
			{ID: 2, FolderID: "a", Completed: true, CompletedAt: at(10)},
			{ID: 3, FolderID: "b", EndDate: "2024-06-09"},
		},
		CurrentFolder: "a",
	}
	b := board.FromSnapshot(snap)
	b.Session.Stat = query.StatActive

	d := Dashboard(b, now)
	assert.Equal(t, domain.Counters{Total: 2, Active: 1, Completed: 1, Urgent: 1}, d.Counters)
	assert.Len(t, d.Progress, 2)
	require.Len(t, d.Distribution, 1)
	assert.Equal(t, 1, d.Distribution[0].Count)
	assert.Equal(t, 1, d.Priorities[2].Count)
	assert.Equal(t, domain.TrendBar, d.Trend.Mode)
	assert.Equal(t, []int64{3, 1}, []int64{d.TopUrgent[0].ID, d.TopUrgent[1].ID})
	assert.Contains(t, d.GetPriorityDistribution(), "high: 1")
}
