package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/persist"
	"task-dashboard/internal/query"
	"task-dashboard/internal/theme"
)

var fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

type fakeStore struct {
	saved  []*domain.Snapshot
	remote bool
	load   *domain.Snapshot
}

func (f *fakeStore) Load(ctx context.Context) (*domain.Snapshot, persist.Source) {
	if f.load == nil {
		return domain.DefaultSnapshot(), persist.SourceSeed
	}
	return f.load, persist.SourceRemote
}

func (f *fakeStore) Save(ctx context.Context, snap *domain.Snapshot) bool {
	f.saved = append(f.saved, snap)
	return f.remote
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Folders: []*domain.Folder{
			{ID: "f1", Name: "Work", Color: "#6366f1"},
			{ID: "f2", Name: "Home", Color: "#10b981"},
			{ID: "f3", Name: "Reports", Parent: "f1", Color: "#f59e0b"},
		},
		Members: []*domain.Member{{ID: "m1", Name: "Alex Kim"}},
		Tasks: []*domain.Task{
			{ID: 1, Title: "Write report", FolderID: "f1", Priority: domain.PriorityHigh, EndDate: "2024-05-11", Members: []string{"m1"}},
			{ID: 2, Title: "Buy milk", FolderID: "f2", Priority: domain.PriorityNormal, EndDate: "2024-05-20", Notes: "two liters"},
			{ID: 3, Title: "Old chore", FolderID: "f1", EndDate: "2024-05-01", Completed: true},
		},
	}
}

func newTestModel(t *testing.T) (Model, *fakeStore) {
	t.Helper()
	b := board.FromSnapshot(testSnapshot())
	b.Tasks.SetClock(func() time.Time { return fixedNow })
	store := &fakeStore{remote: true}
	return NewModel(b, store, theme.GetDefaultTheme(), func() time.Time { return fixedNow }), store
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// flush runs a command and feeds its message back into the model.
func flush(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	require.NotNil(t, cmd)
	m, _ = press(t, m, cmd())
	return m
}

func taskIDs(tasks []*domain.Task) []int64 {
	ids := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestNewModel(t *testing.T) {
	m, _ := newTestModel(t)

	require.Len(t, m.items, 6)
	assert.Equal(t, domain.ViewDashboard, m.items[0].view)
	assert.Equal(t, domain.ViewAll, m.items[1].view)
	assert.Equal(t, domain.ViewCalendar, m.items[2].view)
	assert.Equal(t, []string{"f1", "f3", "f2"}, []string{m.items[3].view, m.items[4].view, m.items[5].view})
	assert.Equal(t, 1, m.items[4].depth)
	assert.True(t, m.items[3].hasChildren)

	assert.Equal(t, 1, m.sidebarCursor)
	assert.Equal(t, sidebarFocus, m.focus)
	assert.Equal(t, []int64{1, 2, 3}, taskIDs(m.tasks))
	assert.Equal(t, domain.Counters{Total: 3, Active: 2, Completed: 1, Urgent: 1}, m.result.Counters)
}

func TestToggleCompleteSaves(t *testing.T) {
	m, store := newTestModel(t)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, listFocus, m.focus)

	m, cmd := press(t, m, runes("x"))
	task, _ := m.board.Tasks.Get(1)
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, fixedNow, *task.CompletedAt)
	assert.Equal(t, "Task #1 completed", m.message)
	assert.Equal(t, 1, m.saving)

	m = flush(t, m, cmd)
	assert.Equal(t, 0, m.saving)
	require.Len(t, store.saved, 1)

	// completed tasks sink below the active ones
	assert.Equal(t, []int64{2, 3, 1}, taskIDs(m.tasks))

	// the saved copy is detached from the live board
	m, _ = press(t, m, runes("x"))
	live, _ := m.board.Tasks.Get(2)
	assert.True(t, live.Completed)
	for _, st := range store.saved[0].Tasks {
		if st.ID == 2 {
			assert.False(t, st.Completed)
		}
	}
}

func TestSelectFolderView(t *testing.T) {
	m, store := newTestModel(t)
	m.sidebarCursor = m.itemIndex("f2")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "f2", m.board.Session.View)
	assert.Equal(t, []int64{2}, taskIDs(m.tasks))
	assert.Equal(t, listFocus, m.focus)

	flush(t, m, cmd)
	require.Len(t, store.saved, 1)
	assert.Equal(t, "f2", store.saved[0].CurrentFolder)
}

func TestSelectDashboardKeepsSidebarFocus(t *testing.T) {
	m, _ := newTestModel(t)
	m.sidebarCursor = 0

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, domain.ViewDashboard, m.board.Session.View)
	assert.Equal(t, sidebarFocus, m.focus)

	out := m.View()
	assert.Contains(t, out, "Progress by folder")
	assert.Contains(t, out, "Top urgent")
	assert.Contains(t, out, "Write report")
}

func TestCollapseFolder(t *testing.T) {
	m, _ := newTestModel(t)
	m.sidebarCursor = m.itemIndex("f1")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.NotNil(t, cmd)
	assert.True(t, m.board.Tree.IsCollapsed("f1"))
	assert.Len(t, m.items, 5)
	assert.Equal(t, "f1", m.items[m.sidebarCursor].view)
	assert.True(t, m.items[3].collapsed)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Len(t, m.items, 6)
}

func TestCollapseIgnoresSpecialViews(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	assert.Nil(t, cmd)
	assert.Len(t, m.items, 6)
}

func TestSearchMode(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("/"))
	require.Equal(t, searchingMode, m.uiMode)

	m, _ = press(t, m, runes("milk"))
	assert.Equal(t, "milk", m.board.Session.Search)
	assert.Equal(t, []int64{2}, taskIDs(m.tasks))

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, normalMode, m.uiMode)
	assert.Equal(t, listFocus, m.focus)
	assert.Equal(t, "milk", m.board.Session.Search)
	assert.Contains(t, m.View(), `search: "milk"`)

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.board.Session.Search)
	assert.Len(t, m.tasks, 3)
}

func TestSearchModeTypesShortcutKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("/"))
	m, _ = press(t, m, runes("q"))
	assert.Equal(t, searchingMode, m.uiMode)
	assert.Equal(t, "q", m.board.Session.Search)
}

func TestCycleStat(t *testing.T) {
	tests := []struct {
		stat string
		want []int64
	}{
		{query.StatActive, []int64{1, 2}},
		{query.StatCompleted, []int64{3}},
		{query.StatUrgent, []int64{1}},
		{query.StatAll, []int64{1, 2, 3}},
	}

	m, _ := newTestModel(t)
	for _, tt := range tests {
		m, _ = press(t, m, runes("s"))
		assert.Equal(t, tt.stat, m.board.Session.Stat)
		assert.Equal(t, tt.want, taskIDs(m.tasks), tt.stat)
		// counters always cover the whole scope
		assert.Equal(t, 3, m.result.Counters.Total)
	}
}

func TestShowCompletedAndClearFilters(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("c"))
	assert.False(t, m.board.Session.ShowCompleted)
	assert.Equal(t, []int64{1, 2}, taskIDs(m.tasks))
	assert.Contains(t, m.View(), "completed hidden")

	m.board.Session.Search = "report"
	m.board.Session.Stat = query.StatActive
	m, _ = press(t, m, runes("F"))
	assert.Equal(t, "", m.board.Session.Search)
	assert.Equal(t, query.StatAll, m.board.Session.Stat)
	assert.Equal(t, "Filters cleared", m.message)
}

func TestMoveTaskSwitchesToManualOrder(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := press(t, m, runes("J"))
	assert.True(t, m.board.Session.ManualSort)
	assert.Equal(t, []int64{2, 1, 3}, taskIDs(m.tasks))
	assert.Equal(t, 1, m.listCursor)
	assert.Contains(t, m.View(), "(manual order)")

	m = flush(t, m, cmd)
	require.Len(t, store.saved, 1)
	assert.True(t, store.saved[0].ManualSort)

	m, _ = press(t, m, runes("o"))
	assert.False(t, m.board.Session.ManualSort)
	assert.Equal(t, []int64{1, 2, 3}, taskIDs(m.tasks))
}

func TestMoveTaskAtEdgeIsNoop(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(t, m, runes("K"))
	assert.Equal(t, 0, m.listCursor)
	assert.Equal(t, []int64{1, 2, 3}, taskIDs(m.board.Tasks.All()))
}

func TestListNavigationAndDetail(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = press(t, m, runes("j"))
	m, _ = press(t, m, runes("j"))
	assert.Equal(t, 2, m.listCursor)

	m, _ = press(t, m, runes("k"))
	assert.Equal(t, int64(2), m.selectedTask().ID)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, detailMode, m.uiMode)
	out := m.View()
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "two liters")
	assert.Contains(t, out, "Folder:")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, normalMode, m.uiMode)
	assert.Equal(t, listFocus, m.focus)

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, sidebarFocus, m.focus)
}

func TestCalendarView(t *testing.T) {
	m, _ := newTestModel(t)
	require.NoError(t, m.board.SelectView(domain.ViewCalendar))
	m.refresh()

	out := m.View()
	assert.Contains(t, out, "2024-05")
	assert.Contains(t, out, "Buy milk")
	// already finished
	assert.NotContains(t, out, "Old chore")
}

func TestSavedToCacheOnly(t *testing.T) {
	m, _ := newTestModel(t)
	m.saving = 1

	m, _ = press(t, m, savedMsg{remote: false})
	assert.Equal(t, 0, m.saving)
	assert.Equal(t, "Saved to the local cache only", m.message)
}

func TestReloadKeepsSession(t *testing.T) {
	m, store := newTestModel(t)
	m.board.Session.Stat = query.StatActive
	require.NoError(t, m.board.SelectView("f1"))

	snap := testSnapshot()
	snap.Tasks = snap.Tasks[:1]
	store.load = snap

	m, cmd := press(t, m, runes("r"))
	m = flush(t, m, cmd)

	assert.Equal(t, "f1", m.board.Session.View)
	assert.Equal(t, query.StatActive, m.board.Session.Stat)
	assert.Equal(t, []int64{1}, taskIDs(m.tasks))
	assert.Equal(t, m.itemIndex("f1"), m.sidebarCursor)
	assert.Equal(t, "Reloaded 1 task(s) from remote", m.message)
}

func TestReloadFallsBackWhenViewIsGone(t *testing.T) {
	m, store := newTestModel(t)
	require.NoError(t, m.board.SelectView("f2"))

	snap := testSnapshot()
	snap.Folders = snap.Folders[:1]
	snap.CurrentFolder = domain.ViewAll
	store.load = snap

	m, cmd := press(t, m, runes("r"))
	m = flush(t, m, cmd)
	assert.Equal(t, domain.ViewAll, m.board.Session.View)
}

func TestNilStoreKeepsChangesInMemory(t *testing.T) {
	b := board.FromSnapshot(testSnapshot())
	m := NewModel(b, nil, nil, func() time.Time { return fixedNow })
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := press(t, m, runes("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, 0, m.saving)
}

func TestQuitAndHelp(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.True(t, m.help.ShowAll)

	_, cmd := press(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestWindow(t *testing.T) {
	tests := []struct {
		name                string
		total, cursor, size int
		wantStart, wantEnd  int
	}{
		{"fits", 3, 2, 5, 0, 3},
		{"top", 20, 0, 5, 0, 5},
		{"middle", 20, 10, 5, 8, 13},
		{"bottom", 20, 19, 5, 15, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := window(tt.total, tt.cursor, tt.size)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
		})
	}
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "░░░░", progressBar(0, 4))
	assert.Equal(t, "██░░", progressBar(50, 4))
	assert.Equal(t, "████", progressBar(150, 4))
}

func TestSetupModel(t *testing.T) {
	var saved string
	m := NewSetupModel(func(name string) error {
		saved = name
		return nil
	})
	themes := theme.ListThemes()

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(SetupModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SetupModel)

	require.NotNil(t, cmd)
	assert.Equal(t, themes[1], saved)
	assert.Equal(t, themes[1], m.Selected())
	assert.Equal(t, "", m.View())
}

func TestSetupModelSaveError(t *testing.T) {
	m := NewSetupModel(func(name string) error { return errors.New("read-only home") })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(SetupModel)
	assert.Nil(t, cmd)
	assert.Equal(t, "", m.Selected())
	assert.Contains(t, m.View(), "read-only home")
}

func TestSetupModelCancel(t *testing.T) {
	m := NewSetupModel(nil)
	next, _ := m.Update(runes("q"))
	m = next.(SetupModel)
	assert.Equal(t, "", m.Selected())
	assert.Equal(t, "Theme selection cancelled.\n", m.View())
}
