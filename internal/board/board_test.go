package board

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/domain"
)

func TestFolderRenameAndDeleteScenario(t *testing.T) {
	b := New()

	eng, err := b.AddFolder("Eng", "", "")
	require.NoError(t, err)
	backend, err := b.AddFolder("Backend", eng.ID, "")
	require.NoError(t, err)

	x, err := b.AddTask(domain.TaskFields{Title: "X", FolderID: backend.ID})
	require.NoError(t, err)
	assert.Equal(t, "Backend", x.Folder)

	require.NoError(t, b.RenameFolder(eng.ID, "Engineering"))
	parent, _ := b.Tree.Get(backend.Parent)
	assert.Equal(t, "Engineering", parent.Name)
	assert.Equal(t, "Backend", b.FolderName(x))

	require.NoError(t, b.DeleteFolder(backend.ID))
	_, exists := b.Tree.ByName("Backend")
	assert.False(t, exists)
	assert.Equal(t, backend.ID, x.FolderID)
	assert.Equal(t, "Backend", b.FolderName(x))
	assert.Equal(t, domain.DefaultColor, b.FolderColor(x))
}

func TestRenameFolderRelabelsTasks(t *testing.T) {
	b := New()
	f, _ := b.AddFolder("Ops", "", "")
	task, _ := b.AddTask(domain.TaskFields{Title: "a", FolderID: f.ID})

	require.NoError(t, b.RenameFolder(f.ID, "Operations"))
	assert.Equal(t, "Operations", task.Folder)

	_, err := b.AddFolder("Ops2", "", "")
	require.NoError(t, err)
	assert.True(t, errors.Is(b.RenameFolder(f.ID, "Ops2"), domain.ErrDuplicateName))
	assert.Equal(t, "Operations", task.Folder)
}

func TestDeleteFolderResetsSession(t *testing.T) {
	b := New()
	f, _ := b.AddFolder("Ops", "", "")
	require.NoError(t, b.SelectView(f.ID))
	b.Session.Category = f.ID

	require.NoError(t, b.DeleteFolder(f.ID))
	assert.Equal(t, domain.ViewAll, b.Session.View)
	assert.Equal(t, "all", b.Session.Category)
}

func TestSelectView(t *testing.T) {
	b := New()
	require.NoError(t, b.SelectView(domain.ViewCalendar))
	assert.True(t, errors.Is(b.SelectView("missing"), domain.ErrNotFound))
	assert.Equal(t, domain.ViewCalendar, b.Session.View)
}

func TestManualSortFlag(t *testing.T) {
	b := New()
	a, _ := b.AddTask(domain.TaskFields{Title: "a", EndDate: "2024-01-01"})
	c, _ := b.AddTask(domain.TaskFields{Title: "c", EndDate: "2024-12-31"})
	assert.False(t, b.Session.ManualSort)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	assert.Equal(t, a.ID, b.Run(now).Active[0].ID)

	require.NoError(t, b.MoveTask(a.ID, 1))
	assert.True(t, b.Session.ManualSort)
	assert.Equal(t, []int64{c.ID, a.ID}, ids(b.Run(now).Active))

	require.NoError(t, b.MoveTask(a.ID, -1))
	assert.Equal(t, []int64{a.ID, c.ID}, ids(b.Run(now).Active))

	b.ResetSort()
	assert.False(t, b.Session.ManualSort)

	assert.Error(t, b.PlaceTask(999, 0, 0))
	assert.False(t, b.Session.ManualSort)
	require.NoError(t, b.PlaceTask(a.ID, c.ID, 0))
	assert.True(t, b.Session.ManualSort)
}

func TestAddTaskValidates(t *testing.T) {
	b := New()
	_, err := b.AddTask(domain.TaskFields{Title: " "})
	assert.Error(t, err)
	assert.Equal(t, 0, b.Tasks.Len())
}

func TestDeleteMemberKeepsTaskReference(t *testing.T) {
	b := New()
	m, _ := b.AddMember("Riley")
	task, _ := b.AddTask(domain.TaskFields{Title: "a", Members: []string{m.ID}})
	b.Session.Assignee = m.ID

	require.NoError(t, b.DeleteMember(m.ID))
	assert.Equal(t, []string{m.ID}, task.Members)
	assert.Equal(t, []string{m.ID}, b.MemberNames(task))
	assert.Equal(t, "all", b.Session.Assignee)
}

func TestSnapshotRoundTrip(t *testing.T) {
	b := FromSnapshot(domain.DefaultSnapshot())
	folder := b.Tree.Folders()[1]
	require.NoError(t, b.SelectView(folder.ID))
	b.ToggleCollapse(folder.ID)
	_, err := b.AddTask(domain.TaskFields{Title: "trip", FolderID: folder.ID})
	require.NoError(t, err)
	require.NoError(t, b.MoveTask(b.Tasks.All()[0].ID, 1))

	snap := b.Snapshot()
	assert.Equal(t, folder.ID, snap.CurrentFolder)
	assert.Equal(t, []string{folder.ID}, snap.CollapsedFolders)
	assert.True(t, snap.ManualSort)

	restored := FromSnapshot(snap)
	assert.Equal(t, folder.ID, restored.Session.View)
	assert.True(t, restored.Session.ManualSort)
	assert.True(t, restored.Tree.IsCollapsed(folder.ID))
	assert.Equal(t, 1, restored.Tasks.Len())
	assert.Len(t, restored.Members.All(), 5)
}

func TestFromSnapshotUnknownViewFallsBack(t *testing.T) {
	snap := domain.DefaultSnapshot()
	snap.CurrentFolder = "gone"
	b := FromSnapshot(snap)
	assert.Equal(t, domain.ViewAll, b.Session.View)
}

func ids(tasks []*domain.Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestResolveSuggestsClosestName(t *testing.T) {
	b := New()
	_, err := b.AddFolder("Leave Requests", "", "")
	require.NoError(t, err)
	_, err = b.AddMember("Jordan Lee")
	require.NoError(t, err)

	_, err = b.ResolveFolder("Leav Requests")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `did you mean "Leave Requests"?`)

	_, err = b.ResolveMember("jordan")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), `did you mean "Jordan Lee"?`)

	_, err = b.ResolveMember("Zed")
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotContains(t, err.Error(), "did you mean")
}
