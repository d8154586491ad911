package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/board"
	"task-dashboard/internal/config"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/repository/sqlite"
)

var fixedNow = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

// setupCLI points the commands at a throwaway database and a fixed clock.
func setupCLI(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.GetDefaultConfig()
	cfg.DBPath = filepath.Join(dir, "dashboard.db")
	cfg.CachePath = filepath.Join(dir, "cache.db")
	cfg.DBDriver = sqlite.DriverPureGo
	cfg.UploadDir = filepath.Join(dir, "uploads")
	cfg.LogLevel = "error"

	origLoad, origNow, origTheme := loadConfig, now, updateTheme
	t.Cleanup(func() {
		loadConfig, now, updateTheme = origLoad, origNow, origTheme
	})

	loadConfig = func() (*config.Config, error) {
		c := *cfg
		return &c, nil
	}
	now = func() time.Time { return fixedNow }

	return cfg
}

func run(t *testing.T, args ...string) string {
	t.Helper()

	out, err := runErr(t, args...)
	require.NoError(t, err)
	return out
}

func runErr(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func loadBoard(t *testing.T, cfg *config.Config) *board.Board {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath, Driver: cfg.DBDriver})
	require.NoError(t, err)
	defer db.Close()

	snap, err := sqlite.NewSnapshotRepository(db).Load(context.Background())
	require.NoError(t, err)
	return board.FromSnapshot(snap)
}

func TestFolderAddAndList(t *testing.T) {
	cfg := setupCLI(t)

	out := run(t, "folder", "add", "Backend")
	assert.Contains(t, out, "Folder 'Backend' created")

	out = run(t, "folder", "add", "API", "--parent", "Backend")
	assert.Contains(t, out, "Folder 'API' created (Backend > API)")

	out = run(t, "folder", "list")
	assert.Contains(t, out, "General")
	assert.Contains(t, out, "Backend")
	assert.Contains(t, out, "API")

	b := loadBoard(t, cfg)
	api, err := b.ResolveFolder("API")
	require.NoError(t, err)
	backend, err := b.ResolveFolder("Backend")
	require.NoError(t, err)
	assert.Equal(t, backend.ID, api.Parent)
}

func TestFolderAddDuplicateIsReported(t *testing.T) {
	cfg := setupCLI(t)

	run(t, "folder", "add", "Backend")
	out := run(t, "folder", "add", "Backend")
	assert.Contains(t, out, "failed to create folder")

	b := loadBoard(t, cfg)
	count := 0
	for _, f := range b.Tree.Folders() {
		if f.Name == "Backend" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestTaskAddDefaultsToFirstFolder(t *testing.T) {
	cfg := setupCLI(t)

	out := run(t, "task", "add", "Write", "report", "--priority", "high", "--end", "2024-05-13", "--member", "Alex Kim")
	assert.Contains(t, out, "created successfully!")
	assert.Contains(t, out, "Write report")
	assert.Contains(t, out, "Alex Kim")

	b := loadBoard(t, cfg)
	tasks := b.Tasks.All()
	require.Len(t, tasks, 1)

	task := tasks[0]
	assert.Equal(t, fixedNow.UnixMilli(), task.ID)
	assert.Equal(t, "General", b.FolderName(task))
	assert.Equal(t, domain.PriorityHigh, task.Priority)
	assert.Equal(t, "2024-05-13", task.EndDate)
	assert.Equal(t, []string{"Alex Kim"}, b.MemberNames(task))
}

func TestTaskAddUnknownFolderSuggests(t *testing.T) {
	cfg := setupCLI(t)

	run(t, "folder", "add", "Work")
	out := run(t, "task", "add", "Lost", "--folder", "Genral")
	assert.Contains(t, out, "Nothing changed")
	assert.Contains(t, out, `did you mean "General"?`)

	assert.Zero(t, loadBoard(t, cfg).Tasks.Len())
}

func TestTaskDoneTogglesCompletion(t *testing.T) {
	cfg := setupCLI(t)

	run(t, "task", "add", "Ship")
	id := loadBoard(t, cfg).Tasks.All()[0].ID
	ref := formatID(id)

	out := run(t, "task", "done", ref)
	assert.Contains(t, out, "completed")

	task, ok := loadBoard(t, cfg).Tasks.Get(id)
	require.True(t, ok)
	assert.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)

	out = run(t, "task", "done", ref)
	assert.Contains(t, out, "reopened")

	task, ok = loadBoard(t, cfg).Tasks.Get(id)
	require.True(t, ok)
	assert.False(t, task.Completed)
	assert.Nil(t, task.CompletedAt)
}

func TestTaskDoneUnknownID(t *testing.T) {
	setupCLI(t)

	out := run(t, "task", "done", "42")
	assert.Contains(t, out, "Nothing changed")
}

func TestTaskDeleteInvalidID(t *testing.T) {
	setupCLI(t)

	_, err := runErr(t, "task", "delete", "abc")
	assert.Error(t, err)
}

func TestTaskListFilters(t *testing.T) {
	setupCLI(t)

	run(t, "folder", "add", "Work")
	run(t, "task", "add", "Quarterly report", "--folder", "Work", "--priority", "high")
	run(t, "task", "add", "Buy milk", "--folder", "General")

	tests := []struct {
		name    string
		args    []string
		want    []string
		notWant []string
	}{
		{
			name: "all tasks",
			args: []string{"task", "list"},
			want: []string{"Quarterly report", "Buy milk", "Total 2"},
		},
		{
			name:    "folder view",
			args:    []string{"task", "list", "--view", "Work"},
			want:    []string{"Quarterly report"},
			notWant: []string{"Buy milk"},
		},
		{
			name:    "search",
			args:    []string{"task", "list", "--search", "milk"},
			want:    []string{"Buy milk"},
			notWant: []string{"Quarterly report"},
		},
		{
			name:    "shorthand",
			args:    []string{"task", "list", "--filter", "#Work !high report"},
			want:    []string{"Quarterly report"},
			notWant: []string{"Buy milk"},
		},
		{
			name: "nothing matches",
			args: []string{"task", "list", "--priority", "lowest"},
			want: []string{"No tasks match."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := run(t, tt.args...)
			for _, s := range tt.want {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notWant {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestTaskListRejectsBadFilter(t *testing.T) {
	setupCLI(t)

	out := run(t, "task", "list", "--filter", "!nope")
	assert.Contains(t, out, "invalid filter")

	out = run(t, "task", "list", "--search", "a", "--filter", "b")
	assert.Contains(t, out, "search text given twice")

	out = run(t, "task", "list", "--stat", "later")
	assert.Contains(t, out, "invalid stat")
}

func TestTaskListDoesNotPersistFilters(t *testing.T) {
	cfg := setupCLI(t)

	run(t, "folder", "add", "Work")
	run(t, "task", "list", "--view", "Work", "--search", "x")

	b := loadBoard(t, cfg)
	assert.Equal(t, domain.ViewAll, b.Session.View)
	assert.Empty(t, b.Session.Search)
}

func TestMemberCommands(t *testing.T) {
	cfg := setupCLI(t)

	out := run(t, "member", "add", "Taylor Han")
	assert.Contains(t, out, "Member 'Taylor Han' added")

	out = run(t, "member", "rename", "Taylor Han", "Taylor H.")
	assert.Contains(t, out, "renamed to 'Taylor H.'")

	out = run(t, "member", "list")
	assert.Contains(t, out, "Taylor H.")
	assert.Contains(t, out, "Alex Kim")

	b := loadBoard(t, cfg)
	_, err := b.ResolveMember("Taylor H.")
	assert.NoError(t, err)

	out = run(t, "member", "delete", "Taylor H.")
	assert.Contains(t, out, "Member 'Taylor H.' deleted")

	b = loadBoard(t, cfg)
	_, err = b.ResolveMember("Taylor H.")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboardCommand(t *testing.T) {
	setupCLI(t)

	run(t, "task", "add", "Due soon", "--priority", "urgent", "--end", "2024-05-11")
	run(t, "task", "add", "Later", "--end", "2024-06-30")

	out := run(t, "dashboard")
	assert.Contains(t, out, "Dashboard")
	assert.Contains(t, out, "Progress by Folder")
	assert.Contains(t, out, "Most Urgent")
	assert.Contains(t, out, "Due soon")
	assert.Contains(t, out, "D-1")
}

func TestExportImportRoundTrip(t *testing.T) {
	cfg := setupCLI(t)

	run(t, "folder", "add", "Work")
	run(t, "task", "add", "Keep me", "--folder", "Work", "--notes", "from backup")

	backup := filepath.Join(t.TempDir(), "backup.json")
	out := run(t, "export", "--output", backup)
	assert.Contains(t, out, "Exported 1 task(s)")

	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Keep me")

	run(t, "task", "add", "Drop me")
	require.Equal(t, 2, loadBoard(t, cfg).Tasks.Len())

	out = run(t, "import", backup)
	assert.Contains(t, out, "Imported 1 task(s)")

	b := loadBoard(t, cfg)
	tasks := b.Tasks.All()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Keep me", tasks[0].Title)
	assert.Equal(t, "from backup", tasks[0].Notes)
	assert.Equal(t, "Work", b.FolderName(tasks[0]))
}

func TestExportToStdout(t *testing.T) {
	setupCLI(t)

	run(t, "task", "add", "Print me")

	out := run(t, "export", "--format", "markdown", "--output", "-")
	assert.Contains(t, out, "Print me")
	assert.Contains(t, out, "General")
}

func TestImportRejectsInvalidBackup(t *testing.T) {
	cfg := setupCLI(t)

	run(t, "task", "add", "Survivor")

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("[1, 2, 3]"), 0644))

	out := run(t, "import", bad)
	assert.Contains(t, out, "invalid backup file")

	tasks := loadBoard(t, cfg).Tasks.All()
	require.Len(t, tasks, 1)
	assert.Equal(t, "Survivor", tasks[0].Title)
}

func TestExportUnknownFormat(t *testing.T) {
	setupCLI(t)

	_, err := runErr(t, "export", "--format", "xml")
	assert.Error(t, err)
}

func TestThemeSet(t *testing.T) {
	setupCLI(t)

	var saved string
	updateTheme = func(name string) error {
		saved = name
		return nil
	}

	out := run(t, "theme", "set", "nord")
	assert.Contains(t, out, "Theme set to 'nord'")
	assert.Equal(t, "nord", saved)

	_, err := runErr(t, "theme", "set", "neon")
	assert.Error(t, err)
	assert.Equal(t, "nord", saved)
}

func TestThemeList(t *testing.T) {
	setupCLI(t)

	out := run(t, "theme", "list")
	for _, name := range []string{"default", "dark", "dracula", "nord"} {
		assert.Contains(t, out, name)
	}
	assert.Contains(t, out, "(current)")
}

func formatID(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}
