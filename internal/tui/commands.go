package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/persist"
)

// Store is the persistence the dashboard loads from and saves to.
type Store interface {
	Load(ctx context.Context) (*domain.Snapshot, persist.Source)
	Save(ctx context.Context, snap *domain.Snapshot) bool
}

// savedMsg reports the outcome of a background save
type savedMsg struct {
	remote bool
}

// reloadedMsg carries a freshly loaded snapshot
type reloadedMsg struct {
	snap   *domain.Snapshot
	source persist.Source
}

// saveCmd writes a detached copy of the snapshot; the board keeps changing
// on the UI goroutine while the save runs.
func saveCmd(ctx context.Context, store Store, snap *domain.Snapshot) tea.Cmd {
	if store == nil {
		return nil
	}
	snap = detach(snap)
	return func() tea.Msg {
		return savedMsg{remote: store.Save(ctx, snap)}
	}
}

func reloadCmd(ctx context.Context, store Store) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		snap, source := store.Load(ctx)
		return reloadedMsg{snap: snap, source: source}
	}
}

func detach(snap *domain.Snapshot) *domain.Snapshot {
	out := *snap
	out.Tasks = make([]*domain.Task, len(snap.Tasks))
	for i, t := range snap.Tasks {
		out.Tasks[i] = t.Clone()
	}
	out.Folders = make([]*domain.Folder, len(snap.Folders))
	for i, f := range snap.Folders {
		c := *f
		out.Folders[i] = &c
	}
	out.Members = make([]*domain.Member, len(snap.Members))
	for i, m := range snap.Members {
		c := *m
		out.Members[i] = &c
	}
	out.CollapsedFolders = append([]string{}, snap.CollapsedFolders...)
	return &out
}
