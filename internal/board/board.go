package board

import (
	"fmt"
	"time"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/fuzzy"
	"task-dashboard/internal/query"
	"task-dashboard/internal/tree"
)

// Session is the per-user UI state that drives the task list.
type Session struct {
	View          string
	Search        string
	Category      string
	Assignee      string
	Priority      string
	Stat          string
	ManualSort    bool
	ShowCompleted bool
}

func NewSession() Session {
	return Session{
		View:          domain.ViewAll,
		Category:      "all",
		Assignee:      "all",
		Priority:      "all",
		Stat:          query.StatAll,
		ShowCompleted: true,
	}
}

func (s Session) Filter() query.Filter {
	return query.Filter{
		View:          s.View,
		Search:        s.Search,
		Category:      s.Category,
		Assignee:      s.Assignee,
		Priority:      s.Priority,
		Stat:          s.Stat,
		ManualSort:    s.ManualSort,
		ShowCompleted: s.ShowCompleted,
	}
}

// ClearFacets resets search and facet filters, keeping the view.
func (s *Session) ClearFacets() {
	s.Search = ""
	s.Category = "all"
	s.Assignee = "all"
	s.Priority = "all"
	s.Stat = query.StatAll
}

// Board owns the folder tree, the task store, the member roster and the
// session state of one user, and keeps them consistent with each other.
type Board struct {
	Tree    *tree.Tree
	Tasks   *Store
	Members *Roster
	Session Session
}

func New() *Board {
	return FromSnapshot(&domain.Snapshot{})
}

// FromSnapshot builds a board from a decoded snapshot. The snapshot is
// normalized in place.
func FromSnapshot(snap *domain.Snapshot) *Board {
	snap.Normalize()

	b := &Board{
		Tree:    tree.Load(snap.Folders, snap.CollapsedFolders),
		Tasks:   NewStore(snap.Tasks),
		Members: NewRoster(snap.Members),
		Session: NewSession(),
	}
	b.Session.ManualSort = snap.ManualSort
	if err := b.SelectView(snap.CurrentFolder); err != nil {
		b.Session.View = domain.ViewAll
	}
	return b
}

// Snapshot captures the persisted part of the board.
func (b *Board) Snapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Version:          domain.SnapshotVersion,
		Tasks:            b.Tasks.All(),
		Folders:          b.Tree.Folders(),
		Members:          b.Members.All(),
		CurrentFolder:    b.Session.View,
		CollapsedFolders: b.Tree.Collapsed(),
		ManualSort:       b.Session.ManualSort,
	}
}

// Run computes the current view lists.
func (b *Board) Run(now time.Time) query.Result {
	return query.Run(b.Tasks.All(), b.Session.Filter(), now)
}

// SelectView switches the sidebar to a special view or a folder.
func (b *Board) SelectView(view string) error {
	if view == "" {
		view = domain.ViewAll
	}
	if !domain.IsSpecialView(view) {
		if _, ok := b.Tree.Get(view); !ok {
			return fmt.Errorf("%w: folder %s", domain.ErrNotFound, view)
		}
	}
	b.Session.View = view
	return nil
}

// ResolveFolder finds a folder by ID or name.
func (b *Board) ResolveFolder(ref string) (*domain.Folder, error) {
	if f, ok := b.Tree.Resolve(ref); ok {
		return f, nil
	}
	names := make([]string, 0, b.Tree.Len())
	for _, f := range b.Tree.Folders() {
		names = append(names, f.Name)
	}
	return nil, notFoundRef("folder", ref, names)
}

func (b *Board) ResolveMember(ref string) (*domain.Member, error) {
	if m, ok := b.Members.Resolve(ref); ok {
		return m, nil
	}
	members := b.Members.All()
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return nil, notFoundRef("member", ref, names)
}

// notFoundRef wraps ErrNotFound, naming the closest known name when there is one.
func notFoundRef(kind, ref string, names []string) error {
	if guess, ok := fuzzy.Suggest(ref, names); ok {
		return fmt.Errorf("%w: %s %q (did you mean %q?)", domain.ErrNotFound, kind, ref, guess)
	}
	return fmt.Errorf("%w: %s %q", domain.ErrNotFound, kind, ref)
}

func (b *Board) AddFolder(name, parentID, color string) (*domain.Folder, error) {
	return b.Tree.Add(name, parentID, color)
}

// RenameFolder renames a folder and refreshes the folder label of its tasks.
func (b *Board) RenameFolder(id, name string) error {
	if err := b.Tree.Rename(id, name); err != nil {
		return err
	}
	f, _ := b.Tree.Get(id)
	b.Tasks.RelabelFolder(id, f.Name)
	return nil
}

// DeleteFolder removes a folder. Its tasks keep the dangling folder reference.
func (b *Board) DeleteFolder(id string) error {
	if err := b.Tree.Delete(id); err != nil {
		return err
	}
	if b.Session.View == id {
		b.Session.View = domain.ViewAll
	}
	if b.Session.Category == id {
		b.Session.Category = "all"
	}
	return nil
}

func (b *Board) MoveFolder(id, parentID string) error {
	return b.Tree.Move(id, parentID)
}

func (b *Board) ReorderFolder(id string, direction int) error {
	return b.Tree.Reorder(id, direction)
}

func (b *Board) ToggleCollapse(id string) bool {
	return b.Tree.ToggleCollapse(id)
}

// AddTask validates fields and inserts a new task at the front.
func (b *Board) AddTask(fields domain.TaskFields) (*domain.Task, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}
	t := b.Tasks.Add(fields)
	t.Folder = b.folderLabel(t.FolderID, "")
	return t, nil
}

func (b *Board) UpdateTask(id int64, fields domain.TaskFields) error {
	if err := fields.Validate(); err != nil {
		return err
	}
	if err := b.Tasks.Update(id, fields); err != nil {
		return err
	}
	t, _ := b.Tasks.Get(id)
	t.Folder = b.folderLabel(t.FolderID, t.Folder)
	return nil
}

func (b *Board) DeleteTask(id int64) error {
	return b.Tasks.Delete(id)
}

func (b *Board) ToggleComplete(id int64) error {
	return b.Tasks.ToggleComplete(id)
}

func (b *Board) ToggleSubtask(id int64, index int) error {
	return b.Tasks.ToggleSubtask(id, index)
}

func (b *Board) Attach(id int64, a domain.Attachment) error {
	return b.Tasks.Attach(id, a)
}

// MoveTask swaps a task with its storage neighbour and switches to manual sort.
func (b *Board) MoveTask(id int64, direction int) error {
	if err := b.Tasks.ReorderAdjacent(id, direction); err != nil {
		return err
	}
	b.Session.ManualSort = true
	return nil
}

// PlaceTask drops a task next to afterID or beforeID and switches to manual sort.
func (b *Board) PlaceTask(id, afterID, beforeID int64) error {
	if err := b.Tasks.ReorderToPosition(id, afterID, beforeID); err != nil {
		return err
	}
	b.Session.ManualSort = true
	return nil
}

// ResetSort returns to smart ordering.
func (b *Board) ResetSort() {
	b.Session.ManualSort = false
}

func (b *Board) AddMember(name string) (*domain.Member, error) {
	return b.Members.Add(name)
}

func (b *Board) RenameMember(id, name string) error {
	return b.Members.Rename(id, name)
}

// DeleteMember removes a member. Tasks keep the member ID.
func (b *Board) DeleteMember(id string) error {
	if err := b.Members.Delete(id); err != nil {
		return err
	}
	if b.Session.Assignee == id {
		b.Session.Assignee = "all"
	}
	return nil
}

func (b *Board) ReorderMember(id string, direction int) error {
	return b.Members.Reorder(id, direction)
}

// FolderName is the display name of a task's folder: the live folder name,
// else the stored label, else the raw reference.
func (b *Board) FolderName(t *domain.Task) string {
	return b.folderLabel(t.FolderID, t.Folder)
}

func (b *Board) FolderColor(t *domain.Task) string {
	if f, ok := b.Tree.Get(t.FolderID); ok && f.Color != "" {
		return f.Color
	}
	return domain.DefaultColor
}

// MemberNames resolves a task's member IDs, keeping unknown IDs verbatim.
func (b *Board) MemberNames(t *domain.Task) []string {
	out := make([]string, 0, len(t.Members))
	for _, id := range t.Members {
		out = append(out, b.Members.Name(id))
	}
	return out
}

func (b *Board) folderLabel(id, fallback string) string {
	if f, ok := b.Tree.Get(id); ok {
		return f.Name
	}
	if fallback != "" {
		return fallback
	}
	return id
}
