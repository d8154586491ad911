package tree

import (
	"fmt"
	"strings"

	"task-dashboard/internal/domain"
)

// Node is one row of a flattened folder tree.
type Node struct {
	Folder      *domain.Folder
	Depth       int
	HasChildren bool
	Collapsed   bool
	// Hidden is set when any ancestor is collapsed.
	Hidden bool
}

// Tree is an arena of folders keyed by ID. Storage order is kept separate
// from the parent/child display order.
type Tree struct {
	folders   map[string]*domain.Folder
	order     []string
	children  map[string][]string
	collapsed map[string]bool
}

func New() *Tree {
	return &Tree{
		folders:   make(map[string]*domain.Folder),
		children:  make(map[string][]string),
		collapsed: make(map[string]bool),
	}
}

// Load builds a tree from stored folders and a collapsed set. Folders with
// an empty or duplicate ID are skipped.
func Load(folders []*domain.Folder, collapsed []string) *Tree {
	t := New()
	for _, f := range folders {
		if f == nil || f.ID == "" {
			continue
		}
		if _, exists := t.folders[f.ID]; exists {
			continue
		}
		t.folders[f.ID] = f
		t.order = append(t.order, f.ID)
	}
	for _, id := range collapsed {
		if _, ok := t.folders[id]; ok {
			t.collapsed[id] = true
		}
	}
	t.rebuild()
	return t
}

func (t *Tree) rebuild() {
	t.children = make(map[string][]string, len(t.order))
	for _, id := range t.order {
		f := t.folders[id]
		if f.Parent == "" {
			continue
		}
		if _, ok := t.folders[f.Parent]; !ok {
			continue
		}
		t.children[f.Parent] = append(t.children[f.Parent], id)
	}
}

func (t *Tree) Len() int {
	return len(t.order)
}

func (t *Tree) Get(id string) (*domain.Folder, bool) {
	f, ok := t.folders[id]
	return f, ok
}

func (t *Tree) ByName(name string) (*domain.Folder, bool) {
	for _, id := range t.order {
		if f := t.folders[id]; f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Resolve looks a folder up by ID first, then by name.
func (t *Tree) Resolve(ref string) (*domain.Folder, bool) {
	if f, ok := t.folders[ref]; ok {
		return f, true
	}
	return t.ByName(ref)
}

// Folders returns every folder in storage order.
func (t *Tree) Folders() []*domain.Folder {
	out := make([]*domain.Folder, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.folders[id])
	}
	return out
}

func (t *Tree) Children(id string) []*domain.Folder {
	ids := t.children[id]
	out := make([]*domain.Folder, 0, len(ids))
	for _, c := range ids {
		out = append(out, t.folders[c])
	}
	return out
}

// Add inserts a new folder at the end of storage order. parentID may refer
// to a folder that does not exist; such folders render at root level.
func (t *Tree) Add(name, parentID, color string) (*domain.Folder, error) {
	name, err := domain.ValidateName(name)
	if err != nil {
		return nil, err
	}
	if _, exists := t.ByName(name); exists {
		return nil, fmt.Errorf("%w: folder %q", domain.ErrDuplicateName, name)
	}
	if color == "" {
		color = domain.PaletteColor(len(t.order))
	}

	f := domain.NewFolder(name, parentID, color)
	t.folders[f.ID] = f
	t.order = append(t.order, f.ID)
	t.rebuild()
	return f, nil
}

// Rename changes a folder's display name. Blank or unchanged names are a no-op.
func (t *Tree) Rename(id, newName string) error {
	f, ok := t.folders[id]
	if !ok {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}
	newName = strings.TrimSpace(newName)
	if newName == "" || newName == f.Name {
		return nil
	}
	if other, exists := t.ByName(newName); exists && other.ID != id {
		return fmt.Errorf("%w: folder %q", domain.ErrDuplicateName, newName)
	}
	if len(newName) > 100 {
		return fmt.Errorf("%w: cannot exceed 100 characters", domain.ErrInvalidName)
	}
	f.Name = newName
	return nil
}

func (t *Tree) SetColor(id, color string) error {
	f, ok := t.folders[id]
	if !ok {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}
	if color != "" {
		f.Color = color
	}
	return nil
}

// Delete removes a folder and moves its direct children to the root.
func (t *Tree) Delete(id string) error {
	if _, ok := t.folders[id]; !ok {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}
	for _, c := range t.order {
		if f := t.folders[c]; f.Parent == id {
			f.Parent = ""
		}
	}
	delete(t.folders, id)
	delete(t.collapsed, id)
	for i, c := range t.order {
		if c == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	t.rebuild()
	return nil
}

// Reorder swaps a folder with its neighbour in storage order. Moving past
// either end is a no-op.
func (t *Tree) Reorder(id string, direction int) error {
	idx := t.index(id)
	if idx < 0 {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}
	target := idx + direction
	if direction == 0 || target < 0 || target >= len(t.order) {
		return nil
	}
	t.order[idx], t.order[target] = t.order[target], t.order[idx]
	t.rebuild()
	return nil
}

// Move reparents a folder. An empty parentID moves it to the root.
func (t *Tree) Move(id, parentID string) error {
	f, ok := t.folders[id]
	if !ok {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, id)
	}
	if parentID == "" {
		f.Parent = ""
		t.rebuild()
		return nil
	}
	if parentID == id {
		return fmt.Errorf("%w: %q cannot be its own parent", domain.ErrCycle, f.Name)
	}
	if _, ok := t.folders[parentID]; !ok {
		return fmt.Errorf("%w: folder %s", domain.ErrNotFound, parentID)
	}
	if t.IsAncestor(id, parentID) {
		return fmt.Errorf("%w: %q is a descendant of %q", domain.ErrCycle, t.folders[parentID].Name, f.Name)
	}
	f.Parent = parentID
	t.rebuild()
	return nil
}

// IsAncestor reports whether ancestorID appears on the parent chain of id.
func (t *Tree) IsAncestor(ancestorID, id string) bool {
	seen := make(map[string]bool)
	cur, ok := t.folders[id]
	for ok && cur.Parent != "" && !seen[cur.ID] {
		seen[cur.ID] = true
		if cur.Parent == ancestorID {
			return true
		}
		cur, ok = t.folders[cur.Parent]
	}
	return false
}

// ToggleCollapse flips the collapsed state of id and returns the new state.
func (t *Tree) ToggleCollapse(id string) bool {
	if t.collapsed[id] {
		delete(t.collapsed, id)
		return false
	}
	t.collapsed[id] = true
	return true
}

func (t *Tree) IsCollapsed(id string) bool {
	return t.collapsed[id]
}

// Collapsed returns the collapsed folder IDs in storage order.
func (t *Tree) Collapsed() []string {
	out := make([]string, 0, len(t.collapsed))
	for _, id := range t.order {
		if t.collapsed[id] {
			out = append(out, id)
		}
	}
	return out
}

// Flatten walks the tree depth-first in storage order. Folders whose parent
// is missing are roots. Folders only reachable through a parent cycle are
// emitted as roots once the regular walk is done.
func (t *Tree) Flatten() []Node {
	nodes := make([]Node, 0, len(t.order))
	visited := make(map[string]bool, len(t.order))

	var walk func(id string, depth int, hidden bool)
	walk = func(id string, depth int, hidden bool) {
		if visited[id] {
			return
		}
		visited[id] = true
		var kids []string
		for _, c := range t.children[id] {
			if !visited[c] {
				kids = append(kids, c)
			}
		}
		collapsed := t.collapsed[id]
		nodes = append(nodes, Node{
			Folder:      t.folders[id],
			Depth:       depth,
			HasChildren: len(kids) > 0,
			Collapsed:   collapsed,
			Hidden:      hidden,
		})
		for _, c := range kids {
			walk(c, depth+1, hidden || collapsed)
		}
	}

	for _, id := range t.order {
		if t.isRoot(id) {
			walk(id, 0, false)
		}
	}
	for _, id := range t.order {
		if !visited[id] {
			walk(id, 0, false)
		}
	}
	return nodes
}

// Visible is Flatten without the nodes under a collapsed ancestor.
func (t *Tree) Visible() []Node {
	all := t.Flatten()
	out := make([]Node, 0, len(all))
	for _, n := range all {
		if !n.Hidden {
			out = append(out, n)
		}
	}
	return out
}

// Path renders the ancestor chain of id, e.g. "Eng > Backend".
func (t *Tree) Path(id string) string {
	var parts []string
	seen := make(map[string]bool)
	cur, ok := t.folders[id]
	for ok && !seen[cur.ID] {
		seen[cur.ID] = true
		parts = append([]string{cur.Name}, parts...)
		if cur.Parent == "" {
			break
		}
		cur, ok = t.folders[cur.Parent]
	}
	return strings.Join(parts, " > ")
}

func (t *Tree) isRoot(id string) bool {
	f := t.folders[id]
	if f.Parent == "" {
		return true
	}
	_, ok := t.folders[f.Parent]
	return !ok
}

func (t *Tree) index(id string) int {
	for i, c := range t.order {
		if c == id {
			return i
		}
	}
	return -1
}
