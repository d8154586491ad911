package tree

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/domain"
)

func names(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Folder.Name)
	}
	return out
}

func mustAdd(t *testing.T, tr *Tree, name, parent string) *domain.Folder {
	t.Helper()
	f, err := tr.Add(name, parent, "")
	require.NoError(t, err)
	return f
}

func TestAdd(t *testing.T) {
	tr := New()
	f := mustAdd(t, tr, "  Eng  ", "")
	assert.Equal(t, "Eng", f.Name)
	assert.Equal(t, domain.Palette[0], f.Color)
	assert.True(t, f.IsRoot())

	g := mustAdd(t, tr, "Ops", "")
	assert.Equal(t, domain.Palette[1], g.Color)

	_, err := tr.Add("Eng", "", "")
	assert.True(t, errors.Is(err, domain.ErrDuplicateName))

	_, err = tr.Add("   ", "", "")
	assert.True(t, errors.Is(err, domain.ErrInvalidName))

	assert.Equal(t, 2, tr.Len())
}

func TestRename(t *testing.T) {
	tests := []struct {
		name    string
		newName string
		wantErr error
		want    string
	}{
		{name: "renames", newName: "Engineering", want: "Engineering"},
		{name: "blank is a no-op", newName: "  ", want: "Eng"},
		{name: "unchanged is a no-op", newName: "Eng", want: "Eng"},
		{name: "collision", newName: "Ops", wantErr: domain.ErrDuplicateName, want: "Eng"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New()
			eng := mustAdd(t, tr, "Eng", "")
			mustAdd(t, tr, "Ops", "")

			err := tr.Rename(eng.ID, tt.newName)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, eng.Name)
		})
	}

	t.Run("missing folder", func(t *testing.T) {
		err := New().Rename("nope", "x")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}

func TestRenameKeepsChildrenAttached(t *testing.T) {
	tr := New()
	eng := mustAdd(t, tr, "Eng", "")
	backend := mustAdd(t, tr, "Backend", eng.ID)

	require.NoError(t, tr.Rename(eng.ID, "Engineering"))
	assert.Equal(t, eng.ID, backend.Parent)
	assert.Equal(t, "Engineering > Backend", tr.Path(backend.ID))
}

func TestDeleteReparentsChildren(t *testing.T) {
	tr := New()
	eng := mustAdd(t, tr, "Eng", "")
	backend := mustAdd(t, tr, "Backend", eng.ID)
	api := mustAdd(t, tr, "API", backend.ID)
	tr.ToggleCollapse(eng.ID)

	require.NoError(t, tr.Delete(eng.ID))

	assert.True(t, backend.IsRoot())
	assert.Equal(t, backend.ID, api.Parent)
	assert.Empty(t, tr.Collapsed())
	_, ok := tr.Get(eng.ID)
	assert.False(t, ok)
	assert.Equal(t, []string{"Backend", "API"}, names(tr.Flatten()))

	assert.True(t, errors.Is(tr.Delete(eng.ID), domain.ErrNotFound))
}

func TestReorder(t *testing.T) {
	tr := New()
	a := mustAdd(t, tr, "A", "")
	mustAdd(t, tr, "B", "")
	c := mustAdd(t, tr, "C", "")

	require.NoError(t, tr.Reorder(c.ID, -1))
	assert.Equal(t, []string{"A", "C", "B"}, names(tr.Flatten()))

	require.NoError(t, tr.Reorder(a.ID, -1))
	assert.Equal(t, []string{"A", "C", "B"}, names(tr.Flatten()))

	require.NoError(t, tr.Reorder(a.ID, 1))
	require.NoError(t, tr.Reorder(a.ID, 1))
	require.NoError(t, tr.Reorder(a.ID, 1))
	assert.Equal(t, []string{"C", "B", "A"}, names(tr.Flatten()))
}

func TestReorderUsesStorageOrderAcrossLevels(t *testing.T) {
	tr := New()
	root := mustAdd(t, tr, "Root", "")
	child := mustAdd(t, tr, "Child", root.ID)
	other := mustAdd(t, tr, "Other", "")

	// two storage swaps move Other ahead of Root
	require.NoError(t, tr.Reorder(other.ID, -1))
	require.NoError(t, tr.Reorder(other.ID, -1))
	assert.Equal(t, []string{"Other", "Root", "Child"}, names(tr.Flatten()))
	assert.Equal(t, root.ID, child.Parent)
}

func TestMove(t *testing.T) {
	tr := New()
	a := mustAdd(t, tr, "A", "")
	b := mustAdd(t, tr, "B", a.ID)
	c := mustAdd(t, tr, "C", b.ID)
	d := mustAdd(t, tr, "D", "")

	assert.True(t, errors.Is(tr.Move(a.ID, a.ID), domain.ErrCycle))
	assert.True(t, errors.Is(tr.Move(a.ID, c.ID), domain.ErrCycle))
	assert.True(t, errors.Is(tr.Move(a.ID, "missing"), domain.ErrNotFound))
	assert.Equal(t, "", a.Parent)

	require.NoError(t, tr.Move(c.ID, d.ID))
	assert.Equal(t, "A > B", tr.Path(b.ID))
	assert.Equal(t, "D > C", tr.Path(c.ID))

	require.NoError(t, tr.Move(b.ID, ""))
	assert.True(t, b.IsRoot())
}

func TestFlatten(t *testing.T) {
	tr := New()
	eng := mustAdd(t, tr, "Eng", "")
	mustAdd(t, tr, "Ops", "")
	backend := mustAdd(t, tr, "Backend", eng.ID)
	mustAdd(t, tr, "API", backend.ID)
	mustAdd(t, tr, "Frontend", eng.ID)

	nodes := tr.Flatten()
	assert.Equal(t, []string{"Eng", "Backend", "API", "Frontend", "Ops"}, names(nodes))

	depths := make([]int, 0, len(nodes))
	for _, n := range nodes {
		depths = append(depths, n.Depth)
	}
	assert.Equal(t, []int{0, 1, 2, 1, 0}, depths)
	assert.True(t, nodes[0].HasChildren)
	assert.False(t, nodes[2].HasChildren)
}

func TestFlattenCollapse(t *testing.T) {
	tr := New()
	eng := mustAdd(t, tr, "Eng", "")
	backend := mustAdd(t, tr, "Backend", eng.ID)
	mustAdd(t, tr, "API", backend.ID)
	ops := mustAdd(t, tr, "Ops", "")
	mustAdd(t, tr, "Infra", ops.ID)

	assert.True(t, tr.ToggleCollapse(eng.ID))

	nodes := tr.Flatten()
	assert.Len(t, nodes, 5)
	assert.True(t, nodes[0].Collapsed)
	assert.False(t, nodes[0].Hidden)
	assert.True(t, nodes[1].Hidden)
	assert.Equal(t, 2, nodes[2].Depth)
	assert.True(t, nodes[2].Hidden)

	assert.Equal(t, []string{"Eng", "Ops", "Infra"}, names(tr.Visible()))

	assert.False(t, tr.ToggleCollapse(eng.ID))
	assert.Len(t, tr.Visible(), 5)
}

func TestFlattenDanglingParentRendersAsRoot(t *testing.T) {
	tr := Load([]*domain.Folder{
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B", Parent: "gone"},
	}, nil)

	nodes := tr.Flatten()
	assert.Equal(t, []string{"A", "B"}, names(nodes))
	assert.Equal(t, 0, nodes[1].Depth)
}

func TestFlattenSurvivesCycles(t *testing.T) {
	tr := Load([]*domain.Folder{
		{ID: "a", Name: "A", Parent: "b"},
		{ID: "b", Name: "B", Parent: "a"},
		{ID: "c", Name: "C"},
		{ID: "d", Name: "D", Parent: "d"},
	}, []string{"a", "missing"})

	nodes := tr.Flatten()
	assert.ElementsMatch(t, []string{"A", "B", "C", "D"}, names(nodes))
	for _, n := range nodes {
		assert.GreaterOrEqual(t, n.Depth, 0)
	}
	assert.Equal(t, []string{"a"}, tr.Collapsed())
	assert.False(t, tr.IsAncestor("c", "a"))
	assert.NotEmpty(t, tr.Path("a"))
}

func TestFlattenCycleChildrenFollowTheirParent(t *testing.T) {
	tr := Load([]*domain.Folder{
		{ID: "a", Name: "A", Parent: "b"},
		{ID: "b", Name: "B", Parent: "a"},
		{ID: "d", Name: "D", Parent: "d"},
	}, nil)

	nodes := tr.Flatten()
	require.Len(t, nodes, 3)
	for i, n := range nodes {
		if !n.HasChildren {
			continue
		}
		require.Less(t, i+1, len(nodes), n.Folder.Name)
		assert.Equal(t, n.Depth+1, nodes[i+1].Depth, n.Folder.Name)
	}

	byName := make(map[string]Node, len(nodes))
	for _, n := range nodes {
		byName[n.Folder.Name] = n
	}
	assert.False(t, byName["D"].HasChildren)
}

func TestLoadSkipsDuplicateIDs(t *testing.T) {
	tr := Load([]*domain.Folder{
		{ID: "a", Name: "A"},
		{ID: "a", Name: "A2"},
		{Name: "no id"},
	}, nil)
	assert.Equal(t, 1, tr.Len())
}
