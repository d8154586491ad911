package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/theme"
)

type focusArea int

const (
	sidebarFocus focusArea = iota
	listFocus
)

type uiMode int

const (
	normalMode uiMode = iota
	searchingMode
	detailMode
)

// statCycle is the order the quick-stat filter steps through
var statCycle = []string{query.StatAll, query.StatActive, query.StatCompleted, query.StatUrgent}

// sidebarItem is one selectable sidebar row: a special view or a folder
type sidebarItem struct {
	view        string
	label       string
	color       string
	depth       int
	folder      bool
	hasChildren bool
	collapsed   bool
}

type Model struct {
	board *board.Board
	store Store
	ctx   context.Context
	now   func() time.Time

	items  []sidebarItem
	result query.Result
	tasks  []*domain.Task

	sidebarCursor int
	listCursor    int
	focus         focusArea
	uiMode        uiMode

	keys        keyMap
	help        help.Model
	searchInput textinput.Model

	theme  *theme.Theme
	styles *theme.Styles

	width    int
	height   int
	showHelp bool
	saving   int
	message  string
	err      error
}

// NewModel builds the dashboard over an already loaded board. store may be
// nil, in which case changes stay in memory.
func NewModel(b *board.Board, store Store, th *theme.Theme, now func() time.Time) Model {
	if th == nil {
		th = theme.GetDefaultTheme()
	}
	if now == nil {
		now = time.Now
	}

	search := textinput.New()
	search.Placeholder = "Search title and notes..."
	search.CharLimit = 100
	search.Width = 40

	m := Model{
		board:       b,
		store:       store,
		ctx:         context.Background(),
		now:         now,
		keys:        defaultKeyMap(),
		help:        help.New(),
		searchInput: search,
		theme:       th,
		styles:      theme.NewStyles(th),
		width:       100,
		height:      30,
	}
	m.refresh()
	m.sidebarCursor = m.itemIndex(b.Session.View)
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Board exposes the board the model drives.
func (m Model) Board() *board.Board {
	return m.board
}

// refresh recomputes the sidebar rows and the task list from the board.
func (m *Model) refresh() {
	m.items = m.buildSidebar()
	m.result = m.board.Run(m.now())
	m.tasks = m.result.Tasks()

	m.sidebarCursor = clamp(m.sidebarCursor, len(m.items))
	m.listCursor = clamp(m.listCursor, len(m.tasks))
}

func (m *Model) buildSidebar() []sidebarItem {
	items := []sidebarItem{
		{view: domain.ViewDashboard, label: "Dashboard"},
		{view: domain.ViewAll, label: "All Tasks"},
		{view: domain.ViewCalendar, label: "Calendar"},
	}
	for _, n := range m.board.Tree.Visible() {
		items = append(items, sidebarItem{
			view:        n.Folder.ID,
			label:       n.Folder.Name,
			color:       n.Folder.Color,
			depth:       n.Depth,
			folder:      true,
			hasChildren: n.HasChildren,
			collapsed:   n.Collapsed,
		})
	}
	return items
}

func (m *Model) itemIndex(view string) int {
	if view == domain.ViewForm {
		view = domain.ViewAll
	}
	for i, it := range m.items {
		if it.view == view {
			return i
		}
	}
	return 0
}

func (m *Model) taskIndex(id int64) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (m *Model) selectedTask() *domain.Task {
	if m.listCursor < 0 || m.listCursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.listCursor]
}

func (m *Model) selectedItem() (sidebarItem, bool) {
	if m.sidebarCursor < 0 || m.sidebarCursor >= len(m.items) {
		return sidebarItem{}, false
	}
	return m.items[m.sidebarCursor], true
}

// showsTaskList reports whether the current view renders the task list.
func (m *Model) showsTaskList() bool {
	v := m.board.Session.View
	return v != domain.ViewDashboard && v != domain.ViewCalendar
}

func (m *Model) save() tea.Cmd {
	if m.store == nil {
		return nil
	}
	m.saving++
	return saveCmd(m.ctx, m.store, m.board.Snapshot())
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func nextStat(stat string) string {
	for i, s := range statCycle {
		if s == stat {
			return statCycle[(i+1)%len(statCycle)]
		}
	}
	return query.StatAll
}
