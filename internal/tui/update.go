package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"task-dashboard/internal/board"
	"task-dashboard/internal/persist"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		if m.saving > 0 {
			m.saving--
		}
		if !msg.remote {
			m.message = "Saved to the local cache only"
		}
		return m, nil

	case reloadedMsg:
		m.applyReload(msg)
		return m, nil

	case tea.KeyMsg:
		if m.uiMode == searchingMode {
			return m.updateSearchMode(msg)
		}
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// updateSearchMode filters the list as the query is typed; enter keeps the
// query and esc drops it.
func (m Model) updateSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.uiMode = normalMode
		m.searchInput.Blur()
		m.focus = listFocus
		return m, nil

	case tea.KeyEsc:
		m.uiMode = normalMode
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.board.Session.Search = ""
		m.refresh()
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.board.Session.Search = m.searchInput.Value()
	m.listCursor = 0
	m.refresh()
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.uiMode = searchingMode
		m.message = ""
		m.searchInput.SetValue(m.board.Session.Search)
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.CycleStat):
		m.board.Session.Stat = nextStat(m.board.Session.Stat)
		m.listCursor = 0
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ShowCompleted):
		m.board.Session.ShowCompleted = !m.board.Session.ShowCompleted
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.ClearFilters):
		m.board.Session.ClearFacets()
		m.searchInput.SetValue("")
		m.message = "Filters cleared"
		m.refresh()
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.message = "Reloading..."
		return m, reloadCmd(m.ctx, m.store)

	case key.Matches(msg, m.keys.Focus):
		if m.focus == sidebarFocus {
			m.focus = listFocus
		} else {
			m.focus = sidebarFocus
			m.uiMode = normalMode
		}
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.uiMode == detailMode {
			m.uiMode = normalMode
		} else {
			m.focus = sidebarFocus
		}
		return m, nil
	}

	if m.focus == sidebarFocus {
		return m.handleSidebarKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.sidebarCursor > 0 {
			m.sidebarCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.sidebarCursor < len(m.items)-1 {
			m.sidebarCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		item, ok := m.selectedItem()
		if !ok {
			return m, nil
		}
		if err := m.board.SelectView(item.view); err != nil {
			m.err = err
			return m, nil
		}
		m.listCursor = 0
		m.message = ""
		m.refresh()
		if m.showsTaskList() {
			m.focus = listFocus
		}
		cmd := m.save()
		return m, cmd

	case key.Matches(msg, m.keys.Collapse):
		item, ok := m.selectedItem()
		if !ok || !item.folder {
			return m, nil
		}
		m.board.ToggleCollapse(item.view)
		m.refresh()
		m.sidebarCursor = m.itemIndex(item.view)
		cmd := m.save()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.showsTaskList() {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.listCursor > 0 {
			m.listCursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.listCursor < len(m.tasks)-1 {
			m.listCursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if m.selectedTask() != nil {
			m.uiMode = detailMode
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		return m.handleToggleComplete()

	case key.Matches(msg, m.keys.MoveUp):
		return m.handleMove(-1)

	case key.Matches(msg, m.keys.MoveDown):
		return m.handleMove(1)

	case key.Matches(msg, m.keys.SmartSort):
		if !m.board.Session.ManualSort {
			return m, nil
		}
		m.board.ResetSort()
		m.message = "Back to smart order"
		m.refresh()
		cmd := m.save()
		return m, cmd
	}

	return m, nil
}

func (m Model) handleToggleComplete() (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	if err := m.board.ToggleComplete(task.ID); err != nil {
		m.err = err
		return m, nil
	}

	if task.Completed {
		m.message = fmt.Sprintf("Task #%d completed", task.ID)
	} else {
		m.message = fmt.Sprintf("Task #%d reopened", task.ID)
	}
	m.refresh()
	cmd := m.save()
	return m, cmd
}

// handleMove swaps the selected task with its storage neighbour and keeps
// the cursor on it.
func (m Model) handleMove(direction int) (tea.Model, tea.Cmd) {
	task := m.selectedTask()
	if task == nil {
		return m, nil
	}
	if err := m.board.MoveTask(task.ID, direction); err != nil {
		// already at the edge
		return m, nil
	}

	m.refresh()
	if i := m.taskIndex(task.ID); i >= 0 {
		m.listCursor = i
	}
	m.message = "Manual order"
	cmd := m.save()
	return m, cmd
}

// applyReload swaps in a reloaded board, keeping the session filters.
func (m *Model) applyReload(msg reloadedMsg) {
	session := m.board.Session

	b := board.FromSnapshot(msg.snap)
	b.Tasks.SetClock(m.now)
	view := b.Session.View
	b.Session = session
	b.Session.ManualSort = msg.snap.ManualSort
	if err := b.SelectView(session.View); err != nil {
		b.Session.View = view
	}
	if session.Category != "all" {
		if _, ok := b.Tree.Get(session.Category); !ok {
			b.Session.Category = "all"
		}
	}

	m.board = b
	m.uiMode = normalMode
	m.refresh()
	m.sidebarCursor = m.itemIndex(b.Session.View)
	m.message = fmt.Sprintf("Reloaded %d task(s) from %s", b.Tasks.Len(), msg.source)
	if msg.source == persist.SourceSeed {
		m.message = "Nothing saved yet; showing the starter board"
	}
}
