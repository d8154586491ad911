package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"task-dashboard/internal/tui"
)

func newTUICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Launch the interactive dashboard",
		Long: `Launch the interactive dashboard: the folder sidebar on the left, the
task list of the selected view on the right and the quick-stat counters
on top.

Keyboard shortcuts:
  Sidebar:
    ↑/k ↓/j   Move between views and folders
    enter     Open the highlighted view
    space     Collapse or expand a folder
    tab       Focus the task list

  Task list:
    ↑/k ↓/j   Move between tasks
    x         Toggle complete
    K/J       Move the task up or down (manual order)
    o         Back to smart order
    enter     Show task details

  Global:
    /         Search
    s         Cycle the quick-stat filter
    c         Toggle completed tasks
    r         Reload
    q         Quit
    ?         Toggle help

Examples:
  taskdash tui
  taskdash tui --view dashboard`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			s, err := openSession(ctx, cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := applySessionFlags(cmd, s.board); err != nil {
				reportError(s.out, s.styles, err)
				return nil
			}

			model := tui.NewModel(s.board, s.store, s.theme, now)
			p := tea.NewProgram(model, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}
	addSessionFlags(cmd)
	return cmd
}
