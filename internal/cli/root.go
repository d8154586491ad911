package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the taskdash command tree.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taskdash",
		Short: "Task Dashboard - folders, tasks and team schedules from the terminal",
		Long: `Task Dashboard tracks personal and team tasks in a folder hierarchy,
with priorities, date ranges, assignees, subtasks and attachments.

Data lives in a local SQLite database, or on a dashboard server when
server_url is configured. A local cache keeps the last snapshot available
when the server cannot be reached.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			displayWelcome(cmd)
		},
	}

	cmd.PersistentFlags().String("server", "", "Dashboard server URL (overrides server_url)")
	cmd.PersistentFlags().String("db", "", "SQLite database path (overrides db_path)")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newFolderCmd())
	cmd.AddCommand(newTaskCmd())
	cmd.AddCommand(newMemberCmd())
	cmd.AddCommand(newDashboardCmd())
	cmd.AddCommand(newCalendarCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newImportCmd())
	cmd.AddCommand(newThemeCmd())
	cmd.AddCommand(newTUICmd())

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func displayWelcome(cmd *cobra.Command) {
	cfg, err := loadConfig()
	if err != nil {
		// fallback to default
		cfg = nil
	}
	styles := loadStyles(cfg)
	out := cmd.OutOrStdout()

	title := styles.Title.Render(`
		------------------------------------------------------

		           T A S K   D A S H B O A R D

		------------------------------------------------------
	`)
	subtitle := styles.Subtitle.Render("Folders, deadlines and leave days at a glance")

	fmt.Fprintln(out)
	fmt.Fprintln(out, title)
	fmt.Fprintln(out, subtitle)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'taskdash --help' to see available commands.")
	fmt.Fprintln(out)
}
