package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/export"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard or create a backup",
		Long: `Export the whole dashboard in various formats.

Supported formats:
  - json: full backup, readable by 'taskdash import' (default)
  - toml: full backup in TOML, readable by 'taskdash import'
  - csv: one row per task, for spreadsheets
  - markdown: the folder tree with its tasks

Without --output the file is named task_dashboard_backup_YYYY-MM-DD.<ext>.
Use --output - to write to stdout.

Examples:
  taskdash export
  taskdash export --format csv --output tasks.csv
  taskdash export --format markdown --output -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatName, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			return withSession(cmd, func(s *session) error {
				t := now()
				exporter, err := export.New(format, s.board, t)
				if err != nil {
					return err
				}

				if output == "-" {
					return exporter.Export(s.out)
				}
				if output == "" {
					output = export.BackupFileName(format, t)
				}

				if dir := filepath.Dir(output); dir != "." {
					if err := os.MkdirAll(dir, 0755); err != nil {
						return fmt.Errorf("failed to create output directory: %w", err)
					}
				}
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				if err := exporter.Export(f); err != nil {
					f.Close()
					return fmt.Errorf("failed to export: %w", err)
				}
				if err := f.Close(); err != nil {
					return fmt.Errorf("failed to write output file: %w", err)
				}

				printSuccess(s.out, s.styles, fmt.Sprintf("Exported %d task(s) to %s", s.board.Tasks.Len(), output))
				return nil
			})
		},
	}

	cmd.Flags().StringP("format", "f", "json", "Export format (json, toml, csv, markdown)")
	cmd.Flags().StringP("output", "o", "", "Output file, or - for stdout")
	return cmd
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Restore tasks, folders and members from a backup",
		Long: `Restore a JSON or TOML backup. The backup replaces every task and
folder; its members replace the roster when present. Older backups with
plain folder names and name-based references are upgraded on the fly.

The format follows the file extension unless --format is given.

Examples:
  taskdash import task_dashboard_backup_2024-05-10.json
  taskdash import backup.toml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			formatName, _ := cmd.Flags().GetString("format")
			if formatName == "" {
				formatName = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
			}
			format, err := export.ParseFormat(formatName)
			if err != nil {
				return err
			}

			return withBoard(cmd, func(s *session) (string, error) {
				f, err := os.Open(path)
				if err != nil {
					return "", fmt.Errorf("failed to open backup: %w", err)
				}
				defer f.Close()

				snap, err := export.NewImporter(s.board.Snapshot()).Import(f, format)
				if err != nil {
					return "", fmt.Errorf("invalid backup file: %w", err)
				}

				s.board = restoreBoard(snap)
				return fmt.Sprintf("Imported %d task(s), %d folder(s), %d member(s)",
					len(snap.Tasks), len(snap.Folders), len(snap.Members)), nil
			})
		},
	}
	cmd.Flags().StringP("format", "f", "", "Backup format (json or toml)")
	return cmd
}

func restoreBoard(snap *domain.Snapshot) *board.Board {
	b := board.FromSnapshot(snap)
	b.Tasks.SetClock(now)
	return b
}
