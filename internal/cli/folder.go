package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/theme"
)

func newFolderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage the folder tree",
		Long: `Manage folders and folder hierarchies.

Folders organize tasks into a tree. Each folder has a unique name, an
optional parent and a display color. Folders can be referenced by name
or by ID.

Examples:
  taskdash folder add "Eng"
  taskdash folder add "Backend" --parent "Eng"
  taskdash folder move "Backend" root
  taskdash folder collapse "Eng"`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newFolderAddCmd())
	cmd.AddCommand(newFolderRenameCmd())
	cmd.AddCommand(newFolderDeleteCmd())
	cmd.AddCommand(newFolderMoveCmd())
	cmd.AddCommand(newFolderReorderCmd("up"))
	cmd.AddCommand(newFolderReorderCmd("down"))
	cmd.AddCommand(newFolderCollapseCmd())
	cmd.AddCommand(newFolderListCmd())
	return cmd
}

func newFolderAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Create a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parentRef, _ := cmd.Flags().GetString("parent")
			color, _ := cmd.Flags().GetString("color")

			return withBoard(cmd, func(s *session) (string, error) {
				parentID := ""
				if parentRef != "" {
					parent, err := s.board.ResolveFolder(parentRef)
					if err != nil {
						return "", err
					}
					parentID = parent.ID
				}

				f, err := s.board.AddFolder(args[0], parentID, color)
				if err != nil {
					return "", fmt.Errorf("failed to create folder: %w", err)
				}
				if path := s.board.Tree.Path(f.ID); path != f.Name {
					return fmt.Sprintf("Folder '%s' created (%s)", f.Name, path), nil
				}
				return fmt.Sprintf("Folder '%s' created", f.Name), nil
			})
		},
	}

	cmd.Flags().StringP("parent", "p", "", "Parent folder name or ID")
	cmd.Flags().StringP("color", "c", "", "Folder color (hex, defaults to the palette)")
	return cmd
}

func newFolderRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [folder] [new-name]",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				f, err := s.board.ResolveFolder(args[0])
				if err != nil {
					return "", err
				}
				old := f.Name
				if err := s.board.RenameFolder(f.ID, args[1]); err != nil {
					return "", fmt.Errorf("failed to rename folder: %w", err)
				}
				return fmt.Sprintf("Folder '%s' renamed to '%s'", old, f.Name), nil
			})
		},
	}
}

func newFolderDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [folder]",
		Short: "Delete a folder",
		Long: `Delete a folder. Its subfolders move to the top level; its tasks are
kept and still show the deleted folder's name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				f, err := s.board.ResolveFolder(args[0])
				if err != nil {
					return "", err
				}
				if err := s.board.DeleteFolder(f.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Folder '%s' deleted", f.Name), nil
			})
		},
	}
}

func newFolderMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move [folder] [new-parent|root]",
		Short: "Move a folder under another folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				f, err := s.board.ResolveFolder(args[0])
				if err != nil {
					return "", err
				}

				parentID := ""
				if !isRootRef(args[1]) {
					parent, err := s.board.ResolveFolder(args[1])
					if err != nil {
						return "", err
					}
					parentID = parent.ID
				}

				if err := s.board.MoveFolder(f.ID, parentID); err != nil {
					return "", fmt.Errorf("failed to move folder: %w", err)
				}
				return fmt.Sprintf("Folder moved: %s", s.board.Tree.Path(f.ID)), nil
			})
		},
	}
}

func isRootRef(ref string) bool {
	switch strings.ToLower(strings.TrimSpace(ref)) {
	case "", "-", "root", "/":
		return true
	default:
		return false
	}
}

func newFolderReorderCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [folder]",
		Short: "Move a folder one place " + name + " in the sidebar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				f, err := s.board.ResolveFolder(args[0])
				if err != nil {
					return "", err
				}
				if err := s.board.ReorderFolder(f.ID, direction(name)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Folder '%s' moved %s", f.Name, name), nil
			})
		},
	}
}

func newFolderCollapseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "collapse [folder]",
		Short: "Collapse or expand a folder in the sidebar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				f, err := s.board.ResolveFolder(args[0])
				if err != nil {
					return "", err
				}
				if s.board.ToggleCollapse(f.ID) {
					return fmt.Sprintf("Folder '%s' collapsed", f.Name), nil
				}
				return fmt.Sprintf("Folder '%s' expanded", f.Name), nil
			})
		},
	}
}

func newFolderListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the folder tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			return withSession(cmd, func(s *session) error {
				displayFolderTree(s.out, s.board, s.styles, all)
				return nil
			})
		},
	}
	cmd.Flags().BoolP("all", "a", false, "Include folders under collapsed parents")
	return cmd
}

func displayFolderTree(w io.Writer, b *board.Board, styles *theme.Styles, all bool) {
	nodes := b.Tree.Visible()
	if all {
		nodes = b.Tree.Flatten()
	}

	fmt.Fprintln(w)
	if len(nodes) == 0 {
		printInfo(w, styles, "No folders yet. Create one with 'taskdash folder add [name]'.")
		fmt.Fprintln(w)
		return
	}

	counts := make(map[string][2]int)
	for _, t := range b.Tasks.All() {
		c := counts[t.FolderID]
		c[0]++
		if t.Completed {
			c[1]++
		}
		counts[t.FolderID] = c
	}

	for _, n := range nodes {
		marker := "  "
		if n.HasChildren {
			marker = "▾ "
			if n.Collapsed {
				marker = "▸ "
			}
		}

		name := n.Folder.Name
		if b.Session.View == n.Folder.ID {
			name = styles.SidebarActive.Render(name)
		}

		c := counts[n.Folder.ID]
		fmt.Fprintf(w, "%s%s%s %s %s\n",
			strings.Repeat("  ", n.Depth),
			marker,
			colorDot(n.Folder.Color),
			name,
			styles.Muted.Render(fmt.Sprintf("(%d/%d)", c[1], c[0])))
	}
	fmt.Fprintln(w)
}

func colorDot(color string) string {
	if color == "" {
		color = domain.DefaultColor
	}
	return theme.Swatch(color, "●")
}
