package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage the member roster",
		Long: `Manage the people tasks can be assigned to.

Tasks keep member IDs, so renaming a member updates every task at once.
Deleting a member leaves the assignment in place; it renders as the raw ID.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newMemberAddCmd())
	cmd.AddCommand(newMemberRenameCmd())
	cmd.AddCommand(newMemberDeleteCmd())
	cmd.AddCommand(newMemberReorderCmd("up"))
	cmd.AddCommand(newMemberReorderCmd("down"))
	cmd.AddCommand(newMemberListCmd())
	return cmd
}

func newMemberAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [name]",
		Short: "Add a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				m, err := s.board.AddMember(args[0])
				if err != nil {
					return "", fmt.Errorf("failed to add member: %w", err)
				}
				return fmt.Sprintf("Member '%s' added", m.Name), nil
			})
		},
	}
}

func newMemberRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [member] [new-name]",
		Short: "Rename a member",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				m, err := s.board.ResolveMember(args[0])
				if err != nil {
					return "", err
				}
				old := m.Name
				if err := s.board.RenameMember(m.ID, args[1]); err != nil {
					return "", fmt.Errorf("failed to rename member: %w", err)
				}
				return fmt.Sprintf("Member '%s' renamed to '%s'", old, m.Name), nil
			})
		},
	}
}

func newMemberDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [member]",
		Short: "Delete a member",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				m, err := s.board.ResolveMember(args[0])
				if err != nil {
					return "", err
				}
				if err := s.board.DeleteMember(m.ID); err != nil {
					return "", err
				}
				return fmt.Sprintf("Member '%s' deleted", m.Name), nil
			})
		},
	}
}

func newMemberReorderCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [member]",
		Short: "Move a member one place " + name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				m, err := s.board.ResolveMember(args[0])
				if err != nil {
					return "", err
				}
				if err := s.board.ReorderMember(m.ID, direction(name)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Member '%s' moved %s", m.Name, name), nil
			})
		},
	}
}

func newMemberListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List members and their open tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				members := s.board.Members.All()

				fmt.Fprintln(s.out)
				if len(members) == 0 {
					printInfo(s.out, s.styles, "No members yet. Add one with 'taskdash member add [name]'.")
					fmt.Fprintln(s.out)
					return nil
				}

				open := make(map[string]int)
				for _, t := range s.board.Tasks.All() {
					if t.Completed {
						continue
					}
					for _, id := range t.Members {
						open[id]++
					}
				}

				fmt.Fprintln(s.out, s.styles.Header.Render(" Members "))
				for i, m := range members {
					fmt.Fprintf(s.out, "  %d. %-20s %s\n", i+1, m.Name,
						s.styles.Muted.Render(fmt.Sprintf("%d open", open[m.ID])))
				}
				fmt.Fprintln(s.out)
				return nil
			})
		},
	}
}
