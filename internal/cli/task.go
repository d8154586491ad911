package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"task-dashboard/internal/board"
	"task-dashboard/internal/display"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/theme"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Create, edit, complete and order tasks.

Dates accept YYYY-MM-DD, today/tomorrow/yesterday or offsets such as +3d
and -1w. Members and folders can be referenced by name or ID.

Examples:
  taskdash task add "Ship API" --folder Backend --priority urgent --end +3d
  taskdash task add "Summer leave" --folder "Leave Requests" --start 2024-07-01 --end 2024-07-05 --member "Alex Kim"
  taskdash task done 1715320000000
  taskdash task list --stat urgent`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Help()
		},
	}

	cmd.AddCommand(newTaskAddCmd())
	cmd.AddCommand(newTaskEditCmd())
	cmd.AddCommand(newTaskDeleteCmd())
	cmd.AddCommand(newTaskDoneCmd())
	cmd.AddCommand(newTaskSubtaskCmd())
	cmd.AddCommand(newTaskAttachCmd())
	cmd.AddCommand(newTaskReorderCmd("up"))
	cmd.AddCommand(newTaskReorderCmd("down"))
	cmd.AddCommand(newTaskPlaceCmd())
	cmd.AddCommand(newTaskSortCmd())
	cmd.AddCommand(newTaskListCmd())
	cmd.AddCommand(newTaskShowCmd())
	return cmd
}

func addTaskFieldFlags(flags *pflag.FlagSet) {
	flags.StringP("folder", "f", "", "Folder name or ID")
	flags.StringP("priority", "p", "", "Priority (critical, urgent, high, normal, low, lowest)")
	flags.StringP("start", "s", "", "Start date")
	flags.StringP("end", "e", "", "End date (due date)")
	flags.StringSliceP("member", "m", nil, "Assigned members (repeatable or comma-separated)")
	flags.StringP("notes", "n", "", "Notes")
	flags.StringSlice("subtask", nil, "Checklist items (repeatable)")
}

// applyFieldFlags copies the flags that were set on cmd onto fields.
func applyFieldFlags(cmd *cobra.Command, b *board.Board, fields *domain.TaskFields) error {
	flags := cmd.Flags()

	if flags.Changed("title") {
		fields.Title, _ = flags.GetString("title")
	}

	if flags.Changed("folder") {
		ref, _ := flags.GetString("folder")
		f, err := b.ResolveFolder(ref)
		if err != nil {
			return err
		}
		fields.FolderID = f.ID
	}

	if flags.Changed("priority") {
		p, _ := flags.GetString("priority")
		fields.Priority = domain.Priority(strings.ToLower(strings.TrimSpace(p)))
	}

	for _, name := range []string{"start", "end"} {
		if !flags.Changed(name) {
			continue
		}
		raw, _ := flags.GetString(name)
		day, err := query.NormalizeDate(raw)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", name, err)
		}
		if name == "start" {
			fields.StartDate = day
		} else {
			fields.EndDate = day
		}
	}

	if flags.Changed("member") {
		refs, _ := flags.GetStringSlice("member")
		ids := make([]string, 0, len(refs))
		for _, ref := range refs {
			m, err := b.ResolveMember(ref)
			if err != nil {
				return err
			}
			ids = append(ids, m.ID)
		}
		fields.Members = ids
	}

	if flags.Changed("notes") {
		fields.Notes, _ = flags.GetString("notes")
	}

	if flags.Changed("subtask") {
		items, _ := flags.GetStringSlice("subtask")
		fields.Subtasks = fields.Subtasks[:0]
		for _, text := range items {
			if text = strings.TrimSpace(text); text != "" {
				fields.Subtasks = append(fields.Subtasks, domain.Subtask{Text: text})
			}
		}
	}

	return nil
}

func newTaskAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a new task",
		Long: `Add a new task at the top of the list.

Without --folder the task goes to the folder currently selected in the
sidebar, or to the first folder.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				fields := domain.TaskFields{
					Title:    strings.Join(args, " "),
					FolderID: defaultFolder(s.board),
				}
				if err := applyFieldFlags(cmd, s.board, &fields); err != nil {
					return "", err
				}

				task, err := s.board.AddTask(fields)
				if err != nil {
					return "", err
				}
				displayTaskCreated(s.out, s.board, task, s.styles)
				return "", nil
			})
		},
	}
	addTaskFieldFlags(cmd.Flags())
	return cmd
}

func defaultFolder(b *board.Board) string {
	if !domain.IsSpecialView(b.Session.View) {
		return b.Session.View
	}
	if folders := b.Tree.Folders(); len(folders) > 0 {
		return folders[0].ID
	}
	return ""
}

func displayTaskCreated(w io.Writer, b *board.Board, task *domain.Task, styles *theme.Styles) {
	fmt.Fprintln(w)
	printSuccess(w, styles, fmt.Sprintf("Task #%d created successfully!", task.ID))
	fmt.Fprintln(w)
	displayTaskFields(w, b, task, styles)
	fmt.Fprintln(w)
}

func displayTaskFields(w io.Writer, b *board.Board, task *domain.Task, styles *theme.Styles) {
	fmt.Fprintf(w, "  %s %s\n", styles.Info.Render("Title:"), task.Title)
	fmt.Fprintf(w, "  %s %s\n", styles.Info.Render("Folder:"), b.FolderName(task))
	fmt.Fprintf(w, "  %s %s\n", styles.Info.Render("Priority:"),
		styles.GetPriorityTextStyle(task.Priority).Render(display.PriorityLabel(task.Priority)))

	if task.StartDate != "" || task.EndDate != "" {
		fmt.Fprintf(w, "  %s %s\n", styles.Info.Render("Period:"), display.FormatPeriod(task))
	}

	if names := b.MemberNames(task); len(names) > 0 {
		fmt.Fprintf(w, "  %s %s\n", styles.Info.Render("Members:"), strings.Join(names, ", "))
	}

	if task.Notes != "" {
		fmt.Fprintf(w, "  %s %s\n", styles.Info.Render("Notes:"), task.Notes)
	}

	for i, st := range task.Subtasks {
		box := "[ ]"
		if st.Completed {
			box = "[x]"
		}
		fmt.Fprintf(w, "  %s %d. %s %s\n", styles.Info.Render("Subtask:"), i+1, box, st.Text)
	}

	for _, a := range task.Attachments {
		fmt.Fprintf(w, "  %s %s (%s) %s\n", styles.Info.Render("File:"), a.Name, display.FormatSize(a.Size), styles.Muted.Render(a.URL))
	}
}

func newTaskEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Edit a task",
		Long: `Edit a task. Only the flags you pass are changed. Pass an empty value
(or "none" for dates) to clear a field.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			return withBoard(cmd, func(s *session) (string, error) {
				task, ok := s.board.Tasks.Get(id)
				if !ok {
					return "", fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
				}

				fields := task.Fields()
				if err := applyFieldFlags(cmd, s.board, &fields); err != nil {
					return "", err
				}
				if err := s.board.UpdateTask(id, fields); err != nil {
					return "", err
				}
				return fmt.Sprintf("Task #%d updated", id), nil
			})
		},
	}
	cmd.Flags().StringP("title", "t", "", "New title")
	addTaskFieldFlags(cmd.Flags())
	return cmd
}

func newTaskDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withBoard(cmd, func(s *session) (string, error) {
				if err := s.board.DeleteTask(id); err != nil {
					return "", err
				}
				return fmt.Sprintf("Task #%d deleted", id), nil
			})
		},
	}
}

func newTaskDoneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "done [id]",
		Short: "Toggle a task between completed and active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withBoard(cmd, func(s *session) (string, error) {
				if err := s.board.ToggleComplete(id); err != nil {
					return "", err
				}
				task, _ := s.board.Tasks.Get(id)
				if task.Completed {
					return fmt.Sprintf("Task #%d completed", id), nil
				}
				return fmt.Sprintf("Task #%d reopened", id), nil
			})
		},
	}
}

func newTaskSubtaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subtask [id] [number]",
		Short: "Toggle a checklist item, or add one with --add",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			text, _ := cmd.Flags().GetString("add")

			if text == "" && len(args) < 2 {
				return fmt.Errorf("pass a subtask number to toggle or --add to create one")
			}

			return withBoard(cmd, func(s *session) (string, error) {
				if text != "" {
					if err := s.board.Tasks.AddSubtask(id, strings.TrimSpace(text)); err != nil {
						return "", err
					}
					return fmt.Sprintf("Subtask added to task #%d", id), nil
				}

				index, err := parseIndex(args[1])
				if err != nil {
					return "", err
				}
				if err := s.board.ToggleSubtask(id, index); err != nil {
					return "", err
				}
				task, _ := s.board.Tasks.Get(id)
				return fmt.Sprintf("Subtasks of #%d: %s done", id, display.FormatSubtasks(task)), nil
			})
		},
	}
	cmd.Flags().StringP("add", "a", "", "Text of a new checklist item")
	return cmd
}

func newTaskAttachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attach [id] [file]",
		Short: "Attach a file to a task",
		Long: `Attach a file to a task. With a dashboard server configured the file is
uploaded; otherwise the task records a link to the local file.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			path := args[1]

			return withBoard(cmd, func(s *session) (string, error) {
				if _, ok := s.board.Tasks.Get(id); !ok {
					return "", fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
				}

				att, err := attachment(cmd.Context(), s, path)
				if err != nil {
					return "", err
				}
				if err := s.board.Attach(id, att); err != nil {
					return "", err
				}
				return fmt.Sprintf("Attached '%s' (%s) to task #%d", att.Name, display.FormatSize(att.Size), id), nil
			})
		},
	}
}

func attachment(ctx context.Context, s *session, path string) (domain.Attachment, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	f, err := os.Open(path)
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return domain.Attachment{}, fmt.Errorf("failed to read file: %w", err)
	}
	if limit := s.cfg.MaxUploadMB << 20; limit > 0 && info.Size() > limit {
		return domain.Attachment{}, fmt.Errorf("file exceeds %d MB", s.cfg.MaxUploadMB)
	}

	if s.client != nil {
		att, err := s.client.Upload(ctx, filepath.Base(path), f)
		if err != nil {
			return domain.Attachment{}, fmt.Errorf("upload failed: %w", err)
		}
		return att, nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return domain.Attachment{Name: filepath.Base(path), URL: "file://" + filepath.ToSlash(abs), Size: info.Size()}, nil
}

func newTaskReorderCmd(name string) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [id]",
		Short: "Move a task one place " + name + " (switches to manual order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withBoard(cmd, func(s *session) (string, error) {
				if err := s.board.MoveTask(id, direction(name)); err != nil {
					return "", err
				}
				return fmt.Sprintf("Task #%d moved %s", id, name), nil
			})
		},
	}
}

func newTaskPlaceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "place [id]",
		Short: "Drop a task right after or before another (switches to manual order)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}

			var after, before int64
			if ref, _ := cmd.Flags().GetString("after"); ref != "" {
				if after, err = parseTaskID(ref); err != nil {
					return err
				}
			}
			if ref, _ := cmd.Flags().GetString("before"); ref != "" {
				if before, err = parseTaskID(ref); err != nil {
					return err
				}
			}

			return withBoard(cmd, func(s *session) (string, error) {
				if err := s.board.PlaceTask(id, after, before); err != nil {
					return "", err
				}
				return fmt.Sprintf("Task #%d placed", id), nil
			})
		},
	}
	cmd.Flags().String("after", "", "Place right after this task ID")
	cmd.Flags().String("before", "", "Place right before this task ID")
	return cmd
}

func newTaskSortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sort",
		Short: "Return to smart ordering (due date, then priority)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withBoard(cmd, func(s *session) (string, error) {
				s.board.ResetSort()
				return "Smart sort restored", nil
			})
		},
	}
}

func newTaskShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				task, ok := s.board.Tasks.Get(id)
				if !ok {
					return fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
				}

				status := "Active"
				if task.Completed {
					status = "Completed " + display.FormatRelative(task.CompletedAt)
				}

				fmt.Fprintln(s.out)
				fmt.Fprintln(s.out, s.styles.Header.Render(fmt.Sprintf(" Task #%d ", task.ID)))
				fmt.Fprintln(s.out)
				displayTaskFields(s.out, s.board, task, s.styles)
				fmt.Fprintf(s.out, "  %s %s\n", s.styles.Info.Render("Status:"), status)
				if task.EndDate != "" && !task.Completed {
					fmt.Fprintf(s.out, "  %s %s\n", s.styles.Info.Render("Due:"), display.FormatDDay(task.EndDate, now()))
				}
				created := task.CreatedAt
				fmt.Fprintf(s.out, "  %s %s\n", s.styles.Info.Render("Created:"), display.FormatRelative(&created))
				fmt.Fprintln(s.out)
				return nil
			})
		},
	}
}
