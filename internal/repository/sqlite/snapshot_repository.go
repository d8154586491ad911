package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"task-dashboard/internal/domain"
)

type SnapshotRepository struct {
	db *DB
}

func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

type dbFolder struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Parent   string `db:"parent"`
	Color    string `db:"color"`
	Position int    `db:"position"`
}

func (df *dbFolder) toFolder() *domain.Folder {
	return &domain.Folder{ID: df.ID, Name: df.Name, Parent: df.Parent, Color: df.Color}
}

type dbMember struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Position int    `db:"position"`
}

type dbTask struct {
	ID          int64          `db:"id"`
	Title       string         `db:"title"`
	FolderID    string         `db:"folder_id"`
	Folder      string         `db:"folder"`
	Priority    string         `db:"priority"`
	StartDate   string         `db:"start_date"`
	EndDate     string         `db:"end_date"`
	LeaveDays   int            `db:"leave_days"`
	Members     string         `db:"members"`
	Notes       string         `db:"notes"`
	Subtasks    string         `db:"subtasks"`
	Attachments string         `db:"attachments"`
	Completed   bool           `db:"completed"`
	CompletedAt sql.NullString `db:"completed_at"`
	CreatedAt   string         `db:"created_at"`
	Position    int            `db:"position"`
}

// converts dbTask to a domain.Task
func (dt *dbTask) toTask() (*domain.Task, error) {
	task := &domain.Task{
		ID:          dt.ID,
		Title:       dt.Title,
		FolderID:    dt.FolderID,
		Folder:      dt.Folder,
		Priority:    domain.Priority(dt.Priority),
		StartDate:   dt.StartDate,
		EndDate:     dt.EndDate,
		LeaveDays:   dt.LeaveDays,
		Notes:       dt.Notes,
		Completed:   dt.Completed,
		Members:     []string{},
		Subtasks:    []domain.Subtask{},
		Attachments: []domain.Attachment{},
	}

	if err := unmarshalJSON(dt.Members, &task.Members); err != nil {
		return nil, fmt.Errorf("failed to parse members: %w", err)
	}
	if err := unmarshalJSON(dt.Subtasks, &task.Subtasks); err != nil {
		return nil, fmt.Errorf("failed to parse subtasks: %w", err)
	}
	if err := unmarshalJSON(dt.Attachments, &task.Attachments); err != nil {
		return nil, fmt.Errorf("failed to parse attachments: %w", err)
	}

	var err error
	if task.CompletedAt, err = parseNullTime(dt.CompletedAt); err != nil {
		return nil, err
	}
	if task.CreatedAt, err = parseTime(dt.CreatedAt); err != nil {
		return nil, err
	}

	return task, nil
}

type dbBoardState struct {
	Version          int    `db:"version"`
	CurrentFolder    string `db:"current_folder"`
	CollapsedFolders string `db:"collapsed_folders"`
	ManualSort       bool   `db:"manual_sort"`
	SavedAt          string `db:"saved_at"`
}

// Load reads the stored snapshot, or domain.ErrNotFound when nothing was saved yet.
func (r *SnapshotRepository) Load(ctx context.Context) (*domain.Snapshot, error) {
	var state dbBoardState
	err := r.db.GetContext(ctx, &state, `
		SELECT version, current_folder, collapsed_folders, manual_sort, saved_at
		FROM board_state WHERE id = 1
	`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: no saved snapshot", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get board state: %w", err)
	}

	snap := &domain.Snapshot{
		Version:       state.Version,
		CurrentFolder: state.CurrentFolder,
		ManualSort:    state.ManualSort,
	}
	if err := unmarshalJSON(state.CollapsedFolders, &snap.CollapsedFolders); err != nil {
		return nil, fmt.Errorf("failed to parse collapsed folders: %w", err)
	}

	var folders []dbFolder
	if err := r.db.SelectContext(ctx, &folders, `SELECT * FROM folders ORDER BY position`); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	for i := range folders {
		snap.Folders = append(snap.Folders, folders[i].toFolder())
	}

	var members []dbMember
	if err := r.db.SelectContext(ctx, &members, `SELECT * FROM members ORDER BY position`); err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	for _, m := range members {
		snap.Members = append(snap.Members, &domain.Member{ID: m.ID, Name: m.Name})
	}

	var tasks []dbTask
	if err := r.db.SelectContext(ctx, &tasks, `SELECT * FROM tasks ORDER BY position`); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	for i := range tasks {
		task, err := tasks[i].toTask()
		if err != nil {
			return nil, fmt.Errorf("task %d: %w", tasks[i].ID, err)
		}
		snap.Tasks = append(snap.Tasks, task)
	}

	snap.Normalize()
	return snap, nil
}

// Save replaces the stored snapshot in one transaction.
func (r *SnapshotRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"tasks", "folders", "members"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for i, f := range snap.Folders {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO folders (id, name, parent, color, position)
			VALUES (:id, :name, :parent, :color, :position)
		`, dbFolder{ID: f.ID, Name: f.Name, Parent: f.Parent, Color: f.Color, Position: i})
		if err != nil {
			return fmt.Errorf("failed to insert folder %q: %w", f.Name, err)
		}
	}

	for i, m := range snap.Members {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO members (id, name, position) VALUES (:id, :name, :position)
		`, dbMember{ID: m.ID, Name: m.Name, Position: i})
		if err != nil {
			return fmt.Errorf("failed to insert member %q: %w", m.Name, err)
		}
	}

	for i, t := range snap.Tasks {
		row, err := fromTask(t, i)
		if err != nil {
			return err
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO tasks (id, title, folder_id, folder, priority, start_date, end_date, leave_days,
				members, notes, subtasks, attachments, completed, completed_at, created_at, position)
			VALUES (:id, :title, :folder_id, :folder, :priority, :start_date, :end_date, :leave_days,
				:members, :notes, :subtasks, :attachments, :completed, :completed_at, :created_at, :position)
		`, row)
		if err != nil {
			return fmt.Errorf("failed to insert task %d: %w", t.ID, err)
		}
	}

	collapsed, err := marshalJSON(nonNil(snap.CollapsedFolders))
	if err != nil {
		return fmt.Errorf("failed to marshal collapsed folders: %w", err)
	}
	current := snap.CurrentFolder
	if current == "" {
		current = domain.ViewAll
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO board_state (id, version, current_folder, collapsed_folders, manual_sort, saved_at)
		VALUES (1, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			version = excluded.version,
			current_folder = excluded.current_folder,
			collapsed_folders = excluded.collapsed_folders,
			manual_sort = excluded.manual_sort,
			saved_at = excluded.saved_at
	`, domain.SnapshotVersion, current, collapsed, snap.ManualSort, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("failed to save board state: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

// SavedAt returns when the snapshot was last saved.
func (r *SnapshotRepository) SavedAt(ctx context.Context) (time.Time, error) {
	var savedAt string
	err := r.db.GetContext(ctx, &savedAt, `SELECT saved_at FROM board_state WHERE id = 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, fmt.Errorf("%w: no saved snapshot", domain.ErrNotFound)
		}
		return time.Time{}, fmt.Errorf("failed to get saved time: %w", err)
	}
	return parseTime(savedAt)
}

func fromTask(t *domain.Task, position int) (dbTask, error) {
	members, err := marshalJSON(nonNil(t.Members))
	if err != nil {
		return dbTask{}, fmt.Errorf("failed to marshal members: %w", err)
	}
	subtasks, err := marshalJSON(t.Subtasks)
	if err != nil {
		return dbTask{}, fmt.Errorf("failed to marshal subtasks: %w", err)
	}
	attachments, err := marshalJSON(t.Attachments)
	if err != nil {
		return dbTask{}, fmt.Errorf("failed to marshal attachments: %w", err)
	}
	if t.Subtasks == nil {
		subtasks = "[]"
	}
	if t.Attachments == nil {
		attachments = "[]"
	}

	createdAt := t.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	return dbTask{
		ID:          t.ID,
		Title:       t.Title,
		FolderID:    t.FolderID,
		Folder:      t.Folder,
		Priority:    string(t.Priority.OrDefault()),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		LeaveDays:   t.LeaveDays,
		Members:     members,
		Notes:       t.Notes,
		Subtasks:    subtasks,
		Attachments: attachments,
		Completed:   t.Completed,
		CompletedAt: nullTime(t.CompletedAt),
		CreatedAt:   formatTime(createdAt),
		Position:    position,
	}, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
