package export

import (
	"fmt"
	"io"
	"time"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"

	"github.com/pelletier/go-toml/v2"
)

type TOMLExporter struct {
	board *board.Board
}

func NewTOMLExporter(b *board.Board) *TOMLExporter {
	return &TOMLExporter{board: b}
}

func (e *TOMLExporter) Export(w io.Writer) error {
	data, err := toml.Marshal(toTOML(e.board.Snapshot()))
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	_, err = w.Write(data)
	return err
}

func toTOML(snap *domain.Snapshot) tomlBackup {
	doc := tomlBackup{
		Version:          snap.Version,
		CurrentFolder:    snap.CurrentFolder,
		ManualSort:       snap.ManualSort,
		CollapsedFolders: append([]string{}, snap.CollapsedFolders...),
		Folders:          make([]tomlFolder, 0, len(snap.Folders)),
		Members:          make([]tomlMember, 0, len(snap.Members)),
		Tasks:            make([]tomlTask, 0, len(snap.Tasks)),
	}

	for _, f := range snap.Folders {
		doc.Folders = append(doc.Folders, tomlFolder{ID: f.ID, Name: f.Name, Parent: f.Parent, Color: f.Color})
	}
	for _, m := range snap.Members {
		doc.Members = append(doc.Members, tomlMember{ID: m.ID, Name: m.Name})
	}
	for _, t := range snap.Tasks {
		tt := tomlTask{
			ID:          t.ID,
			Title:       t.Title,
			FolderID:    t.FolderID,
			Folder:      t.Folder,
			Priority:    string(t.Priority),
			StartDate:   t.StartDate,
			EndDate:     t.EndDate,
			LeaveDays:   t.LeaveDays,
			Members:     append([]string{}, t.Members...),
			Notes:       t.Notes,
			Completed:   t.Completed,
			CreatedAt:   t.CreatedAt.Format(time.RFC3339),
			Subtasks:    make([]tomlSubtask, 0, len(t.Subtasks)),
			Attachments: make([]tomlAttachment, 0, len(t.Attachments)),
		}
		if t.CompletedAt != nil {
			tt.CompletedAt = t.CompletedAt.Format(time.RFC3339)
		}
		for _, s := range t.Subtasks {
			tt.Subtasks = append(tt.Subtasks, tomlSubtask{Text: s.Text, Completed: s.Completed})
		}
		for _, a := range t.Attachments {
			tt.Attachments = append(tt.Attachments, tomlAttachment{Name: a.Name, URL: a.URL, Size: a.Size})
		}
		doc.Tasks = append(doc.Tasks, tt)
	}

	return doc
}

func fromTOML(doc tomlBackup) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Version:          doc.Version,
		CurrentFolder:    doc.CurrentFolder,
		ManualSort:       doc.ManualSort,
		CollapsedFolders: doc.CollapsedFolders,
		Folders:          make([]*domain.Folder, 0, len(doc.Folders)),
		Members:          make([]*domain.Member, 0, len(doc.Members)),
		Tasks:            make([]*domain.Task, 0, len(doc.Tasks)),
	}

	for i, f := range doc.Folders {
		folder := &domain.Folder{ID: f.ID, Name: f.Name, Parent: f.Parent, Color: f.Color}
		if folder.ID == "" {
			folder.ID = domain.NewID()
		}
		if folder.Color == "" {
			folder.Color = domain.PaletteColor(i)
		}
		snap.Folders = append(snap.Folders, folder)
	}
	for _, m := range doc.Members {
		member := &domain.Member{ID: m.ID, Name: m.Name}
		if member.ID == "" {
			member.ID = domain.NewID()
		}
		snap.Members = append(snap.Members, member)
	}

	for _, tt := range doc.Tasks {
		t := &domain.Task{
			ID:        tt.ID,
			Title:     tt.Title,
			FolderID:  tt.FolderID,
			Folder:    tt.Folder,
			Priority:  domain.Priority(tt.Priority),
			StartDate: tt.StartDate,
			EndDate:   tt.EndDate,
			LeaveDays: tt.LeaveDays,
			Members:   tt.Members,
			Notes:     tt.Notes,
			Completed: tt.Completed,
		}
		if tt.CreatedAt != "" {
			created, err := time.Parse(time.RFC3339, tt.CreatedAt)
			if err != nil {
				return nil, fmt.Errorf("%w: task %d created_at: %v", domain.ErrImportFormat, tt.ID, err)
			}
			t.CreatedAt = created
		}
		if tt.CompletedAt != "" {
			at, err := time.Parse(time.RFC3339, tt.CompletedAt)
			if err != nil {
				return nil, fmt.Errorf("%w: task %d completed_at: %v", domain.ErrImportFormat, tt.ID, err)
			}
			t.CompletedAt = &at
		}
		for _, s := range tt.Subtasks {
			t.Subtasks = append(t.Subtasks, domain.Subtask{Text: s.Text, Completed: s.Completed})
		}
		for _, a := range tt.Attachments {
			t.Attachments = append(t.Attachments, domain.Attachment{Name: a.Name, URL: a.URL, Size: a.Size})
		}
		snap.Tasks = append(snap.Tasks, t)
	}

	snap.Normalize()
	return snap, nil
}
