package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/repository"
)

type AttachmentRepository struct {
	db *DB
}

func NewAttachmentRepository(db *DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

type dbAttachment struct {
	ID           int64  `db:"id"`
	StoredName   string `db:"stored_name"`
	OriginalName string `db:"original_name"`
	Size         int64  `db:"size"`
	ContentType  string `db:"content_type"`
	CreatedAt    string `db:"created_at"`
}

func (da *dbAttachment) toAttachment() (*repository.Attachment, error) {
	createdAt, err := parseTime(da.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &repository.Attachment{
		ID:           da.ID,
		StoredName:   da.StoredName,
		OriginalName: da.OriginalName,
		Size:         da.Size,
		ContentType:  da.ContentType,
		CreatedAt:    createdAt,
	}, nil
}

func (r *AttachmentRepository) Create(ctx context.Context, a *repository.Attachment) error {
	if a.StoredName == "" {
		return errors.New("validation failed: stored name cannot be empty")
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	result, err := r.db.ExecContext(ctx, `
		INSERT INTO attachments (stored_name, original_name, size, content_type, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, a.StoredName, a.OriginalName, a.Size, a.ContentType, formatTime(a.CreatedAt))
	if err != nil {
		return fmt.Errorf("failed to insert attachment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert ID: %w", err)
	}
	a.ID = id
	return nil
}

func (r *AttachmentRepository) GetByStoredName(ctx context.Context, name string) (*repository.Attachment, error) {
	var da dbAttachment
	err := r.db.GetContext(ctx, &da, `SELECT * FROM attachments WHERE stored_name = ?`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: attachment %s", domain.ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to get attachment: %w", err)
	}
	return da.toAttachment()
}

func (r *AttachmentRepository) List(ctx context.Context) ([]*repository.Attachment, error) {
	var rows []dbAttachment
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM attachments ORDER BY id`); err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	out := make([]*repository.Attachment, 0, len(rows))
	for i := range rows {
		a, err := rows[i].toAttachment()
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *AttachmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM attachments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: attachment %d", domain.ErrNotFound, id)
	}
	return nil
}
