package repository

import (
	"context"
	"time"

	"task-dashboard/internal/domain"
)

// SnapshotRepository stores the whole dashboard document. Save replaces
// everything previously stored.
type SnapshotRepository interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
	SavedAt(ctx context.Context) (time.Time, error)
}

// CacheRepository is a small key/value store for local fallback copies.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// stored upload metadata
type Attachment struct {
	ID           int64
	StoredName   string
	OriginalName string
	Size         int64
	ContentType  string
	CreatedAt    time.Time
}

type AttachmentRepository interface {
	Create(ctx context.Context, a *Attachment) error
	GetByStoredName(ctx context.Context, name string) (*Attachment, error)
	List(ctx context.Context) ([]*Attachment, error)
	Delete(ctx context.Context, id int64) error
}
