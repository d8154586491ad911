package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/repository"
)

const cacheKey = "task_dashboard_data"

func TestCacheRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewCacheRepository(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, cacheKey)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	require.NoError(t, repo.Put(ctx, cacheKey, []byte(`{"v":1}`)))
	require.NoError(t, repo.Put(ctx, cacheKey, []byte(`{"v":2}`)))

	got, err := repo.Get(ctx, cacheKey)
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(got))

	require.NoError(t, repo.Delete(ctx, cacheKey))
	_, err = repo.Get(ctx, cacheKey)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestAttachmentRepository(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	repo := NewAttachmentRepository(db)
	ctx := context.Background()

	t.Run("create and fetch", func(t *testing.T) {
		a := &repository.Attachment{StoredName: "abc-report.pdf", OriginalName: "report.pdf", Size: 1024, ContentType: "application/pdf"}
		require.NoError(t, repo.Create(ctx, a))
		assert.NotZero(t, a.ID)

		got, err := repo.GetByStoredName(ctx, "abc-report.pdf")
		require.NoError(t, err)
		assert.Equal(t, "report.pdf", got.OriginalName)
		assert.Equal(t, int64(1024), got.Size)
	})

	t.Run("missing name", func(t *testing.T) {
		err := repo.Create(ctx, &repository.Attachment{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("duplicate stored name", func(t *testing.T) {
		err := repo.Create(ctx, &repository.Attachment{StoredName: "abc-report.pdf", OriginalName: "again.pdf"})
		assert.Error(t, err)
	})

	t.Run("list and delete", func(t *testing.T) {
		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		require.NoError(t, repo.Delete(ctx, all[0].ID))
		assert.True(t, errors.Is(repo.Delete(ctx, all[0].ID), domain.ErrNotFound))

		_, err = repo.GetByStoredName(ctx, "abc-report.pdf")
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
}
