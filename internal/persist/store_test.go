package persist

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-dashboard/internal/board"
	"task-dashboard/internal/client"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/logging"
	"task-dashboard/internal/repository/sqlite"
	"task-dashboard/internal/server"
)

type failingRemote struct {
	saves int
}

func (f *failingRemote) Load(ctx context.Context) (*domain.Snapshot, error) {
	return nil, errors.New("connection refused")
}

func (f *failingRemote) Save(ctx context.Context, snap *domain.Snapshot) error {
	f.saves++
	return errors.New("connection refused")
}

func memoryCache(t *testing.T) *sqlite.CacheRepository {
	t.Helper()
	db, err := sqlite.NewDB(sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlite.NewCacheRepository(db)
}

func TestLoad_SeedWithoutCollaborators(t *testing.T) {
	s := NewStore(nil, nil, logging.Discard())
	snap, src := s.Load(context.Background())
	assert.Equal(t, SourceSeed, src)
	assert.Len(t, snap.Folders, 3)
}

func TestSaveFailureFallsBackToCache(t *testing.T) {
	remote := &failingRemote{}
	cache := memoryCache(t)
	s := NewStore(remote, cache, logging.Discard())
	ctx := context.Background()

	b := board.FromSnapshot(domain.DefaultSnapshot())
	_, err := b.AddTask(domain.TaskFields{Title: "offline work"})
	require.NoError(t, err)

	assert.False(t, s.Save(ctx, b.Snapshot()))
	assert.False(t, s.Save(ctx, b.Snapshot()))
	assert.Equal(t, 2, remote.saves)

	snap, src := s.Load(ctx)
	assert.Equal(t, SourceCache, src)
	require.Len(t, snap.Tasks, 1)
	assert.Equal(t, "offline work", snap.Tasks[0].Title)
}

func TestLoadThroughServer(t *testing.T) {
	db, err := sqlite.NewDB(sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	defer db.Close()

	srv := server.New(server.Config{}, sqlite.NewSnapshotRepository(db), sqlite.NewAttachmentRepository(db), logging.Discard())
	ts := httptest.NewServer(srv.Handler())

	cache := memoryCache(t)
	s := NewStore(client.New(ts.URL, 0), cache, logging.Discard())
	ctx := context.Background()

	snap, src := s.Load(ctx)
	assert.Equal(t, SourceRemote, src)

	b := board.FromSnapshot(snap)
	_, err = b.AddMember("Dana")
	require.NoError(t, err)
	assert.True(t, s.Save(ctx, b.Snapshot()))

	ts.Close()

	snap, src = s.Load(ctx)
	assert.Equal(t, SourceCache, src)
	assert.Len(t, snap.Members, 6)
}

func TestLoad_DirectRepositoryWithoutSnapshot(t *testing.T) {
	db, err := sqlite.NewDB(sqlite.Config{Path: sqlite.MemoryPath})
	require.NoError(t, err)
	defer db.Close()

	s := NewStore(sqlite.NewSnapshotRepository(db), nil, logging.Discard())
	_, src := s.Load(context.Background())
	assert.Equal(t, SourceSeed, src)
}
