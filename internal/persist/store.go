package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/repository"
)

// CacheKey is the fixed key of the local snapshot copy.
const CacheKey = "task_dashboard_data"

// Remote is the primary persistence collaborator: the HTTP API or a
// database opened directly.
type Remote interface {
	Load(ctx context.Context) (*domain.Snapshot, error)
	Save(ctx context.Context, snap *domain.Snapshot) error
}

// Source tells where a loaded snapshot came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	SourceSeed   Source = "seed"
)

// Store loads and saves whole snapshots, falling back to a local cache when
// the remote is unreachable. Either collaborator may be nil.
type Store struct {
	remote Remote
	cache  repository.CacheRepository
	logger *slog.Logger
}

func NewStore(remote Remote, cache repository.CacheRepository, logger *slog.Logger) *Store {
	return &Store{remote: remote, cache: cache, logger: logger}
}

// Load returns the remote snapshot, else the cached one, else the seed
// document. It never fails.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, Source) {
	if s.remote != nil {
		snap, err := s.remote.Load(ctx)
		if err == nil {
			s.writeCache(ctx, snap)
			return snap, SourceRemote
		}
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Debug("remote has no snapshot yet")
		} else {
			s.logger.Warn("remote load failed, using local cache", "error", err)
		}
	}

	if s.cache != nil {
		data, err := s.cache.Get(ctx, CacheKey)
		if err == nil {
			snap, err := domain.DecodeSnapshot(data)
			if err == nil {
				return snap, SourceCache
			}
			s.logger.Warn("ignoring unreadable local cache", "error", err)
		} else if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("local cache read failed", "error", err)
		}
	}

	return domain.DefaultSnapshot(), SourceSeed
}

// Save writes the local cache and the remote. Remote failures are logged and
// swallowed; the result reports whether the remote accepted the snapshot.
func (s *Store) Save(ctx context.Context, snap *domain.Snapshot) bool {
	s.writeCache(ctx, snap)

	if s.remote == nil {
		return false
	}
	if err := s.remote.Save(ctx, snap); err != nil {
		s.logger.Warn("save failed, kept local copy", "error", err)
		return false
	}
	return true
}

func (s *Store) writeCache(ctx context.Context, snap *domain.Snapshot) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("failed to encode snapshot for cache", "error", err)
		return
	}
	if err := s.cache.Put(ctx, CacheKey, data); err != nil {
		s.logger.Warn("local cache write failed", "error", err)
	}
}
