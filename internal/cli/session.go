package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"task-dashboard/internal/board"
	"task-dashboard/internal/client"
	"task-dashboard/internal/config"
	"task-dashboard/internal/logging"
	"task-dashboard/internal/persist"
	"task-dashboard/internal/repository"
	"task-dashboard/internal/repository/sqlite"
	"task-dashboard/internal/theme"
)

const requestTimeout = 10 * time.Second

var (
	loadConfig  = config.LoadConfig
	updateTheme = config.UpdateTheme
	now         = time.Now
)

// session is one CLI invocation's view of the dashboard: the loaded board
// plus the store it is saved back to.
type session struct {
	cfg    *config.Config
	styles *theme.Styles
	theme  *theme.Theme
	logger *slog.Logger
	out    io.Writer

	client  *client.Client
	store   *persist.Store
	board   *board.Board
	source  persist.Source
	closers []io.Closer
}

// loadCommandConfig reads the config and applies the global flag overrides.
func loadCommandConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if server, _ := cmd.Flags().GetString("server"); server != "" {
		cfg.ServerURL = server
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	return cfg, nil
}

func openSession(ctx context.Context, cmd *cobra.Command) (*session, error) {
	cfg, err := loadCommandConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	s := &session{
		cfg:    cfg,
		theme:  loadTheme(cfg),
		logger: logger,
		out:    cmd.OutOrStdout(),
	}
	s.styles = theme.NewStyles(s.theme)

	var remote persist.Remote
	if cfg.ServerURL != "" {
		s.client = client.New(cfg.ServerURL, requestTimeout)
		remote = s.client
	} else {
		db, err := sqlite.NewDB(sqlite.Config{Path: cfg.DBPath, Driver: cfg.DBDriver})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		s.closers = append(s.closers, db)
		remote = sqlite.NewSnapshotRepository(db)
	}

	var cache repository.CacheRepository
	if cfg.CachePath != "" && cfg.CachePath != cfg.DBPath {
		db, err := sqlite.NewDB(sqlite.Config{Path: cfg.CachePath, Driver: cfg.DBDriver})
		if err != nil {
			logger.Warn("local cache unavailable", "path", cfg.CachePath, "error", err)
		} else {
			s.closers = append(s.closers, db)
			cache = sqlite.NewCacheRepository(db)
		}
	}

	s.store = persist.NewStore(remote, cache, logger)
	snap, source := s.store.Load(ctx)
	s.board = board.FromSnapshot(snap)
	s.source = source
	s.board.Tasks.SetClock(now)

	logger.Debug("session loaded", "source", source, "tasks", s.board.Tasks.Len(), "folders", s.board.Tree.Len())
	return s, nil
}

// save writes the board back; it reports when only the local cache got it.
func (s *session) save(ctx context.Context) {
	if !s.store.Save(ctx, s.board.Snapshot()) {
		printWarning(s.out, s.styles, "Saved to the local cache only; the dashboard store is unreachable")
	}
}

func (s *session) close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			s.logger.Warn("failed to close database", "error", err)
		}
	}
}

// withBoard loads a session, applies fn and saves when fn succeeds. User
// errors from fn are reported on the output and do not fail the command.
func withBoard(cmd *cobra.Command, fn func(s *session) (string, error)) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	msg, err := fn(s)
	if err != nil {
		reportError(s.out, s.styles, err)
		return nil
	}

	s.save(ctx)
	if msg != "" {
		printSuccess(s.out, s.styles, msg)
	}
	return nil
}

// withSession loads a session for a read-only command.
func withSession(cmd *cobra.Command, fn func(s *session) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	s, err := openSession(ctx, cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := fn(s); err != nil {
		reportError(s.out, s.styles, err)
	}
	return nil
}
