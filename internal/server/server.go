package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"task-dashboard/internal/domain"
	"task-dashboard/internal/repository"
)

const (
	DefaultMaxUploadMB = 10
	maxSnapshotBytes   = 16 << 20
)

type Config struct {
	UploadDir   string
	MaxUploadMB int64
	// BackupFile, when set, receives a JSON copy of every saved snapshot and
	// is read when the database holds none.
	BackupFile string
}

type Server struct {
	cfg         Config
	snapshots   repository.SnapshotRepository
	attachments repository.AttachmentRepository
	logger      *slog.Logger
	now         func() time.Time
}

func New(cfg Config, snapshots repository.SnapshotRepository, attachments repository.AttachmentRepository, logger *slog.Logger) *Server {
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = DefaultMaxUploadMB
	}
	return &Server{
		cfg:         cfg,
		snapshots:   snapshots,
		attachments: attachments,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/data", s.handleGetData)
	mux.HandleFunc("POST /api/save", s.handleSave)
	mux.HandleFunc("POST /api/upload", s.handleUpload)
	mux.HandleFunc("GET /uploads/{name}", s.handleServeUpload)

	mux.HandleFunc("GET /api/view", s.handleView)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/calendar", s.handleCalendar)

	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if s.cfg.UploadDir != "" {
		if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
			return fmt.Errorf("failed to create upload directory: %w", err)
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// loadSnapshot returns the stored snapshot, else the backup file, else the seed.
func (s *Server) loadSnapshot(ctx context.Context) *domain.Snapshot {
	snap, err := s.snapshots.Load(ctx)
	if err == nil {
		return snap
	}
	if !errors.Is(err, domain.ErrNotFound) {
		s.logger.Warn("failed to load snapshot from database", "error", err)
	}

	if s.cfg.BackupFile != "" {
		data, err := os.ReadFile(s.cfg.BackupFile)
		switch {
		case err == nil:
			snap, err := domain.DecodeSnapshot(data)
			if err == nil {
				return snap
			}
			s.logger.Warn("ignoring unreadable backup file", "path", s.cfg.BackupFile, "error", err)
		case !errors.Is(err, os.ErrNotExist):
			s.logger.Warn("failed to read backup file", "path", s.cfg.BackupFile, "error", err)
		}
	}

	return domain.DefaultSnapshot()
}

func (s *Server) writeBackup(data []byte) {
	if s.cfg.BackupFile == "" {
		return
	}
	if err := os.WriteFile(s.cfg.BackupFile, data, 0644); err != nil {
		s.logger.Error("local backup failed", "path", s.cfg.BackupFile, "error", err)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
