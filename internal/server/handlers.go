package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-dashboard/internal/board"
	"task-dashboard/internal/domain"
	"task-dashboard/internal/query"
	"task-dashboard/internal/repository"
	"task-dashboard/internal/stats"
)

// TaskView is a task with its references resolved for display.
type TaskView struct {
	*domain.Task
	FolderName  string   `json:"folderName"`
	FolderColor string   `json:"folderColor"`
	MemberNames []string `json:"memberNames"`
	DaysLeft    *int     `json:"daysLeft,omitempty"`
}

type ViewResponse struct {
	View      string          `json:"view"`
	Counters  domain.Counters `json:"counters"`
	Active    []TaskView      `json:"active"`
	Completed []TaskView      `json:"completed"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

func (s *Server) handleGetData(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.loadSnapshot(r.Context()))
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxSnapshotBytes))
	if err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, "snapshot too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Error trying to read the body: "+err.Error())
		return
	}

	snap, err := domain.DecodeSnapshot(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.snapshots.Save(r.Context(), snap); err != nil {
		s.logger.Error("failed to save snapshot", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save data")
		return
	}

	if backup, err := json.MarshalIndent(snap, "", "  "); err == nil {
		s.writeBackup(backup)
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Data saved successfully"})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if s.cfg.UploadDir == "" {
		writeError(w, http.StatusServiceUnavailable, "uploads are disabled")
		return
	}

	limit := s.cfg.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, limit+1<<20)
	if err := r.ParseMultipartForm(limit); err != nil {
		if isTooLarge(err) {
			writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MB", s.cfg.MaxUploadMB))
			return
		}
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if header.Size > limit {
		writeError(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("file exceeds %d MB", s.cfg.MaxUploadMB))
		return
	}

	original := filepath.Base(header.Filename)
	stored := uuid.NewString() + "-" + sanitizeFilename(original)

	if err := os.MkdirAll(s.cfg.UploadDir, 0755); err != nil {
		s.logger.Error("failed to create upload directory", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	out, err := os.Create(filepath.Join(s.cfg.UploadDir, stored))
	if err != nil {
		s.logger.Error("failed to create upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}
	size, err := io.Copy(out, file)
	closeErr := out.Close()
	if err != nil || closeErr != nil {
		os.Remove(out.Name())
		s.logger.Error("failed to write upload", "error", errors.Join(err, closeErr))
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(original))
	}

	att := &repository.Attachment{
		StoredName:   stored,
		OriginalName: original,
		Size:         size,
		ContentType:  contentType,
	}
	if err := s.attachments.Create(r.Context(), att); err != nil {
		os.Remove(out.Name())
		s.logger.Error("failed to record upload", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to store file")
		return
	}

	writeJSON(w, http.StatusOK, UploadResponse{URL: "/uploads/" + stored, Filename: original, Size: size})
}

func (s *Server) handleServeUpload(w http.ResponseWriter, r *http.Request) {
	name := filepath.Base(r.PathValue("name"))

	att, err := s.attachments.GetByStoredName(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "file not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	path := filepath.Join(s.cfg.UploadDir, att.StoredName)
	if _, err := os.Stat(path); err != nil {
		writeError(w, http.StatusNotFound, "file not found")
		return
	}

	if att.ContentType != "" {
		w.Header().Set("Content-Type", att.ContentType)
	}
	w.Header().Set("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": att.OriginalName}))
	http.ServeFile(w, r, path)
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	b := s.boardFromRequest(r)
	now := s.now()
	res := b.Run(now)

	writeJSON(w, http.StatusOK, ViewResponse{
		View:      b.Session.View,
		Counters:  res.Counters,
		Active:    taskViews(b, res.Active, now),
		Completed: taskViews(b, res.Completed, now),
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	b := s.boardFromRequest(r)
	writeJSON(w, http.StatusOK, stats.Dashboard(b, s.now()))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	b := s.boardFromRequest(r)
	f := b.Session.Filter()
	tasks := query.Filtered(query.Scope(b.Tasks.All(), f.View), f, s.now())
	writeJSON(w, http.StatusOK, stats.CalendarEvents(b.Tree, tasks))
}

// boardFromRequest loads the stored board and applies the session parameters
// of the query string.
func (s *Server) boardFromRequest(r *http.Request) *board.Board {
	b := board.FromSnapshot(s.loadSnapshot(r.Context()))
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("view")); v != "" {
		if f, ok := b.Tree.Resolve(v); ok {
			v = f.ID
		}
		if err := b.SelectView(v); err != nil {
			s.logger.Debug("unknown view requested", "view", v)
		}
	}
	b.Session.Search = q.Get("q")
	if v := q.Get("category"); v != "" {
		if f, ok := b.Tree.Resolve(v); ok {
			v = f.ID
		}
		b.Session.Category = v
	}
	if v := q.Get("assignee"); v != "" {
		if m, ok := b.Members.Resolve(v); ok {
			v = m.ID
		}
		b.Session.Assignee = v
	}
	if v := q.Get("priority"); v != "" {
		b.Session.Priority = v
	}
	if v := q.Get("stat"); query.IsValidStat(v) {
		b.Session.Stat = v
	}
	if v, err := strconv.ParseBool(q.Get("manual")); err == nil {
		b.Session.ManualSort = v
	}
	if v, err := strconv.ParseBool(q.Get("showCompleted")); err == nil {
		b.Session.ShowCompleted = v
	}
	return b
}

func taskViews(b *board.Board, tasks []*domain.Task, now time.Time) []TaskView {
	out := make([]TaskView, 0, len(tasks))
	for _, t := range tasks {
		v := TaskView{
			Task:        t,
			FolderName:  b.FolderName(t),
			FolderColor: b.FolderColor(t),
			MemberNames: b.MemberNames(t),
		}
		if days, ok := query.DaysUntil(t.EndDate, now); ok {
			v.DaysLeft = &days
		}
		out = append(out, v)
	}
	return out
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large")
}

func sanitizeFilename(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == 0:
			return '_'
		case r < 32:
			return -1
		default:
			return r
		}
	}, name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	return name
}
