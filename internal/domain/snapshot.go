package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

const SnapshotVersion = 2

// special sidebar views; anything else is a folder ID
const (
	ViewDashboard = "dashboard"
	ViewAll       = "all"
	ViewForm      = "all_with_form"
	ViewCalendar  = "calendar"
)

func IsSpecialView(v string) bool {
	switch v {
	case ViewDashboard, ViewAll, ViewForm, ViewCalendar:
		return true
	default:
		return false
	}
}

// Snapshot is the whole persisted document, read and written wholesale.
type Snapshot struct {
	Version          int       `json:"version"`
	Tasks            []*Task   `json:"tasks"`
	Folders          []*Folder `json:"folders"`
	Members          []*Member `json:"members"`
	CurrentFolder    string    `json:"currentFolder"`
	CollapsedFolders []string  `json:"collapsedFolders"`
	ManualSort       bool      `json:"manualSort"`
}

type rawSnapshot struct {
	Version          int               `json:"version"`
	Tasks            []*Task           `json:"tasks"`
	Folders          []json.RawMessage `json:"folders"`
	Members          []json.RawMessage `json:"members"`
	CurrentFolder    string            `json:"currentFolder"`
	CollapsedFolders []string          `json:"collapsedFolders"`
	ManualSort       bool              `json:"manualSort"`
}

type rawFolder struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Parent *string `json:"parent"`
	Color  string  `json:"color"`
}

// DecodeSnapshot parses a snapshot document, upgrading older shapes
// (string folders, name-based references, string members) along the way.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: expected a JSON object", ErrImportFormat)
	}

	var raw rawSnapshot
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportFormat, err)
	}

	snap := &Snapshot{
		Version:          raw.Version,
		Tasks:            raw.Tasks,
		CurrentFolder:    raw.CurrentFolder,
		CollapsedFolders: raw.CollapsedFolders,
		ManualSort:       raw.ManualSort,
	}

	for i, msg := range raw.Folders {
		f, err := decodeFolder(msg, i)
		if err != nil {
			return nil, fmt.Errorf("%w: folder %d: %v", ErrImportFormat, i, err)
		}
		snap.Folders = append(snap.Folders, f)
	}

	for i, msg := range raw.Members {
		m, err := decodeMember(msg)
		if err != nil {
			return nil, fmt.Errorf("%w: member %d: %v", ErrImportFormat, i, err)
		}
		snap.Members = append(snap.Members, m)
	}

	snap.Normalize()
	return snap, nil
}

func decodeFolder(msg json.RawMessage, index int) (*Folder, error) {
	var name string
	if err := json.Unmarshal(msg, &name); err == nil {
		return &Folder{ID: NewID(), Name: name, Color: PaletteColor(index)}, nil
	}

	var rf rawFolder
	if err := json.Unmarshal(msg, &rf); err != nil {
		return nil, err
	}
	f := &Folder{ID: rf.ID, Name: rf.Name, Color: rf.Color}
	if rf.Parent != nil {
		f.Parent = *rf.Parent
	}
	if f.ID == "" {
		f.ID = NewID()
	}
	if f.Color == "" {
		f.Color = PaletteColor(index)
	}
	return f, nil
}

func decodeMember(msg json.RawMessage) (*Member, error) {
	var name string
	if err := json.Unmarshal(msg, &name); err == nil {
		return &Member{ID: NewID(), Name: name}, nil
	}

	var m Member
	if err := json.Unmarshal(msg, &m); err != nil {
		return nil, err
	}
	if m.ID == "" {
		m.ID = NewID()
	}
	return &m, nil
}

// Normalize resolves name-based references to IDs and fills empty collections.
// It is idempotent.
func (s *Snapshot) Normalize() {
	s.Version = SnapshotVersion

	if s.Tasks == nil {
		s.Tasks = []*Task{}
	}
	if s.Folders == nil {
		s.Folders = []*Folder{}
	}
	if s.Members == nil {
		s.Members = []*Member{}
	}

	folderIDs := make(map[string]*Folder, len(s.Folders))
	folderNames := make(map[string]*Folder, len(s.Folders))
	for _, f := range s.Folders {
		folderIDs[f.ID] = f
		if _, dup := folderNames[f.Name]; !dup {
			folderNames[f.Name] = f
		}
	}
	resolveFolder := func(ref string) (*Folder, bool) {
		if f, ok := folderIDs[ref]; ok {
			return f, true
		}
		f, ok := folderNames[ref]
		return f, ok
	}

	for _, f := range s.Folders {
		if f.Parent == "" {
			continue
		}
		if p, ok := resolveFolder(f.Parent); ok {
			f.Parent = p.ID
		}
	}

	memberIDs := make(map[string]bool, len(s.Members))
	memberNames := make(map[string]string, len(s.Members))
	for _, m := range s.Members {
		memberIDs[m.ID] = true
		if _, dup := memberNames[m.Name]; !dup {
			memberNames[m.Name] = m.ID
		}
	}

	for _, t := range s.Tasks {
		ref := t.FolderID
		if ref == "" {
			ref = t.Folder
		}
		if f, ok := resolveFolder(ref); ok {
			t.FolderID = f.ID
			t.Folder = f.Name
		} else if t.FolderID == "" {
			t.FolderID = t.Folder
		}

		members := make([]string, 0, len(t.Members))
		for _, m := range t.Members {
			if !memberIDs[m] {
				if id, ok := memberNames[m]; ok {
					m = id
				}
			}
			members = append(members, m)
		}
		t.Members = uniqueStrings(members)

		t.Priority = t.Priority.OrDefault()
		if t.Subtasks == nil {
			t.Subtasks = []Subtask{}
		}
		if t.Attachments == nil {
			t.Attachments = []Attachment{}
		}
		if !t.Completed {
			t.CompletedAt = nil
		}
	}

	collapsed := make([]string, 0, len(s.CollapsedFolders))
	for _, ref := range s.CollapsedFolders {
		if f, ok := resolveFolder(ref); ok {
			collapsed = append(collapsed, f.ID)
		}
	}
	s.CollapsedFolders = uniqueStrings(collapsed)

	switch {
	case strings.TrimSpace(s.CurrentFolder) == "":
		s.CurrentFolder = ViewAll
	case IsSpecialView(s.CurrentFolder):
	default:
		if f, ok := resolveFolder(s.CurrentFolder); ok {
			s.CurrentFolder = f.ID
		}
	}
}

// DefaultSnapshot is the seed document served before anything was saved.
// Its IDs are derived from the names, so every seed agrees on them.
func DefaultSnapshot() *Snapshot {
	names := []string{"General", "Leave Requests", "Project A"}
	folders := make([]*Folder, 0, len(names))
	for i, n := range names {
		folders = append(folders, &Folder{ID: seedID("folder", n), Name: n, Color: PaletteColor(i)})
	}

	members := make([]*Member, 0, 5)
	for _, n := range []string{"Alex Kim", "Jordan Lee", "Sam Park", "Riley Choi", "Morgan Yoon"} {
		members = append(members, &Member{ID: seedID("member", n), Name: n})
	}

	return &Snapshot{
		Version:          SnapshotVersion,
		Tasks:            []*Task{},
		Folders:          folders,
		Members:          members,
		CurrentFolder:    ViewAll,
		CollapsedFolders: []string{},
	}
}

func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("taskdash:"+kind+":"+name)).String()
}
