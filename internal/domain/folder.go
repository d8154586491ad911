package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Palette holds the folder colors assigned by index when none is chosen.
var Palette = []string{
	"#6366f1", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6",
	"#ec4899", "#06b6d4", "#f97316", "#14b8a6", "#3b82f6",
	"#64748b", "#a855f7",
}

const DefaultColor = "#6366f1"

func PaletteColor(i int) string {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}

// Folder is a named, colored category. Parent holds the parent folder's ID,
// empty for root folders.
type Folder struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Parent string `json:"parent"`
	Color  string `json:"color"`
}

func NewFolder(name, parent, color string) *Folder {
	return &Folder{
		ID:     NewID(),
		Name:   strings.TrimSpace(name),
		Parent: parent,
		Color:  color,
	}
}

func (f *Folder) IsRoot() bool {
	return f.Parent == ""
}

type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewMember(name string) *Member {
	return &Member{ID: NewID(), Name: strings.TrimSpace(name)}
}

func NewID() string {
	return uuid.NewString()
}

// ValidateName trims a folder or member name and rejects blank ones.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidName
	}
	if len(name) > 100 {
		return "", fmt.Errorf("%w: cannot exceed 100 characters", ErrInvalidName)
	}
	return name, nil
}
