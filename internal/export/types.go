package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatTOML     Format = "toml"
)

var ErrUnknownFormat = errors.New("unknown export format")

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "md", "markdown":
		return FormatMarkdown, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %s (use json, csv, markdown or toml)", ErrUnknownFormat, s)
	}
}

func (f Format) Extension() string {
	if f == FormatMarkdown {
		return "md"
	}
	return string(f)
}

// BackupFileName is the default download name of a backup taken at now.
func BackupFileName(f Format, now time.Time) string {
	return fmt.Sprintf("task_dashboard_backup_%s.%s", now.Format("2006-01-02"), f.Extension())
}

// tomlBackup mirrors the snapshot with TOML-friendly scalar fields.
type tomlBackup struct {
	Version          int          `toml:"version"`
	CurrentFolder    string       `toml:"current_folder"`
	ManualSort       bool         `toml:"manual_sort"`
	CollapsedFolders []string     `toml:"collapsed_folders"`
	Folders          []tomlFolder `toml:"folders"`
	Members          []tomlMember `toml:"members"`
	Tasks            []tomlTask   `toml:"tasks"`
}

type tomlFolder struct {
	ID     string `toml:"id"`
	Name   string `toml:"name"`
	Parent string `toml:"parent"`
	Color  string `toml:"color"`
}

type tomlMember struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

type tomlTask struct {
	ID          int64            `toml:"id"`
	Title       string           `toml:"title"`
	FolderID    string           `toml:"folder_id"`
	Folder      string           `toml:"folder"`
	Priority    string           `toml:"priority"`
	StartDate   string           `toml:"start_date"`
	EndDate     string           `toml:"end_date"`
	LeaveDays   int              `toml:"leave_days"`
	Members     []string         `toml:"members"`
	Notes       string           `toml:"notes"`
	Completed   bool             `toml:"completed"`
	CompletedAt string           `toml:"completed_at"`
	CreatedAt   string           `toml:"created_at"`
	Subtasks    []tomlSubtask    `toml:"subtasks"`
	Attachments []tomlAttachment `toml:"attachments"`
}

type tomlSubtask struct {
	Text      string `toml:"text"`
	Completed bool   `toml:"completed"`
}

type tomlAttachment struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
	Size int64  `toml:"size"`
}
