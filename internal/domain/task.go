package domain

import (
	"errors"
	"strings"
	"time"
)

// task priority
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityUrgent   Priority = "urgent"
	PriorityHigh     Priority = "high"
	PriorityNormal   Priority = "normal"
	PriorityLow      Priority = "low"
	PriorityLowest   Priority = "lowest"
)

// Priorities lists every priority from most to least important.
var Priorities = []Priority{
	PriorityCritical,
	PriorityUrgent,
	PriorityHigh,
	PriorityNormal,
	PriorityLow,
	PriorityLowest,
}

var priorityRanks = map[Priority]int{
	PriorityCritical: 6,
	PriorityUrgent:   5,
	PriorityHigh:     4,
	PriorityNormal:   3,
	PriorityLow:      2,
	PriorityLowest:   1,
}

// Rank returns the sort weight of p. Unknown and empty priorities rank as normal.
func (p Priority) Rank() int {
	if r, ok := priorityRanks[p]; ok {
		return r
	}
	return priorityRanks[PriorityNormal]
}

// OrDefault maps an empty or unknown priority to normal.
func (p Priority) OrDefault() Priority {
	if IsValidPriority(p) {
		return p
	}
	return PriorityNormal
}

func IsValidPriority(p Priority) bool {
	_, ok := priorityRanks[p]
	return ok
}

const DateLayout = "2006-01-02"

type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type Attachment struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type Task struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	FolderID    string       `json:"folderId"`
	Folder      string       `json:"folder"`
	Priority    Priority     `json:"priority"`
	StartDate   string       `json:"startDate"`
	EndDate     string       `json:"endDate"`
	LeaveDays   int          `json:"leaveDays"`
	Members     []string     `json:"members"`
	Notes       string       `json:"notes"`
	Subtasks    []Subtask    `json:"subtasks"`
	Attachments []Attachment `json:"attachments"`
	Completed   bool         `json:"completed"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// TaskFields is the editable part of a task, as submitted by a form.
type TaskFields struct {
	Title       string
	FolderID    string
	Priority    Priority
	StartDate   string
	EndDate     string
	Members     []string
	Notes       string
	Subtasks    []Subtask
	Attachments []Attachment
}

func (f *TaskFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return errors.New("task title cannot be empty")
	}

	if len(f.Title) > 200 {
		return errors.New("task title cannot exceed 200 characters")
	}

	if f.Priority != "" && !IsValidPriority(f.Priority) {
		return errors.New("invalid priority: must be critical, urgent, high, normal, low, or lowest")
	}

	for _, d := range []string{f.StartDate, f.EndDate} {
		if d == "" {
			continue
		}
		if _, err := ParseDay(d); err != nil {
			return errors.New("invalid date: " + d + " (expected YYYY-MM-DD)")
		}
	}

	return nil
}

// creates a task from form fields; id and createdAt are assigned by the store
func NewTask(f TaskFields) *Task {
	t := &Task{CreatedAt: time.Now()}
	t.Apply(f)
	return t
}

// Apply replaces every editable field of t with f and recomputes derived fields.
func (t *Task) Apply(f TaskFields) {
	t.Title = strings.TrimSpace(f.Title)
	t.FolderID = f.FolderID
	t.Priority = f.Priority.OrDefault()
	t.StartDate = f.StartDate
	t.EndDate = f.EndDate
	t.LeaveDays = LeaveDays(f.StartDate, f.EndDate)
	t.Members = uniqueStrings(f.Members)
	t.Notes = f.Notes
	t.Subtasks = append([]Subtask{}, f.Subtasks...)
	t.Attachments = append([]Attachment{}, f.Attachments...)
}

// Fields returns the editable part of t.
func (t *Task) Fields() TaskFields {
	return TaskFields{
		Title:       t.Title,
		FolderID:    t.FolderID,
		Priority:    t.Priority,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Members:     append([]string{}, t.Members...),
		Notes:       t.Notes,
		Subtasks:    append([]Subtask{}, t.Subtasks...),
		Attachments: append([]Attachment{}, t.Attachments...),
	}
}

func (t *Task) HasMember(memberID string) bool {
	for _, m := range t.Members {
		if m == memberID {
			return true
		}
	}
	return false
}

// DueDate returns the parsed end date, or false when the task has none.
func (t *Task) DueDate() (time.Time, bool) {
	d, err := ParseDay(t.EndDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

func (t *Task) Clone() *Task {
	c := *t
	c.Members = append([]string{}, t.Members...)
	c.Subtasks = append([]Subtask{}, t.Subtasks...)
	c.Attachments = append([]Attachment{}, t.Attachments...)
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

// ParseDay parses a date-only string in the local time zone.
// Years longer than four digits are clamped to 9999.
func ParseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if i := strings.Index(s, "-"); i > 4 && isDigits(s[:i]) {
		s = "9999" + s[i:]
	}
	return time.ParseInLocation(DateLayout, s, time.Local)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// LeaveDays is the inclusive number of calendar days between start and end,
// or 0 when either date is missing or malformed.
func LeaveDays(start, end string) int {
	s, err := ParseDay(start)
	if err != nil {
		return 0
	}
	e, err := ParseDay(end)
	if err != nil {
		return 0
	}
	days := DaysBetween(s, e)
	if days < 0 {
		days = -days
	}
	return days + 1
}

// DaysBetween counts calendar days from a to b, ignoring time of day and DST shifts.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int((ub.Unix() - ua.Unix()) / 86400)
}

func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
