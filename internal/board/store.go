package board

import (
	"fmt"
	"time"

	"task-dashboard/internal/domain"
)

// Store holds tasks in storage order, newest first unless manually arranged.
type Store struct {
	tasks []*domain.Task
	now   func() time.Time
}

func NewStore(tasks []*domain.Task) *Store {
	s := &Store{now: time.Now}
	for _, t := range tasks {
		if t != nil {
			s.tasks = append(s.tasks, t)
		}
	}
	return s
}

func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// All returns the tasks in storage order. The slice is a copy; the tasks are not.
func (s *Store) All() []*domain.Task {
	return append([]*domain.Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id int64) (*domain.Task, bool) {
	i := s.index(id)
	if i < 0 {
		return nil, false
	}
	return s.tasks[i], true
}

// Add creates a task at the front of the store. Its ID is the creation time
// in milliseconds, bumped past any existing ID.
func (s *Store) Add(fields domain.TaskFields) *domain.Task {
	now := s.now()
	t := domain.NewTask(fields)
	t.CreatedAt = now
	t.ID = now.UnixMilli()
	for _, existing := range s.tasks {
		if existing.ID >= t.ID {
			t.ID = existing.ID + 1
		}
	}
	s.tasks = append([]*domain.Task{t}, s.tasks...)
	return t
}

// Update replaces the editable fields of a task in place.
func (s *Store) Update(id int64, fields domain.TaskFields) error {
	t, ok := s.Get(id)
	if !ok {
		return notFound(id)
	}
	t.Apply(fields)
	return nil
}

func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *Store) ToggleComplete(id int64) error {
	t, ok := s.Get(id)
	if !ok {
		return notFound(id)
	}
	t.Completed = !t.Completed
	if t.Completed {
		at := s.now()
		t.CompletedAt = &at
	} else {
		t.CompletedAt = nil
	}
	return nil
}

func (s *Store) ToggleSubtask(id int64, index int) error {
	t, ok := s.Get(id)
	if !ok {
		return notFound(id)
	}
	if index < 0 || index >= len(t.Subtasks) {
		return fmt.Errorf("%w: subtask %d of task %d", domain.ErrNotFound, index, id)
	}
	t.Subtasks[index].Completed = !t.Subtasks[index].Completed
	return nil
}

func (s *Store) AddSubtask(id int64, text string) error {
	t, ok := s.Get(id)
	if !ok {
		return notFound(id)
	}
	t.Subtasks = append(t.Subtasks, domain.Subtask{Text: text})
	return nil
}

func (s *Store) Attach(id int64, a domain.Attachment) error {
	t, ok := s.Get(id)
	if !ok {
		return notFound(id)
	}
	t.Attachments = append(t.Attachments, a)
	return nil
}

// ReorderAdjacent swaps a task with its storage neighbour.
func (s *Store) ReorderAdjacent(id int64, direction int) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	j := i + direction
	if direction == 0 || j < 0 || j >= len(s.tasks) {
		return nil
	}
	s.tasks[i], s.tasks[j] = s.tasks[j], s.tasks[i]
	return nil
}

// ReorderToPosition moves a task right after afterID, or right before beforeID
// when afterID is zero or unknown, or to the front when neither anchor exists.
func (s *Store) ReorderToPosition(id, afterID, beforeID int64) error {
	i := s.index(id)
	if i < 0 {
		return notFound(id)
	}
	if afterID == id || beforeID == id {
		return nil
	}
	moved := s.tasks[i]
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)

	pos := 0
	if a := s.index(afterID); afterID != 0 && a >= 0 {
		pos = a + 1
	} else if b := s.index(beforeID); beforeID != 0 && b >= 0 {
		pos = b
	}

	s.tasks = append(s.tasks, nil)
	copy(s.tasks[pos+1:], s.tasks[pos:])
	s.tasks[pos] = moved
	return nil
}

// RelabelFolder refreshes the folder name label on every task in folderID.
func (s *Store) RelabelFolder(folderID, name string) int {
	n := 0
	for _, t := range s.tasks {
		if t.FolderID == folderID {
			t.Folder = name
			n++
		}
	}
	return n
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func notFound(id int64) error {
	return fmt.Errorf("%w: task %d", domain.ErrNotFound, id)
}
