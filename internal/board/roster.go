package board

import (
	"fmt"

	"task-dashboard/internal/domain"
)

// Roster is the ordered list of assignable members.
type Roster struct {
	members []*domain.Member
}

func NewRoster(members []*domain.Member) *Roster {
	r := &Roster{}
	for _, m := range members {
		if m != nil && m.ID != "" {
			r.members = append(r.members, m)
		}
	}
	return r
}

func (r *Roster) All() []*domain.Member {
	return append([]*domain.Member(nil), r.members...)
}

func (r *Roster) Get(id string) (*domain.Member, bool) {
	i := r.index(id)
	if i < 0 {
		return nil, false
	}
	return r.members[i], true
}

func (r *Roster) ByName(name string) (*domain.Member, bool) {
	for _, m := range r.members {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Resolve looks a member up by ID first, then by name.
func (r *Roster) Resolve(ref string) (*domain.Member, bool) {
	if m, ok := r.Get(ref); ok {
		return m, true
	}
	return r.ByName(ref)
}

// Name returns the display name for a member ID, or the ID itself when the
// member no longer exists.
func (r *Roster) Name(id string) string {
	if m, ok := r.Get(id); ok {
		return m.Name
	}
	return id
}

func (r *Roster) Add(name string) (*domain.Member, error) {
	name, err := domain.ValidateName(name)
	if err != nil {
		return nil, err
	}
	if _, exists := r.ByName(name); exists {
		return nil, fmt.Errorf("%w: member %q", domain.ErrDuplicateName, name)
	}
	m := domain.NewMember(name)
	r.members = append(r.members, m)
	return m, nil
}

func (r *Roster) Rename(id, name string) error {
	m, ok := r.Get(id)
	if !ok {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	name, err := domain.ValidateName(name)
	if err != nil || name == m.Name {
		return nil
	}
	if other, exists := r.ByName(name); exists && other.ID != id {
		return fmt.Errorf("%w: member %q", domain.ErrDuplicateName, name)
	}
	m.Name = name
	return nil
}

// Delete removes a member. Tasks keep the ID.
func (r *Roster) Delete(id string) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	r.members = append(r.members[:i], r.members[i+1:]...)
	return nil
}

func (r *Roster) Reorder(id string, direction int) error {
	i := r.index(id)
	if i < 0 {
		return fmt.Errorf("%w: member %s", domain.ErrNotFound, id)
	}
	j := i + direction
	if direction == 0 || j < 0 || j >= len(r.members) {
		return nil
	}
	r.members[i], r.members[j] = r.members[j], r.members[i]
	return nil
}

func (r *Roster) index(id string) int {
	for i, m := range r.members {
		if m.ID == id {
			return i
		}
	}
	return -1
}
