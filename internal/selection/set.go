// Package selection tracks the set of product IDs a batch operation targets.
package selection

import "sort"

// Set is a set of product IDs. The zero value is not usable; call NewSet.
type Set struct {
	ids map[string]struct{}
}

// NewSet creates a set holding ids.
func NewSet(ids ...string) *Set {
	s := &Set{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add selects id. Blank IDs are ignored.
func (s *Set) Add(id string) {
	if id == "" {
		return
	}
	s.ids[id] = struct{}{}
}

func (s *Set) Remove(id string) {
	delete(s.ids, id)
}

// Toggle flips the membership of id and reports whether it is now selected.
func (s *Set) Toggle(id string) bool {
	if s.Contains(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return s.Contains(id)
}

func (s *Set) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *Set) Size() int {
	return len(s.ids)
}

// SelectAll replaces the selection with every ID in visible.
func (s *Set) SelectAll(visible []string) {
	s.Clear()
	for _, id := range visible {
		s.Add(id)
	}
}

// Clear selects nothing.
func (s *Set) Clear() {
	clear(s.ids)
}

// Merge adds every ID of other.
func (s *Set) Merge(other *Set) {
	if other == nil {
		return
	}
	for id := range other.ids {
		s.ids[id] = struct{}{}
	}
}

// IDs returns the selected IDs in a stable order.
func (s *Set) IDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
