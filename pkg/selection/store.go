// Package selection tracks which tree nodes the user has checked.
//
// A Store is owned by the interactive context and is not safe for concurrent
// mutation. Background work receives an immutable Set from Snapshot instead.
package selection

// Set is an immutable view of selected node ids.
type Set map[string]struct{}

// Contains reports whether id is selected.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Store holds the current selection. Ids are not validated against any tree;
// folder ids may be stored but are ignored when files are resolved.
type Store struct {
	ids map[string]struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

func (s *Store) Add(id string) {
	s.ids[id] = struct{}{}
}

func (s *Store) Remove(id string) {
	delete(s.ids, id)
}

func (s *Store) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

// Toggle flips the selection of id and returns the new state.
func (s *Store) Toggle(id string) bool {
	if s.Contains(id) {
		s.Remove(id)
		return false
	}
	s.Add(id)
	return true
}

// SetMany adds or removes every id in ids.
func (s *Store) SetMany(ids []string, on bool) {
	for _, id := range ids {
		if on {
			s.Add(id)
		} else {
			s.Remove(id)
		}
	}
}

func (s *Store) Len() int {
	return len(s.ids)
}

// Clear drops every selection. Used when a folder reload invalidates all ids.
func (s *Store) Clear() {
	s.ids = make(map[string]struct{})
}

// Snapshot returns a copy of the current selection.
func (s *Store) Snapshot() Set {
	out := make(Set, len(s.ids))
	for id := range s.ids {
		out[id] = struct{}{}
	}
	return out
}
