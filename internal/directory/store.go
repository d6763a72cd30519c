// Package directory holds the authoritative employee list and derives the filtered view from it.
package directory

import (
	"empdir/internal/types"
	"slices"
	"sync"
)

// Store is the single source of truth for the employee list last confirmed by the backend.
// Records are never edited in place: the list is only ever swapped as a whole, and the
// filtered view is recomputed from (list, term) on every change.
type Store struct {
	mu   sync.RWMutex
	all  []types.Employee
	view []types.Employee
	term string
}

func NewStore() *Store {
	return &Store{all: []types.Employee{}, view: []types.Employee{}}
}

// ReplaceAll sets the authoritative list to exactly list. Contents are trusted as-is.
func (s *Store) ReplaceAll(list []types.Employee) {
	cp := slices.Clone(list)
	if cp == nil {
		cp = []types.Employee{}
	}
	s.mu.Lock()
	s.all = cp
	s.view = Apply(s.all, s.term)
	s.mu.Unlock()
}

// Clear empties the authoritative list.
func (s *Store) Clear() {
	s.ReplaceAll(nil)
}

// SetTerm replaces the search term and recomputes the view.
func (s *Store) SetTerm(term string) {
	s.mu.Lock()
	s.term = term
	s.view = Apply(s.all, s.term)
	s.mu.Unlock()
}

func (s *Store) Term() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

// All returns a copy of the authoritative list.
func (s *Store) All() []types.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.all)
}

// View returns a copy of the filtered view.
func (s *Store) View() []types.Employee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.view)
}

// Stats are derived from the authoritative list, not from the view.
func (s *Store) Stats() types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return types.StatsOf(s.all)
}

// Snapshot returns the view and the stats under a single read lock.
func (s *Store) Snapshot() ([]types.Employee, types.Stats) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.view), types.StatsOf(s.all)
}
