// Package session holds the in-memory todo collection for one viewing
// session, the operations that load and grow it, and the filters that
// project it.
package session

import (
	"slices"
	"sync"

	"github.com/idilsaglam/todoview/internal/model"
)

// Store is the single source of truth for a session: the ordered todo
// collection and the current 1-indexed page.
// Reads return copies; writes go through Replace, Prepend and SetPage.
type Store struct {
	mu    sync.RWMutex
	todos []model.Todo
	page  int
}

func NewStore() *Store {
	return &Store{page: 1}
}

// Todos returns a copy of the collection in display order.
func (s *Store) Todos() []model.Todo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.todos)
	if out == nil {
		out = []model.Todo{}
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.todos)
}

func (s *Store) Page() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.page
}

// Replace swaps in a new collection and goes back to page 1.
func (s *Store) Replace(todos []model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = slices.Clone(todos)
	s.page = 1
}

// Prepend puts t at the front and goes back to page 1.
func (s *Store) Prepend(t model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = slices.Insert(s.todos, 0, t)
	s.page = 1
}

// SetPage moves to page p. Pages below 1 become 1; there is no upper clamp
// because the page count depends on whichever projection is on screen.
func (s *Store) SetPage(p int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p < 1 {
		p = 1
	}
	s.page = p
}
