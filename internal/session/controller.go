package session

import (
	"slices"

	"github.com/idilsaglam/todoview/internal/model"
)

// FilterKind says which projection is on screen.
type FilterKind int

const (
	FilterNone FilterKind = iota
	FilterSearch
	FilterDateRange
)

// FilterState describes the active projection.
type FilterState struct {
	Kind    FilterKind
	Keyword string
	Range   DateRange
}

// Controller routes user actions to the Store and remembers the candidate
// list the view pages through.
//
// Only one filter is active at a time: a search replaces a date filter and
// the other way round, each computed from the full collection.
// A Controller is not safe for concurrent use.
type Controller struct {
	store      *Store
	loader     *Loader
	filter     FilterState
	candidates []model.Todo
}

func NewController(store *Store, loader *Loader) *Controller {
	return &Controller{store: store, loader: loader}
}

func (c *Controller) Store() *Store { return c.store }

func (c *Controller) Loader() *Loader { return c.loader }

func (c *Controller) Filter() FilterState { return c.filter }

func (c *Controller) Page() int { return c.store.Page() }

// Candidates is the list currently paged through: the full collection when
// no filter is active, otherwise the last filtered projection.
func (c *Controller) Candidates() []model.Todo {
	if c.filter.Kind == FilterNone {
		return c.store.Todos()
	}
	return slices.Clone(c.candidates)
}

// Loaded replaces the collection with a fetch result and drops any filter.
func (c *Controller) Loaded(todos []model.Todo) {
	c.store.Replace(todos)
	c.clearFilter()
}

// Created prepends a new todo and drops any filter.
func (c *Controller) Created(t model.Todo) {
	c.store.Prepend(t)
	c.clearFilter()
}

// Search projects the collection onto titles containing keyword and goes
// back to page 1.
func (c *Controller) Search(keyword string) []model.Todo {
	c.candidates = Search(c.store.Todos(), keyword)
	c.filter = FilterState{Kind: FilterSearch, Keyword: keyword}
	c.store.SetPage(1)
	return slices.Clone(c.candidates)
}

// FilterDates projects the collection onto the given YYYY-MM-DD bounds
// and goes back to page 1. Bad dates leave everything unchanged.
func (c *Controller) FilterDates(from, to string) ([]model.Todo, error) {
	r, err := ParseDateRange(from, to, c.loader.Location())
	if err != nil {
		return nil, err
	}
	c.candidates = FilterDates(c.store.Todos(), r)
	c.filter = FilterState{Kind: FilterDateRange, Range: r}
	c.store.SetPage(1)
	return slices.Clone(c.candidates), nil
}

// GoToPage switches page while keeping the current projection.
func (c *Controller) GoToPage(n int) {
	c.store.SetPage(n)
}

func (c *Controller) clearFilter() {
	c.filter = FilterState{}
	c.candidates = nil
}
