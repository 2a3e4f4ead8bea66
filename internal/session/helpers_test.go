package session

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/idilsaglam/todoview/internal/api"
	"github.com/idilsaglam/todoview/internal/model"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func makeTodos(n int) []model.Todo {
	todos := make([]model.Todo, 0, n)
	for i := 1; i <= n; i++ {
		todos = append(todos, model.Todo{ID: i, Title: fmt.Sprintf("Todo %d", i), UserID: 1})
	}
	return todos
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// stubClient records calls and answers from its fields.
type stubClient struct {
	todos     []model.Todo
	listErr   error
	created   model.Todo
	addErr    error
	listCalls int
	addCalls  int
	lastAdd   api.NewTodo
}

func (c *stubClient) List(ctx context.Context, limit int) ([]model.Todo, error) {
	c.listCalls++
	if c.listErr != nil {
		return nil, c.listErr
	}
	out := make([]model.Todo, len(c.todos))
	copy(out, c.todos)
	return out, nil
}

func (c *stubClient) Add(ctx context.Context, in api.NewTodo) (model.Todo, error) {
	c.addCalls++
	c.lastAdd = in
	if c.addErr != nil {
		return model.Todo{}, c.addErr
	}
	return c.created, nil
}

func newTestLoader(client Client, store *Store) *Loader {
	return NewLoader(client, store,
		WithLocation(time.UTC),
		WithClock(func() time.Time { return fixedNow }),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
}
