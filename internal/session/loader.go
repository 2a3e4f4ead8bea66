package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/idilsaglam/todoview/internal/api"
	"github.com/idilsaglam/todoview/internal/model"
)

// DateLayout is the calendar date format accepted from the user.
const DateLayout = "2006-01-02"

const (
	DefaultLimit  = 100
	DefaultUserID = 1
)

// Client is the part of the API the loader needs.
type Client interface {
	List(ctx context.Context, limit int) ([]model.Todo, error)
	Add(ctx context.Context, in api.NewTodo) (model.Todo, error)
}

// Loader turns remote todos into session records.
//
// Fetch and Create only talk to the API; FetchAll and CreateOne also
// apply the result to the Store. The TUI uses the former from background
// commands and applies results itself on the update loop.
type Loader struct {
	client Client
	store  *Store
	limit  int
	userID int
	loc    *time.Location
	now    func() time.Time
	int64n func(int64) int64
	logger *slog.Logger
}

type LoaderOption func(*Loader)

func WithLimit(n int) LoaderOption { return func(l *Loader) { l.limit = n } }

func WithUserID(id int) LoaderOption { return func(l *Loader) { l.userID = id } }

// WithLocation sets the zone used for the history window and user dates.
func WithLocation(loc *time.Location) LoaderOption { return func(l *Loader) { l.loc = loc } }

func WithClock(now func() time.Time) LoaderOption { return func(l *Loader) { l.now = now } }

// WithRand makes synthesized timestamps reproducible.
func WithRand(r *rand.Rand) LoaderOption { return func(l *Loader) { l.int64n = r.Int64N } }

func WithLogger(logger *slog.Logger) LoaderOption { return func(l *Loader) { l.logger = logger } }

func NewLoader(client Client, store *Store, opts ...LoaderOption) *Loader {
	l := &Loader{
		client: client,
		store:  store,
		limit:  DefaultLimit,
		userID: DefaultUserID,
		loc:    time.Local,
		now:    time.Now,
		int64n: rand.Int64N,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location returns the zone dates are interpreted in.
func (l *Loader) Location() *time.Location { return l.loc }

// HistoryStart is the earliest synthesized creation time.
func (l *Loader) HistoryStart() time.Time {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, l.loc)
}

// Fetch downloads the list and stamps every todo with a random creation
// time between HistoryStart and now. The Store is not touched.
func (l *Loader) Fetch(ctx context.Context) ([]model.Todo, error) {
	todos, err := l.client.List(ctx, l.limit)
	if err != nil {
		l.logger.Warn("fetch todos failed", "error", err)
		return nil, fmt.Errorf("fetch todos: %w", err)
	}
	start, end := l.HistoryStart(), l.now()
	for i := range todos {
		todos[i].CreatedAt = l.randomTime(start, end)
	}
	l.logger.Info("fetched todos", "count", len(todos))
	return todos, nil
}

// FetchAll fetches and replaces the Store's collection. On error the Store
// is left as it was.
func (l *Loader) FetchAll(ctx context.Context) error {
	todos, err := l.Fetch(ctx)
	if err != nil {
		return err
	}
	l.store.Replace(todos)
	return nil
}

// Draft is a validated create request.
type Draft struct {
	Title string
	Date  time.Time
}

// Validate trims title and parses date. Either one missing is a
// ValidationError.
func (l *Loader) Validate(title, date string) (Draft, error) {
	title = strings.TrimSpace(title)
	date = strings.TrimSpace(date)
	if title == "" || date == "" {
		field := "title"
		if title != "" {
			field = "date"
		}
		return Draft{}, &ValidationError{Field: field, Message: MsgMissingFields}
	}
	d, err := ParseDate(date, l.loc)
	if err != nil {
		return Draft{}, err
	}
	return Draft{Title: title, Date: d}, nil
}

// Create posts a validated draft. The returned todo carries the draft's
// date as CreatedAt, whatever the server sent.
func (l *Loader) Create(ctx context.Context, d Draft) (model.Todo, error) {
	created, err := l.client.Add(ctx, api.NewTodo{Title: d.Title, Completed: false, UserID: l.userID})
	if err != nil {
		l.logger.Warn("create todo failed", "title", d.Title, "error", err)
		return model.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	created.CreatedAt = d.Date
	l.logger.Info("created todo", "id", created.ID, "title", created.Title)
	return created, nil
}

// CreateOne validates, creates and prepends a todo. Validation failures
// make no request; any failure leaves the Store unchanged.
func (l *Loader) CreateOne(ctx context.Context, title, date string) (model.Todo, error) {
	d, err := l.Validate(title, date)
	if err != nil {
		return model.Todo{}, err
	}
	created, err := l.Create(ctx, d)
	if err != nil {
		return model.Todo{}, err
	}
	l.store.Prepend(created)
	return created, nil
}

func (l *Loader) randomTime(start, end time.Time) time.Time {
	span := end.Sub(start)
	if span <= 0 {
		return start
	}
	return start.Add(time.Duration(l.int64n(int64(span))))
}

// ParseDate reads a YYYY-MM-DD date as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: MsgInvalidDate}
	}
	return t, nil
}
