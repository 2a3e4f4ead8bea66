package session

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/idilsaglam/todoview/internal/api"
	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/testsupport"
)

func TestFetchAllStampsHistoryWindow(t *testing.T) {
	store := NewStore()
	store.SetPage(3)
	client := &stubClient{todos: makeTodos(100)}
	loader := newTestLoader(client, store)

	if err := loader.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	todos := store.Todos()
	if len(todos) != 100 {
		t.Fatalf("expected 100 todos, got %d", len(todos))
	}
	start := day(2024, time.January, 1)
	for i, todo := range todos {
		if todo.ID != i+1 {
			t.Fatalf("server order lost at %d: id %d", i, todo.ID)
		}
		if todo.CreatedAt.Before(start) || !todo.CreatedAt.Before(fixedNow) {
			t.Fatalf("todo %d CreatedAt %s outside [%s, %s)", todo.ID, todo.CreatedAt, start, fixedNow)
		}
	}
	if store.Page() != 1 {
		t.Fatalf("expected page 1 after fetch, got %d", store.Page())
	}
}

func TestFetchAllFailureLeavesStore(t *testing.T) {
	store := NewStore()
	store.Replace(makeTodos(5))
	store.SetPage(2)
	client := &stubClient{listErr: fmt.Errorf("%w: boom", api.ErrNetwork)}
	loader := newTestLoader(client, store)

	err := loader.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsNetworkFailure(err) {
		t.Fatalf("expected network failure, got %v", err)
	}
	if store.Len() != 5 || store.Page() != 2 {
		t.Fatalf("store changed on failure: len %d page %d", store.Len(), store.Page())
	}
}

func TestFetchAllMalformedIsNetworkFailure(t *testing.T) {
	fake := testsupport.NewFakeAPI(3)
	fake.Malformed = true
	store := NewStore()
	loader := newTestLoader(api.NewClient(fake.Start(t)), store)

	err := loader.FetchAll(context.Background())
	if !errors.Is(err, api.ErrMalformedResponse) || !IsNetworkFailure(err) {
		t.Fatalf("expected malformed network failure, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d", store.Len())
	}
}

func TestFetchAllAgainstAPI(t *testing.T) {
	fake := testsupport.NewFakeAPI(120)
	store := NewStore()
	loader := newTestLoader(api.NewClient(fake.Start(t)), store)

	if err := loader.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if store.Len() != 100 {
		t.Fatalf("expected the 100 item cap, got %d", store.Len())
	}
	if fake.LastQuery() != "limit=100" {
		t.Fatalf("unexpected query %q", fake.LastQuery())
	}
}

func TestCreateOneValidation(t *testing.T) {
	cases := []struct {
		name  string
		title string
		date  string
	}{
		{name: "empty title", title: "", date: "2024-03-15"},
		{name: "blank title", title: "   ", date: "2024-03-15"},
		{name: "empty date", title: "Read book", date: ""},
		{name: "both empty", title: "", date: ""},
		{name: "bad date", title: "Read book", date: "15/03/2024"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := NewStore()
			store.Replace(makeTodos(3))
			client := &stubClient{created: model.Todo{ID: 4, Title: tc.title}}
			loader := newTestLoader(client, store)

			_, err := loader.CreateOne(context.Background(), tc.title, tc.date)
			if !IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if client.addCalls != 0 {
				t.Fatalf("expected no network calls, got %d", client.addCalls)
			}
			if store.Len() != 3 {
				t.Fatalf("expected 3 todos, got %d", store.Len())
			}
		})
	}
}

func TestCreateOneMissingFieldsMessage(t *testing.T) {
	loader := newTestLoader(&stubClient{}, NewStore())
	_, err := loader.CreateOne(context.Background(), "", "")
	if err == nil || err.Error() != MsgMissingFields {
		t.Fatalf("expected %q, got %v", MsgMissingFields, err)
	}
}

func TestCreateOnePrependsWithUserDate(t *testing.T) {
	store := NewStore()
	store.Replace(makeTodos(3))
	store.SetPage(2)
	serverDate := day(2030, time.January, 1)
	client := &stubClient{created: model.Todo{ID: 151, Title: "Read book", UserID: 1, CreatedAt: serverDate}}
	loader := newTestLoader(client, store)

	created, err := loader.CreateOne(context.Background(), "  Read book  ", "2024-03-15")
	if err != nil {
		t.Fatalf("CreateOne: %v", err)
	}

	todos := store.Todos()
	if len(todos) != 4 {
		t.Fatalf("expected 4 todos, got %d", len(todos))
	}
	if todos[0].Title != "Read book" {
		t.Fatalf("expected Read book first, got %q", todos[0].Title)
	}
	if !todos[0].CreatedAt.Equal(day(2024, time.March, 15)) {
		t.Fatalf("expected user date, got %s", todos[0].CreatedAt)
	}
	if !created.CreatedAt.Equal(todos[0].CreatedAt) {
		t.Fatalf("returned todo differs from stored one")
	}
	if store.Page() != 1 {
		t.Fatalf("expected page 1, got %d", store.Page())
	}
	if client.lastAdd.Title != "Read book" || client.lastAdd.Completed || client.lastAdd.UserID != 1 {
		t.Fatalf("unexpected request: %+v", client.lastAdd)
	}
}

func TestCreateOneFailureLeavesStore(t *testing.T) {
	store := NewStore()
	store.Replace(makeTodos(3))
	client := &stubClient{addErr: fmt.Errorf("%w: refused", api.ErrNetwork)}
	loader := newTestLoader(client, store)

	_, err := loader.CreateOne(context.Background(), "Read book", "2024-03-15")
	if !IsNetworkFailure(err) {
		t.Fatalf("expected network failure, got %v", err)
	}
	if IsValidation(err) {
		t.Fatal("network failure reported as validation")
	}
	if client.addCalls != 1 || store.Len() != 3 {
		t.Fatalf("calls %d len %d", client.addCalls, store.Len())
	}
}

func TestCreateOneUsesConfiguredUser(t *testing.T) {
	fake := testsupport.NewFakeAPI(0)
	store := NewStore()
	loader := NewLoader(api.NewClient(fake.Start(t)), store, WithUserID(7), WithLocation(time.UTC))

	if _, err := loader.CreateOne(context.Background(), "x", "2024-01-02"); err != nil {
		t.Fatalf("CreateOne: %v", err)
	}
	if fake.LastAdd()["userId"] != float64(7) {
		t.Fatalf("unexpected body %#v", fake.LastAdd())
	}
}

func TestRandomTimeDegenerateWindow(t *testing.T) {
	loader := newTestLoader(&stubClient{}, NewStore())
	start := day(2024, time.January, 1)
	if got := loader.randomTime(start, start); !got.Equal(start) {
		t.Fatalf("expected start, got %s", got)
	}
	if got := loader.randomTime(start, start.Add(-time.Hour)); !got.Equal(start) {
		t.Fatalf("expected start for reversed window, got %s", got)
	}
}
