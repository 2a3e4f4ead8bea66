package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// FakeTodo is one item served by FakeAPI, in the upstream wire shape.
type FakeTodo struct {
	ID        int    `json:"id"`
	Todo      string `json:"todo"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// FakeAPI mimics the dummyjson todo endpoints under /todos.
type FakeAPI struct {
	mu        sync.Mutex
	todos     []FakeTodo
	nextID    int
	listCalls int
	addCalls  int
	lastAdd   map[string]any
	lastQuery string

	// ListStatus and AddStatus force an error status when non-zero.
	ListStatus int
	AddStatus  int
	// Malformed makes every response a JSON object without the expected fields.
	Malformed bool
}

// NewFakeAPI returns a fake serving n generated todos. Even ids are completed.
func NewFakeAPI(n int) *FakeAPI {
	todos := make([]FakeTodo, 0, n)
	for i := 1; i <= n; i++ {
		todos = append(todos, FakeTodo{ID: i, Todo: fmt.Sprintf("Todo %d", i), Completed: i%2 == 0, UserID: 10 + i%5})
	}
	return &FakeAPI{todos: todos, nextID: n + 1}
}

// NewFakeAPIWithTitles returns a fake serving the given titles in order.
func NewFakeAPIWithTitles(titles ...string) *FakeAPI {
	f := NewFakeAPI(0)
	for _, title := range titles {
		f.todos = append(f.todos, FakeTodo{ID: f.nextID, Todo: title, UserID: 1})
		f.nextID++
	}
	return f
}

// Start serves the fake until the test ends and returns the list endpoint URL.
func (f *FakeAPI) Start(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(f.Handler())
	t.Cleanup(srv.Close)
	return srv.URL + "/todos"
}

// Handler exposes the fake endpoints.
func (f *FakeAPI) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /todos", f.handleList)
	mux.HandleFunc("POST /todos/add", f.handleAdd)
	return mux
}

func (f *FakeAPI) handleList(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	f.lastQuery = r.URL.RawQuery

	if f.ListStatus != 0 {
		writeJSON(w, f.ListStatus, map[string]string{"message": "list unavailable"})
		return
	}
	if f.Malformed {
		writeJSON(w, http.StatusOK, map[string]string{"message": "no todos here"})
		return
	}

	limit := len(f.todos)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 && n < limit {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"todos": f.todos[:limit],
		"total": len(f.todos),
		"skip":  0,
		"limit": limit,
	})
}

func (f *FakeAPI) handleAdd(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addCalls++

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid json"})
		return
	}
	f.lastAdd = body

	if f.AddStatus != 0 {
		writeJSON(w, f.AddStatus, map[string]string{"message": "add unavailable"})
		return
	}
	if f.Malformed {
		writeJSON(w, http.StatusOK, map[string]string{"message": "created?"})
		return
	}

	title, _ := body["todo"].(string)
	completed, _ := body["completed"].(bool)
	userID, _ := body["userId"].(float64)
	created := FakeTodo{ID: f.nextID, Todo: title, Completed: completed, UserID: int(userID)}
	f.nextID++
	writeJSON(w, http.StatusCreated, created)
}

// ListCalls reports how many list requests were served.
func (f *FakeAPI) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

// AddCalls reports how many create requests were served.
func (f *FakeAPI) AddCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addCalls
}

// LastAdd returns the decoded body of the most recent create request.
func (f *FakeAPI) LastAdd() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastAdd
}

// LastQuery returns the raw query of the most recent list request.
func (f *FakeAPI) LastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastQuery
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
