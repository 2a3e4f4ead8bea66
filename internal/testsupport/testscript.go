package testsupport

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"
)

var (
	buildOnce    sync.Once
	todoviewPath string
	buildErr     error
)

type fakeAPIKey struct{}

// BuildTodoview builds the todoview binary once and returns its path.
func BuildTodoview(t testing.TB) string {
	t.Helper()

	buildOnce.Do(func() {
		moduleRoot, err := findModuleRoot()
		if err != nil {
			buildErr = err
			return
		}

		binDir, err := os.MkdirTemp("", "todoview-bin-")
		if err != nil {
			buildErr = err
			return
		}

		todoviewPath = filepath.Join(binDir, "todoview")
		cmd := exec.Command("go", "build", "-o", todoviewPath, "./cmd/todoview")
		cmd.Dir = moduleRoot
		output, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build todoview: %w: %s", err, strings.TrimSpace(string(output)))
		}
	})

	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}

	return todoviewPath
}

// SetupScriptEnv points the script at a fresh FakeAPI with 25 todos.
//
// It sets TODOVIEW (binary path), HOME, TODOVIEW_BASE_URL (working fake),
// MALFORMED_URL (answers without a todos array) and DOWN_URL (refuses
// connections).
func SetupScriptEnv(t testing.TB, env *testscript.Env) error {
	t.Helper()

	env.Setenv("TODOVIEW", BuildTodoview(t))

	homeDir := filepath.Join(env.WorkDir, "home")
	if err := EnsureHomeDirs(homeDir); err != nil {
		return err
	}
	env.Setenv("HOME", homeDir)

	fake := NewFakeAPI(25)
	srv := httptest.NewServer(fake.Handler())
	env.Defer(srv.Close)
	env.Values[fakeAPIKey{}] = fake
	env.Setenv("TODOVIEW_BASE_URL", srv.URL+"/todos")

	broken := NewFakeAPI(0)
	broken.Malformed = true
	brokenSrv := httptest.NewServer(broken.Handler())
	env.Defer(brokenSrv.Close)
	env.Setenv("MALFORMED_URL", brokenSrv.URL+"/todos")

	down := httptest.NewServer(http.NotFoundHandler())
	env.Setenv("DOWN_URL", down.URL+"/todos")
	down.Close()
	return nil
}

// CmdAddCalls asserts how many create requests reached the fake API.
func CmdAddCalls(ts *testscript.TestScript, neg bool, args []string) {
	if neg {
		ts.Fatalf("addcalls does not support negation")
	}
	if len(args) != 1 {
		ts.Fatalf("usage: addcalls N")
	}
	want, err := strconv.Atoi(args[0])
	if err != nil {
		ts.Fatalf("addcalls: %v", err)
	}
	fake, ok := ts.Value(fakeAPIKey{}).(*FakeAPI)
	if !ok {
		ts.Fatalf("addcalls: no fake api in this script")
	}
	if got := fake.AddCalls(); got != want {
		ts.Fatalf("addcalls: got %d, want %d", got, want)
	}
}

func findModuleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find module root (go.mod)")
		}
		dir = parent
	}
}
