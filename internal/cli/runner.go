// Package cli wires configuration, logging and the todo session into the
// todoview command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/idilsaglam/todoview/internal/api"
	"github.com/idilsaglam/todoview/internal/config"
	"github.com/idilsaglam/todoview/internal/env"
	"github.com/idilsaglam/todoview/internal/session"
	"github.com/idilsaglam/todoview/internal/ui"
	"github.com/idilsaglam/todoview/internal/view"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Exit codes: 0 ok, 1 network or I/O failure, 2 usage or invalid input.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Version is stamped at build time with -ldflags "-X ...cli.Version=...".
var Version = "dev"

type exitError struct {
	code int
	err  error
}

func (e exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit %d", e.code)
}

func (e exitError) ExitCode() int { return e.code }

func (e exitError) Unwrap() error { return e.err }

func usageError(err error) error   { return exitError{code: ExitUsage, err: err} }
func failureError(err error) error { return exitError{code: ExitFailure, err: err} }

// classify maps a session error onto an exit code, prefixing network
// failures with the user-facing message for the operation.
func classify(err error, failedMsg string) error {
	switch {
	case session.IsValidation(err):
		return usageError(err)
	case session.IsNetworkFailure(err):
		return failureError(fmt.Errorf("%s: %w", failedMsg, err))
	}
	return failureError(err)
}

// Run executes the command line and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	defer a.close()

	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitOK
	}
	ui.Fail(stderr, err.Error())

	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	// Anything cobra rejects before a command runs is a usage problem.
	fmt.Fprintln(stderr, "Run 'todoview --help' for usage.")
	return ExitUsage
}

// flags holds the persistent root flags.
type flags struct {
	baseURL string
	theme   string
	logFile string
	timeout string
}

// app is the per-invocation state shared by every command.
type app struct {
	stdout, stderr io.Writer
	flags          flags

	cfg      *config.Config
	logger   *slog.Logger
	logClose func() error
	ctrl     *session.Controller
	renderer *view.Renderer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todoview",
		Short: "Browse, search and add todos from a remote todo API",
		Long: `todoview fetches todos from a dummyjson-compatible API and shows them
ten per page. Without a subcommand it opens the interactive browser.`,
		Args:              cobra.NoArgs,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runBrowse,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.baseURL, "base-url", "", "todo list endpoint (default "+config.DefaultBaseURL+")")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: classic, neon or mono")
	pf.StringVar(&a.flags.logFile, "log-file", "", "append structured logs to this file")
	pf.StringVar(&a.flags.timeout, "timeout", "", "HTTP timeout, e.g. 10s")

	root.AddCommand(
		newBrowseCmd(a),
		newListCmd(a),
		newAddCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads configuration and builds the session for the command about
// to run.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if cmd.Name() == "version" {
		return nil
	}
	env.Init()

	cwd, err := os.Getwd()
	if err != nil {
		return failureError(fmt.Errorf("get working directory: %w", err))
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return usageError(err)
	}
	applyFlags(cfg, cmd.Flags(), a.flags)
	if err := cfg.Validate(); err != nil {
		return usageError(err)
	}
	if !ui.SetTheme(cfg.UI.Theme) {
		return usageError(fmt.Errorf("unknown theme %q (want one of %v)", cfg.UI.Theme, ui.ThemeNames))
	}
	a.cfg = cfg

	if err := a.openLog(cfg.Log.File); err != nil {
		return failureError(err)
	}

	timeout, _ := cfg.TimeoutDuration()
	client := api.NewClient(cfg.API.BaseURL,
		api.WithTimeout(timeout),
		api.WithLogger(a.logger),
	)
	store := session.NewStore()
	loader := session.NewLoader(client, store,
		session.WithLimit(cfg.API.Limit),
		session.WithUserID(cfg.API.UserID),
		session.WithLogger(a.logger),
	)
	a.ctrl = session.NewController(store, loader)
	a.renderer = view.NewRenderer(cfg.UI.DateFormat)
	a.logger.Debug("session ready", "command", cmd.Name(), "base_url", client.BaseURL(), "limit", cfg.API.Limit)
	return nil
}

// applyFlags overrides configuration with flags given on the command line.
func applyFlags(cfg *config.Config, fs *pflag.FlagSet, f flags) {
	if fs.Changed("base-url") {
		cfg.API.BaseURL = f.baseURL
	}
	if fs.Changed("theme") {
		cfg.UI.Theme = f.theme
	}
	if fs.Changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if fs.Changed("timeout") {
		cfg.API.Timeout = f.timeout
	}
}

func (a *app) openLog(path string) error {
	if path == "" {
		a.logger = slog.New(slog.DiscardHandler)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a.logClose = f.Close
	return nil
}

func (a *app) close() {
	if a.logClose != nil {
		_ = a.logClose()
	}
}
