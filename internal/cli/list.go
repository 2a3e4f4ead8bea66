package cli

import (
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/session"
	"github.com/idilsaglam/todoview/internal/ui"
	"github.com/idilsaglam/todoview/internal/view"
	"github.com/spf13/cobra"
)

type listOptions struct {
	page   int
	search string
	from   string
	to     string
	asJSON bool
}

// listPage is the --json shape of one page.
type listPage struct {
	Page    int          `json:"page"`
	Pages   int          `json:"pages"`
	Matches int          `json:"matches"`
	Total   int          `json:"total"`
	Todos   []model.Todo `json:"todos"`
}

func newListCmd(a *app) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "Print one page of todos",
		Example: `  todoview ls
  todoview ls --page 3
  todoview ls --search milk
  todoview ls --from 2024-06-01 --to 2024-12-31 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runList(cmd, opts)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.page, "page", "p", 1, "page to show (10 todos per page)")
	f.StringVarP(&opts.search, "search", "s", "", "only titles containing this text (case-insensitive)")
	f.StringVar(&opts.from, "from", "", "only todos created on or after YYYY-MM-DD")
	f.StringVar(&opts.to, "to", "", "only todos created on or before YYYY-MM-DD")
	f.BoolVar(&opts.asJSON, "json", false, "print the page as JSON")
	cmd.MarkFlagsMutuallyExclusive("search", "from")
	cmd.MarkFlagsMutuallyExclusive("search", "to")
	return cmd
}

func (a *app) runList(cmd *cobra.Command, opts listOptions) error {
	if opts.page < 1 {
		return usageError(fmt.Errorf("page must be at least 1, got %d", opts.page))
	}
	// Reject bad dates before going to the network.
	if _, err := session.ParseDateRange(opts.from, opts.to, a.ctrl.Loader().Location()); err != nil {
		return usageError(err)
	}

	if err := a.ctrl.Loader().FetchAll(cmd.Context()); err != nil {
		return classify(err, session.MsgFetchFailed)
	}

	fs := cmd.Flags()
	switch {
	case fs.Changed("search"):
		a.ctrl.Search(opts.search)
	case fs.Changed("from"), fs.Changed("to"):
		if _, err := a.ctrl.FilterDates(opts.from, opts.to); err != nil {
			return usageError(err)
		}
	}
	a.ctrl.GoToPage(opts.page)

	candidates := a.ctrl.Candidates()
	page := a.ctrl.Page()
	if opts.asJSON {
		return a.writeJSON(listPage{
			Page:    page,
			Pages:   view.PageCount(len(candidates)),
			Matches: len(candidates),
			Total:   a.ctrl.Store().Len(),
			Todos:   append([]model.Todo{}, view.Window(candidates, page)...),
		})
	}

	if ui.IsTerminal(a.stdout) {
		a.renderer.Width = max(ui.Width(a.stdout)-4, 20)
	}
	lines := view.Summary(a.ctrl.Store().Todos(), a.ctrl.Filter(), len(candidates))
	lines = append(lines, "", a.renderer.RenderList(candidates, page))
	if strip := a.renderer.RenderPagination(candidates, page); strip != "" {
		lines = append(lines, "", strip)
	}
	lines = append(lines, "", ui.Current().Muted.Render(`Tip: add with todoview add --title "Buy milk" --date 2024-03-15`))
	fmt.Fprintln(a.stdout, ui.Panel(lines))
	return nil
}

func (a *app) writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return failureError(fmt.Errorf("json marshal: %w", err))
	}
	if _, err := fmt.Fprintln(a.stdout, string(b)); err != nil {
		return failureError(fmt.Errorf("write output: %w", err))
	}
	return nil
}
