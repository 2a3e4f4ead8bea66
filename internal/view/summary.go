package view

import (
	"fmt"

	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/session"
	"github.com/idilsaglam/todoview/internal/ui"
)

// Summary is the header block above a list: counts over the whole
// collection, a progress bar and, when a filter is active, a line
// describing it.
func Summary(all []model.Todo, f session.FilterState, matches int) []string {
	th := ui.Current()
	done, pending := model.Stats(all)
	lines := []string{
		ui.Header(done, pending),
		th.Muted.Render(ui.ProgressBar(done, done+pending, 28)),
	}
	if line := FilterLine(f, matches); line != "" {
		lines = append(lines, th.Accent.Render(line))
	}
	return lines
}

// FilterLine describes the active filter, or returns "" when none is.
func FilterLine(f session.FilterState, matches int) string {
	switch f.Kind {
	case session.FilterSearch:
		if f.Keyword == "" {
			return ""
		}
		return fmt.Sprintf("Search %q: %d %s", f.Keyword, matches, plural(matches, "match", "matches"))
	case session.FilterDateRange:
		if f.Range.IsOpen() {
			return fmt.Sprintf("All dates: %d %s", matches, plural(matches, "todo", "todos"))
		}
		from, to := "any", "any"
		if !f.Range.From.IsZero() {
			from = f.Range.From.Format(session.DateLayout)
		}
		if !f.Range.To.IsZero() {
			to = f.Range.To.Format(session.DateLayout)
		}
		return fmt.Sprintf("Created %s to %s: %d %s", from, to, matches, plural(matches, "todo", "todos"))
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
