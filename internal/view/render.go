package view

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/todoview/internal/model"
	"github.com/idilsaglam/todoview/internal/ui"
	"github.com/muesli/reflow/truncate"
)

// EmptyMessage is the only row shown for an empty page.
const EmptyMessage = "No tasks found"

// DefaultDateFormat mimics an en-US short date.
const DefaultDateFormat = "1/2/2006"

// Renderer turns projections into terminal text using the current ui theme.
type Renderer struct {
	// DateFormat is a Go time layout for the "Created:" line.
	DateFormat string
	// Location is the zone dates are shown in.
	Location *time.Location
	// Width bounds each row; 0 means no truncation.
	Width int
}

func NewRenderer(dateFormat string) *Renderer {
	if dateFormat == "" {
		dateFormat = DefaultDateFormat
	}
	return &Renderer{DateFormat: dateFormat, Location: time.Local}
}

// RenderList renders the rows of list visible on page.
func (r *Renderer) RenderList(list []model.Todo, page int) string {
	th := ui.Current()
	visible := Window(list, page)
	if len(visible) == 0 {
		return th.Muted.Render(EmptyMessage)
	}
	rows := make([]string, 0, len(visible))
	for _, t := range visible {
		rows = append(rows, r.Row(t))
	}
	return strings.Join(rows, "\n")
}

// Row renders one todo: title and status badge, then its creation date.
func (r *Renderer) Row(t model.Todo) string {
	th := ui.Current()
	badge := th.BadgePending.Render("Pending")
	if t.Completed {
		badge = th.BadgeDone.Render("Done")
	}

	title := t.Title
	gap := 2
	if r.Width > 0 {
		room := r.Width - lipgloss.Width(badge) - gap
		if room < 1 {
			room = 1
		}
		title = truncate.StringWithTail(title, uint(room), "…")
		gap = max(r.Width-lipgloss.Width(title)-lipgloss.Width(badge), gap)
	}

	first := th.Title.Render(title) + strings.Repeat(" ", gap) + badge
	second := th.Muted.Render("Created: " + r.FormatDate(t.CreatedAt))
	return first + "\n" + second
}

// FormatDate renders a creation time as a short local date.
func (r *Renderer) FormatDate(t time.Time) string {
	loc := r.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(r.DateFormat)
}

// RenderPagination renders one numbered control per page of list, the
// current page in brackets.
func (r *Renderer) RenderPagination(list []model.Todo, page int) string {
	th := ui.Current()
	controls := Controls(len(list), page)
	parts := make([]string, 0, len(controls))
	for _, c := range controls {
		label := strconv.Itoa(c.Page)
		if c.Active {
			parts = append(parts, th.PageActive.Render("["+label+"]"))
			continue
		}
		parts = append(parts, th.PageInactive.Render(label))
	}
	return strings.Join(parts, " ")
}
