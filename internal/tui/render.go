package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/idilsaglam/todoview/internal/ui"
	"github.com/idilsaglam/todoview/internal/view"
)

func (m Model) View() string {
	candidates := m.ctrl.Candidates()
	page := m.ctrl.Page()

	lines := view.Summary(m.ctrl.Store().Todos(), m.ctrl.Filter(), len(candidates))
	lines = append(lines, "")
	if m.loading > 0 {
		lines = append(lines, m.spinner.View()+" Loading...")
	}
	lines = append(lines, m.renderer.RenderList(candidates, page))
	if strip := m.renderer.RenderPagination(candidates, page); strip != "" {
		lines = append(lines, "", strip)
	}
	if form := m.formView(); form != "" {
		lines = append(lines, form)
	}
	if m.status != "" {
		lines = append(lines, "", m.statusView())
	}
	lines = append(lines, "", m.help.View(m.keys))
	return ui.Panel(lines)
}

func (m Model) formView() string {
	var title string
	var rows []string
	switch m.mode {
	case modeSearch:
		title = "Search"
		rows = []string{m.search.View()}
	case modeDates:
		title = "Filter by date"
		rows = []string{"From " + m.from.View(), "To   " + m.to.View()}
	case modeAdd:
		title = "Add new task"
		rows = []string{"Title " + m.title.View(), "Date  " + m.date.View()}
		if m.creating {
			title += " (saving " + m.pending.Title + ")"
		}
	default:
		return ""
	}
	th := ui.Current()
	bar := lipgloss.NewStyle().Border(th.Border).BorderForeground(th.BorderColor).Padding(0, 1)
	return bar.Render(th.Title.Render(title) + "\n" + strings.Join(rows, "\n"))
}

func (m Model) statusView() string {
	th := ui.Current()
	switch m.statusLevel {
	case statusError:
		return th.Error.Render("✖ " + m.status)
	case statusInfo:
		return th.Success.Render(m.status)
	}
	return m.status
}
