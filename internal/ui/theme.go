package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name string

	Title, Muted, Accent, Success, Error, Pending lipgloss.Style

	BadgeDone, BadgePending  lipgloss.Style
	PageActive, PageInactive lipgloss.Style

	Border      lipgloss.Border
	BorderColor lipgloss.Color

	SymDone, SymPending string
}

// ThemeNames lists the accepted theme names.
var ThemeNames = []string{"classic", "neon", "mono"}

var current = mustTheme("classic")

// LookupTheme returns the named theme. Names are case-insensitive.
func LookupTheme(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "neon":
		return Theme{
			Name:         "neon",
			Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
			BadgeDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")).Padding(0, 1),
			BadgePending: lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13")).Padding(0, 1),
			PageActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13")),
			PageInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("13"),
			SymDone:      "✔",
			SymPending:   "•",
		}, true
	case "mono":
		plain := lipgloss.NewStyle()
		return Theme{
			Name:  "mono",
			Title: plain, Muted: plain, Accent: plain, Success: plain, Error: plain, Pending: plain,
			BadgeDone:    plain,
			BadgePending: plain,
			PageActive:   plain,
			PageInactive: plain,
			Border:       lipgloss.NormalBorder(),
			SymDone:      "x",
			SymPending:   "-",
		}, true
	case "classic", "":
		return Theme{
			Name:         "classic",
			Title:        lipgloss.NewStyle().Bold(true),
			Muted:        lipgloss.NewStyle().Faint(true),
			Accent:       lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
			Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
			Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
			Pending:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
			BadgeDone:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("28")).Padding(0, 1),
			BadgePending: lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("240")).Padding(0, 1),
			PageActive:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
			PageInactive: lipgloss.NewStyle().Faint(true),
			Border:       lipgloss.RoundedBorder(),
			BorderColor:  lipgloss.Color("8"),
			SymDone:      "✔",
			SymPending:   "•",
		}, true
	}
	return Theme{}, false
}

// SetTheme switches the current theme. Unknown names fall back to classic
// and report false. "mono" also drops colors from the renderer.
func SetTheme(name string) bool {
	t, ok := LookupTheme(name)
	if !ok {
		t = mustTheme("classic")
	}
	current = t
	if t.Name == "mono" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
	return ok
}

// Expose what renderers need
func Current() Theme { return current }

func mustTheme(name string) Theme {
	t, ok := LookupTheme(name)
	if !ok {
		panic("unknown built-in theme " + name)
	}
	return t
}
