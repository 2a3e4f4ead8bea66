package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func useASCIIRenderer(t *testing.T) {
	originalProfile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() {
		lipgloss.SetColorProfile(originalProfile)
	})
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		name              string
		done, total, want int
		wantPct           string
	}{
		{name: "empty", done: 0, total: 0, want: 0, wantPct: "  0%"},
		{name: "half", done: 5, total: 10, want: 5, wantPct: " 50%"},
		{name: "full", done: 10, total: 10, want: 10, wantPct: "100%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProgressBar(tc.done, tc.total, 10)
			if strings.Count(got, "█") != tc.want {
				t.Fatalf("expected %d filled cells, got %q", tc.want, got)
			}
			if !strings.HasSuffix(got, tc.wantPct) {
				t.Fatalf("expected suffix %q, got %q", tc.wantPct, got)
			}
		})
	}
}

func TestLookupTheme(t *testing.T) {
	for _, name := range ThemeNames {
		if th, ok := LookupTheme(strings.ToUpper(name)); !ok || th.Name != name {
			t.Fatalf("expected theme %s, got %+v %v", name, th.Name, ok)
		}
	}
	if _, ok := LookupTheme("sparkly"); ok {
		t.Fatal("expected unknown theme")
	}
}

func TestSetThemeFallsBack(t *testing.T) {
	useASCIIRenderer(t)
	t.Cleanup(func() { SetTheme("classic") })

	if SetTheme("sparkly") {
		t.Fatal("expected false for unknown theme")
	}
	if Current().Name != "classic" {
		t.Fatalf("expected classic fallback, got %s", Current().Name)
	}
}

func TestOKAndFail(t *testing.T) {
	useASCIIRenderer(t)
	SetTheme("classic")

	var out bytes.Buffer
	OK(&out, "added")
	Fail(&out, "nope")
	if out.String() != "✔ added\n✖ nope\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestPanelFramesLines(t *testing.T) {
	useASCIIRenderer(t)
	SetTheme("classic")

	got := Panel([]string{"one", "three"})
	lines := strings.Split(got, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), got)
	}
	if lines[1] != "│ one   │" || lines[2] != "│ three │" {
		t.Fatalf("unexpected panel:\n%s", got)
	}
}

func TestWidthOfNonTerminal(t *testing.T) {
	if Width(&bytes.Buffer{}) != 80 {
		t.Fatal("expected fallback width")
	}
	if IsTerminal(&bytes.Buffer{}) {
		t.Fatal("buffer is not a terminal")
	}
}
