package view

import (
	"strings"
	"testing"
	"time"

	"github.com/idilsaglam/todoview/internal/session"
)

func TestFilterLine(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		filter  session.FilterState
		matches int
		want    string
	}{
		{"none", session.FilterState{}, 25, ""},
		{"empty search", session.FilterState{Kind: session.FilterSearch}, 25, ""},
		{"search", session.FilterState{Kind: session.FilterSearch, Keyword: "milk"}, 1, `Search "milk": 1 match`},
		{"from only", session.FilterState{Kind: session.FilterDateRange, Range: session.DateRange{From: from}}, 2, "Created 2024-06-01 to any: 2 todos"},
		{"open range", session.FilterState{Kind: session.FilterDateRange}, 3, "All dates: 3 todos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilterLine(tt.filter, tt.matches); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSummaryCountsWholeCollection(t *testing.T) {
	useASCIIRenderer(t)
	todos := makeTodos(4)
	todos[0].Completed = true

	lines := Summary(todos, session.FilterState{Kind: session.FilterDateRange}, 4)
	if len(lines) != 3 {
		t.Fatalf("expected header, progress and filter lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "Total 4") || !strings.Contains(lines[1], "25%") {
		t.Fatalf("unexpected summary: %q", lines)
	}
	if lines[2] != "All dates: 4 todos" {
		t.Fatalf("unexpected filter line %q", lines[2])
	}
}
