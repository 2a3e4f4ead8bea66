// Package view projects a todo list onto pages and renders it.
package view

import "github.com/idilsaglam/todoview/internal/model"

// PageSize is the number of rows per page.
const PageSize = 10

// PageCount returns ceil(n / PageSize).
func PageCount(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + PageSize - 1) / PageSize
}

// Window returns the half-open slice [(page-1)*PageSize, page*PageSize)
// of list, clamped to its bounds. The result shares list's backing array.
func Window(list []model.Todo, page int) []model.Todo {
	// Checked before multiplying so huge pages cannot overflow.
	if page < 1 || page > PageCount(len(list)) {
		return nil
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(list))
	return list[start:end]
}

// Control is one entry of the pagination strip.
type Control struct {
	Page   int
	Active bool
}

// Controls returns one control per page of an n-item list, marking page.
func Controls(n, page int) []Control {
	count := PageCount(n)
	out := make([]Control, 0, count)
	for i := 1; i <= count; i++ {
		out = append(out, Control{Page: i, Active: i == page})
	}
	return out
}
