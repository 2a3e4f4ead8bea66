package session

import (
	"strings"
	"time"

	"github.com/idilsaglam/todoview/internal/model"
)

// Search keeps todos whose title contains keyword, ignoring case.
// An empty keyword keeps everything. Order is preserved.
func Search(todos []model.Todo, keyword string) []model.Todo {
	needle := strings.ToLower(keyword)
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			out = append(out, t)
		}
	}
	return out
}

// DateRange bounds CreatedAt inclusively. A zero bound is open.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange reads optional YYYY-MM-DD bounds in loc.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	var r DateRange
	if strings.TrimSpace(from) != "" {
		t, err := ParseDate(from, loc)
		if err != nil {
			return DateRange{}, err
		}
		r.From = t
	}
	if strings.TrimSpace(to) != "" {
		t, err := ParseDate(to, loc)
		if err != nil {
			return DateRange{}, err
		}
		r.To = t
	}
	return r, nil
}

func (r DateRange) Contains(t time.Time) bool {
	if !r.From.IsZero() && t.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && t.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether neither bound is set.
func (r DateRange) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

// FilterDates keeps todos created inside r. Order is preserved.
func FilterDates(todos []model.Todo, r DateRange) []model.Todo {
	out := make([]model.Todo, 0, len(todos))
	for _, t := range todos {
		if r.Contains(t.CreatedAt) {
			out = append(out, t)
		}
	}
	return out
}
