package model

import "time"

// Todo is the domain model for a todo entry.
// CreatedAt is never sent by the server; the client fills it in.
type Todo struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    int       `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Stats counts completed and pending todos.
func Stats(todos []Todo) (done, pending int) {
	for _, t := range todos {
		if t.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
