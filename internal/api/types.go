// Package api defines the entity types exchanged with the remote task API.
package api

// Status is a task's completion state.
type Status string

const (
	// StatusOpen marks a task that still needs doing.
	StatusOpen Status = "OPEN"

	// StatusClosed marks a completed task.
	StatusClosed Status = "CLOSED"
)

// Priority is an ordered task category.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Rank returns the ordering position of a priority, lowest first.
// Unknown values rank below LOW.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	}
	return 0
}

// TaskList is a named collection of tasks. The server assigns the ID;
// a TaskList with an empty ID is a creation draft and marshals without
// the id field.
type TaskList struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Task is a single task item. ID and ListID are server-assigned; both
// are omitted from creation drafts.
type Task struct {
	ID       string   `json:"id,omitempty"`
	ListID   string   `json:"listId,omitempty"`
	Title    string   `json:"title"`
	Priority Priority `json:"priority"`
	Due      *Date    `json:"dueDate,omitempty"`
	Status   Status   `json:"status"`
}

// Toggled returns a copy of the task with its status flipped.
func (t Task) Toggled() Task {
	if t.Status == StatusClosed {
		t.Status = StatusOpen
	} else {
		t.Status = StatusClosed
	}
	return t
}
