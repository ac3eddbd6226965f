// Package store holds the locally cached view of the remote task data.
//
// The cache is normalized by id: an ordered slice of task lists plus a
// map from list id to that list's ordered task slice. It changes only
// by applying commands built from server responses, in the order those
// responses arrive. There is no version check and no conflict
// detection; when two in-flight calls race, the last response to apply
// wins.
package store

import (
	"sync"

	"taskpad/internal/api"
)

// State is the cached truth at one point in time. State values are
// treated as immutable: Apply returns a fresh value and never touches
// slices reachable from an already-published one.
type State struct {
	// TaskLists holds the cached lists in server response order.
	TaskLists []api.TaskList

	// Tasks maps list id to the tasks known for that list as of the
	// last successful fetch or mutation. A missing key means the list
	// was never fetched, which is different from an empty slice.
	Tasks map[string][]api.Task
}

// TasksFor returns the cached task slice for a list and whether one
// has been established.
func (s State) TasksFor(listID string) ([]api.Task, bool) {
	tasks, ok := s.Tasks[listID]
	return tasks, ok
}

// FindList returns the cached list with the given id.
func (s State) FindList(id string) (api.TaskList, bool) {
	for _, l := range s.TaskLists {
		if l.ID == id {
			return l, true
		}
	}
	return api.TaskList{}, false
}

// Store is the single writer over a State value. Consumers receive it
// by reference from whoever wired the session; there is no package
// global and no implicit reset.
type Store struct {
	mu    sync.RWMutex
	state State
}

// New returns a store with empty collections.
func New() *Store {
	return &Store{state: State{Tasks: make(map[string][]api.Task)}}
}

// Apply runs one command against the current state and publishes the
// result. Commands land strictly in call order; the caller (the remote
// client) invokes Apply as each response resolves.
func (st *Store) Apply(cmd Command) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	next, err := Apply(st.state, cmd)
	if err != nil {
		return err
	}
	st.state = next
	return nil
}

// Snapshot returns the current state. The returned value is safe to
// read without coordination because applied states are never mutated.
func (st *Store) Snapshot() State {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.state
}

// Completion returns the percentage of tasks in the slice that are
// CLOSED, in the range [0, 100]. An empty or nil slice is 0 percent.
// Pure function of its input; reordering the slice does not change the
// result.
func Completion(tasks []api.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	closed := 0
	for _, t := range tasks {
		if t.Status == api.StatusClosed {
			closed++
		}
	}
	return float64(closed) / float64(len(tasks)) * 100
}
