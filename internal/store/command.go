package store

import (
	"errors"
	"fmt"

	"taskpad/internal/api"
)

// ErrTasksNotLoaded is returned when a command requires the task slice
// for a list to already be cached and it is not. "Never fetched" and
// "fetched and empty" are distinct states; only commands documented to
// create the slice may do so.
var ErrTasksNotLoaded = errors.New("tasks not loaded for list")

// Command describes one atomic change to the local state. Commands are
// produced by the remote client from server responses; the store never
// invents entities or ids on its own.
type Command interface {
	isCommand()
}

// ReplaceTaskLists substitutes the whole cached list-of-lists.
type ReplaceTaskLists struct {
	Lists []api.TaskList
}

// UpsertTaskList replaces the cached list with the same id, or appends
// it if unknown.
type UpsertTaskList struct {
	List api.TaskList
}

// AppendTaskList appends a newly created list to the cache.
type AppendTaskList struct {
	List api.TaskList
}

// ReplaceTaskListField replaces the cached list with the same id.
// A miss leaves the state unchanged; the caller is expected to know
// the id exists.
type ReplaceTaskListField struct {
	List api.TaskList
}

// RemoveTaskList drops the list with the given id from the cache.
//
// It does NOT clear the list's cached task slice. tasks[id] keeps
// whatever was last fetched until something overwrites it; callers that
// re-enter a list always refetch, so the stale slice is never shown.
type RemoveTaskList struct {
	ID string
}

// ReplaceTasks substitutes the whole cached task slice for a list,
// establishing the cache entry if absent.
type ReplaceTasks struct {
	ListID string
	Tasks  []api.Task
}

// AppendTask appends a newly created task, establishing the cache entry
// if absent.
type AppendTask struct {
	ListID string
	Task   api.Task
}

// UpsertTask replaces the cached task with the same id, or appends it.
// Establishes the cache entry if absent.
type UpsertTask struct {
	ListID string
	Task   api.Task
}

// ReplaceTaskField replaces the cached task with the same id.
// Fails with ErrTasksNotLoaded if the list's tasks were never cached.
type ReplaceTaskField struct {
	ListID string
	Task   api.Task
}

// RemoveTask drops the task with the given id.
// Fails with ErrTasksNotLoaded if the list's tasks were never cached.
type RemoveTask struct {
	ListID string
	TaskID string
}

func (ReplaceTaskLists) isCommand()     {}
func (UpsertTaskList) isCommand()       {}
func (AppendTaskList) isCommand()       {}
func (ReplaceTaskListField) isCommand() {}
func (RemoveTaskList) isCommand()       {}
func (ReplaceTasks) isCommand()         {}
func (AppendTask) isCommand()           {}
func (UpsertTask) isCommand()           {}
func (ReplaceTaskField) isCommand()     {}
func (RemoveTask) isCommand()           {}

// Apply is the pure transition function from (state, command) to a new
// state. The input state is never mutated: every affected slice and the
// task map are copied before change, so previously published snapshots
// stay valid under concurrent reads.
func Apply(s State, cmd Command) (State, error) {
	switch c := cmd.(type) {
	case ReplaceTaskLists:
		s.TaskLists = append([]api.TaskList(nil), c.Lists...)
		return s, nil

	case UpsertTaskList:
		lists := append([]api.TaskList(nil), s.TaskLists...)
		replaced := false
		for i := range lists {
			if lists[i].ID == c.List.ID {
				lists[i] = c.List
				replaced = true
				break
			}
		}
		if !replaced {
			lists = append(lists, c.List)
		}
		s.TaskLists = lists
		return s, nil

	case AppendTaskList:
		lists := append([]api.TaskList(nil), s.TaskLists...)
		s.TaskLists = append(lists, c.List)
		return s, nil

	case ReplaceTaskListField:
		lists := append([]api.TaskList(nil), s.TaskLists...)
		for i := range lists {
			if lists[i].ID == c.List.ID {
				lists[i] = c.List
				break
			}
		}
		s.TaskLists = lists
		return s, nil

	case RemoveTaskList:
		lists := make([]api.TaskList, 0, len(s.TaskLists))
		for _, l := range s.TaskLists {
			if l.ID != c.ID {
				lists = append(lists, l)
			}
		}
		s.TaskLists = lists
		return s, nil

	case ReplaceTasks:
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[c.ListID] = append([]api.Task(nil), c.Tasks...)
		return s, nil

	case AppendTask:
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[c.ListID] = append(append([]api.Task(nil), s.Tasks[c.ListID]...), c.Task)
		return s, nil

	case UpsertTask:
		tasks := append([]api.Task(nil), s.Tasks[c.ListID]...)
		replaced := false
		for i := range tasks {
			if tasks[i].ID == c.Task.ID {
				tasks[i] = c.Task
				replaced = true
				break
			}
		}
		if !replaced {
			tasks = append(tasks, c.Task)
		}
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[c.ListID] = tasks
		return s, nil

	case ReplaceTaskField:
		cached, ok := s.Tasks[c.ListID]
		if !ok {
			return s, fmt.Errorf("replace task %s: %w", c.Task.ID, ErrTasksNotLoaded)
		}
		tasks := append([]api.Task(nil), cached...)
		for i := range tasks {
			if tasks[i].ID == c.Task.ID {
				tasks[i] = c.Task
				break
			}
		}
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[c.ListID] = tasks
		return s, nil

	case RemoveTask:
		cached, ok := s.Tasks[c.ListID]
		if !ok {
			return s, fmt.Errorf("remove task %s: %w", c.TaskID, ErrTasksNotLoaded)
		}
		tasks := make([]api.Task, 0, len(cached))
		for _, t := range cached {
			if t.ID != c.TaskID {
				tasks = append(tasks, t)
			}
		}
		s.Tasks = cloneTasks(s.Tasks)
		s.Tasks[c.ListID] = tasks
		return s, nil
	}

	return s, fmt.Errorf("unknown command %T", cmd)
}

func cloneTasks(m map[string][]api.Task) map[string][]api.Task {
	out := make(map[string][]api.Task, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
