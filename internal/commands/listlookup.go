package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskpad/internal/api"
	"taskpad/internal/exitcode"
	"taskpad/internal/remote"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ErrListNotFound indicates no list matched the given name.
var ErrListNotFound = errors.New("list not found")

// ErrListAmbiguous indicates more than one list matched the given name.
var ErrListAmbiguous = errors.New("ambiguous list name")

// resolveList finds a list by title (case-insensitive, trimmed).
// Fetches the current lists from the server first, so the cache is
// fresh when the caller goes on to act on the result.
func resolveList(ctx context.Context, client *remote.Client, name string) (api.TaskList, error) {
	name = strings.ToLower(strings.TrimSpace(name))

	lists, err := client.FetchTaskLists(ctx)
	if err != nil {
		return api.TaskList{}, err
	}

	var matches []api.TaskList
	for _, list := range lists {
		if strings.ToLower(strings.TrimSpace(list.Title)) == name {
			matches = append(matches, list)
		}
	}

	switch len(matches) {
	case 0:
		return api.TaskList{}, ErrListNotFound
	case 1:
		return matches[0], nil
	default:
		return api.TaskList{}, ErrListAmbiguous
	}
}

// pickList resolves --list by name, or falls back to the first list in
// server order when no name was given.
func pickList(ctx context.Context, client *remote.Client, name string) (api.TaskList, error) {
	if name != "" {
		return resolveList(ctx, client, name)
	}
	lists, err := client.FetchTaskLists(ctx)
	if err != nil {
		return api.TaskList{}, err
	}
	if len(lists) == 0 {
		return api.TaskList{}, ErrListNotFound
	}
	return lists[0], nil
}

// taskByNumber finds a task by its 1-based position in the list,
// fetching the list's tasks so the position reflects current server
// order.
func taskByNumber(ctx context.Context, client *remote.Client, listID string, num int) (api.Task, error) {
	tasks, err := client.FetchTasks(ctx, listID)
	if err != nil {
		return api.Task{}, err
	}
	if num < 1 || num > len(tasks) {
		return api.Task{}, fmt.Errorf("task number out of range: %d", num)
	}
	return tasks[num-1], nil
}

// parseTaskNum parses a 1-based task number from args.
func parseTaskNum(args []string) (int, error) {
	if len(args) == 0 {
		return 0, ErrTaskRefRequired
	}
	ref := args[0]
	if !isAllDigits(ref) {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	num, err := strconv.Atoi(ref)
	if err != nil {
		return 0, fmt.Errorf("invalid task reference: %s", ref)
	}
	return num, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// reportListError prints list-resolution failures and returns the exit
// code; backend failures fall through to reportBackendError.
func reportListError(errOut io.Writer, name string, err error) int {
	switch {
	case errors.Is(err, ErrListNotFound):
		if name == "" {
			fmt.Fprintln(errOut, "error: no lists found")
		} else {
			fmt.Fprintf(errOut, "error: list not found: %s\n", name)
		}
		return exitcode.UserError
	case errors.Is(err, ErrListAmbiguous):
		fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
		return exitcode.UserError
	}
	return reportBackendError(errOut, err)
}

// reportBackendError prints a request failure and returns the exit
// code: precondition failures are user errors, auth statuses map to
// AuthError, everything else is a backend error.
func reportBackendError(errOut io.Writer, err error) int {
	if remote.IsPrecondition(err) {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	switch remote.StatusCode(err) {
	case 401, 403:
		fmt.Fprintln(errOut, "error: unauthorized (run: taskpad login --token <token>)")
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}
