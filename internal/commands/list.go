package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/api"
	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/output"
	"taskpad/internal/remote"
	"taskpad/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskpad` (no args, all lists) and `taskpad list <list-name>`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return nil }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "taskpad list [common flags] [<list-name>]" }
func (c *ListCmd) NeedsClient() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	// If no args, show every list
	if len(args) == 0 {
		return c.listAll(ctx, cfg, client, out, errOut)
	}

	listName := strings.Join(args, " ")
	return c.listOne(ctx, cfg, client, listName, out, errOut)
}

// listAll shows each list section in server order.
func (c *ListCmd) listAll(ctx context.Context, cfg *config.Config, client *remote.Client, out, errOut io.Writer) int {
	lists, err := client.FetchTaskLists(ctx)
	if err != nil {
		return reportBackendError(errOut, err)
	}

	if len(lists) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no lists found")
		}
		return exitcode.Success
	}

	for _, list := range lists {
		if _, err := client.FetchTasks(ctx, list.ID); err != nil {
			fmt.Fprintf(errOut, "error: failed to fetch list: %s: %v\n", list.Title, err)
			return exitcode.BackendError
		}
		printListSection(out, client, list)
	}

	return exitcode.Success
}

// listOne shows a single list section.
func (c *ListCmd) listOne(ctx context.Context, cfg *config.Config, client *remote.Client, listName string, out, errOut io.Writer) int {
	listName = strings.TrimSpace(listName)
	if listName == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, client, listName)
	if err != nil {
		return reportListError(errOut, listName, err)
	}

	if _, err := client.FetchTasks(ctx, list.ID); err != nil {
		return reportBackendError(errOut, err)
	}

	printListSection(out, client, list)
	return exitcode.Success
}

// printListSection renders a list header, its cached tasks, and the
// completion footer. Reads from the store snapshot so what is printed
// is exactly what the cache holds.
func printListSection(out io.Writer, client *remote.Client, list api.TaskList) {
	snap := client.Store().Snapshot()
	tasks, _ := snap.TasksFor(list.ID)

	output.FormatListHeader(out, list)
	done := 0
	for i, task := range tasks {
		output.FormatTask(out, i+1, task)
		if task.Status == api.StatusClosed {
			done++
		}
	}
	output.FormatCompletion(out, done, len(tasks), store.Completion(tasks))
}
