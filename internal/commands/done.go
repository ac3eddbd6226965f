package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/remote"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd implements the done command. It toggles: a CLOSED task
// referenced again goes back to OPEN.
type DoneCmd struct {
	listName string
}

// SetListName sets the list name (for testing).
func (c *DoneCmd) SetListName(name string) {
	c.listName = name
}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return []string{"toggle"} }
func (c *DoneCmd) Synopsis() string  { return "Toggle a task's completion" }
func (c *DoneCmd) Usage() string     { return "taskpad done [--list <list-name>] <n>" }
func (c *DoneCmd) NeedsClient() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	num, err := parseTaskNum(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	list, err := pickList(ctx, client, c.listName)
	if err != nil {
		return reportListError(errOut, c.listName, err)
	}

	task, err := taskByNumber(ctx, client, list.ID, num)
	if err != nil {
		if strings.Contains(err.Error(), "out of range") {
			fmt.Fprintf(errOut, "error: task number out of range: %d\n", num)
			return exitcode.UserError
		}
		return reportBackendError(errOut, err)
	}

	// Whole-entity substitution: PUT the full task with the status
	// flipped, then refetch so the cache reflects server truth.
	if _, err := client.UpdateTaskAndRefresh(ctx, list.ID, task.ID, task.Toggled()); err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
