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
	Register(&RenameListCmd{})
}

// RenameListCmd implements the renamelist command.
type RenameListCmd struct {
	description string
	hasDesc     bool
}

func (c *RenameListCmd) Name() string      { return "renamelist" }
func (c *RenameListCmd) Aliases() []string { return nil }
func (c *RenameListCmd) Synopsis() string  { return "Rename a list" }
func (c *RenameListCmd) Usage() string {
	return "taskpad renamelist [--desc <description>] <list-name> <new-title...>"
}
func (c *RenameListCmd) NeedsClient() bool { return true }

func (c *RenameListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("desc", "", func(v string) error {
		c.description = v
		c.hasDesc = true
		return nil
	})
}

func (c *RenameListCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: list name and new title required")
		return exitcode.UserError
	}

	name := args[0]
	newTitle := strings.TrimSpace(strings.Join(args[1:], " "))
	if newTitle == "" {
		fmt.Fprintln(errOut, "error: list name and new title required")
		return exitcode.UserError
	}

	list, err := resolveList(ctx, client, name)
	if err != nil {
		return reportListError(errOut, name, err)
	}

	list.Title = newTitle
	if c.hasDesc {
		list.Description = c.description
	}

	if _, err := client.UpdateTaskList(ctx, list.ID, list); err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
