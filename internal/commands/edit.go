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
	"taskpad/internal/remote"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command: re-title a task, change its
// priority, or set/clear its due date.
type EditCmd struct {
	listName string
	title    string
	priority string
	due      string
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskpad edit [--list <list-name>] [--title <title>] [--priority <low|medium|high>] [--due <YYYY-MM-DD>|none] <n>"
}
func (c *EditCmd) NeedsClient() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	num, err := parseTaskNum(args)
	if err != nil {
		if err == ErrTaskRefRequired {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return exitcode.UserError
	}

	if c.title == "" && c.priority == "" && c.due == "" {
		fmt.Fprintln(errOut, "error: nothing to change (use --title, --priority, or --due)")
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

	if c.title != "" {
		task.Title = c.title
	}
	if c.priority != "" {
		p, err := parsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		task.Priority = p
	}
	switch {
	case strings.EqualFold(c.due, "none"):
		task.Due = nil
	case c.due != "":
		d, err := api.ParseDate(c.due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		task.Due = &d
	}

	if _, err := client.UpdateTaskAndRefresh(ctx, list.ID, task.ID, task); err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
