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
	Register(&AddCmd{})
	Register(&CreateCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	listName string
	priority string
	due      string
}

// SetListName sets the list name (for testing).
func (c *AddCmd) SetListName(name string) {
	c.listName = name
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string {
	return "taskpad add [--list <list-name>] [--priority <low|medium|high>] [--due <YYYY-MM-DD>] <title...>"
}
func (c *AddCmd) NeedsClient() bool { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, client, c.listName, c.priority, c.due, args, out, errOut)
}

// CreateCmd is an alias for AddCmd.
type CreateCmd struct {
	listName string
	priority string
	due      string
}

func (c *CreateCmd) Name() string      { return "create" }
func (c *CreateCmd) Aliases() []string { return nil }
func (c *CreateCmd) Synopsis() string  { return "Create a task (alias for add)" }
func (c *CreateCmd) Usage() string {
	return "taskpad create [--list <list-name>] [--priority <low|medium|high>] [--due <YYYY-MM-DD>] <title...>"
}
func (c *CreateCmd) NeedsClient() bool { return true }

func (c *CreateCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.priority, "p", "", "")
	fs.StringVar(&c.due, "due", "", "")
}

func (c *CreateCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	return runAdd(ctx, cfg, client, c.listName, c.priority, c.due, args, out, errOut)
}

// runAdd is the shared implementation for add and create commands.
func runAdd(ctx context.Context, cfg *config.Config, client *remote.Client, listName, priority, due string, args []string, out, errOut io.Writer) int {
	// Check for title
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	draft := api.Task{
		Title:    title,
		Priority: api.PriorityMedium,
		Status:   api.StatusOpen,
	}

	if priority != "" {
		p, err := parsePriority(priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Priority = p
	}

	if due != "" {
		d, err := api.ParseDate(due)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		draft.Due = &d
	}

	list, err := pickList(ctx, client, listName)
	if err != nil {
		return reportListError(errOut, listName, err)
	}

	if _, err := client.CreateTaskAndRefresh(ctx, list.ID, draft); err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// parsePriority parses a --priority flag value.
func parsePriority(s string) (api.Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return api.PriorityLow, nil
	case "medium":
		return api.PriorityMedium, nil
	case "high":
		return api.PriorityHigh, nil
	}
	return "", fmt.Errorf("invalid priority: %s", s)
}
