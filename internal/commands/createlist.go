package commands

import (
	"context"
	"errors"
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
	Register(&CreateListCmd{})
	Register(&AddListCmd{})
}

// CreateListCmd implements the createlist command.
type CreateListCmd struct {
	description string
}

func (c *CreateListCmd) Name() string      { return "createlist" }
func (c *CreateListCmd) Aliases() []string { return nil }
func (c *CreateListCmd) Synopsis() string  { return "Create a new list" }
func (c *CreateListCmd) Usage() string {
	return "taskpad createlist [--desc <description>] <list-name>"
}
func (c *CreateListCmd) NeedsClient() bool { return true }

func (c *CreateListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
}

func (c *CreateListCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	return runCreateList(ctx, cfg, client, c.description, args, out, errOut)
}

// AddListCmd is an alias for CreateListCmd.
type AddListCmd struct {
	description string
}

func (c *AddListCmd) Name() string      { return "addlist" }
func (c *AddListCmd) Aliases() []string { return nil }
func (c *AddListCmd) Synopsis() string  { return "Create a new list (alias for createlist)" }
func (c *AddListCmd) Usage() string {
	return "taskpad addlist [--desc <description>] <list-name>"
}
func (c *AddListCmd) NeedsClient() bool { return true }

func (c *AddListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.description, "desc", "", "")
}

func (c *AddListCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	return runCreateList(ctx, cfg, client, c.description, args, out, errOut)
}

// runCreateList is the shared implementation for createlist and addlist.
func runCreateList(ctx context.Context, cfg *config.Config, client *remote.Client, description string, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: list name required")
		return exitcode.UserError
	}

	// Reject duplicates by title; ambiguity already means duplicates
	_, err := resolveList(ctx, client, name)
	if err == nil || errors.Is(err, ErrListAmbiguous) {
		fmt.Fprintf(errOut, "error: list already exists: %s\n", name)
		return exitcode.UserError
	}
	if !errors.Is(err, ErrListNotFound) {
		return reportBackendError(errOut, err)
	}

	draft := api.TaskList{Title: name, Description: description}
	if _, err := client.CreateTaskList(ctx, draft); err != nil {
		return reportBackendError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
