package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/remote"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "taskpad help" }
func (c *HelpCmd) NeedsClient() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskpad                                            List all tasks
  taskpad list [common flags] [<list-name>]          List tasks in a specific list
  taskpad add [common flags] [--list <list-name>] [--priority <p>] [--due <date>] <title...>
  taskpad create [common flags] [--list <list-name>] [--priority <p>] [--due <date>] <title...>
  taskpad done [common flags] [--list <list-name>] <n>
  taskpad edit [common flags] [--list <list-name>] [--title <t>] [--priority <p>] [--due <date>|none] <n>
  taskpad rm [common flags] [--list <list-name>] <n>
  taskpad lists [common flags]
  taskpad createlist [common flags] [--desc <description>] <list-name>
  taskpad addlist [common flags] [--desc <description>] <list-name>
  taskpad renamelist [common flags] [--desc <description>] <list-name> <new-title...>
  taskpad rmlist [common flags] [--force] <list-name>
  taskpad ui [common flags]
  taskpad login [--url <base-url>] [--token <token>]
  taskpad logout [common flags]
  taskpad help
  taskpad version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
