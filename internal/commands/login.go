package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"

	"taskpad/internal/config"
	"taskpad/internal/exitcode"
	"taskpad/internal/remote"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command: it stores the server address
// and bearer token in the config file. There is no handshake; the
// credential is forwarded as-is on later requests.
type LoginCmd struct {
	baseURL string
	token   string
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Store server address and credentials" }
func (c *LoginCmd) Usage() string     { return "taskpad login [--url <base-url>] [--token <token>]" }
func (c *LoginCmd) NeedsClient() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.baseURL, "url", "", "")
	fs.StringVar(&c.token, "token", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, client *remote.Client, args []string, out, errOut io.Writer) int {
	if c.baseURL == "" && c.token == "" {
		fmt.Fprintln(errOut, "error: nothing to store (use --url and/or --token)")
		return exitcode.UserError
	}

	if c.baseURL != "" {
		u, err := url.Parse(c.baseURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			fmt.Fprintf(errOut, "error: invalid base URL: %s\n", c.baseURL)
			return exitcode.UserError
		}
		cfg.BaseURL = c.baseURL
	}
	if c.token != "" {
		cfg.Token = c.token
	}

	if err := cfg.Save(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
