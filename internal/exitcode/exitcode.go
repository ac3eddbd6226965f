// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, not found, ambiguous).
	UserError = 1

	// AuthError indicates a credential/config error.
	AuthError = 2

	// BackendError indicates a server or network error.
	BackendError = 3
)
