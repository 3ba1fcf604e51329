// Package exitcode defines exit codes for the CLI.
package exitcode

// Exit codes returned by every command.
const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, no active project, not found,
	// or a request the service rejected).
	UserError = 1

	// AuthError indicates an auth/config error (not logged in, expired session,
	// unreadable config.yaml or token.json).
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3
)
