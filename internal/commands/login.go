package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"cues/internal/backend/cuesapi"
	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	in io.Reader
}

// SetInput sets the reader credentials are read from (for testing).
// Without it, stdin is used and the password is not echoed on a terminal.
func (c *LoginCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Log in with a username or email" }
func (c *LoginCmd) Usage() string     { return "cues login [common flags]" }
func (c *LoginCmd) NeedsAuth() bool   { return false }

func (c *LoginCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	in, terminal := c.in, false
	if in == nil {
		in = os.Stdin
		fd := os.Stdin.Fd()
		terminal = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}

	fmt.Fprint(errOut, "Username or email: ")
	identifier, err := readLine(in)
	if err != nil {
		fmt.Fprintf(errOut, "\nerror: failed to read username: %v\n", err)
		return exitcode.UserError
	}
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		fmt.Fprintln(errOut, "error: username or email required")
		return exitcode.UserError
	}

	fmt.Fprint(errOut, "Password: ")
	var password string
	if terminal {
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			fmt.Fprintf(errOut, "error: failed to read password: %v\n", err)
			return exitcode.UserError
		}
		password = string(raw)
	} else {
		password, err = readLine(in)
		if err != nil {
			fmt.Fprintf(errOut, "\nerror: failed to read password: %v\n", err)
			return exitcode.UserError
		}
	}
	if password == "" {
		fmt.Fprintln(errOut, "error: password required")
		return exitcode.UserError
	}

	token, err := cuesapi.Login(ctx, cfg.APIURL(), identifier, password, cfg.Now())
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) || errors.Is(err, service.ErrRejected) {
			fmt.Fprintf(errOut, "error: login failed: %v\n", err)
			return exitcode.AuthError
		}
		return reportError(errOut, err)
	}

	if err := cfg.SaveToken(token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	// The active project belonged to whoever was logged in before.
	err = cfg.UpdateSettings(func(s *config.Settings) {
		s.CurrentProject, s.CurrentProjectID = "", 0
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to update config: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// readLine reads one line without its line ending. A final line without a
// newline is accepted; an empty input is io.EOF. It reads a byte at a time so
// nothing past the newline is consumed before the terminal takes over stdin.
func readLine(r io.Reader) (string, error) {
	var line []byte
	b := make([]byte, 1)
	for {
		n, err := r.Read(b)
		if n == 1 {
			if b[0] == '\n' {
				break
			}
			line = append(line, b[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && len(line) > 0 {
				break
			}
			return "", err
		}
	}
	return strings.TrimRight(string(line), "\r"), nil
}
