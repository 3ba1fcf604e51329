package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/service"
)

func init() {
	Register(&NewCmd{})
}

// NewCmd implements "new project <name>".
type NewCmd struct{}

func (c *NewCmd) Name() string      { return "new" }
func (c *NewCmd) Aliases() []string { return nil }
func (c *NewCmd) Synopsis() string  { return "Create a project" }
func (c *NewCmd) Usage() string     { return "cues new [common flags] project <name...>" }
func (c *NewCmd) NeedsAuth() bool   { return true }

func (c *NewCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *NewCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: what to create required (want: project)")
		return exitcode.UserError
	}
	if args[0] != "project" {
		fmt.Fprintf(errOut, "error: cannot create %s (want: project)\n", args[0])
		return exitcode.UserError
	}

	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: project name required")
		return exitcode.UserError
	}

	project, err := svc.CreateProject(ctx, name)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "created project [%d] %s\n", project.ID, project.Name)
	}
	return exitcode.Success
}
