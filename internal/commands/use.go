package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/service"
)

func init() {
	Register(&UseCmd{})
}

// UseCmd implements the use command, which selects the active project.
type UseCmd struct{}

func (c *UseCmd) Name() string      { return "use" }
func (c *UseCmd) Aliases() []string { return nil }
func (c *UseCmd) Synopsis() string  { return "Set the active project" }
func (c *UseCmd) Usage() string     { return "cues use [common flags] <project-id>" }
func (c *UseCmd) NeedsAuth() bool   { return true }

func (c *UseCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UseCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseID("project", args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	project, err := svc.GetProject(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	err = cfg.UpdateSettings(func(s *config.Settings) {
		s.CurrentProject = project.Name
		s.CurrentProjectID = project.ID
	})
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to save config: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "now using [%d] %s\n", project.ID, project.Name)
	}
	return exitcode.Success
}
