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
	Register(&RenameProjectCmd{})
}

// RenameProjectCmd implements the renameproject command.
type RenameProjectCmd struct{}

func (c *RenameProjectCmd) Name() string      { return "renameproject" }
func (c *RenameProjectCmd) Aliases() []string { return nil }
func (c *RenameProjectCmd) Synopsis() string  { return "Rename a project" }
func (c *RenameProjectCmd) Usage() string {
	return "cues renameproject [common flags] <project-id> <name...>"
}
func (c *RenameProjectCmd) NeedsAuth() bool { return true }

func (c *RenameProjectCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *RenameProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: project id required")
		return exitcode.UserError
	}
	id, err := ParseID("project", args[:1])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	name := strings.TrimSpace(strings.Join(args[1:], " "))
	if name == "" {
		fmt.Fprintln(errOut, "error: project name required")
		return exitcode.UserError
	}

	project, err := svc.RenameProject(ctx, id, name)
	if err != nil {
		return reportError(errOut, err)
	}

	// Keep the cached name of the active project in step.
	s, err := cfg.LoadSettings()
	if err == nil && s.CurrentProjectID == project.ID {
		s.CurrentProject = project.Name
		err = cfg.SaveSettings(s)
	}
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to update config: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
