package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/output"
	"cues/internal/service"
)

func init() {
	Register(&ProjectsCmd{})
}

// ProjectsCmd implements the projects command.
type ProjectsCmd struct{}

func (c *ProjectsCmd) Name() string      { return "projects" }
func (c *ProjectsCmd) Aliases() []string { return nil }
func (c *ProjectsCmd) Synopsis() string  { return "Print all projects" }
func (c *ProjectsCmd) Usage() string     { return "cues projects [common flags]" }
func (c *ProjectsCmd) NeedsAuth() bool   { return true }

func (c *ProjectsCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *ProjectsCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	projects, err := svc.ListProjects(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(projects) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no projects (run: cues new project <name>)")
		}
		return exitcode.Success
	}

	// A broken config.yaml only loses the active marker.
	settings, _ := cfg.LoadSettings()
	for _, p := range projects {
		output.FormatProject(out, p, p.ID == settings.CurrentProjectID)
	}
	return exitcode.Success
}
