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
	Register(&RmProjectCmd{})
}

// RmProjectCmd implements the rmproject command.
type RmProjectCmd struct {
	force bool
}

// SetForce sets the force flag (for testing).
func (c *RmProjectCmd) SetForce(force bool) {
	c.force = force
}

func (c *RmProjectCmd) Name() string      { return "rmproject" }
func (c *RmProjectCmd) Aliases() []string { return nil }
func (c *RmProjectCmd) Synopsis() string  { return "Delete a project" }
func (c *RmProjectCmd) Usage() string     { return "cues rmproject [common flags] [--force] <project-id>" }
func (c *RmProjectCmd) NeedsAuth() bool   { return true }

func (c *RmProjectCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.force, "force", "f", false, "delete even if the project has open tasks")
}

func (c *RmProjectCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseID("project", args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	// Check the project has no open tasks (unless --force)
	if !c.force {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			return reportError(errOut, err)
		}
		open := 0
		for _, t := range tasks {
			if t.ProjectID == id && !t.Done {
				open++
			}
		}
		if open > 0 {
			fmt.Fprintf(errOut, "error: project has %d open task(s) (use --force)\n", open)
			return exitcode.UserError
		}
	}

	project, err := svc.DeleteProject(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	err = cfg.UpdateSettings(func(s *config.Settings) {
		if s.CurrentProjectID == project.ID {
			s.CurrentProject, s.CurrentProjectID = "", 0
		}
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
