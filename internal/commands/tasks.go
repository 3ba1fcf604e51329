package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/output"
	"cues/internal/service"
)

func init() {
	Register(&TasksCmd{})
}

// TasksCmd implements the tasks command, the default when no command is given.
type TasksCmd struct {
	all bool
}

// SetAll sets the all flag (for testing).
func (c *TasksCmd) SetAll(all bool) {
	c.all = all
}

func (c *TasksCmd) Name() string      { return "tasks" }
func (c *TasksCmd) Aliases() []string { return nil }
func (c *TasksCmd) Synopsis() string  { return "List tasks in the active project" }
func (c *TasksCmd) Usage() string     { return "cues tasks [common flags] [--all]" }
func (c *TasksCmd) NeedsAuth() bool   { return true }

func (c *TasksCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&c.all, "all", "a", false, "list tasks of every project")
}

func (c *TasksCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	if c.all {
		return c.runAll(ctx, cfg, svc, out, errOut)
	}

	settings, code := activeProject(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	loc := displayLocation(cfg)
	printed := 0
	for _, t := range tasks {
		if t.ProjectID != settings.CurrentProjectID {
			continue
		}
		output.FormatTask(out, t, loc, false)
		printed++
	}

	if printed == 0 && !cfg.Quiet {
		fmt.Fprintf(out, "no tasks in %s\n", settings.CurrentProject)
	}
	return exitcode.Success
}

// runAll fetches projects and tasks concurrently and prints the tasks
// grouped under their project, in project order. Projects without tasks are skipped.
func (c *TasksCmd) runAll(ctx context.Context, cfg *config.Config, svc service.Service, out, errOut io.Writer) int {
	var (
		projects []service.Project
		tasks    []service.Task
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		projects, err = svc.ListProjects(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tasks, err = svc.ListTasks(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return reportError(errOut, err)
	}

	byProject := make(map[int][]service.Task)
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	settings, _ := cfg.LoadSettings()
	loc := displayLocation(cfg)
	for _, p := range projects {
		group := byProject[p.ID]
		if len(group) == 0 {
			continue
		}
		output.FormatProjectHeader(out, p, p.ID == settings.CurrentProjectID)
		for _, t := range group {
			output.FormatTask(out, t, loc, false)
		}
		delete(byProject, p.ID)
	}

	// Tasks whose project was not listed still get shown, with their project id.
	for _, t := range tasks {
		if _, ok := byProject[t.ProjectID]; ok {
			output.FormatTask(out, t, loc, true)
		}
	}

	if len(tasks) == 0 && !cfg.Quiet {
		fmt.Fprintln(out, "no tasks")
	}
	return exitcode.Success
}
