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
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "cues delete [common flags] <task-id>" }
func (c *DeleteCmd) NeedsAuth() bool   { return true }

func (c *DeleteCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseID("task", args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	task, err := svc.DeleteTask(ctx, id)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "deleted [%d] %s\n", task.ID, task.Title)
	}
	return exitcode.Success
}
