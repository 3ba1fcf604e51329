package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/output"
	"cues/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	priority    service.Priority
	description string
	due         string
}

// SetPriority sets the priority (for testing).
func (c *AddCmd) SetPriority(p service.Priority) {
	c.priority = p
}

// SetDescription sets the description (for testing).
func (c *AddCmd) SetDescription(desc string) {
	c.description = desc
}

// SetDue sets the due date phrase (for testing).
func (c *AddCmd) SetDue(phrase string) {
	c.due = phrase
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return nil }
func (c *AddCmd) Synopsis() string  { return "Create a task in the active project" }
func (c *AddCmd) Usage() string {
	return "cues add [common flags] [-p <priority>] [-d <description>] [-u <due>] <title...>"
}
func (c *AddCmd) NeedsAuth() bool { return true }

func (c *AddCmd) RegisterFlags(fs *pflag.FlagSet) {
	c.priority = ""
	fs.VarP(priorityValue{&c.priority}, "priority", "p", "high, medium or low")
	fs.StringVarP(&c.description, "description", "d", "", "task description")
	fs.StringVarP(&c.due, "due", "u", "", `due date, e.g. "tomorrow 09:30" or "friday 16:00"`)
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	settings, code := activeProject(cfg, errOut)
	if code != exitcode.Success {
		return code
	}

	task := service.NewTask{
		Title:       title,
		ProjectID:   settings.CurrentProjectID,
		Description: c.description,
		Priority:    c.priority,
	}
	if c.due != "" {
		if due, ok := resolveDue(cfg, c.due, errOut); ok {
			task.Due = due
		}
	}

	created, err := svc.CreateTask(ctx, task)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, created, displayLocation(cfg), false)
	}
	return exitcode.Success
}
