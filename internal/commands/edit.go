package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"cues/internal/config"
	"cues/internal/exitcode"
	"cues/internal/output"
	"cues/internal/service"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the given flags are sent.
type EditCmd struct {
	title       optString
	description optString
	due         optString
	done        optString
	priority    service.Priority
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(s string) { c.title.setValue(s) }

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(s string) { c.description.setValue(s) }

// SetDue sets the due date phrase (for testing).
func (c *EditCmd) SetDue(s string) { c.due.setValue(s) }

// SetDone sets the raw --done value (for testing).
func (c *EditCmd) SetDone(s string) { c.done.setValue(s) }

// SetPriority sets the priority (for testing).
func (c *EditCmd) SetPriority(p service.Priority) { c.priority = p }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Update fields of a task" }
func (c *EditCmd) Usage() string {
	return "cues edit [common flags] [-t <title>] [-p <priority>] [-d <description>] [-u <due>] [-D true|false] <task-id>"
}
func (c *EditCmd) NeedsAuth() bool { return true }

func (c *EditCmd) RegisterFlags(fs *pflag.FlagSet) {
	*c = EditCmd{}
	fs.VarP(&c.title, "title", "t", "new title")
	fs.VarP(priorityValue{&c.priority}, "priority", "p", "high, medium or low")
	fs.VarP(&c.description, "description", "d", "new description (empty clears it)")
	fs.VarP(&c.due, "due", "u", `due date, e.g. "tomorrow 09:30" or "friday 16:00"`)
	fs.VarP(&c.done, "done", "D", "true or false")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, err := ParseID("task", args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	var patch service.TaskPatch
	if c.title.set {
		title := strings.TrimSpace(c.title.val)
		if title == "" {
			fmt.Fprintln(errOut, "error: title cannot be empty")
			return exitcode.UserError
		}
		patch.Title = &title
	}
	if c.description.set {
		desc := c.description.val
		patch.Description = &desc
	}
	if c.priority != "" {
		p := c.priority
		patch.Priority = &p
	}
	if c.done.set {
		done, err := strconv.ParseBool(c.done.val)
		if err != nil {
			fmt.Fprintf(errOut, "error: invalid value for --done: %s (want true or false)\n", c.done.val)
			return exitcode.UserError
		}
		patch.Done = &done
	}
	if c.due.set {
		if due, ok := resolveDue(cfg, c.due.val, errOut); ok {
			patch.Due = &due
		}
	}

	if patch.IsEmpty() {
		fmt.Fprintln(errOut, "error: nothing to update")
		return exitcode.UserError
	}

	task, err := svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		output.FormatTask(out, task, displayLocation(cfg), false)
	}
	return exitcode.Success
}
