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
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "cues help" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  cues                                         List tasks in the active project
  cues tasks [common flags] [-a|--all]         List tasks (all projects with --all)
  cues add [common flags] [-p <priority>] [-d <description>] [-u <due>] <title...>
  cues done [common flags] <task-id>
  cues edit [common flags] [-t <title>] [-p <priority>] [-d <description>]
            [-u <due>] [-D true|false] <task-id>
  cues delete [common flags] <task-id>
  cues projects [common flags]
  cues use [common flags] <project-id>
  cues cwp [common flags]                      Print the active project
  cues new [common flags] project <name...>
  cues renameproject [common flags] <project-id> <name...>
  cues rmproject [common flags] [-f|--force] <project-id>
  cues login [common flags]
  cues logout [common flags]
  cues whoami [common flags]
  cues help
  cues version

Due dates:
  <day> <HH:MM>    day is today, tomorrow or a weekday name (next occurrence)
                   e.g. "tomorrow 09:30", "friday 16:00"

Priorities:
  high, medium, low

Common flags:
  --config <dir>   Override config directory
  -q, --quiet      Suppress informational output
  --debug          Print debug logs to stderr
  -h, --help       Print command usage
`
