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
	Register(&CwpCmd{})
}

// CwpCmd prints the current working project from config.yaml.
type CwpCmd struct{}

func (c *CwpCmd) Name() string      { return "cwp" }
func (c *CwpCmd) Aliases() []string { return []string{"current", "active"} }
func (c *CwpCmd) Synopsis() string  { return "Print the active project" }
func (c *CwpCmd) Usage() string     { return "cues cwp [common flags]" }
func (c *CwpCmd) NeedsAuth() bool   { return false }

func (c *CwpCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *CwpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	s, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	if !s.HasActiveProject() {
		fmt.Fprintln(out, errNoActiveProject)
		return exitcode.Success
	}
	fmt.Fprintf(out, "[%d] %s\n", s.CurrentProjectID, s.CurrentProject)
	return exitcode.Success
}
