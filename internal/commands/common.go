package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"go.uber.org/zap"

	"cues/internal/config"
	"cues/internal/duedate"
	"cues/internal/exitcode"
	"cues/internal/service"
)

// errNoActiveProject is reported by commands that default to the active project.
var errNoActiveProject = errors.New("no active project (run: cues use <project-id>)")

// reportError prints err to errOut and returns the exit code for its kind.
// The request URL of a transport error is not shown.
func reportError(errOut io.Writer, err error) int {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	switch {
	case errors.Is(err, service.ErrNotLoggedIn), errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: auth error: %v\n", err)
		return exitcode.AuthError
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrRejected):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.BackendError
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return exitcode.BackendError
}

// activeProject loads the settings and checks that a project is selected.
func activeProject(cfg *config.Config, errOut io.Writer) (config.Settings, int) {
	s, err := cfg.LoadSettings()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return s, exitcode.AuthError
	}
	if !s.HasActiveProject() {
		fmt.Fprintf(errOut, "error: %v\n", errNoActiveProject)
		return s, exitcode.UserError
	}
	return s, exitcode.Success
}

// resolveDue resolves a due date phrase against the configured clock.
// An unparseable phrase is reported as a warning; ok is false and the caller
// leaves the due date unset.
func resolveDue(cfg *config.Config, phrase string, errOut io.Writer) (due time.Time, ok bool) {
	due, err := duedate.Resolve(phrase, cfg.Now())
	if err != nil {
		fmt.Fprintf(errOut, "warning: %v\n", err)
		return time.Time{}, false
	}
	cfg.Log().Debug("resolved due date", zap.String("phrase", phrase), zap.Time("due", due))
	return due, true
}

// displayLocation is the zone dates are shown in.
func displayLocation(cfg *config.Config) *time.Location {
	return cfg.Now().Location()
}

// priorityValue is a pflag.Value accepting high, medium or low.
type priorityValue struct {
	p *service.Priority
}

func (v priorityValue) String() string {
	if v.p == nil {
		return ""
	}
	return string(*v.p)
}

func (v priorityValue) Set(s string) error {
	p, err := service.ParsePriority(s)
	if err != nil {
		return err
	}
	*v.p = p
	return nil
}

func (v priorityValue) Type() string { return "priority" }

// optString is a string flag that records whether it was given,
// so an explicit empty value can be told apart from no value.
type optString struct {
	val string
	set bool
}

func (o *optString) String() string { return o.val }

func (o *optString) Set(s string) error {
	o.val, o.set = s, true
	return nil
}

func (o *optString) Type() string { return "string" }

func (o *optString) setValue(s string) { o.val, o.set = s, true }
