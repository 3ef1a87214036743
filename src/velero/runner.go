package velero

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"velero-backup/src/command"
)

// CommandError reports a velero invocation that could not start or exited
// non-zero.
type CommandError struct {
	Operation command.Operation
	Command   string
	Err       error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("velero %s failed: %s: %v", e.Operation, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns velero's exit status, or -1 when it never ran.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Runner executes command specs against a velero binary. Arguments are passed
// directly to the process; no shell is involved.
type Runner struct {
	Path   string
	Stdout io.Writer
	Stderr io.Writer
	log    logrus.FieldLogger
}

// NewRunner returns a Runner for the velero binary at path.
func NewRunner(path string, stdout, stderr io.Writer, log logrus.FieldLogger) *Runner {
	return &Runner{Path: path, Stdout: stdout, Stderr: stderr, log: log}
}

// Run starts velero with the spec's arguments and blocks until it exits.
// Commands built with --wait therefore block until velero finishes the
// backup or restore.
func (r *Runner) Run(ctx context.Context, spec command.Spec) error {
	r.log.Infof("Running %s command: %s", spec.Operation(), spec)
	cmd := exec.CommandContext(ctx, r.Path, spec.Args()...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return &CommandError{Operation: spec.Operation(), Command: spec.String(), Err: err}
	}
	return nil
}
