package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
)

// NewRootCmd returns the root cobra command for the velero-backup CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "velero-backup",
		Short: "Install velero and run backups, schedules and restores with a pinned velero release",
		Long: `velero-backup wraps the velero CLI.

Every command except required-version and version first checks that the
installed velero is exactly ` + requiredVersionForHelp() + `. install can also create the
S3 backup bucket and attach the velero IAM policy to it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newRequiredVersionCmd(stdout, stderr))
	cmd.AddCommand(newDescribeCmd(stdout, stderr))
	cmd.AddCommand(newBackupCmd(stdout, stderr))
	cmd.AddCommand(newInstallCmd(stdout, stderr))
	cmd.AddCommand(newRestoreCmd(stdout, stderr))
	cmd.AddCommand(newScheduleCmd(stdout, stderr))

	return cmd
}

// Execute runs the CLI with the process stdio and returns the exit code.
func Execute() int {
	return run(NewRootCmd(os.Stdout, os.Stderr), os.Stderr)
}

func run(root *cobra.Command, stderr io.Writer) int {
	_, err := root.ExecuteC()
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		// already logged by the dispatcher
		return exitErr.Code
	}
	fmt.Fprintln(stderr, "Error:", err)
	return 1
}

// ExitError carries a non-zero exit code decided by the dispatcher.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }
