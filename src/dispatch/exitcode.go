package dispatch

import (
	"github.com/juju/errors"

	"velero-backup/src/provision"
	"velero-backup/src/velero"
)

// Process exit codes.
const (
	ExitOK               = 0
	ExitProvisioning     = 1
	ExitMissingPrincipal = 2
	ExitVersionMismatch  = 3
)

// ExitCode maps a dispatch error to the process exit code. A failed velero
// command is reported in the log only and exits 0.
func ExitCode(err error) int {
	var (
		mismatch *velero.VersionMismatchError
		cmdErr   *velero.CommandError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &mismatch):
		return ExitVersionMismatch
	case errors.Is(err, provision.ErrMissingPrincipal):
		return ExitMissingPrincipal
	case errors.As(err, &cmdErr):
		return ExitOK
	default:
		return ExitProvisioning
	}
}
