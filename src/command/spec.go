package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/juju/errors"
	shellquote "github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"
)

// Binary is the name of the velero executable the specs are meant for.
const Binary = "velero"

// Spec is the argument vector for one velero invocation, without the binary
// name. Every flag value is a separate element so no input can change where
// one argument ends and the next begins.
type Spec struct {
	op   Operation
	args []string
}

// Operation returns the operation the spec was built for.
func (s Spec) Operation() Operation { return s.op }

// Args returns a copy of the argument vector.
func (s Spec) Args() []string {
	out := make([]string, len(s.args))
	copy(out, s.args)
	return out
}

// String renders the full command line, quoted for a POSIX shell. It is only
// used for display; specs are never executed through a shell.
func (s Spec) String() string {
	return shellquote.Join(append([]string{Binary}, s.args...)...)
}

// Build maps params to the matching velero command. The log receives the
// assembled command at debug level.
func Build(p Params, log logrus.FieldLogger) (Spec, error) {
	var spec Spec
	switch p := p.(type) {
	case InstallParams:
		spec = Install(p)
	case BackupParams:
		spec = Backup(p)
	case ScheduleParams:
		spec = Schedule(p)
	case RestoreParams:
		spec = Restore(p)
	case DescribeParams:
		spec = Describe(p)
	default:
		return Spec{}, errors.NotSupportedf("building a velero command for %T", p)
	}
	if log != nil {
		log.WithField("operation", spec.op).Debugf("Constructed %s command: %s", spec.op, spec)
	}
	return spec, nil
}

// Install builds `velero install` for the AWS provider.
func Install(p InstallParams) Spec {
	return Spec{op: OpInstall, args: []string{
		"install",
		"--provider", "aws",
		"--plugins", PluginImage,
		"--bucket", p.Bucket,
		"--backup-location-config", "region=" + p.BackupRegion,
		"--snapshot-location-config", "region=" + p.SnapshotRegion,
		"--secret-file", "./" + p.SecretFile,
	}}
}

// Backup builds `velero backup create` and waits for completion.
func Backup(p BackupParams) Spec {
	return Spec{op: OpBackup, args: []string{
		"backup", "create", p.BackupName,
		"--exclude-namespaces", strings.Join(p.ExcludeNamespaces, ","),
		"--wait",
	}}
}

// Schedule builds `velero create schedule` running every CronHours hours and
// keeping each backup for TTLHours hours.
func Schedule(p ScheduleParams) Spec {
	return Spec{op: OpSchedule, args: []string{
		"create", "schedule", p.ScheduleName,
		fmt.Sprintf("--schedule=@every %dh", p.CronHours),
		"--include-namespaces", strings.Join(p.IncludeNamespaces, ","),
		"--ttl", strconv.Itoa(p.TTLHours) + "h",
	}}
}

// Restore builds `velero restore create` from an existing backup.
func Restore(p RestoreParams) Spec {
	return Spec{op: OpRestore, args: []string{
		"restore", "create",
		"--from-backup", p.BackupName,
		"--wait",
	}}
}

// Describe builds `velero <state> describe <name> --details`.
func Describe(p DescribeParams) Spec {
	return Spec{op: OpDescribe, args: []string{
		string(p.State), "describe", p.BackupName, "--details",
	}}
}
