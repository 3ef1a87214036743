package command

import (
	"fmt"
	"strings"
)

// Operation names the single action requested for one invocation.
type Operation string

const (
	OpInstall         Operation = "install"
	OpBackup          Operation = "backup"
	OpSchedule        Operation = "schedule"
	OpRestore         Operation = "restore"
	OpDescribe        Operation = "describe"
	OpRequiredVersion Operation = "required-version"
)

func (o Operation) String() string { return string(o) }

// NeedsVersionGate reports whether the operation may only run against the
// pinned velero release. Only the version report itself is exempt.
func (o Operation) NeedsVersionGate() bool {
	return o != OpRequiredVersion
}

// DescribeState selects which velero resource kind `describe` targets.
type DescribeState string

const (
	StateBackup  DescribeState = "backup"
	StateRestore DescribeState = "restore"
)

// ParseDescribeState validates a --state value.
func ParseDescribeState(s string) (DescribeState, error) {
	switch st := DescribeState(strings.ToLower(strings.TrimSpace(s))); st {
	case StateBackup, StateRestore:
		return st, nil
	default:
		return "", fmt.Errorf("invalid state %q; expected backup or restore", s)
	}
}
