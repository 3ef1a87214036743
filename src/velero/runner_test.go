package velero_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"velero-backup/src/command"
	"velero-backup/src/velero"
)

// writeScript drops an executable shell script standing in for velero.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "velero")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755))
	return path
}

func TestRunner_PassesArgvVerbatim(t *testing.T) {
	path := writeScript(t, `for a in "$@"; do printf '%s\n' "$a"; done`)
	var out bytes.Buffer
	log, _ := test.NewNullLogger()
	r := velero.NewRunner(path, &out, &out, log)

	spec := command.Schedule(command.ScheduleParams{
		ScheduleName:      "daily; echo pwned",
		IncludeNamespaces: []string{"default"},
		CronHours:         6,
		TTLHours:          48,
	})
	require.NoError(t, r.Run(context.Background(), spec))
	require.Equal(t, "create\nschedule\ndaily; echo pwned\n--schedule=@every 6h\n--include-namespaces\ndefault\n--ttl\n48h\n", out.String())
}

func TestRunner_NonZeroExit(t *testing.T) {
	path := writeScript(t, "echo boom >&2\nexit 4\n")
	var out, errOut bytes.Buffer
	log, _ := test.NewNullLogger()
	r := velero.NewRunner(path, &out, &errOut, log)

	err := r.Run(context.Background(), command.Restore(command.RestoreParams{BackupName: "nightly"}))
	var cmdErr *velero.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, 4, cmdErr.ExitCode())
	require.Equal(t, command.OpRestore, cmdErr.Operation)
	require.Contains(t, errOut.String(), "boom")
}

func TestRunner_MissingBinary(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := velero.NewRunner(filepath.Join(t.TempDir(), "absent"), nil, nil, log)
	err := r.Run(context.Background(), command.Restore(command.RestoreParams{BackupName: "nightly"}))
	var cmdErr *velero.CommandError
	require.ErrorAs(t, err, &cmdErr)
	require.Equal(t, -1, cmdErr.ExitCode())
}

func TestGate_WithScriptBinary(t *testing.T) {
	path := writeScript(t, `if [ "$1" = "version" ]; then printf 'Client:\n\tVersion: v1.4.2\n\tGit commit: abc\n'; fi`)
	t.Setenv(velero.BinaryEnv, path)
	log, _ := test.NewNullLogger()

	info, err := velero.NewGate(log).Check(context.Background())
	require.NoError(t, err)
	require.Equal(t, path, info.Path)
	require.Equal(t, "v1.4.2", info.Found)
}
