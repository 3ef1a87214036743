package command_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"velero-backup/src/command"
)

func TestBuild_Tokens(t *testing.T) {
	cases := []struct {
		name   string
		params command.Params
		want   []string
	}{
		{
			name: "install",
			params: command.InstallParams{
				Bucket:         "backups",
				BackupRegion:   "us-west-2",
				SnapshotRegion: "us-east-1",
				SecretFile:     "credentials-velero",
			},
			want: []string{
				"install",
				"--provider", "aws",
				"--plugins", "velero/velero-plugin-for-aws:v1.1.0",
				"--bucket", "backups",
				"--backup-location-config", "region=us-west-2",
				"--snapshot-location-config", "region=us-east-1",
				"--secret-file", "./credentials-velero",
			},
		},
		{
			name:   "backup",
			params: command.BackupParams{BackupName: "nightly", ExcludeNamespaces: []string{"a", "b"}},
			want:   []string{"backup", "create", "nightly", "--exclude-namespaces", "a,b", "--wait"},
		},
		{
			name: "schedule",
			params: command.ScheduleParams{
				ScheduleName:      "daily",
				IncludeNamespaces: []string{"default", "apps"},
				CronHours:         24,
				TTLHours:          720,
			},
			want: []string{"create", "schedule", "daily", "--schedule=@every 24h", "--include-namespaces", "default,apps", "--ttl", "720h"},
		},
		{
			name:   "restore",
			params: command.RestoreParams{BackupName: "nightly"},
			want:   []string{"restore", "create", "--from-backup", "nightly", "--wait"},
		},
		{
			name:   "describe restore",
			params: command.DescribeParams{BackupName: "nightly", State: command.StateRestore},
			want:   []string{"restore", "describe", "nightly", "--details"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			spec, err := command.Build(tc.params, nil)
			require.NoError(t, err)
			require.Equal(t, tc.want, spec.Args())
			require.Equal(t, tc.params.Operation(), spec.Operation())

			again, err := command.Build(tc.params, nil)
			require.NoError(t, err)
			require.Equal(t, spec.Args(), again.Args())
		})
	}
}

func TestBackup_DefaultExcludesKeepOrder(t *testing.T) {
	spec := command.Backup(command.BackupParams{BackupName: "b", ExcludeNamespaces: command.DefaultExcludeNamespaces})
	args := spec.Args()
	require.Equal(t, "default,kube-system,kube-public,kube-node-lease,velero", args[len(args)-2])
}

func TestSpec_ArgsIsACopy(t *testing.T) {
	spec := command.Restore(command.RestoreParams{BackupName: "nightly"})
	args := spec.Args()
	args[0] = "mutated"
	require.Equal(t, "restore", spec.Args()[0])
}

func TestSpec_ShellMetacharactersStayInOneArgument(t *testing.T) {
	name := "x; rm -rf / #"
	spec := command.Restore(command.RestoreParams{BackupName: name})
	require.Contains(t, spec.Args(), name)
	require.Equal(t, `velero restore create --from-backup 'x; rm -rf / #' --wait`, spec.String())
}

func TestBuild_LogsAtDebug(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	_, err := command.Build(command.RestoreParams{BackupName: "nightly"}, logger)
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	require.Equal(t, logrus.DebugLevel, entry.Level)
	require.Contains(t, entry.Message, "velero restore create --from-backup nightly --wait")
}

func TestBuild_RejectsVersionReport(t *testing.T) {
	_, err := command.Build(command.RequiredVersionParams{}, nil)
	require.Error(t, err)
}

func TestParseDescribeState(t *testing.T) {
	st, err := command.ParseDescribeState("Backup")
	require.NoError(t, err)
	require.Equal(t, command.StateBackup, st)

	_, err = command.ParseDescribeState("schedule")
	require.Error(t, err)
}

func TestNeedsVersionGate(t *testing.T) {
	require.False(t, command.OpRequiredVersion.NeedsVersionGate())
	for _, op := range []command.Operation{command.OpInstall, command.OpBackup, command.OpSchedule, command.OpRestore, command.OpDescribe} {
		require.True(t, op.NeedsVersionGate(), op.String())
	}
}
