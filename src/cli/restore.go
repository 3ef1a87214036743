package cli

import (
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/command"
)

func newRestoreCmd(stdout, stderr io.Writer) *cobra.Command {
	var backupName string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore from an existing backup and wait for it to complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, stdout, stderr, command.RestoreParams{BackupName: backupName})
		},
	}
	cmd.Flags().StringVar(&backupName, "backup_name", "", "Name of the backup to restore from")
	_ = cmd.MarkFlagRequired("backup_name")
	return cmd
}
