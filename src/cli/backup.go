package cli

import (
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/command"
)

func newBackupCmd(stdout, stderr io.Writer) *cobra.Command {
	var backupName string
	var exclude []string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup and wait for it to complete",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, stdout, stderr, command.BackupParams{
				BackupName:        backupName,
				ExcludeNamespaces: withDefaults(command.DefaultExcludeNamespaces, exclude),
			})
		},
	}
	cmd.Flags().StringVar(&backupName, "backup_name", "", "Name of the backup to create")
	cmd.Flags().StringArrayVar(&exclude, "exclude_namespaces", nil, "Namespace to exclude in addition to the defaults (repeatable)")
	_ = cmd.MarkFlagRequired("backup_name")
	return cmd
}

// withDefaults appends repeated flag values to the defaults, keeping order.
func withDefaults(defaults, extra []string) []string {
	out := make([]string, 0, len(defaults)+len(extra))
	out = append(out, defaults...)
	return append(out, extra...)
}
