package cli

import (
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/command"
)

func newDescribeCmd(stdout, stderr io.Writer) *cobra.Command {
	var state, backupName string
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Describe an existing backup or restore",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := command.ParseDescribeState(state)
			if err != nil {
				return err
			}
			return runOperation(cmd, stdout, stderr, command.DescribeParams{BackupName: backupName, State: st})
		},
	}
	cmd.Flags().StringVar(&state, "state", "", "Resource kind to describe: backup|restore")
	cmd.Flags().StringVar(&backupName, "backup_name", "", "Name of the existing backup or restore")
	_ = cmd.MarkFlagRequired("state")
	_ = cmd.MarkFlagRequired("backup_name")
	return cmd
}
