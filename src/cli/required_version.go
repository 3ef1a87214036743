package cli

import (
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/command"
)

func newRequiredVersionCmd(stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "required-version",
		Short: "Print the required and the installed velero versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, stdout, stderr, command.RequiredVersionParams{})
		},
	}
}
