package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/velero"
	"velero-backup/src/version"
)

func newVersionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the velero-backup version and the velero release it drives",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(stdout, "velero-backup %s (velero %s)\n", version.Version, velero.RequiredVersion)
		},
	}
}
