package cli

import (
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/command"
)

func newInstallCmd(stdout, stderr io.Writer) *cobra.Command {
	var p command.InstallParams
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install velero into the current cluster, optionally creating its S3 bucket",
		Long: `Install velero with the AWS plugin.

Without --create_bucket the bucket must already exist. With --create_bucket
the bucket must not exist yet; it is created in --backup_region and the velero
IAM policy for it is attached to --principal. A bucket created before a failed
policy attach is not removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, stdout, stderr, p)
		},
	}
	cmd.Flags().StringVar(&p.Bucket, "bucket", "", "S3 bucket velero stores backups in")
	cmd.Flags().StringVar(&p.BackupRegion, "backup_region", "", "Region of the backup bucket")
	cmd.Flags().StringVar(&p.SnapshotRegion, "snapshot_region", "", "Region for volume snapshots")
	cmd.Flags().StringVar(&p.SecretFile, "secret", "", "Velero credentials file, relative to the working directory")
	cmd.Flags().BoolVar(&p.CreateBucket, "create_bucket", false, "Create the bucket and attach the velero policy")
	for _, name := range []string{"bucket", "backup_region", "snapshot_region", "secret"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
