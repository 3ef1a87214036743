package cli

import (
	"io"

	"github.com/spf13/cobra"

	"velero-backup/src/command"
)

func newScheduleCmd(stdout, stderr io.Writer) *cobra.Command {
	var p command.ScheduleParams
	var include []string
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Create a backup schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p.IncludeNamespaces = withDefaults(command.DefaultIncludeNamespaces, include)
			return runOperation(cmd, stdout, stderr, p)
		},
	}
	cmd.Flags().StringVar(&p.ScheduleName, "schedule_name", "", "Name of the schedule to create")
	cmd.Flags().StringArrayVar(&include, "include_namespaces", nil, "Namespace to include in addition to default (repeatable)")
	cmd.Flags().IntVar(&p.CronHours, "cron", 0, "Run a backup every N hours")
	cmd.Flags().IntVar(&p.TTLHours, "ttl", 0, "Keep each scheduled backup for N hours")
	for _, name := range []string{"schedule_name", "cron", "ttl"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
