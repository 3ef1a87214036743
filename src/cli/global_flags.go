package cli

import (
	"io"
	"strings"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"velero-backup/src/provision"
	"velero-backup/src/safety"
)

// logLevels maps --log-level values to logrus levels. critical has no logrus
// equivalent and maps to fatal.
var logLevels = map[string]logrus.Level{
	"critical": logrus.FatalLevel,
	"error":    logrus.ErrorLevel,
	"warning":  logrus.WarnLevel,
	"info":     logrus.InfoLevel,
	"debug":    logrus.DebugLevel,
}

// addGlobalFlags adds persistent flags shared by every subcommand.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("log-level", "info", "Log level: critical|error|warning|info|debug")
	cmd.PersistentFlags().String("profile", "default", "AWS shared config profile used for bucket and IAM calls")
	cmd.PersistentFlags().String("principal", provision.DefaultPrincipal, "IAM user velero runs as; receives the bucket policy")
	cmd.PersistentFlags().Bool("dry-run", false, "Show planned changes and the velero command without running them")
	cmd.PersistentFlags().BoolP("yes", "y", false, "Assume 'yes' to prompts and run non-interactively")
}

// getSafetyOptions reads global flags into a safety.Options struct.
func getSafetyOptions(cmd *cobra.Command) safety.Options {
	dry, _ := cmd.Root().PersistentFlags().GetBool("dry-run")
	yes, _ := cmd.Root().PersistentFlags().GetBool("yes")
	return safety.Options{DryRun: dry, Yes: yes}
}

// newLogger builds the logger for one invocation from --log-level.
func newLogger(cmd *cobra.Command, out io.Writer) (*logrus.Logger, error) {
	raw, _ := cmd.Root().PersistentFlags().GetString("log-level")
	level, ok := logLevels[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return nil, errors.NotValidf("--log-level %q", raw)
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}
