package cli

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"velero-backup/src/awsapi"
	"velero-backup/src/command"
	"velero-backup/src/dispatch"
	"velero-backup/src/provision"
	"velero-backup/src/velero"
)

type gateFactory func(log logrus.FieldLogger) dispatch.VersionGate

type awsConnector func(ctx context.Context, opts awsapi.SessionOptions) (awsapi.Client, error)

type executorFactory func(path string, stdout, stderr io.Writer, log logrus.FieldLogger) dispatch.Executor

var (
	newVersionGate gateFactory = func(log logrus.FieldLogger) dispatch.VersionGate {
		return velero.NewGate(log)
	}
	connectAWS awsConnector = func(ctx context.Context, opts awsapi.SessionOptions) (awsapi.Client, error) {
		client, err := awsapi.Connect(ctx, opts)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
	newExecutor executorFactory = func(path string, stdout, stderr io.Writer, log logrus.FieldLogger) dispatch.Executor {
		return velero.NewRunner(path, stdout, stderr, log)
	}
)

func requiredVersionForHelp() string { return velero.RequiredVersion }

// runOperation wires the dispatcher for one invocation and turns its outcome
// into an error carrying the exit code.
func runOperation(cmd *cobra.Command, stdout, stderr io.Writer, p command.Params) error {
	log, err := newLogger(cmd, stderr)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	profile, _ := cmd.Root().PersistentFlags().GetString("profile")
	principal, _ := cmd.Root().PersistentFlags().GetString("principal")
	log.WithField("operation", p.Operation()).Debugf("Parsed params: %+v", p)

	d := &dispatch.Dispatcher{
		Gate: newVersionGate(log),
		Provisioner: func(ctx context.Context, region string) (dispatch.Provisioner, error) {
			log.Infof("Setting AWS profile to %s", profile)
			client, err := connectAWS(ctx, awsapi.SessionOptions{Profile: profile, Region: region})
			if err != nil {
				return nil, err
			}
			return provision.New(client, log), nil
		},
		Executor: func(path string) dispatch.Executor {
			return newExecutor(path, stdout, stderr, log)
		},
		Principal: principal,
		Safety:    getSafetyOptions(cmd),
		In:        cmd.InOrStdin(),
		Out:       stdout,
		Log:       log,
	}

	out := d.Dispatch(ctx, p)
	if out.ExitCode != dispatch.ExitOK {
		return &ExitError{Code: out.ExitCode, Err: out.Err}
	}
	return nil
}

// SetVersionGateForTest allows tests to stub velero detection.
// The returned function restores the previous factory.
func SetVersionGateForTest(fn func(log logrus.FieldLogger) dispatch.VersionGate) func() {
	prev := newVersionGate
	newVersionGate = fn
	return func() { newVersionGate = prev }
}

// SetAWSConnectorForTest allows tests to substitute the AWS session.
func SetAWSConnectorForTest(fn func(ctx context.Context, opts awsapi.SessionOptions) (awsapi.Client, error)) func() {
	prev := connectAWS
	connectAWS = fn
	return func() { connectAWS = prev }
}

// SetExecutorForTest allows tests to capture velero invocations.
func SetExecutorForTest(fn func(path string, stdout, stderr io.Writer, log logrus.FieldLogger) dispatch.Executor) func() {
	prev := newExecutor
	newExecutor = fn
	return func() { newExecutor = prev }
}
