package dispatch

import (
	"context"
	"fmt"
	"io"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"velero-backup/src/command"
	"velero-backup/src/provision"
	"velero-backup/src/safety"
	"velero-backup/src/velero"
)

// ErrRestoreNotConfirmed is returned when a restore prompt is declined or
// cannot be answered because stdin is closed.
const ErrRestoreNotConfirmed = errors.ConstError("restore not confirmed")

// VersionGate checks the installed velero release.
type VersionGate interface {
	Check(ctx context.Context) (velero.VersionInfo, error)
	Report(ctx context.Context, w io.Writer) velero.VersionInfo
}

// Provisioner prepares the bucket and access policy for install.
type Provisioner interface {
	CheckPrincipal(ctx context.Context, user string) error
	BucketExists(ctx context.Context, name, region string) (bool, error)
	EnsureBucket(ctx context.Context, name, region string, createIfAbsent bool) (provision.Result, error)
	AttachPolicy(ctx context.Context, principal, bucket string) error
}

// Executor runs a built velero command.
type Executor interface {
	Run(ctx context.Context, spec command.Spec) error
}

// Outcome is the result of one dispatch. ExitCode is the only place where a
// process exit status is decided.
type Outcome struct {
	Operation    command.Operation
	State        State
	Transitions  []State
	ExitCode     int
	Err          error
	Version      velero.VersionInfo
	Provisioning provision.Result
	Spec         command.Spec
}

// Dispatcher runs one operation end to end: version gate, provisioning for
// install, then exactly one velero command.
type Dispatcher struct {
	Gate VersionGate
	// Provisioner opens an AWS session scoped to region. It is only called on
	// the install path.
	Provisioner func(ctx context.Context, region string) (Provisioner, error)
	// Executor returns an Executor for the velero binary at path.
	Executor func(path string) Executor
	// Principal is the IAM user that receives the bucket policy.
	Principal string
	Safety    safety.Options
	In        io.Reader
	Out       io.Writer
	Log       logrus.FieldLogger
}

type run struct {
	out Outcome
	log logrus.FieldLogger
}

func (r *run) to(s State) {
	r.out.State = s
	r.out.Transitions = append(r.out.Transitions, s)
	r.log.Debugf("dispatch state: %s", s)
}

func (r *run) fail(err error) Outcome {
	r.log.Error(err)
	r.to(Failed)
	r.out.Err = err
	r.out.ExitCode = ExitCode(err)
	return r.out
}

// commandFailed records a velero invocation that did not succeed. Velero's
// own exit ends the run, so the outcome is Done with the error attached.
func (r *run) commandFailed(err error) Outcome {
	log := r.log
	var cmdErr *velero.CommandError
	if errors.As(err, &cmdErr) {
		log = log.WithField("exit_status", cmdErr.ExitCode())
	}
	log.Error(err)
	r.out.Err = err
	r.to(Done)
	r.out.ExitCode = ExitCode(err)
	return r.out
}

func (r *run) done() Outcome {
	r.to(Done)
	r.out.ExitCode = ExitOK
	return r.out
}

// Dispatch executes the operation described by p.
func (d *Dispatcher) Dispatch(ctx context.Context, p command.Params) Outcome {
	op := p.Operation()
	r := &run{log: d.Log.WithField("operation", op)}
	r.out.Operation = op
	r.to(Idle)

	if !op.NeedsVersionGate() {
		r.out.Version = d.Gate.Report(ctx, d.Out)
		return r.done()
	}

	info, err := d.Gate.Check(ctx)
	r.out.Version = info
	if err != nil {
		return r.fail(err)
	}
	r.to(VersionChecked)

	if ip, ok := p.(command.InstallParams); ok {
		res, err := d.provision(ctx, r.log, ip)
		r.out.Provisioning = res
		if err != nil {
			return r.fail(err)
		}
		r.to(Provisioned)
	}

	spec, err := command.Build(p, r.log)
	if err != nil {
		return r.fail(errors.Trace(err))
	}
	r.out.Spec = spec

	if d.Safety.DryRun {
		r.log.Infof("Dry run: would run %s", spec)
		return r.done()
	}
	if rp, ok := p.(command.RestoreParams); ok {
		question := fmt.Sprintf("Restore from backup %s?", rp.BackupName)
		ok, err := safety.Confirm(d.Safety, d.In, d.Out, question)
		if err != nil {
			return r.fail(errors.Annotate(err, "reading confirmation"))
		}
		if !ok {
			return r.fail(errors.Annotatef(ErrRestoreNotConfirmed, "backup %s; pass --yes to run without a prompt", rp.BackupName))
		}
	}

	r.to(Executing)
	if err := d.Executor(info.Path).Run(ctx, spec); err != nil {
		return r.commandFailed(err)
	}
	return r.done()
}

// provision checks or creates the bucket and, for a new bucket, attaches the
// policy. Nothing is rolled back: a bucket created before a failed policy
// attach is left in place.
func (d *Dispatcher) provision(ctx context.Context, log logrus.FieldLogger, p command.InstallParams) (provision.Result, error) {
	prov, err := d.Provisioner(ctx, p.BackupRegion)
	if err != nil {
		return provision.Result{}, errors.Annotate(err, "opening AWS session")
	}

	if !p.CreateBucket {
		return prov.EnsureBucket(ctx, p.Bucket, p.BackupRegion, false)
	}

	if err := prov.CheckPrincipal(ctx, d.Principal); err != nil {
		return provision.Result{}, errors.Trace(err)
	}

	if d.Safety.DryRun {
		exists, err := prov.BucketExists(ctx, p.Bucket, p.BackupRegion)
		if err != nil {
			return provision.Result{}, errors.Trace(err)
		}
		if exists {
			return provision.Result{BucketExisted: true}, errors.Annotatef(provision.ErrBucketAlreadyExists, "bucket %q in %s", p.Bucket, p.BackupRegion)
		}
		log.Infof("Dry run: would create bucket %s in %s", p.Bucket, p.BackupRegion)
		log.Infof("Dry run: would attach policy for %s to user %s", p.Bucket, d.Principal)
		return provision.Result{}, nil
	}

	res, err := prov.EnsureBucket(ctx, p.Bucket, p.BackupRegion, true)
	if err != nil {
		return res, err
	}
	if err := prov.AttachPolicy(ctx, d.Principal, p.Bucket); err != nil {
		log.Warnf("Bucket %s was created but has no policy for %s", p.Bucket, d.Principal)
		return res, err
	}
	res.PolicyAttached = true
	return res, nil
}
