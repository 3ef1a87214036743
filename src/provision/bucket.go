package provision

import (
	"context"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"velero-backup/src/awsapi"
)

// Result summarises what provisioning found and changed.
type Result struct {
	BucketExisted  bool
	Created        bool
	PolicyAttached bool
}

// Provisioner ensures the backup bucket and its access policy exist.
type Provisioner struct {
	client awsapi.Client
	log    logrus.FieldLogger
	// PolicyName is the inline policy name on the principal.
	PolicyName string
}

// DefaultPolicyName names the inline policy attached to the principal.
const DefaultPolicyName = "velero"

// New returns a Provisioner over the given per-invocation client.
func New(client awsapi.Client, log logrus.FieldLogger) *Provisioner {
	return &Provisioner{client: client, log: log, PolicyName: DefaultPolicyName}
}

// BucketExists reports whether a bucket named name is visible to the session.
func (p *Provisioner) BucketExists(ctx context.Context, name, region string) (bool, error) {
	buckets, err := p.client.ListBuckets(ctx)
	if err != nil {
		return false, &ProvisionError{Bucket: name, Region: region, Cause: errors.Annotate(err, "listing buckets")}
	}
	for _, b := range buckets {
		if b.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// EnsureBucket checks for the bucket and, when createIfAbsent is set,
// creates it. Asking to create a bucket that already exists is an error:
// an existing bucket of unknown ownership is never reused.
func (p *Provisioner) EnsureBucket(ctx context.Context, name, region string, createIfAbsent bool) (Result, error) {
	log := p.log.WithFields(logrus.Fields{"bucket": name, "region": region})
	log.Infof("Checking if %s bucket exists", name)

	exists, err := p.BucketExists(ctx, name, region)
	if err != nil {
		return Result{}, err
	}
	res := Result{BucketExisted: exists}

	switch {
	case !createIfAbsent && !exists:
		log.Errorf("Bucket %s doesn't exist under %s region", name, region)
		return res, errors.Annotatef(ErrBucketNotFound, "bucket %q in %s", name, region)
	case !createIfAbsent:
		return res, nil
	case exists:
		log.Errorf("Unable to create bucket %s. It already exists under %s region", name, region)
		return res, errors.Annotatef(ErrBucketAlreadyExists, "bucket %q in %s", name, region)
	}

	log.Infof("Creating %s bucket under %s region", name, region)
	if err := p.client.CreateBucket(ctx, name, region); err != nil {
		log.WithField("code", awsapi.ErrorCode(err)).Errorf("Unable to create bucket: %v", err)
		return res, &ProvisionError{Bucket: name, Region: region, Cause: err}
	}
	res.Created = true
	return res, nil
}
