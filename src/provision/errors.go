package provision

import (
	"fmt"

	"github.com/juju/errors"
)

const (
	// ErrBucketNotFound means install was asked to use a bucket that does not
	// exist and was not allowed to create it.
	ErrBucketNotFound = errors.ConstError("bucket not found")

	// ErrBucketAlreadyExists means install was asked to create a bucket that
	// already exists. Existing buckets are never adopted.
	ErrBucketAlreadyExists = errors.ConstError("bucket already exists")

	// ErrMissingPrincipal means the IAM user velero runs as does not exist.
	ErrMissingPrincipal = errors.ConstError("principal not found")
)

// ProvisionError reports a failed S3 call while checking or creating the
// backup bucket.
type ProvisionError struct {
	Bucket string
	Region string
	Cause  error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning bucket %q in %s: %v", e.Bucket, e.Region, e.Cause)
}

func (e *ProvisionError) Unwrap() error { return e.Cause }

// PolicyError reports a failed attempt to attach the bucket policy.
type PolicyError struct {
	Principal string
	Bucket    string
	Cause     error
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("attaching policy for bucket %q to %q: %v", e.Bucket, e.Principal, e.Cause)
}

func (e *PolicyError) Unwrap() error { return e.Cause }
