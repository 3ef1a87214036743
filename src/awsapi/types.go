package awsapi

import "context"

// Bucket models the S3 bucket fields we care about.
type Bucket struct {
	Name string
}

// Client is the narrow view of S3 and IAM used to provision velero's bucket
// and access policy. One Client is built per invocation from one credential
// profile; nothing is shared between runs.
type Client interface {
	// S3
	ListBuckets(ctx context.Context) ([]Bucket, error)
	CreateBucket(ctx context.Context, name, region string) error

	// IAM
	ListUserNames(ctx context.Context) ([]string, error)
	PutUserPolicy(ctx context.Context, user, policyName, document string) error
}
