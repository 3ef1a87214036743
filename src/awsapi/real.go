package awsapi

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/juju/errors"
)

// regionWithoutConstraint is the one S3 region that rejects an explicit
// LocationConstraint on CreateBucket.
const regionWithoutConstraint = "us-east-1"

type s3API interface {
	ListBuckets(ctx context.Context, in *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, optFns ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
}

type iamAPI interface {
	iam.ListUsersAPIClient
	PutUserPolicy(ctx context.Context, in *iam.PutUserPolicyInput, optFns ...func(*iam.Options)) (*iam.PutUserPolicyOutput, error)
}

// RealClient wraps the AWS SDK S3 and IAM clients.
type RealClient struct {
	s3  s3API
	iam iamAPI
}

// SessionOptions selects the credentials and default region for a session.
type SessionOptions struct {
	// Profile is a shared config profile; empty uses the default chain.
	Profile string
	Region  string
}

// Connect loads AWS configuration for opts and returns a client bound to it.
// Requests are attempted once: throttling and transient failures are
// returned to the caller rather than retried.
func Connect(ctx context.Context, opts SessionOptions) (*RealClient, error) {
	cfg, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return NewRealClient(cfg), nil
}

// loadConfig pins the named profile even when it is "default", so that
// AWS_PROFILE in the environment cannot redirect the session.
func loadConfig(ctx context.Context, opts SessionOptions) (aws.Config, error) {
	loadOpts := []func(*config.LoadOptions) error{
		config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
	}
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	}
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, errors.Annotatef(err, "loading AWS config for profile %q", opts.Profile)
	}
	return cfg, nil
}

// NewRealClient builds S3 and IAM clients from an already loaded config.
func NewRealClient(cfg aws.Config) *RealClient {
	return &RealClient{s3: s3.NewFromConfig(cfg), iam: iam.NewFromConfig(cfg)}
}

func (r *RealClient) ListBuckets(ctx context.Context) ([]Bucket, error) {
	out, err := r.s3.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, errors.Trace(err)
	}
	buckets := make([]Bucket, 0, len(out.Buckets))
	for _, b := range out.Buckets {
		buckets = append(buckets, Bucket{Name: aws.ToString(b.Name)})
	}
	return buckets, nil
}

func (r *RealClient) CreateBucket(ctx context.Context, name, region string) error {
	in := &s3.CreateBucketInput{Bucket: aws.String(name)}
	if region != "" && region != regionWithoutConstraint {
		in.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(region),
		}
	}
	_, err := r.s3.CreateBucket(ctx, in, func(o *s3.Options) {
		if region != "" {
			o.Region = region
		}
	})
	return errors.Trace(err)
}

func (r *RealClient) ListUserNames(ctx context.Context) ([]string, error) {
	var names []string
	p := iam.NewListUsersPaginator(r.iam, &iam.ListUsersInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, errors.Trace(err)
		}
		for _, u := range page.Users {
			names = append(names, aws.ToString(u.UserName))
		}
	}
	return names, nil
}

func (r *RealClient) PutUserPolicy(ctx context.Context, user, policyName, document string) error {
	_, err := r.iam.PutUserPolicy(ctx, &iam.PutUserPolicyInput{
		UserName:       aws.String(user),
		PolicyName:     aws.String(policyName),
		PolicyDocument: aws.String(document),
	})
	return errors.Trace(err)
}
