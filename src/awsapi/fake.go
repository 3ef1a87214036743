package awsapi

import (
	"context"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// FakeClient is an in-memory implementation for unit tests. Errors set on the
// Fail* fields are returned by the matching call instead of touching state.
type FakeClient struct {
	mu sync.Mutex

	BucketsMap map[string]string            // name -> region
	Users      map[string]map[string]string // user -> policy name -> document

	FailListBuckets  error
	FailCreateBucket error
	FailListUsers    error
	FailPutPolicy    error

	// Calls records mutating calls in order, e.g. "CreateBucket backups".
	Calls []string
}

func NewFake() *FakeClient {
	return &FakeClient{
		BucketsMap: map[string]string{},
		Users:      map[string]map[string]string{},
	}
}

// AddUser registers an IAM user with no inline policies.
func (f *FakeClient) AddUser(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Users[name]; !ok {
		f.Users[name] = map[string]string{}
	}
}

// UserPolicy returns the inline policy document stored for user.
func (f *FakeClient) UserPolicy(user, policyName string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.Users[user][policyName]
	return doc, ok
}

func (f *FakeClient) ListBuckets(ctx context.Context) ([]Bucket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailListBuckets != nil {
		return nil, f.FailListBuckets
	}
	out := make([]Bucket, 0, len(f.BucketsMap))
	for name := range f.BucketsMap {
		out = append(out, Bucket{Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *FakeClient) CreateBucket(ctx context.Context, name, region string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "CreateBucket "+name)
	if f.FailCreateBucket != nil {
		return f.FailCreateBucket
	}
	if _, ok := f.BucketsMap[name]; ok {
		// mimic S3 for a bucket we already own
		return &s3types.BucketAlreadyOwnedByYou{Message: aws.String(name)}
	}
	f.BucketsMap[name] = region
	return nil
}

func (f *FakeClient) ListUserNames(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailListUsers != nil {
		return nil, f.FailListUsers
	}
	out := make([]string, 0, len(f.Users))
	for name := range f.Users {
		out = append(out, name)
	}
	sort.Strings(out)
	return out, nil
}

func (f *FakeClient) PutUserPolicy(ctx context.Context, user, policyName, document string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "PutUserPolicy "+user+" "+policyName)
	if f.FailPutPolicy != nil {
		return f.FailPutPolicy
	}
	policies, ok := f.Users[user]
	if !ok {
		return &iamtypes.NoSuchEntityException{Message: aws.String("user " + user + " not found")}
	}
	policies[policyName] = document
	return nil
}

// APIError builds a generic AWS API error for tests, e.g. AccessDenied.
func APIError(code, message string) error {
	return &smithy.GenericAPIError{Code: code, Message: message}
}
