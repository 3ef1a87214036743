package provision_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"velero-backup/src/awsapi"
	"velero-backup/src/provision"
)

func newProvisioner(t *testing.T) (*provision.Provisioner, *awsapi.FakeClient) {
	t.Helper()
	log, _ := test.NewNullLogger()
	fake := awsapi.NewFake()
	return provision.New(fake, log), fake
}

func TestEnsureBucket_CheckOnlyAbsent(t *testing.T) {
	p, fake := newProvisioner(t)
	_, err := p.EnsureBucket(context.Background(), "backups", "us-west-2", false)
	require.ErrorIs(t, err, provision.ErrBucketNotFound)
	require.Empty(t, fake.Calls)
}

func TestEnsureBucket_CheckOnlyPresent(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.BucketsMap["backups"] = "us-west-2"
	res, err := p.EnsureBucket(context.Background(), "backups", "us-west-2", false)
	require.NoError(t, err)
	require.Equal(t, provision.Result{BucketExisted: true}, res)
	require.Empty(t, fake.Calls)
}

func TestEnsureBucket_CreateExisting(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.BucketsMap["backups"] = "us-west-2"
	_, err := p.EnsureBucket(context.Background(), "backups", "us-west-2", true)
	require.ErrorIs(t, err, provision.ErrBucketAlreadyExists)
	require.Empty(t, fake.Calls, "must not attempt creation")
}

func TestEnsureBucket_ExactNameMatch(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.BucketsMap["backups-old"] = "us-west-2"
	res, err := p.EnsureBucket(context.Background(), "backups", "us-west-2", true)
	require.NoError(t, err)
	require.True(t, res.Created)
}

func TestEnsureBucket_Create(t *testing.T) {
	p, fake := newProvisioner(t)
	res, err := p.EnsureBucket(context.Background(), "backups", "eu-west-1", true)
	require.NoError(t, err)
	require.Equal(t, provision.Result{Created: true}, res)
	require.Equal(t, "eu-west-1", fake.BucketsMap["backups"])
}

func TestEnsureBucket_CreateFails(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.FailCreateBucket = awsapi.APIError("BucketAlreadyExists", "owned by someone else")
	_, err := p.EnsureBucket(context.Background(), "backups", "eu-west-1", true)
	var perr *provision.ProvisionError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "backups", perr.Bucket)
	require.Equal(t, "BucketAlreadyExists", awsapi.ErrorCode(err))
	require.Equal(t, []string{"CreateBucket backups"}, fake.Calls, "no retry")
}

func TestEnsureBucket_ListFails(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.FailListBuckets = awsapi.APIError("AccessDenied", "denied")
	_, err := p.EnsureBucket(context.Background(), "backups", "eu-west-1", true)
	var perr *provision.ProvisionError
	require.ErrorAs(t, err, &perr)
	require.Empty(t, fake.Calls)
}

func TestCheckPrincipal(t *testing.T) {
	p, fake := newProvisioner(t)
	err := p.CheckPrincipal(context.Background(), "velero")
	require.ErrorIs(t, err, provision.ErrMissingPrincipal)

	fake.AddUser("velero")
	require.NoError(t, p.CheckPrincipal(context.Background(), "velero"))
}

func TestCheckPrincipal_ListFails(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.FailListUsers = errors.New("throttled")
	err := p.CheckPrincipal(context.Background(), "velero")
	require.Error(t, err)
	require.False(t, errors.Is(err, provision.ErrMissingPrincipal))
}

func TestBucketPolicy_Shape(t *testing.T) {
	doc := provision.BucketPolicy("my-bucket")
	require.Equal(t, "2012-10-17", doc.Version)
	require.Len(t, doc.Statement, 3)

	require.Equal(t, "*", doc.Statement[0].Resource)
	require.Contains(t, doc.Statement[0].Action, "ec2:CreateSnapshot")
	require.Equal(t, []string{"arn:aws:s3:::my-bucket/*"}, doc.Statement[1].Resource)
	require.Contains(t, doc.Statement[1].Action, "s3:AbortMultipartUpload")
	require.Equal(t, []string{"arn:aws:s3:::my-bucket"}, doc.Statement[2].Resource)
	require.Equal(t, []string{"s3:ListBucket"}, doc.Statement[2].Action)
	for _, st := range doc.Statement {
		require.Equal(t, "Allow", st.Effect)
	}
}

func TestBucketPolicy_JSON(t *testing.T) {
	raw, err := provision.BucketPolicy("my-bucket").JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	stmts := decoded["Statement"].([]any)
	require.Len(t, stmts, 3)
	require.Equal(t, "*", stmts[0].(map[string]any)["Resource"])
	require.Equal(t, []any{"arn:aws:s3:::my-bucket"}, stmts[2].(map[string]any)["Resource"])
}

func TestBucketPolicy_IndependentCopies(t *testing.T) {
	a := provision.BucketPolicy("a")
	a.Statement[0].Action[0] = "ec2:*"
	b := provision.BucketPolicy("b")
	require.Equal(t, "ec2:DescribeVolumes", b.Statement[0].Action[0])
}

func TestAttachPolicy_Idempotent(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.AddUser("velero")

	require.NoError(t, p.AttachPolicy(context.Background(), "velero", "my-bucket"))
	first, ok := fake.UserPolicy("velero", provision.DefaultPolicyName)
	require.True(t, ok)

	require.NoError(t, p.AttachPolicy(context.Background(), "velero", "my-bucket"))
	second, _ := fake.UserPolicy("velero", provision.DefaultPolicyName)
	require.Equal(t, first, second)
	require.Len(t, fake.Users["velero"], 1)
}

func TestAttachPolicy_Fails(t *testing.T) {
	p, fake := newProvisioner(t)
	fake.AddUser("velero")
	fake.FailPutPolicy = awsapi.APIError("AccessDenied", "nope")

	err := p.AttachPolicy(context.Background(), "velero", "my-bucket")
	var perr *provision.PolicyError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "velero", perr.Principal)
}
