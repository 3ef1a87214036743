package provision

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws/arn"
	"github.com/juju/errors"
	"github.com/sirupsen/logrus"

	"velero-backup/src/awsapi"
)

const policyVersion = "2012-10-17"

var (
	// ec2Actions let velero snapshot and restore EBS volumes.
	ec2Actions = []string{
		"ec2:DescribeVolumes",
		"ec2:DescribeSnapshots",
		"ec2:CreateTags",
		"ec2:CreateVolume",
		"ec2:CreateSnapshot",
		"ec2:DeleteSnapshot",
	}
	// objectActions cover reading and writing backup objects.
	objectActions = []string{
		"s3:GetObject",
		"s3:DeleteObject",
		"s3:PutObject",
		"s3:AbortMultipartUpload",
		"s3:ListMultipartUploadParts",
	}
	bucketActions = []string{"s3:ListBucket"}
)

// PolicyDocument is an IAM policy document.
type PolicyDocument struct {
	Version   string      `json:"Version"`
	Statement []Statement `json:"Statement"`
}

// Statement is a single IAM policy statement. Resource is either "*" or a
// list of ARNs.
type Statement struct {
	Effect   string   `json:"Effect"`
	Action   []string `json:"Action"`
	Resource any      `json:"Resource"`
}

// BucketARN returns the ARN of an S3 bucket.
func BucketARN(bucket string) string {
	return arn.ARN{Partition: "aws", Service: "s3", Resource: bucket}.String()
}

// BucketPolicy returns the least-privilege policy velero needs for bucket.
func BucketPolicy(bucket string) PolicyDocument {
	bucketARN := BucketARN(bucket)
	return PolicyDocument{
		Version: policyVersion,
		Statement: []Statement{
			{Effect: "Allow", Action: clone(ec2Actions), Resource: "*"},
			{Effect: "Allow", Action: clone(objectActions), Resource: []string{bucketARN + "/*"}},
			{Effect: "Allow", Action: clone(bucketActions), Resource: []string{bucketARN}},
		},
	}
}

// JSON serialises the document as sent to IAM.
func (d PolicyDocument) JSON() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", errors.Trace(err)
	}
	return string(b), nil
}

// AttachPolicy puts the bucket policy inline on principal. A policy with the
// same name is replaced, so repeated calls leave a single identical policy.
func (p *Provisioner) AttachPolicy(ctx context.Context, principal, bucket string) error {
	log := p.log.WithFields(logrus.Fields{"principal": principal, "bucket": bucket})
	log.Infof("Assigning %s user policy to %s", principal, bucket)

	doc, err := BucketPolicy(bucket).JSON()
	if err != nil {
		return &PolicyError{Principal: principal, Bucket: bucket, Cause: err}
	}
	if err := p.client.PutUserPolicy(ctx, principal, p.PolicyName, doc); err != nil {
		log.WithField("code", awsapi.ErrorCode(err)).Errorf("Error while attaching policy to %s: %v", bucket, err)
		return &PolicyError{Principal: principal, Bucket: bucket, Cause: err}
	}
	return nil
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
