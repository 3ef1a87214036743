package awsapi

import (
	"github.com/aws/smithy-go"
	"github.com/juju/errors"
)

// ErrorCode returns the AWS error code carried by err (e.g. "AccessDenied"),
// or "" when err did not come from an AWS API.
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}
