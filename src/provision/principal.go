package provision

import (
	"context"

	"github.com/juju/errors"
)

// DefaultPrincipal is the IAM user velero authenticates as.
const DefaultPrincipal = "velero"

// CheckPrincipal fails with ErrMissingPrincipal unless an IAM user named user
// exists under the session's account.
func (p *Provisioner) CheckPrincipal(ctx context.Context, user string) error {
	names, err := p.client.ListUserNames(ctx)
	if err != nil {
		return errors.Annotate(err, "listing IAM users")
	}
	for _, n := range names {
		if n == user {
			p.log.WithField("principal", user).Infof("User %s exists", user)
			return nil
		}
	}
	p.log.WithField("principal", user).Errorf("%s user doesn't exist", user)
	return errors.Annotatef(ErrMissingPrincipal, "IAM user %q", user)
}
