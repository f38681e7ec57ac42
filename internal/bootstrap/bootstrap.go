// Package bootstrap creates the AWS Organization itself using the caller's
// own credentials, without any role assumption.
package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/url"

	"github.com/aws/smithy-go"
	"github.com/rs/zerolog"

	awsorgs "tasnim.dev/orgctl/internal/aws/orgs"
	awssts "tasnim.dev/orgctl/internal/aws/sts"
	"tasnim.dev/orgctl/internal/utils"
)

// Category buckets a bootstrap failure for reporting. Nothing is retried;
// the category only shapes the operator-facing message.
type Category int

const (
	CategoryNone Category = iota
	CategoryPermission
	CategoryAPI
	CategoryNetwork
	CategoryUnknown
)

// Classify assigns a failure category: permission denials first, then any
// modeled API error, then transport-level trouble, then unknown.
func Classify(err error) Category {
	if err == nil {
		return CategoryNone
	}
	if awsorgs.IsAccessDenied(err) {
		return CategoryPermission
	}
	var ae smithy.APIError
	if errors.As(err, &ae) {
		return CategoryAPI
	}
	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) {
		return CategoryNetwork
	}
	return CategoryUnknown
}

type Bootstrapper struct {
	Orgs *awsorgs.Client
	STS  *awssts.Client
	Log  zerolog.Logger
}

// Run creates the Organization with the full feature set, reusing the
// existing one when the account is already a member. The returned error is
// already categorized and logged; callers only decide the exit code.
func (b *Bootstrapper) Run(ctx context.Context) (*awsorgs.Organization, error) {
	identity, err := b.STS.CallerIdentity(ctx)
	if err != nil {
		b.report(err)
		return nil, err
	}
	b.Log.Info().Str("caller_arn", identity.ARN).Str("caller", utils.ShortName(identity.ARN)).Msg("running as")

	b.Log.Info().Msg("creating organization with feature set ALL")
	org, err := b.Orgs.CreateOrganization(ctx)
	if err == nil {
		b.Log.Info().Str("organization_id", org.ID).Str("arn", org.ARN).Msg("organization created")
		return org, nil
	}

	if awsorgs.IsAlreadyInOrganization(err) {
		b.Log.Info().Msg("already in an organization, fetching details")
		org, descErr := b.Orgs.DescribeOrganization(ctx)
		if descErr != nil {
			b.report(descErr)
			return nil, descErr
		}
		b.Log.Info().Str("organization_id", org.ID).Str("arn", org.ARN).Msg("existing organization")
		return org, nil
	}

	b.report(err)
	return nil, err
}

func (b *Bootstrapper) report(err error) {
	switch Classify(err) {
	case CategoryPermission:
		b.Log.Error().Err(err).Msg("access denied; management-account root credentials are required to create an organization")
	case CategoryAPI:
		var ae smithy.APIError
		errors.As(err, &ae)
		b.Log.Error().Str("code", ae.ErrorCode()).Str("message", ae.ErrorMessage()).Msg("organizations API error")
	case CategoryNetwork:
		b.Log.Error().Err(err).Msg("network error reaching the Organizations endpoint")
	default:
		b.Log.Error().Err(err).Msg("unexpected error")
	}
}
