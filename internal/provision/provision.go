// Package provision vends temporary administration credentials, creating
// the Organization and the admin role on first use. The CLI and the HTTP
// endpoint share this one implementation.
package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	awsclient "tasnim.dev/orgctl/internal/aws"
	awsiam "tasnim.dev/orgctl/internal/aws/iam"
	awsorgs "tasnim.dev/orgctl/internal/aws/orgs"
	awssts "tasnim.dev/orgctl/internal/aws/sts"
	"tasnim.dev/orgctl/internal/constants"
	"tasnim.dev/orgctl/internal/utils"
)

const roleDescription = "Managed by orgctl for organization administration"

type Provisioner struct {
	orgs   *awsorgs.Client
	iam    *awsiam.Client
	sts    *awssts.Client
	region string
	log    zerolog.Logger
}

func New(svc *awsclient.ServiceClient, log zerolog.Logger) *Provisioner {
	return &Provisioner{
		orgs:   svc.Orgs,
		iam:    svc.IAM,
		sts:    svc.STS,
		region: svc.Region,
		log:    log,
	}
}

// Provision ensures the Organization and admin role exist, assumes the role
// and returns the resulting temporary credentials. Not side-effect free:
// the first call against a fresh account creates shared resources; later
// calls take the reuse path.
func (p *Provisioner) Provision(ctx context.Context, roleName string) (*CredentialSet, error) {
	if roleName == "" {
		return nil, &ValidationError{Field: "role_name"}
	}

	identity, err := p.sts.CallerIdentity(ctx)
	if err != nil {
		return nil, err
	}
	accountID := identity.AccountID

	org, err := p.orgs.EnsureOrganization(ctx)
	if err != nil {
		if awsorgs.IsAccessDenied(err) {
			return nil, &PermissionError{
				Msg: "access denied on DescribeOrganization; credentials from the management account that owns the Organization are required",
			}
		}
		return nil, err
	}
	p.log.Debug().Str("organization_id", org.ID).Msg("organization ready")

	roleARN := utils.RoleARN(accountID, roleName)
	trustPolicy, err := trustPolicyDocument(accountID)
	if err != nil {
		return nil, err
	}
	if err := p.iam.EnsureRole(ctx, roleName, trustPolicy, roleDescription); err != nil {
		return nil, err
	}

	// Attach failures (already attached, propagation race) are non-fatal;
	// a role that cannot assume the policy will fail loudly at AssumeRole.
	if err := p.iam.AttachRolePolicy(ctx, roleName, constants.ManagedPolicyARN); err != nil {
		p.log.Debug().Err(err).Str("role", roleName).Msg("attach role policy skipped")
	}

	creds, err := p.sts.AssumeRole(ctx, roleARN, constants.RoleSessionName, constants.SessionDuration)
	if err != nil {
		return nil, err
	}
	p.log.Debug().Str("role_arn", roleARN).Time("expires_at", creds.Expiration).Msg("assumed role")

	return &CredentialSet{
		RoleName:        roleName,
		RoleARN:         roleARN,
		AccountID:       accountID,
		OrganizationID:  org.ID,
		AccessKeyID:     creds.AccessKeyID,
		SecretAccessKey: creds.SecretAccessKey,
		SessionToken:    creds.SessionToken,
		Region:          p.region,
		ExpiresAt:       creds.Expiration.UTC().Format(time.RFC3339),
	}, nil
}

// trustPolicyDocument permits any principal in the account to assume the
// role, gated by their own IAM permissions.
func trustPolicyDocument(accountID string) (string, error) {
	doc := policyDocument{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: policyPrincipal{AWS: utils.RootPrincipalARN(accountID)},
			Action:    "sts:AssumeRole",
		}},
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling trust policy: %w", err)
	}
	return string(raw), nil
}

type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string          `json:"Effect"`
	Principal policyPrincipal `json:"Principal"`
	Action    string          `json:"Action"`
}

type policyPrincipal struct {
	AWS string `json:"AWS"`
}
