package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsiamsdk "github.com/aws/aws-sdk-go-v2/service/iam"
	awsorgssdk "github.com/aws/aws-sdk-go-v2/service/organizations"
	awsstssdk "github.com/aws/aws-sdk-go-v2/service/sts"

	awsiam "tasnim.dev/orgctl/internal/aws/iam"
	awsorgs "tasnim.dev/orgctl/internal/aws/orgs"
	awssts "tasnim.dev/orgctl/internal/aws/sts"
	"tasnim.dev/orgctl/internal/constants"
)

// ServiceClient bundles the three control-plane clients this tool talks to.
type ServiceClient struct {
	Orgs *awsorgs.Client
	IAM  *awsiam.Client
	STS  *awssts.Client

	// Region the config resolves to; falls back to the Organizations region.
	Region string
}

// NewServiceClient builds clients from the ambient credential chain. The
// Organizations client is always pinned to us-east-1.
func NewServiceClient(ctx context.Context, profile, region string) (*ServiceClient, error) {
	cfg, err := LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return NewServiceClientFromConfig(cfg), nil
}

// NewServiceClientFromConfig wraps an already-loaded config.
func NewServiceClientFromConfig(cfg aws.Config) *ServiceClient {
	region := cfg.Region
	if region == "" {
		region = constants.OrganizationsRegion
	}

	return &ServiceClient{
		Orgs: awsorgs.NewClient(awsorgssdk.NewFromConfig(cfg, func(o *awsorgssdk.Options) {
			o.Region = constants.OrganizationsRegion
		})),
		IAM:    awsiam.NewClient(awsiamsdk.NewFromConfig(cfg)),
		STS:    awssts.NewClient(awsstssdk.NewFromConfig(cfg)),
		Region: region,
	}
}

// NewAssumedOrgsClient builds an Organizations client from temporary
// assumed-role credentials.
func NewAssumedOrgsClient(ctx context.Context, accessKeyID, secretAccessKey, sessionToken string) (*awsorgs.Client, error) {
	cfg, err := StaticConfig(ctx, accessKeyID, secretAccessKey, sessionToken, constants.OrganizationsRegion)
	if err != nil {
		return nil, fmt.Errorf("loading assumed-role config: %w", err)
	}
	return awsorgs.NewClient(awsorgssdk.NewFromConfig(cfg)), nil
}
