package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsorgssdk "github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	awsstssdk "github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsorgs "tasnim.dev/orgctl/internal/aws/orgs"
	awssts "tasnim.dev/orgctl/internal/aws/sts"
)

type stubOrgsAPI struct {
	awsorgs.OrganizationsAPI

	createErr     error
	describeCalls int
}

func (s *stubOrgsAPI) CreateOrganization(ctx context.Context, params *awsorgssdk.CreateOrganizationInput, optFns ...func(*awsorgssdk.Options)) (*awsorgssdk.CreateOrganizationOutput, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &awsorgssdk.CreateOrganizationOutput{
		Organization: &orgtypes.Organization{
			Id:  awssdk.String("o-created1"),
			Arn: awssdk.String("arn:aws:organizations::123456789012:organization/o-created1"),
		},
	}, nil
}

func (s *stubOrgsAPI) DescribeOrganization(ctx context.Context, params *awsorgssdk.DescribeOrganizationInput, optFns ...func(*awsorgssdk.Options)) (*awsorgssdk.DescribeOrganizationOutput, error) {
	s.describeCalls++
	return &awsorgssdk.DescribeOrganizationOutput{
		Organization: &orgtypes.Organization{Id: awssdk.String("o-existing")},
	}, nil
}

type stubSTSAPI struct {
	awssts.STSAPI
}

func (s *stubSTSAPI) GetCallerIdentity(ctx context.Context, params *awsstssdk.GetCallerIdentityInput, optFns ...func(*awsstssdk.Options)) (*awsstssdk.GetCallerIdentityOutput, error) {
	return &awsstssdk.GetCallerIdentityOutput{
		Account: awssdk.String("123456789012"),
		Arn:     awssdk.String("arn:aws:iam::123456789012:root"),
	}, nil
}

func newBootstrapper(orgsAPI *stubOrgsAPI) *Bootstrapper {
	return &Bootstrapper{
		Orgs: awsorgs.NewClient(orgsAPI),
		STS:  awssts.NewClient(&stubSTSAPI{}),
		Log:  zerolog.Nop(),
	}
}

func TestRun_CreatesOrganization(t *testing.T) {
	api := &stubOrgsAPI{}
	org, err := newBootstrapper(api).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "o-created1", org.ID)
	assert.Zero(t, api.describeCalls)
}

func TestRun_ReusesExistingOrganization(t *testing.T) {
	api := &stubOrgsAPI{
		createErr: &orgtypes.AlreadyInOrganizationException{Message: awssdk.String("already a member")},
	}
	org, err := newBootstrapper(api).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "o-existing", org.ID)
	assert.Equal(t, 1, api.describeCalls)
}

func TestRun_AccessDeniedFails(t *testing.T) {
	api := &stubOrgsAPI{
		createErr: &orgtypes.AccessDeniedException{Message: awssdk.String("denied")},
	}
	_, err := newBootstrapper(api).Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, CategoryPermission, Classify(err))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Category
	}{
		{"nil", nil, CategoryNone},
		{"permission", fmt.Errorf("wrapped: %w", &orgtypes.AccessDeniedException{}), CategoryPermission},
		{"api", fmt.Errorf("wrapped: %w", &orgtypes.ConcurrentModificationException{}), CategoryAPI},
		{"network", fmt.Errorf("wrapped: %w", &net.DNSError{IsTimeout: true}), CategoryNetwork},
		{"unknown", errors.New("boom"), CategoryUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
