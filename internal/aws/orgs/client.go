package orgs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsorgs "github.com/aws/aws-sdk-go-v2/service/organizations"
	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
)

type OrganizationsAPI interface {
	DescribeOrganization(ctx context.Context, params *awsorgs.DescribeOrganizationInput, optFns ...func(*awsorgs.Options)) (*awsorgs.DescribeOrganizationOutput, error)
	CreateOrganization(ctx context.Context, params *awsorgs.CreateOrganizationInput, optFns ...func(*awsorgs.Options)) (*awsorgs.CreateOrganizationOutput, error)
	ListRoots(ctx context.Context, params *awsorgs.ListRootsInput, optFns ...func(*awsorgs.Options)) (*awsorgs.ListRootsOutput, error)
	CreateOrganizationalUnit(ctx context.Context, params *awsorgs.CreateOrganizationalUnitInput, optFns ...func(*awsorgs.Options)) (*awsorgs.CreateOrganizationalUnitOutput, error)
	ListOrganizationalUnitsForParent(ctx context.Context, params *awsorgs.ListOrganizationalUnitsForParentInput, optFns ...func(*awsorgs.Options)) (*awsorgs.ListOrganizationalUnitsForParentOutput, error)
	CreateAccount(ctx context.Context, params *awsorgs.CreateAccountInput, optFns ...func(*awsorgs.Options)) (*awsorgs.CreateAccountOutput, error)
	DescribeCreateAccountStatus(ctx context.Context, params *awsorgs.DescribeCreateAccountStatusInput, optFns ...func(*awsorgs.Options)) (*awsorgs.DescribeCreateAccountStatusOutput, error)
	ListCreateAccountStatus(ctx context.Context, params *awsorgs.ListCreateAccountStatusInput, optFns ...func(*awsorgs.Options)) (*awsorgs.ListCreateAccountStatusOutput, error)
	MoveAccount(ctx context.Context, params *awsorgs.MoveAccountInput, optFns ...func(*awsorgs.Options)) (*awsorgs.MoveAccountOutput, error)
}

type Client struct {
	api OrganizationsAPI
}

func NewClient(api OrganizationsAPI) *Client {
	return &Client{api: api}
}

func (c *Client) DescribeOrganization(ctx context.Context) (*Organization, error) {
	out, err := c.api.DescribeOrganization(ctx, &awsorgs.DescribeOrganizationInput{})
	if err != nil {
		return nil, fmt.Errorf("DescribeOrganization: %w", err)
	}
	return organizationFromSDK(out.Organization), nil
}

// CreateOrganization creates the Organization with the full feature set so
// service control policies and consolidated billing are both available.
func (c *Client) CreateOrganization(ctx context.Context) (*Organization, error) {
	out, err := c.api.CreateOrganization(ctx, &awsorgs.CreateOrganizationInput{
		FeatureSet: orgtypes.OrganizationFeatureSetAll,
	})
	if err != nil {
		return nil, fmt.Errorf("CreateOrganization: %w", err)
	}
	return organizationFromSDK(out.Organization), nil
}

// EnsureOrganization returns the existing Organization, creating it first
// when the account is not yet in one.
func (c *Client) EnsureOrganization(ctx context.Context) (*Organization, error) {
	org, err := c.DescribeOrganization(ctx)
	if err == nil {
		return org, nil
	}
	if IsNotInUse(err) {
		return c.CreateOrganization(ctx)
	}
	return nil, err
}

// RootID returns the ID of the Organization root. An Organization always
// has exactly one root.
func (c *Client) RootID(ctx context.Context) (string, error) {
	out, err := c.api.ListRoots(ctx, &awsorgs.ListRootsInput{})
	if err != nil {
		return "", fmt.Errorf("ListRoots: %w", err)
	}
	if len(out.Roots) == 0 {
		return "", fmt.Errorf("ListRoots: organization has no root")
	}
	return aws.ToString(out.Roots[0].Id), nil
}

func (c *Client) CreateOU(ctx context.Context, parentID, name string) (*OU, error) {
	out, err := c.api.CreateOrganizationalUnit(ctx, &awsorgs.CreateOrganizationalUnitInput{
		ParentId: aws.String(parentID),
		Name:     aws.String(name),
	})
	if err != nil {
		return nil, fmt.Errorf("CreateOrganizationalUnit(%s): %w", name, err)
	}
	return ouFromSDK(out.OrganizationalUnit), nil
}

// ListOUs returns every organizational unit directly under the given parent.
func (c *Client) ListOUs(ctx context.Context, parentID string) ([]OU, error) {
	var ous []OU
	var token *string

	for {
		out, err := c.api.ListOrganizationalUnitsForParent(ctx, &awsorgs.ListOrganizationalUnitsForParentInput{
			ParentId:  aws.String(parentID),
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("ListOrganizationalUnitsForParent(%s): %w", parentID, err)
		}

		for _, ou := range out.OrganizationalUnits {
			ous = append(ous, *ouFromSDK(&ou))
		}

		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}

	return ous, nil
}

// FindOUByName returns the OU with the exact name directly under parentID,
// or nil when no such OU exists. Name matching is one level deep only.
func (c *Client) FindOUByName(ctx context.Context, parentID, name string) (*OU, error) {
	ous, err := c.ListOUs(ctx, parentID)
	if err != nil {
		return nil, err
	}
	for i := range ous {
		if ous[i].Name == name {
			return &ous[i], nil
		}
	}
	return nil, nil
}

// CreateAccount submits an asynchronous member-account creation request with
// IAM billing access enabled, returning the tracking status.
func (c *Client) CreateAccount(ctx context.Context, name, email, roleName string) (*CreateStatus, error) {
	out, err := c.api.CreateAccount(ctx, &awsorgs.CreateAccountInput{
		AccountName:            aws.String(name),
		Email:                  aws.String(email),
		RoleName:               aws.String(roleName),
		IamUserAccessToBilling: orgtypes.IAMUserAccessToBillingAllow,
	})
	if err != nil {
		return nil, fmt.Errorf("CreateAccount(%s): %w", name, err)
	}
	return statusFromSDK(out.CreateAccountStatus), nil
}

func (c *Client) CreateAccountStatus(ctx context.Context, requestID string) (*CreateStatus, error) {
	out, err := c.api.DescribeCreateAccountStatus(ctx, &awsorgs.DescribeCreateAccountStatusInput{
		CreateAccountRequestId: aws.String(requestID),
	})
	if err != nil {
		return nil, fmt.Errorf("DescribeCreateAccountStatus(%s): %w", requestID, err)
	}
	return statusFromSDK(out.CreateAccountStatus), nil
}

// FindPendingCreation looks for an in-progress creation request for the
// given account name. Returns nil when none is pending.
func (c *Client) FindPendingCreation(ctx context.Context, accountName string) (*CreateStatus, error) {
	var token *string

	for {
		out, err := c.api.ListCreateAccountStatus(ctx, &awsorgs.ListCreateAccountStatusInput{
			States:    []orgtypes.CreateAccountState{orgtypes.CreateAccountStateInProgress},
			NextToken: token,
		})
		if err != nil {
			return nil, fmt.Errorf("ListCreateAccountStatus: %w", err)
		}

		for _, st := range out.CreateAccountStatuses {
			if aws.ToString(st.AccountName) == accountName {
				return statusFromSDK(&st), nil
			}
		}

		if out.NextToken == nil {
			break
		}
		token = out.NextToken
	}

	return nil, nil
}

func (c *Client) MoveAccount(ctx context.Context, accountID, sourceParentID, destParentID string) error {
	_, err := c.api.MoveAccount(ctx, &awsorgs.MoveAccountInput{
		AccountId:           aws.String(accountID),
		SourceParentId:      aws.String(sourceParentID),
		DestinationParentId: aws.String(destParentID),
	})
	if err != nil {
		return fmt.Errorf("MoveAccount(%s): %w", accountID, err)
	}
	return nil
}

func organizationFromSDK(org *orgtypes.Organization) *Organization {
	if org == nil {
		return &Organization{}
	}
	return &Organization{
		ID:         aws.ToString(org.Id),
		ARN:        aws.ToString(org.Arn),
		FeatureSet: string(org.FeatureSet),
	}
}

func ouFromSDK(ou *orgtypes.OrganizationalUnit) *OU {
	if ou == nil {
		return &OU{}
	}
	return &OU{
		ID:   aws.ToString(ou.Id),
		Name: aws.ToString(ou.Name),
		ARN:  aws.ToString(ou.Arn),
	}
}

func statusFromSDK(st *orgtypes.CreateAccountStatus) *CreateStatus {
	if st == nil {
		return &CreateStatus{}
	}
	return &CreateStatus{
		RequestID:     aws.ToString(st.Id),
		AccountName:   aws.ToString(st.AccountName),
		AccountID:     aws.ToString(st.AccountId),
		State:         string(st.State),
		FailureReason: string(st.FailureReason),
	}
}
