package sts

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
)

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error)
	AssumeRole(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error)
}

// Identity describes the caller behind the current credentials.
type Identity struct {
	AccountID string
	ARN       string
	UserID    string
}

// Credentials is a temporary credential triple with its expiry.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	Expiration      time.Time
}

type Client struct {
	api STSAPI
}

func NewClient(api STSAPI) *Client {
	return &Client{api: api}
}

func (c *Client) CallerIdentity(ctx context.Context) (*Identity, error) {
	out, err := c.api.GetCallerIdentity(ctx, &awssts.GetCallerIdentityInput{})
	if err != nil {
		return nil, fmt.Errorf("GetCallerIdentity: %w", err)
	}
	return &Identity{
		AccountID: aws.ToString(out.Account),
		ARN:       aws.ToString(out.Arn),
		UserID:    aws.ToString(out.UserId),
	}, nil
}

// AssumeRole exchanges the caller's identity for temporary credentials
// scoped to the given role.
func (c *Client) AssumeRole(ctx context.Context, roleARN, sessionName string, duration time.Duration) (*Credentials, error) {
	out, err := c.api.AssumeRole(ctx, &awssts.AssumeRoleInput{
		RoleArn:         aws.String(roleARN),
		RoleSessionName: aws.String(sessionName),
		DurationSeconds: aws.Int32(int32(duration.Seconds())),
	})
	if err != nil {
		return nil, fmt.Errorf("AssumeRole(%s): %w", roleARN, err)
	}

	creds := out.Credentials
	if creds == nil {
		return nil, fmt.Errorf("AssumeRole(%s): response contained no credentials", roleARN)
	}

	var expiration time.Time
	if creds.Expiration != nil {
		expiration = *creds.Expiration
	}
	return &Credentials{
		AccessKeyID:     aws.ToString(creds.AccessKeyId),
		SecretAccessKey: aws.ToString(creds.SecretAccessKey),
		SessionToken:    aws.ToString(creds.SessionToken),
		Expiration:      expiration,
	}, nil
}
