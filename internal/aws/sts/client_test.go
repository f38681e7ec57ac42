package sts

import (
	"context"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awssts "github.com/aws/aws-sdk-go-v2/service/sts"
	ststypes "github.com/aws/aws-sdk-go-v2/service/sts/types"
)

type mockSTSAPI struct {
	getCallerIdentityFunc func(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error)
	assumeRoleFunc        func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error)
}

func (m *mockSTSAPI) GetCallerIdentity(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error) {
	return m.getCallerIdentityFunc(ctx, params, optFns...)
}

func (m *mockSTSAPI) AssumeRole(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
	return m.assumeRoleFunc(ctx, params, optFns...)
}

func TestCallerIdentity(t *testing.T) {
	mock := &mockSTSAPI{
		getCallerIdentityFunc: func(ctx context.Context, params *awssts.GetCallerIdentityInput, optFns ...func(*awssts.Options)) (*awssts.GetCallerIdentityOutput, error) {
			return &awssts.GetCallerIdentityOutput{
				Account: awssdk.String("123456789012"),
				Arn:     awssdk.String("arn:aws:iam::123456789012:user/admin"),
				UserId:  awssdk.String("AIDA1234"),
			}, nil
		},
	}

	client := NewClient(mock)
	id, err := client.CallerIdentity(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.AccountID != "123456789012" {
		t.Errorf("AccountID = %s, want 123456789012", id.AccountID)
	}
	if id.ARN != "arn:aws:iam::123456789012:user/admin" {
		t.Errorf("ARN = %s", id.ARN)
	}
}

func TestAssumeRole(t *testing.T) {
	expiry := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			if awssdk.ToString(params.RoleArn) != "arn:aws:iam::123456789012:role/OrgAdminRole" {
				t.Errorf("RoleArn = %s", awssdk.ToString(params.RoleArn))
			}
			if awssdk.ToString(params.RoleSessionName) != "orgctl-session" {
				t.Errorf("RoleSessionName = %s", awssdk.ToString(params.RoleSessionName))
			}
			if awssdk.ToInt32(params.DurationSeconds) != 3600 {
				t.Errorf("DurationSeconds = %d, want 3600", awssdk.ToInt32(params.DurationSeconds))
			}
			return &awssts.AssumeRoleOutput{
				Credentials: &ststypes.Credentials{
					AccessKeyId:     awssdk.String("ASIAEXAMPLE"),
					SecretAccessKey: awssdk.String("secret"),
					SessionToken:    awssdk.String("token"),
					Expiration:      &expiry,
				},
			}, nil
		},
	}

	client := NewClient(mock)
	creds, err := client.AssumeRole(context.Background(), "arn:aws:iam::123456789012:role/OrgAdminRole", "orgctl-session", time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.AccessKeyID != "ASIAEXAMPLE" {
		t.Errorf("AccessKeyID = %s", creds.AccessKeyID)
	}
	if !creds.Expiration.Equal(expiry) {
		t.Errorf("Expiration = %v, want %v", creds.Expiration, expiry)
	}
}

func TestAssumeRole_NoCredentials(t *testing.T) {
	mock := &mockSTSAPI{
		assumeRoleFunc: func(ctx context.Context, params *awssts.AssumeRoleInput, optFns ...func(*awssts.Options)) (*awssts.AssumeRoleOutput, error) {
			return &awssts.AssumeRoleOutput{}, nil
		},
	}

	client := NewClient(mock)
	if _, err := client.AssumeRole(context.Background(), "arn", "s", time.Hour); err == nil {
		t.Fatal("expected error for empty credentials")
	}
}
