// Package account creates member accounts and files them into an OU.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	awsclient "tasnim.dev/orgctl/internal/aws"
	awsorgs "tasnim.dev/orgctl/internal/aws/orgs"
	"tasnim.dev/orgctl/internal/constants"
	"tasnim.dev/orgctl/internal/orgunit"
	"tasnim.dev/orgctl/internal/provision"
)

// ErrWaitTimeout means the creation request was still pending when the
// polling budget ran out. Distinct from a provider-reported failure; the
// request may yet complete on the AWS side.
var ErrWaitTimeout = errors.New("account creation still in progress after polling limit")

var errStillCreating = errors.New("account creation in progress")

// FailedError carries the provider's stated reason for a creation request
// that reached the FAILED state.
type FailedError struct {
	Reason string
}

func (e *FailedError) Error() string {
	return fmt.Sprintf("account creation failed: %s", e.Reason)
}

type CreateInput struct {
	Name     string
	Email    string
	OU       string // OU name or literal OU ID
	RoleName string
}

// Result merges the provisioned credentials with the new account's
// identifiers. The account_id field is the member account, not the
// management account the credentials belong to.
type Result struct {
	provision.CredentialSet
	AccountName     string `json:"account_name"`
	AccountID       string `json:"account_id"`
	AccountEmail    string `json:"account_email"`
	OUID            string `json:"ou_id"`
	CreateRequestID string `json:"create_request_id"`
}

type Creator struct {
	Provision  func(ctx context.Context, roleName string) (*provision.CredentialSet, error)
	OrgsClient func(ctx context.Context, creds *provision.CredentialSet) (*awsorgs.Client, error)

	PollInterval    time.Duration
	MaxPollAttempts uint
	Log             zerolog.Logger
}

func NewCreator(svc *awsclient.ServiceClient, log zerolog.Logger) *Creator {
	p := provision.New(svc, log)
	return &Creator{
		Provision: p.Provision,
		OrgsClient: func(ctx context.Context, creds *provision.CredentialSet) (*awsorgs.Client, error) {
			return awsclient.NewAssumedOrgsClient(ctx, creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
		},
		PollInterval:    constants.CreatePollInterval,
		MaxPollAttempts: constants.CreatePollMaxAttempts,
		Log:             log,
	}
}

// Create provisions an admin session, submits the account-creation request,
// waits for it to reach a terminal state and moves the account from the
// root into the target OU.
func (c *Creator) Create(ctx context.Context, in CreateInput) (*Result, error) {
	switch {
	case in.Name == "":
		return nil, &provision.ValidationError{Field: "account_name"}
	case in.Email == "":
		return nil, &provision.ValidationError{Field: "account_email"}
	case in.OU == "":
		return nil, &provision.ValidationError{Field: "ou"}
	}

	role := in.RoleName
	if role == "" {
		role = constants.DefaultRoleName
	}

	creds, err := c.Provision(ctx, role)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("role_arn", creds.RoleARN).Msg("assumed admin role")

	client, err := c.OrgsClient(ctx, creds)
	if err != nil {
		return nil, err
	}

	ouID, err := orgunit.ResolveID(ctx, client, in.OU)
	if err != nil {
		return nil, fmt.Errorf("resolving OU %q: %w", in.OU, err)
	}
	c.Log.Debug().Str("ou_id", ouID).Msg("resolved target OU")

	requestID, err := c.submit(ctx, client, in.Name, in.Email, role)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("create_request_id", requestID).Msg("account creation started")

	accountID, err := c.waitForCompletion(ctx, client, requestID)
	if err != nil {
		return nil, err
	}
	c.Log.Debug().Str("account_id", accountID).Msg("account created")

	rootID, err := client.RootID(ctx)
	if err != nil {
		return nil, err
	}
	if err := client.MoveAccount(ctx, accountID, rootID, ouID); err != nil {
		return nil, err
	}
	c.Log.Debug().Str("account_id", accountID).Str("ou_id", ouID).Msg("account moved into OU")

	return &Result{
		CredentialSet:   *creds,
		AccountName:     in.Name,
		AccountID:       accountID,
		AccountEmail:    in.Email,
		OUID:            ouID,
		CreateRequestID: requestID,
	}, nil
}

// submit starts the creation request. When the Organization is still
// finalizing an earlier request for this account, the pending request is
// adopted instead of failing.
func (c *Creator) submit(ctx context.Context, client *awsorgs.Client, name, email, role string) (string, error) {
	st, err := client.CreateAccount(ctx, name, email, role)
	if err == nil {
		return st.RequestID, nil
	}
	if !awsorgs.IsFinalizing(err) {
		return "", err
	}

	pending, lookupErr := client.FindPendingCreation(ctx, name)
	if lookupErr != nil {
		return "", lookupErr
	}
	if pending == nil {
		return "", err
	}
	c.Log.Debug().Str("create_request_id", pending.RequestID).Msg("adopting in-flight creation request")
	return pending.RequestID, nil
}

func (c *Creator) waitForCompletion(ctx context.Context, client *awsorgs.Client, requestID string) (string, error) {
	operation := func() (string, error) {
		st, err := client.CreateAccountStatus(ctx, requestID)
		if err != nil {
			return "", backoff.Permanent(err)
		}
		switch st.State {
		case awsorgs.CreateStateSucceeded:
			return st.AccountID, nil
		case awsorgs.CreateStateFailed:
			return "", backoff.Permanent(&FailedError{Reason: st.FailureReason})
		}
		c.Log.Debug().Str("state", st.State).Msg("waiting for account")
		return "", errStillCreating
	}

	accountID, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.PollInterval)),
		backoff.WithMaxTries(c.MaxPollAttempts),
	)
	if err != nil {
		if errors.Is(err, errStillCreating) {
			return "", ErrWaitTimeout
		}
		return "", err
	}
	return accountID, nil
}
