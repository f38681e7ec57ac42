package constants

import "time"

// OrganizationsRegion is where all Organizations API calls are sent.
// The Organizations control plane only exists in us-east-1.
const OrganizationsRegion = "us-east-1"

const (
	// DefaultRoleName is the administration role assumed when none is given.
	DefaultRoleName = "OrgAdminRole"

	// ManagedPolicyARN is attached to every role this tool creates.
	ManagedPolicyARN = "arn:aws:iam::aws:policy/AWSOrganizationsFullAccess"

	RoleSessionName = "orgctl-session"
	SessionDuration = time.Hour
)

// Account creation is asynchronous on the AWS side; these bound the wait.
const (
	CreatePollInterval    = 6 * time.Second
	CreatePollMaxAttempts = 100
)
