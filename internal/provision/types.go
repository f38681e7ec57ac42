package provision

import "fmt"

// CredentialSet is the result of a successful provisioning run: the assumed
// role, where it lives, and the temporary credential triple.
type CredentialSet struct {
	RoleName        string `json:"role_name"`
	RoleARN         string `json:"role_arn"`
	AccountID       string `json:"account_id"`
	OrganizationID  string `json:"organization_id"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key"`
	SessionToken    string `json:"session_token"`
	Region          string `json:"region"`
	ExpiresAt       string `json:"expires_at"`
}

// ValidationError reports a missing or empty required field, raised before
// any network call.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// PermissionError means the caller's credentials cannot administer the
// Organization. The HTTP endpoint maps it to 403.
type PermissionError struct {
	Msg string
}

func (e *PermissionError) Error() string {
	return e.Msg
}
