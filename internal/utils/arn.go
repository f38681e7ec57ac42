package utils

import (
	"fmt"
	"strings"
)

// RoleARN builds the deterministic ARN for an IAM role in the given account.
func RoleARN(accountID, roleName string) string {
	return fmt.Sprintf("arn:aws:iam::%s:role/%s", accountID, roleName)
}

// RootPrincipalARN builds the account-root principal used in trust policies.
func RootPrincipalARN(accountID string) string {
	return fmt.Sprintf("arn:aws:iam::%s:root", accountID)
}

// ShortName extracts the last segment after "/" from an ARN or path.
// Returns the input unchanged if no "/" is found.
func ShortName(arn string) string {
	if parts := strings.Split(arn, "/"); len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return arn
}
