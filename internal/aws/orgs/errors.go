package orgs

import (
	"errors"

	orgtypes "github.com/aws/aws-sdk-go-v2/service/organizations/types"
	"github.com/aws/smithy-go"
)

// IsNotInUse reports whether the caller's account is not part of an
// Organization yet.
func IsNotInUse(err error) bool {
	var e *orgtypes.AWSOrganizationsNotInUseException
	return errors.As(err, &e)
}

// IsAlreadyInOrganization reports whether CreateOrganization failed because
// the account is already a member of one.
func IsAlreadyInOrganization(err error) bool {
	var e *orgtypes.AlreadyInOrganizationException
	return errors.As(err, &e)
}

// IsDuplicateOUName reports whether an OU with the requested name already
// exists under the same parent.
func IsDuplicateOUName(err error) bool {
	var e *orgtypes.DuplicateOrganizationalUnitException
	return errors.As(err, &e)
}

// IsFinalizing reports whether the Organization is still finalizing a
// previous account-creation request.
func IsFinalizing(err error) bool {
	var e *orgtypes.FinalizingOrganizationException
	return errors.As(err, &e)
}

// IsAccessDenied matches both the modeled Organizations exception and the
// generic AccessDeniedException code other services return.
func IsAccessDenied(err error) bool {
	var e *orgtypes.AccessDeniedException
	if errors.As(err, &e) {
		return true
	}
	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "AccessDeniedException"
}
