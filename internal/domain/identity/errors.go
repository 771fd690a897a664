package identity

import "errors"

var (
	// ErrProfileNotFound is returned when no profile exists for a principal
	ErrProfileNotFound = errors.New("profile not found")

	// ErrOrganizationNotFound is returned when an organization is not found
	ErrOrganizationNotFound = errors.New("organization not found")

	// ErrMembershipNotFound is returned when a membership is not found
	ErrMembershipNotFound = errors.New("membership not found")

	// ErrNotAMember is returned when a principal does not belong to the organization
	ErrNotAMember = errors.New("user is not a member of the organization")
)
