package identity

import "context"

// OrganizationRepository defines persistence for organizations
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	GetBySID(ctx context.Context, sid string) (*Organization, error)
}

// ProfileRepository defines persistence for principal profiles.
// Upsert must be conflict-safe on the unique user_id column: concurrent
// first-time bootstraps race to insert, and exactly one row may win.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Upsert(ctx context.Context, profile *Profile) error
}

// MembershipRepository defines persistence for organization memberships.
// Upsert is idempotent on the (org_sid, user_id) composite key.
type MembershipRepository interface {
	Upsert(ctx context.Context, membership *Membership) error
	GetByOrgAndUser(ctx context.Context, orgSID, userID string) (*Membership, error)
	ListByOrg(ctx context.Context, orgSID string) ([]*Membership, error)
}

// BootstrapRepository runs the first-time tenant bootstrap atomically:
// organization creation, profile upsert, and owner membership happen in a
// single transaction so a partial failure never leaves an organization
// without an owner, and the unique profile constraint guarantees at most
// one organization per first-time principal.
type BootstrapRepository interface {
	EnsureTenant(ctx context.Context, userID, displayName, orgName string) (*Profile, error)
}
