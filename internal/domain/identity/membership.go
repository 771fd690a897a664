package identity

import (
	"fmt"
	"time"

	"beacon/internal/shared/biztime"
)

// MemberRole is the role a principal holds inside an organization.
type MemberRole string

const (
	RoleOwner  MemberRole = "owner"
	RoleMember MemberRole = "member"
)

func (r MemberRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleMember:
		return true
	}
	return false
}

// Membership links a principal to an organization with a role. The
// (orgSID, userID) pair is unique; every bootstrapped organization carries
// at least one owner membership.
type Membership struct {
	id        uint
	orgSID    string
	userID    string
	role      MemberRole
	createdAt time.Time
}

func NewMembership(orgSID, userID string, role MemberRole) (*Membership, error) {
	if orgSID == "" {
		return nil, fmt.Errorf("organization SID is required")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role: %s", role)
	}

	return &Membership{
		orgSID:    orgSID,
		userID:    userID,
		role:      role,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructMembership(mid uint, orgSID, userID string, role MemberRole, createdAt time.Time) (*Membership, error) {
	if mid == 0 {
		return nil, fmt.Errorf("membership ID cannot be zero")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid member role: %s", role)
	}
	return &Membership{
		id:        mid,
		orgSID:    orgSID,
		userID:    userID,
		role:      role,
		createdAt: createdAt,
	}, nil
}

func (m *Membership) ID() uint {
	return m.id
}

func (m *Membership) OrgSID() string {
	return m.orgSID
}

func (m *Membership) UserID() string {
	return m.userID
}

func (m *Membership) Role() MemberRole {
	return m.role
}

func (m *Membership) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Membership) IsOwner() bool {
	return m.role == RoleOwner
}
