package identity

import (
	"fmt"
	"strings"
	"time"

	"beacon/internal/shared/biztime"
	"beacon/internal/shared/id"
)

// DefaultOrganizationName is used when the principal carries no display metadata.
const DefaultOrganizationName = "Personal Workspace"

// Organization is the tenant and billing boundary. Every campaign, chat
// session, and usage event is scoped to exactly one organization.
type Organization struct {
	id        uint
	sid       string
	name      string
	createdAt time.Time
	updatedAt time.Time
}

// NewOrganization creates a new organization. An empty name falls back to
// the default workspace name.
func NewOrganization(name string) (*Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultOrganizationName
	}
	if len(name) > 120 {
		return nil, fmt.Errorf("organization name too long (max 120 characters)")
	}

	now := biztime.NowUTC()
	return &Organization{
		sid:       id.NewOrganizationID(),
		name:      name,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructOrganization rebuilds an organization from persistence.
func ReconstructOrganization(oid uint, sid, name string, createdAt, updatedAt time.Time) (*Organization, error) {
	if oid == 0 {
		return nil, fmt.Errorf("organization ID cannot be zero")
	}
	if sid == "" {
		return nil, fmt.Errorf("organization SID is required")
	}
	return &Organization{
		id:        oid,
		sid:       sid,
		name:      name,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (o *Organization) ID() uint {
	return o.id
}

// SID returns the external Stripe-style identifier (org_xxx).
func (o *Organization) SID() string {
	return o.sid
}

func (o *Organization) Name() string {
	return o.name
}

func (o *Organization) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Organization) UpdatedAt() time.Time {
	return o.updatedAt
}

// SetID sets the internal ID (only for persistence layer use)
func (o *Organization) SetID(oid uint) error {
	if o.id != 0 {
		return fmt.Errorf("organization ID is already set")
	}
	if oid == 0 {
		return fmt.Errorf("organization ID cannot be zero")
	}
	o.id = oid
	return nil
}

func (o *Organization) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("organization name is required")
	}
	if len(name) > 120 {
		return fmt.Errorf("organization name too long (max 120 characters)")
	}
	o.name = name
	o.updatedAt = biztime.NowUTC()
	return nil
}
