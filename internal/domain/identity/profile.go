package identity

import (
	"fmt"
	"time"

	"beacon/internal/shared/biztime"
)

// Profile is the 1:1 record attached to each authenticated principal. The
// user ID is the principal's external identifier issued by the identity
// collaborator; it is unique across profiles. CurrentOrgSID is empty until
// tenant bootstrap has completed for the principal.
type Profile struct {
	id            uint
	userID        string
	displayName   string
	currentOrgSID string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewProfile(userID, displayName string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	now := biztime.NowUTC()
	return &Profile{
		userID:      userID,
		displayName: displayName,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructProfile(pid uint, userID, displayName, currentOrgSID string, createdAt, updatedAt time.Time) (*Profile, error) {
	if pid == 0 {
		return nil, fmt.Errorf("profile ID cannot be zero")
	}
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Profile{
		id:            pid,
		userID:        userID,
		displayName:   displayName,
		currentOrgSID: currentOrgSID,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}, nil
}

func (p *Profile) ID() uint {
	return p.id
}

func (p *Profile) UserID() string {
	return p.userID
}

func (p *Profile) DisplayName() string {
	return p.displayName
}

// CurrentOrgSID returns the principal's current organization, or empty when
// bootstrap has not run yet.
func (p *Profile) CurrentOrgSID() string {
	return p.currentOrgSID
}

func (p *Profile) HasOrganization() bool {
	return p.currentOrgSID != ""
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

// SetID sets the internal ID (only for persistence layer use)
func (p *Profile) SetID(pid uint) error {
	if p.id != 0 {
		return fmt.Errorf("profile ID is already set")
	}
	if pid == 0 {
		return fmt.Errorf("profile ID cannot be zero")
	}
	p.id = pid
	return nil
}

// AttachOrganization assigns the principal's current organization.
func (p *Profile) AttachOrganization(orgSID string) error {
	if orgSID == "" {
		return fmt.Errorf("organization SID is required")
	}
	p.currentOrgSID = orgSID
	p.updatedAt = biztime.NowUTC()
	return nil
}
