package campaign

import (
	"fmt"
	"time"

	"beacon/internal/shared/biztime"
	"beacon/internal/shared/id"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusArchived:
		return true
	}
	return false
}

// AudienceFilter narrows the creator pool a campaign targets. All fields
// are optional; nil means no constraint.
type AudienceFilter struct {
	MinFollowers  *int
	MaxFollowers  *int
	MinEngagement *float64
	Locations     []string
}

// Campaign is an outreach campaign draft scoped to one organization. The
// assistant creates campaigns in draft status; activation happens outside
// this core.
type Campaign struct {
	id         uint
	sid        string
	orgSID     string
	name       string
	objective  string
	platforms  []string
	niches     []string
	budgetCents *uint64
	currency   string
	startDate  *time.Time
	endDate    *time.Time
	audience   AudienceFilter
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewCampaign(orgSID, name, objective string, platforms, niches []string) (*Campaign, error) {
	if orgSID == "" {
		return nil, fmt.Errorf("organization SID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("campaign name is required")
	}
	if len(name) > 200 {
		return nil, fmt.Errorf("campaign name too long (max 200 characters)")
	}
	if objective == "" {
		return nil, fmt.Errorf("campaign objective is required")
	}
	if len(platforms) == 0 {
		return nil, fmt.Errorf("at least one platform is required")
	}
	if len(niches) == 0 {
		return nil, fmt.Errorf("at least one niche is required")
	}

	now := biztime.NowUTC()
	return &Campaign{
		sid:       id.NewCampaignID(),
		orgSID:    orgSID,
		name:      name,
		objective: objective,
		platforms: platforms,
		niches:    niches,
		status:    StatusDraft,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructCampaign(cid uint, sid, orgSID, name, objective string,
	platforms, niches []string, budgetCents *uint64, currency string,
	startDate, endDate *time.Time, audience AudienceFilter, status Status,
	createdAt, updatedAt time.Time) (*Campaign, error) {

	if cid == 0 {
		return nil, fmt.Errorf("campaign ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid campaign status: %s", status)
	}
	return &Campaign{
		id:          cid,
		sid:         sid,
		orgSID:      orgSID,
		name:        name,
		objective:   objective,
		platforms:   platforms,
		niches:      niches,
		budgetCents: budgetCents,
		currency:    currency,
		startDate:   startDate,
		endDate:     endDate,
		audience:    audience,
		status:      status,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (c *Campaign) ID() uint {
	return c.id
}

func (c *Campaign) SID() string {
	return c.sid
}

func (c *Campaign) OrgSID() string {
	return c.orgSID
}

func (c *Campaign) Name() string {
	return c.name
}

func (c *Campaign) Objective() string {
	return c.objective
}

func (c *Campaign) Platforms() []string {
	return c.platforms
}

func (c *Campaign) Niches() []string {
	return c.niches
}

func (c *Campaign) BudgetCents() *uint64 {
	return c.budgetCents
}

func (c *Campaign) Currency() string {
	return c.currency
}

func (c *Campaign) StartDate() *time.Time {
	return c.startDate
}

func (c *Campaign) EndDate() *time.Time {
	return c.endDate
}

func (c *Campaign) Audience() AudienceFilter {
	return c.audience
}

func (c *Campaign) Status() Status {
	return c.status
}

func (c *Campaign) CreatedAt() time.Time {
	return c.createdAt
}

func (c *Campaign) UpdatedAt() time.Time {
	return c.updatedAt
}

// SetID sets the internal ID (only for persistence layer use)
func (c *Campaign) SetID(cid uint) error {
	if c.id != 0 {
		return fmt.Errorf("campaign ID is already set")
	}
	if cid == 0 {
		return fmt.Errorf("campaign ID cannot be zero")
	}
	c.id = cid
	return nil
}

// SetBudget assigns an optional budget in minor currency units.
func (c *Campaign) SetBudget(cents uint64, currency string) error {
	if currency == "" {
		currency = "USD"
	}
	if len(currency) != 3 {
		return fmt.Errorf("invalid currency code: %s", currency)
	}
	c.budgetCents = &cents
	c.currency = currency
	c.updatedAt = biztime.NowUTC()
	return nil
}

// SetSchedule assigns optional campaign dates. End must not precede start.
func (c *Campaign) SetSchedule(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("campaign end date precedes start date")
	}
	c.startDate = start
	c.endDate = end
	c.updatedAt = biztime.NowUTC()
	return nil
}

// SetAudience assigns the audience filter.
func (c *Campaign) SetAudience(audience AudienceFilter) error {
	if audience.MinFollowers != nil && audience.MaxFollowers != nil &&
		*audience.MaxFollowers < *audience.MinFollowers {
		return fmt.Errorf("max followers below min followers")
	}
	c.audience = audience
	c.updatedAt = biztime.NowUTC()
	return nil
}

func (c *Campaign) IsDraft() bool {
	return c.status == StatusDraft
}
