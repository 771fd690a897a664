package campaign

import "context"

// Repository defines persistence for campaigns
type Repository interface {
	Create(ctx context.Context, c *Campaign) error
	// GetByOrgAndSID enforces tenant scoping on reads.
	GetByOrgAndSID(ctx context.Context, orgSID, sid string) (*Campaign, error)
	ListByOrg(ctx context.Context, orgSID string) ([]*Campaign, error)
}
