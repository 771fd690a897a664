package campaign

import "errors"

var (
	// ErrCampaignNotFound is returned when a campaign is not found
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrWrongOrganization is returned when a campaign belongs to a different tenant
	ErrWrongOrganization = errors.New("campaign belongs to a different organization")
)
