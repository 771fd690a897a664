package messaging

import "context"

// OutreachMessage is one outbound message to a creator. Delivery mechanics
// (channel selection, templating, retries) live in the collaborator.
type OutreachMessage struct {
	OrgSID      string
	CampaignSID string
	CreatorID   string
	Subject     string
	Body        string
}

// Sender delivers outreach messages through the messaging collaborator.
type Sender interface {
	Send(ctx context.Context, msg OutreachMessage) error
}
