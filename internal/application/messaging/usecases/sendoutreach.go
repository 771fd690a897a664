package usecases

import (
	"context"

	billingapp "beacon/internal/application/billing"
	"beacon/internal/application/messaging"
	"beacon/internal/domain/billing"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
)

// SendOutreachCommand sends one message to a creator. Messaging is gated by
// the plan feature flag but carries no usage metric.
type SendOutreachCommand struct {
	UserID      string
	OrgSID      string
	CampaignSID string
	CreatorID   string
	Subject     string
	Body        string
}

type SendOutreachUseCase struct {
	gate   *billingapp.Gate
	sender messaging.Sender
	logger logger.Interface
}

func NewSendOutreachUseCase(gate *billingapp.Gate, sender messaging.Sender, logger logger.Interface) *SendOutreachUseCase {
	return &SendOutreachUseCase{
		gate:   gate,
		sender: sender,
		logger: logger,
	}
}

func (uc *SendOutreachUseCase) Execute(ctx context.Context, cmd SendOutreachCommand) error {
	if cmd.CreatorID == "" {
		return errors.NewValidationError("creator ID is required")
	}
	if cmd.Body == "" {
		return errors.NewValidationError("message body is required")
	}

	_, limits, err := uc.gate.EnsureActiveSubscription(ctx, cmd.UserID)
	if err != nil {
		return err
	}
	if err := uc.gate.AssertPlanAllowsFeature(limits, billing.FeatureMessaging); err != nil {
		return err
	}

	if err := uc.sender.Send(ctx, messaging.OutreachMessage{
		OrgSID:      cmd.OrgSID,
		CampaignSID: cmd.CampaignSID,
		CreatorID:   cmd.CreatorID,
		Subject:     cmd.Subject,
		Body:        cmd.Body,
	}); err != nil {
		if errors.IsAppError(err) {
			return err
		}
		uc.logger.Errorw("outreach send failed", "error", err, "org_sid", cmd.OrgSID, "creator_id", cmd.CreatorID)
		return errors.NewUpstreamError("messaging service")
	}

	uc.logger.Infow("outreach message dispatched",
		"org_sid", cmd.OrgSID,
		"campaign_sid", cmd.CampaignSID,
		"creator_id", cmd.CreatorID,
	)

	return nil
}
