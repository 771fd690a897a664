package assistant

import (
	"context"

	billingapp "beacon/internal/application/billing"
	"beacon/internal/domain/billing"
	"beacon/internal/shared/logger"
)

// ChatCommand is one metered assistant request.
type ChatCommand struct {
	UserID     string
	OrgSID     string
	SessionSID string
	Message    string
}

// ChatService wraps the orchestrator with the entitlement gate: subscription,
// chat feature flag, and chat quota are checked before any model call, and
// one chat usage event is recorded after a successful run.
type ChatService struct {
	gate         *billingapp.Gate
	orchestrator *Orchestrator
	logger       logger.Interface
}

func NewChatService(gate *billingapp.Gate, orchestrator *Orchestrator, logger logger.Interface) *ChatService {
	return &ChatService{
		gate:         gate,
		orchestrator: orchestrator,
		logger:       logger,
	}
}

func (s *ChatService) Chat(ctx context.Context, cmd ChatCommand) (*Result, error) {
	sub, limits, err := s.gate.EnsureActiveSubscription(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.AssertPlanAllowsFeature(limits, billing.FeatureChat); err != nil {
		return nil, err
	}
	if err := s.gate.AssertUsageWithinLimit(ctx, cmd.OrgSID, sub, limits, billing.MetricChat); err != nil {
		return nil, err
	}

	result, err := s.orchestrator.Run(ctx, cmd.UserID, cmd.OrgSID, cmd.SessionSID, cmd.Message)
	if err != nil {
		return nil, err
	}

	// Usage is recorded only for completed turns; a lost event undercounts
	// rather than blocking the reply.
	if err := s.gate.RecordUsageEvent(ctx, cmd.OrgSID, billing.MetricChat); err != nil {
		s.logger.Warnw("failed to record chat usage", "error", err, "org_sid", cmd.OrgSID)
	}

	return result, nil
}
