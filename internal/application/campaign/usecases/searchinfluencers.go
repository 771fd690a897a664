package usecases

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"beacon/internal/application/assistant"
	billingapp "beacon/internal/application/billing"
	"beacon/internal/domain/billing"
	"beacon/internal/domain/campaign"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
)

// SearchInfluencersCommand triggers a gated discovery search for an existing
// campaign, outside the assistant conversation.
type SearchInfluencersCommand struct {
	UserID      string
	OrgSID      string
	CampaignSID string
	Query       string
	Filters     json.RawMessage
}

type SearchInfluencersUseCase struct {
	gate         *billingapp.Gate
	campaignRepo campaign.Repository
	discovery    assistant.DiscoveryClient
	searchCache  assistant.SearchResultCache
	logger       logger.Interface
}

func NewSearchInfluencersUseCase(
	gate *billingapp.Gate,
	campaignRepo campaign.Repository,
	discovery assistant.DiscoveryClient,
	searchCache assistant.SearchResultCache,
	logger logger.Interface,
) *SearchInfluencersUseCase {
	return &SearchInfluencersUseCase{
		gate:         gate,
		campaignRepo: campaignRepo,
		discovery:    discovery,
		searchCache:  searchCache,
		logger:       logger,
	}
}

func (uc *SearchInfluencersUseCase) Execute(ctx context.Context, cmd SearchInfluencersCommand) (json.RawMessage, error) {
	if cmd.Query == "" {
		return nil, errors.NewValidationError("query is required")
	}

	sub, limits, err := uc.gate.EnsureActiveSubscription(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.gate.AssertPlanAllowsFeature(limits, billing.FeatureSearch); err != nil {
		return nil, err
	}
	if err := uc.gate.AssertUsageWithinLimit(ctx, cmd.OrgSID, sub, limits, billing.MetricSearch); err != nil {
		return nil, err
	}

	if _, err := uc.campaignRepo.GetByOrgAndSID(ctx, cmd.OrgSID, cmd.CampaignSID); err != nil {
		if stderrors.Is(err, campaign.ErrCampaignNotFound) {
			return nil, errors.NewNotFoundError("campaign not found")
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	results, err := uc.discovery.Search(ctx, assistant.SearchRequest{
		OrgSID:      cmd.OrgSID,
		CampaignSID: cmd.CampaignSID,
		Query:       cmd.Query,
		Filters:     cmd.Filters,
	})
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("discovery search failed", "error", err, "campaign_sid", cmd.CampaignSID)
		return nil, errors.NewUpstreamError("discovery service")
	}

	if err := uc.searchCache.Set(ctx, cmd.OrgSID, cmd.CampaignSID, cmd.Query, results); err != nil {
		uc.logger.Warnw("failed to cache search results", "error", err, "campaign_sid", cmd.CampaignSID)
	}

	if err := uc.gate.RecordUsageEvent(ctx, cmd.OrgSID, billing.MetricSearch); err != nil {
		uc.logger.Warnw("failed to record search usage", "error", err, "org_sid", cmd.OrgSID)
	}

	return results, nil
}
