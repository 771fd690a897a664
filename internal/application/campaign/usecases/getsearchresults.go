package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"beacon/internal/application/assistant"
	billingapp "beacon/internal/application/billing"
	"beacon/internal/domain/billing"
	"beacon/internal/domain/campaign"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
)

// GetSearchResultsCommand replays the latest cached discovery payload for a
// campaign without re-hitting the discovery collaborator.
type GetSearchResultsCommand struct {
	UserID      string
	OrgSID      string
	CampaignSID string
}

type GetSearchResultsUseCase struct {
	gate         *billingapp.Gate
	campaignRepo campaign.Repository
	searchCache  assistant.SearchResultCache
	logger       logger.Interface
}

func NewGetSearchResultsUseCase(
	gate *billingapp.Gate,
	campaignRepo campaign.Repository,
	searchCache assistant.SearchResultCache,
	logger logger.Interface,
) *GetSearchResultsUseCase {
	return &GetSearchResultsUseCase{
		gate:         gate,
		campaignRepo: campaignRepo,
		searchCache:  searchCache,
		logger:       logger,
	}
}

// Execute returns the cached payload. Replays are not metered: the search
// quota was spent when the payload was produced.
func (uc *GetSearchResultsUseCase) Execute(ctx context.Context, cmd GetSearchResultsCommand) (*assistant.CachedSearch, error) {
	_, limits, err := uc.gate.EnsureActiveSubscription(ctx, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := uc.gate.AssertPlanAllowsFeature(limits, billing.FeatureSearch); err != nil {
		return nil, err
	}

	if _, err := uc.campaignRepo.GetByOrgAndSID(ctx, cmd.OrgSID, cmd.CampaignSID); err != nil {
		if stderrors.Is(err, campaign.ErrCampaignNotFound) {
			return nil, errors.NewNotFoundError("campaign not found")
		}
		return nil, fmt.Errorf("failed to load campaign: %w", err)
	}

	cached, err := uc.searchCache.Get(ctx, cmd.OrgSID, cmd.CampaignSID)
	if err != nil {
		if stderrors.Is(err, assistant.ErrNoCachedSearch) {
			return nil, errors.NewNotFoundError("no cached search results for this campaign")
		}
		uc.logger.Errorw("failed to read cached search results", "error", err, "campaign_sid", cmd.CampaignSID)
		return nil, fmt.Errorf("failed to read cached search results: %w", err)
	}

	return cached, nil
}
