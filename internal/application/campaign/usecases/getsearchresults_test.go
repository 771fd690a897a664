package usecases

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/application/assistant"
	billingapp "beacon/internal/application/billing"
	"beacon/internal/domain/billing"
	"beacon/internal/domain/campaign"
	"beacon/internal/shared/errors"
	"beacon/internal/shared/logger"
)

func replayTestNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

type stubSubscriptionRepo struct {
	sub *billing.Subscription
}

func (r *stubSubscriptionRepo) GetByUserID(_ context.Context, _ string) (*billing.Subscription, error) {
	if r.sub == nil {
		return nil, billing.ErrSubscriptionNotFound
	}
	return r.sub, nil
}

type stubUsageRepo struct{}

func (r *stubUsageRepo) Create(_ context.Context, _ *billing.UsageEvent) error { return nil }

func (r *stubUsageRepo) CountInWindow(_ context.Context, _ string, _ billing.Metric, _ time.Time) (int64, error) {
	return 0, nil
}

type stubCampaignRepo struct {
	campaigns map[string]*campaign.Campaign
}

func (r *stubCampaignRepo) Create(_ context.Context, c *campaign.Campaign) error {
	r.campaigns[c.SID()] = c
	return nil
}

func (r *stubCampaignRepo) GetByOrgAndSID(_ context.Context, orgSID, sid string) (*campaign.Campaign, error) {
	c, ok := r.campaigns[sid]
	if !ok || c.OrgSID() != orgSID {
		return nil, campaign.ErrCampaignNotFound
	}
	return c, nil
}

func (r *stubCampaignRepo) ListByOrg(_ context.Context, _ string) ([]*campaign.Campaign, error) {
	return nil, nil
}

type stubSearchCache struct {
	entries map[string]*assistant.CachedSearch
}

func (c *stubSearchCache) Set(_ context.Context, orgSID, campaignSID, query string, results json.RawMessage) error {
	c.entries[orgSID+":"+campaignSID] = &assistant.CachedSearch{
		CampaignSID: campaignSID,
		Query:       query,
		Results:     results,
		CachedAt:    replayTestNow(),
	}
	return nil
}

func (c *stubSearchCache) Get(_ context.Context, orgSID, campaignSID string) (*assistant.CachedSearch, error) {
	entry, ok := c.entries[orgSID+":"+campaignSID]
	if !ok {
		return nil, assistant.ErrNoCachedSearch
	}
	return entry, nil
}

type replayFixture struct {
	uc        *GetSearchResultsUseCase
	campaigns *stubCampaignRepo
	cache     *stubSearchCache
}

func newReplayFixture(t *testing.T, tier billing.PlanTier) *replayFixture {
	t.Helper()

	sub, err := billing.NewSubscription("auth0|alice", tier, billing.StatusActive,
		replayTestNow().Add(10*24*time.Hour))
	require.NoError(t, err)

	gate := billingapp.NewGate(&stubSubscriptionRepo{sub: sub}, &stubUsageRepo{}, 30, replayTestNow, logger.NewLogger())
	campaigns := &stubCampaignRepo{campaigns: map[string]*campaign.Campaign{}}
	cache := &stubSearchCache{entries: map[string]*assistant.CachedSearch{}}

	return &replayFixture{
		uc:        NewGetSearchResultsUseCase(gate, campaigns, cache, logger.NewLogger()),
		campaigns: campaigns,
		cache:     cache,
	}
}

func (f *replayFixture) seedCampaign(t *testing.T, orgSID string) *campaign.Campaign {
	t.Helper()
	c, err := campaign.NewCampaign(orgSID, "Spring Launch", "brand_awareness",
		[]string{"instagram"}, []string{"fitness"})
	require.NoError(t, err)
	require.NoError(t, f.campaigns.Create(context.Background(), c))
	return c
}

func TestGetSearchResults_ReplaysCachedPayload(t *testing.T) {
	f := newReplayFixture(t, billing.TierFree)
	c := f.seedCampaign(t, "org_a")
	ctx := context.Background()

	payload := json.RawMessage(`{"creators":[{"id":"cr_1"}]}`)
	require.NoError(t, f.cache.Set(ctx, "org_a", c.SID(), "fitness creators", payload))

	cached, err := f.uc.Execute(ctx, GetSearchResultsCommand{
		UserID:      "auth0|alice",
		OrgSID:      "org_a",
		CampaignSID: c.SID(),
	})
	require.NoError(t, err)
	assert.Equal(t, "fitness creators", cached.Query)
	assert.JSONEq(t, string(payload), string(cached.Results))
}

func TestGetSearchResults_NothingCached(t *testing.T) {
	f := newReplayFixture(t, billing.TierFree)
	c := f.seedCampaign(t, "org_a")

	_, err := f.uc.Execute(context.Background(), GetSearchResultsCommand{
		UserID:      "auth0|alice",
		OrgSID:      "org_a",
		CampaignSID: c.SID(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetSearchResults_CrossTenantCampaign(t *testing.T) {
	f := newReplayFixture(t, billing.TierFree)
	c := f.seedCampaign(t, "org_other")
	ctx := context.Background()

	require.NoError(t, f.cache.Set(ctx, "org_other", c.SID(), "creators", json.RawMessage(`{}`)))

	_, err := f.uc.Execute(ctx, GetSearchResultsCommand{
		UserID:      "auth0|alice",
		OrgSID:      "org_a",
		CampaignSID: c.SID(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
}

func TestGetSearchResults_RequiresSubscription(t *testing.T) {
	gate := billingapp.NewGate(&stubSubscriptionRepo{}, &stubUsageRepo{}, 30, replayTestNow, logger.NewLogger())
	uc := NewGetSearchResultsUseCase(gate,
		&stubCampaignRepo{campaigns: map[string]*campaign.Campaign{}},
		&stubSearchCache{entries: map[string]*assistant.CachedSearch{}},
		logger.NewLogger())

	_, err := uc.Execute(context.Background(), GetSearchResultsCommand{
		UserID:      "auth0|alice",
		OrgSID:      "org_a",
		CampaignSID: "camp_1",
	})
	require.Error(t, err)
	appErr := errors.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrorTypeSubscriptionRequired, appErr.Type)
}
