package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func billingTestNow() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
}

func TestSubscription_IsActive(t *testing.T) {
	tests := []struct {
		status SubscriptionStatus
		active bool
	}{
		{StatusActive, true},
		{StatusTrialing, true},
		{StatusPastDue, false},
		{StatusCanceled, false},
		{StatusUnpaid, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.status), func(t *testing.T) {
			sub, err := NewSubscription("usr_1", TierStarter, tc.status, billingTestNow().AddDate(0, 1, 0))
			require.NoError(t, err)
			assert.Equal(t, tc.active, sub.IsActive())
		})
	}
}

func TestSubscription_PeriodStart_AnchoredToFuturePeriodEnd(t *testing.T) {
	now := billingTestNow()
	periodEnd := now.Add(10 * 24 * time.Hour)

	sub, err := NewSubscription("usr_1", TierStarter, StatusActive, periodEnd)
	require.NoError(t, err)

	got := sub.PeriodStart(now, 30)
	assert.Equal(t, periodEnd.Add(-30*24*time.Hour), got)
}

func TestSubscription_PeriodStart_RollingWhenPeriodEndElapsed(t *testing.T) {
	now := billingTestNow()
	periodEnd := now.Add(-time.Hour)

	sub, err := NewSubscription("usr_1", TierStarter, StatusActive, periodEnd)
	require.NoError(t, err)

	got := sub.PeriodStart(now, 30)
	assert.Equal(t, now.Add(-30*24*time.Hour), got)
}

func TestSubscription_PeriodStart_PeriodEndEqualNowIsNotFuture(t *testing.T) {
	now := billingTestNow()

	sub, err := NewSubscription("usr_1", TierStarter, StatusActive, now)
	require.NoError(t, err)

	got := sub.PeriodStart(now, 30)
	assert.Equal(t, now.Add(-30*24*time.Hour), got)
}

func TestSubscription_PeriodStart_DefaultsWindow(t *testing.T) {
	now := billingTestNow()
	sub, err := NewSubscription("usr_1", TierStarter, StatusActive, now.Add(-time.Hour))
	require.NoError(t, err)

	assert.Equal(t, now.Add(-30*24*time.Hour), sub.PeriodStart(now, 0))
}

func TestNewSubscription_Invalid(t *testing.T) {
	_, err := NewSubscription("", TierStarter, StatusActive, billingTestNow())
	assert.Error(t, err)

	_, err = NewSubscription("usr_1", PlanTier("platinum"), StatusActive, billingTestNow())
	assert.Error(t, err)

	_, err = NewSubscription("usr_1", TierStarter, SubscriptionStatus("paused"), billingTestNow())
	assert.Error(t, err)
}

func TestLimitsForTier(t *testing.T) {
	limits, ok := LimitsForTier(TierStarter)
	require.True(t, ok)
	assert.True(t, limits.AllowMessaging)
	assert.True(t, limits.AllowChat)
	assert.True(t, limits.AllowSearch)
	require.NotNil(t, limits.ChatLimit)
	assert.Equal(t, 25, *limits.ChatLimit)
	require.NotNil(t, limits.SearchLimit)
	assert.Equal(t, 50, *limits.SearchLimit)

	_, ok = LimitsForTier(PlanTier("platinum"))
	assert.False(t, ok)
}

func TestPlanLimits_FreeTierHasNoMessaging(t *testing.T) {
	limits, ok := LimitsForTier(TierFree)
	require.True(t, ok)
	assert.False(t, limits.Allows(FeatureMessaging))
	assert.True(t, limits.Allows(FeatureChat))
}

func TestPlanLimits_AgencyTierUnlimited(t *testing.T) {
	limits, ok := LimitsForTier(TierAgency)
	require.True(t, ok)
	assert.Nil(t, limits.LimitFor(MetricChat))
	assert.Nil(t, limits.LimitFor(MetricSearch))
}

func TestPlanLimits_UnknownFeatureOrMetric(t *testing.T) {
	limits, _ := LimitsForTier(TierAgency)
	assert.False(t, limits.Allows(Feature("export")))
	assert.Nil(t, limits.LimitFor(Metric("export")))
}

func TestNewUsageEvent(t *testing.T) {
	event, err := NewUsageEvent("org_1", MetricChat, billingTestNow())

	require.NoError(t, err)
	assert.Equal(t, "org_1", event.OrgSID())
	assert.Equal(t, MetricChat, event.Metric())
	assert.Equal(t, 1, event.Quantity())
	assert.Equal(t, billingTestNow(), event.RecordedAt())
}

func TestNewUsageEvent_Invalid(t *testing.T) {
	_, err := NewUsageEvent("", MetricChat, billingTestNow())
	assert.Error(t, err)

	_, err = NewUsageEvent("org_1", Metric(""), billingTestNow())
	assert.Error(t, err)

	_, err = NewUsageEvent("org_1", MetricChat, time.Time{})
	assert.Error(t, err)
}

func TestUsageEvent_SetID(t *testing.T) {
	event, err := NewUsageEvent("org_1", MetricSearch, billingTestNow())
	require.NoError(t, err)

	require.NoError(t, event.SetID(9))
	assert.Equal(t, uint(9), event.ID())
	assert.Error(t, event.SetID(10))
}
