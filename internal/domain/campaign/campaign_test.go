package campaign

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftCampaign(t *testing.T) *Campaign {
	t.Helper()
	c, err := NewCampaign("org_1", "Launch Week", "awareness", []string{"instagram"}, []string{"fitness"})
	require.NoError(t, err)
	return c
}

func TestNewCampaign_ValidInput(t *testing.T) {
	c := newDraftCampaign(t)

	assert.True(t, strings.HasPrefix(c.SID(), "camp_"))
	assert.Equal(t, "org_1", c.OrgSID())
	assert.Equal(t, StatusDraft, c.Status())
	assert.True(t, c.IsDraft())
	assert.Nil(t, c.BudgetCents())
}

func TestNewCampaign_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		orgSID    string
		cname     string
		objective string
		platforms []string
		niches    []string
	}{
		{"missing org", "", "n", "o", []string{"tiktok"}, []string{"beauty"}},
		{"missing name", "org_1", "", "o", []string{"tiktok"}, []string{"beauty"}},
		{"missing objective", "org_1", "n", "", []string{"tiktok"}, []string{"beauty"}},
		{"no platforms", "org_1", "n", "o", nil, []string{"beauty"}},
		{"no niches", "org_1", "n", "o", []string{"tiktok"}, nil},
		{"name too long", "org_1", strings.Repeat("x", 201), "o", []string{"tiktok"}, []string{"beauty"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, err := NewCampaign(tc.orgSID, tc.cname, tc.objective, tc.platforms, tc.niches)
			assert.Error(t, err)
			assert.Nil(t, c)
		})
	}
}

func TestCampaign_SetBudget(t *testing.T) {
	c := newDraftCampaign(t)

	require.NoError(t, c.SetBudget(500000, ""))
	require.NotNil(t, c.BudgetCents())
	assert.Equal(t, uint64(500000), *c.BudgetCents())
	assert.Equal(t, "USD", c.Currency())

	assert.Error(t, c.SetBudget(100, "DOLLARS"))
}

func TestCampaign_SetSchedule(t *testing.T) {
	c := newDraftCampaign(t)
	start := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	require.NoError(t, c.SetSchedule(&start, &end))
	assert.Equal(t, &start, c.StartDate())

	assert.Error(t, c.SetSchedule(&end, &start))
}

func TestCampaign_SetAudience(t *testing.T) {
	c := newDraftCampaign(t)
	min := 10000
	max := 500000

	require.NoError(t, c.SetAudience(AudienceFilter{MinFollowers: &min, MaxFollowers: &max}))
	assert.Equal(t, &min, c.Audience().MinFollowers)

	bad := 100
	assert.Error(t, c.SetAudience(AudienceFilter{MinFollowers: &min, MaxFollowers: &bad}))
}

func TestReconstructCampaign_Invalid(t *testing.T) {
	now := time.Now().UTC()

	_, err := ReconstructCampaign(0, "camp_x", "org_1", "n", "o", nil, nil, nil, "", nil, nil, AudienceFilter{}, StatusDraft, now, now)
	assert.Error(t, err)

	_, err = ReconstructCampaign(1, "camp_x", "org_1", "n", "o", nil, nil, nil, "", nil, nil, AudienceFilter{}, Status("paused"), now, now)
	assert.Error(t, err)
}
