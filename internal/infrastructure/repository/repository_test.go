package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"beacon/internal/domain/billing"
	"beacon/internal/domain/campaign"
	"beacon/internal/domain/chat"
	"beacon/internal/domain/identity"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/biztime"
	"beacon/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.OrganizationModel{},
		&models.ProfileModel{},
		&models.MembershipModel{},
		&models.SubscriptionModel{},
		&models.UsageEventModel{},
		&models.CampaignModel{},
		&models.ChatSessionModel{},
		&models.ChatMessageModel{},
	)
	require.NoError(t, err)

	return db
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func TestBootstrapRepository_EnsureTenant_FirstTime(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBootstrapRepository(db, testLogger())

	profile, err := repo.EnsureTenant(context.Background(), "auth0|alice", "Alice", "Acme Outreach")
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "auth0|alice", profile.UserID())
	assert.True(t, profile.HasOrganization())

	// The organization row exists and carries the given name.
	orgRepo := NewOrganizationRepository(db, testLogger())
	org, err := orgRepo.GetBySID(context.Background(), profile.CurrentOrgSID())
	require.NoError(t, err)
	assert.Equal(t, "Acme Outreach", org.Name())

	// An owner membership was written.
	memberRepo := NewMembershipRepository(db, testLogger())
	membership, err := memberRepo.GetByOrgAndUser(context.Background(), profile.CurrentOrgSID(), "auth0|alice")
	require.NoError(t, err)
	assert.True(t, membership.IsOwner())
}

func TestBootstrapRepository_EnsureTenant_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBootstrapRepository(db, testLogger())
	ctx := context.Background()

	first, err := repo.EnsureTenant(ctx, "auth0|bob", "Bob", "")
	require.NoError(t, err)

	second, err := repo.EnsureTenant(ctx, "auth0|bob", "Bob", "")
	require.NoError(t, err)

	assert.Equal(t, first.CurrentOrgSID(), second.CurrentOrgSID())

	// Exactly one organization and one membership after repeated bootstraps.
	var orgCount, memberCount int64
	require.NoError(t, db.Model(&models.OrganizationModel{}).Count(&orgCount).Error)
	require.NoError(t, db.Model(&models.MembershipModel{}).Count(&memberCount).Error)
	assert.Equal(t, int64(1), orgCount)
	assert.Equal(t, int64(1), memberCount)
}

func TestBootstrapRepository_EnsureTenant_AttachesOrphanedProfile(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBootstrapRepository(db, testLogger())
	ctx := context.Background()

	// A profile row that exists without an organization is the state a
	// bootstrap observes when it loses the insert race: it must attach an
	// organization rather than write a membership with no tenant.
	now := biztime.NowUTC()
	require.NoError(t, db.Create(&models.ProfileModel{
		UserID:      "auth0|erin",
		DisplayName: "Erin",
		CreatedAt:   now,
		UpdatedAt:   now,
	}).Error)

	profile, err := repo.EnsureTenant(ctx, "auth0|erin", "Erin", "")
	require.NoError(t, err)
	assert.True(t, profile.HasOrganization())

	membership, err := NewMembershipRepository(db, testLogger()).
		GetByOrgAndUser(ctx, profile.CurrentOrgSID(), "auth0|erin")
	require.NoError(t, err)
	assert.True(t, membership.IsOwner())

	// No membership row may ever reference an empty organization.
	var orphaned int64
	require.NoError(t, db.Model(&models.MembershipModel{}).
		Where("org_sid = '' OR org_sid IS NULL").
		Count(&orphaned).Error)
	assert.Zero(t, orphaned)
}

func TestBootstrapRepository_EnsureTenant_DefaultOrgName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBootstrapRepository(db, testLogger())

	profile, err := repo.EnsureTenant(context.Background(), "auth0|carol", "", "")
	require.NoError(t, err)

	orgRepo := NewOrganizationRepository(db, testLogger())
	org, err := orgRepo.GetBySID(context.Background(), profile.CurrentOrgSID())
	require.NoError(t, err)
	assert.Equal(t, identity.DefaultOrganizationName, org.Name())
}

func TestBootstrapRepository_EnsureTenant_MissingUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBootstrapRepository(db, testLogger())

	_, err := repo.EnsureTenant(context.Background(), "", "Nobody", "")
	assert.Error(t, err)
}

func TestProfileRepository_GetByUserID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProfileRepository(db, testLogger())

	_, err := repo.GetByUserID(context.Background(), "auth0|ghost")
	assert.ErrorIs(t, err, identity.ErrProfileNotFound)
}

func TestSubscriptionRepository_GetByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db, testLogger())
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, "auth0|dave")
	assert.ErrorIs(t, err, billing.ErrSubscriptionNotFound)

	periodEnd := biztime.NowUTC().Add(20 * 24 * time.Hour)
	require.NoError(t, db.Create(&models.SubscriptionModel{
		SID:              "sub_test1",
		UserID:           "auth0|dave",
		PlanTier:         string(billing.TierStarter),
		Status:           string(billing.StatusActive),
		CurrentPeriodEnd: periodEnd,
	}).Error)

	sub, err := repo.GetByUserID(ctx, "auth0|dave")
	require.NoError(t, err)
	assert.Equal(t, billing.TierStarter, sub.PlanTier())
	assert.True(t, sub.IsActive())
	assert.WithinDuration(t, periodEnd, sub.CurrentPeriodEnd(), time.Second)
}

func TestUsageEventRepository_CountInWindow(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUsageEventRepository(db, testLogger())
	ctx := context.Background()

	now := biztime.NowUTC()
	periodStart := now.Add(-30 * 24 * time.Hour)

	record := func(orgSID string, metric billing.Metric, at time.Time) {
		event, err := billing.NewUsageEvent(orgSID, metric, at)
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, event))
	}

	record("org_a", billing.MetricChat, now.Add(-time.Hour))
	record("org_a", billing.MetricChat, now.Add(-2*time.Hour))
	record("org_a", billing.MetricSearch, now.Add(-time.Hour))
	// Outside the window.
	record("org_a", billing.MetricChat, now.Add(-40*24*time.Hour))
	// Another tenant.
	record("org_b", billing.MetricChat, now.Add(-time.Hour))

	count, err := repo.CountInWindow(ctx, "org_a", billing.MetricChat, periodStart)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = repo.CountInWindow(ctx, "org_a", billing.MetricSearch, periodStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUsageEventRepository_CountInWindow_BoundaryInclusive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUsageEventRepository(db, testLogger())
	ctx := context.Background()

	periodStart := biztime.NowUTC().Truncate(time.Second)
	event, err := billing.NewUsageEvent("org_a", billing.MetricChat, periodStart)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, event))

	count, err := repo.CountInWindow(ctx, "org_a", billing.MetricChat, periodStart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCampaignRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampaignRepository(db, testLogger())
	ctx := context.Background()

	c, err := campaign.NewCampaign("org_a", "Spring Launch", "brand_awareness",
		[]string{"instagram", "tiktok"}, []string{"fitness"})
	require.NoError(t, err)
	require.NoError(t, c.SetBudget(500000, "USD"))

	minFollowers := 10000
	require.NoError(t, c.SetAudience(campaign.AudienceFilter{
		MinFollowers: &minFollowers,
		Locations:    []string{"US", "CA"},
	}))

	require.NoError(t, repo.Create(ctx, c))
	require.NotZero(t, c.ID())

	got, err := repo.GetByOrgAndSID(ctx, "org_a", c.SID())
	require.NoError(t, err)
	assert.Equal(t, "Spring Launch", got.Name())
	assert.Equal(t, []string{"instagram", "tiktok"}, got.Platforms())
	assert.Equal(t, campaign.StatusDraft, got.Status())
	require.NotNil(t, got.BudgetCents())
	assert.Equal(t, uint64(500000), *got.BudgetCents())
	require.NotNil(t, got.Audience().MinFollowers)
	assert.Equal(t, 10000, *got.Audience().MinFollowers)
	assert.Equal(t, []string{"US", "CA"}, got.Audience().Locations)
}

func TestCampaignRepository_TenantScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCampaignRepository(db, testLogger())
	ctx := context.Background()

	c, err := campaign.NewCampaign("org_a", "Private", "conversions",
		[]string{"youtube"}, []string{"tech"})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, c))

	// Reading with a different org must miss even though the SID exists.
	_, err = repo.GetByOrgAndSID(ctx, "org_b", c.SID())
	assert.ErrorIs(t, err, campaign.ErrCampaignNotFound)
}

func TestChatSessionRepository_MessageOrdering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatSessionRepository(db, testLogger())
	ctx := context.Background()

	session, err := chat.NewSession("org_a", "auth0|alice")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, session))

	userMsg, err := chat.NewMessage(session.ID(), chat.RoleUser, "find me fitness creators")
	require.NoError(t, err)
	assistantMsg, err := chat.NewMessage(session.ID(), chat.RoleAssistant, "Here are three options.")
	require.NoError(t, err)

	// Appended in one batch; timestamps must preserve the given order.
	require.NoError(t, repo.AppendMessages(ctx, userMsg, assistantMsg))

	messages, err := repo.RecentMessages(ctx, session.ID(), chat.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, chat.RoleUser, messages[0].Role())
	assert.Equal(t, chat.RoleAssistant, messages[1].Role())
}

func TestChatSessionRepository_RecentMessagesLimit(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatSessionRepository(db, testLogger())
	ctx := context.Background()

	session, err := chat.NewSession("org_a", "auth0|alice")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, session))

	for i := 0; i < 5; i++ {
		msg, err := chat.NewMessage(session.ID(), chat.RoleUser, "ping")
		require.NoError(t, err)
		require.NoError(t, repo.AppendMessages(ctx, msg))
	}

	messages, err := repo.RecentMessages(ctx, session.ID(), 3)
	require.NoError(t, err)
	assert.Len(t, messages, 3)
}

func TestChatSessionRepository_TenantScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewChatSessionRepository(db, testLogger())
	ctx := context.Background()

	session, err := chat.NewSession("org_a", "auth0|alice")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, session))

	_, err = repo.GetByOrgAndSID(ctx, "org_b", session.SID())
	assert.ErrorIs(t, err, chat.ErrSessionNotFound)
}
