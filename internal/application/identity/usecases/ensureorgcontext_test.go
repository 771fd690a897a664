package usecases

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/domain/identity"
	"beacon/internal/shared/id"
	"beacon/internal/shared/logger"
)

// fakeProfileRepo is an in-memory ProfileRepository keyed by user ID.
type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*identity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*identity.Profile)}
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID string) (*identity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, identity.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *identity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.profiles[profile.UserID()] = profile
	return nil
}

// fakeBootstrapRepo mimics the transactional bootstrap: first caller per
// principal creates the organization, later callers converge on it.
type fakeBootstrapRepo struct {
	mu       sync.Mutex
	profiles map[string]*identity.Profile
	orgCount int
}

func newFakeBootstrapRepo() *fakeBootstrapRepo {
	return &fakeBootstrapRepo{profiles: make(map[string]*identity.Profile)}
}

func (f *fakeBootstrapRepo) EnsureTenant(_ context.Context, userID, displayName, _ string) (*identity.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if existing, ok := f.profiles[userID]; ok {
		return existing, nil
	}
	profile, err := identity.NewProfile(userID, displayName)
	if err != nil {
		return nil, err
	}
	if err := profile.SetID(uint(len(f.profiles) + 1)); err != nil {
		return nil, err
	}
	if err := profile.AttachOrganization(id.NewOrganizationID()); err != nil {
		return nil, err
	}
	f.profiles[userID] = profile
	f.orgCount++
	return profile, nil
}

func newEnsureOrgContextUseCase(profiles *fakeProfileRepo, bootstrap *fakeBootstrapRepo) *EnsureOrgContextUseCase {
	return NewEnsureOrgContextUseCase(profiles, bootstrap, logger.NewLogger())
}

func TestEnsureOrgContext_ExistingProfile(t *testing.T) {
	profiles := newFakeProfileRepo()
	bootstrap := newFakeBootstrapRepo()

	profile, err := identity.NewProfile("auth0|alice", "Alice")
	require.NoError(t, err)
	require.NoError(t, profile.SetID(1))
	require.NoError(t, profile.AttachOrganization("org_existing"))
	require.NoError(t, profiles.Upsert(context.Background(), profile))

	uc := newEnsureOrgContextUseCase(profiles, bootstrap)
	orgCtx, err := uc.Execute(context.Background(), EnsureOrgContextCommand{UserID: "auth0|alice"})
	require.NoError(t, err)

	assert.Equal(t, "org_existing", orgCtx.OrgSID)
	assert.Zero(t, bootstrap.orgCount, "bootstrap must not run for an attached profile")
}

func TestEnsureOrgContext_FirstTimeBootstraps(t *testing.T) {
	profiles := newFakeProfileRepo()
	bootstrap := newFakeBootstrapRepo()

	uc := newEnsureOrgContextUseCase(profiles, bootstrap)
	orgCtx, err := uc.Execute(context.Background(), EnsureOrgContextCommand{
		UserID:      "auth0|bob",
		DisplayName: "Bob",
	})
	require.NoError(t, err)

	assert.Equal(t, "auth0|bob", orgCtx.UserID)
	assert.NotEmpty(t, orgCtx.OrgSID)
	assert.Equal(t, 1, bootstrap.orgCount)
}

func TestEnsureOrgContext_RepeatedCallsSameOrg(t *testing.T) {
	profiles := newFakeProfileRepo()
	bootstrap := newFakeBootstrapRepo()
	uc := newEnsureOrgContextUseCase(profiles, bootstrap)

	first, err := uc.Execute(context.Background(), EnsureOrgContextCommand{UserID: "auth0|carol"})
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), EnsureOrgContextCommand{UserID: "auth0|carol"})
	require.NoError(t, err)

	assert.Equal(t, first.OrgSID, second.OrgSID)
	assert.Equal(t, 1, bootstrap.orgCount)
}

func TestEnsureOrgContext_ConcurrentBootstrapSingleOrg(t *testing.T) {
	profiles := newFakeProfileRepo()
	bootstrap := newFakeBootstrapRepo()
	uc := newEnsureOrgContextUseCase(profiles, bootstrap)

	const workers = 16
	results := make([]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			orgCtx, err := uc.Execute(context.Background(), EnsureOrgContextCommand{UserID: "auth0|dave"})
			if assert.NoError(t, err) {
				results[i] = orgCtx.OrgSID
			}
		}(i)
	}
	wg.Wait()

	for _, sid := range results {
		assert.Equal(t, results[0], sid)
	}
	assert.Equal(t, 1, bootstrap.orgCount, "concurrent bootstraps must yield exactly one organization")
}

func TestEnsureOrgContext_MissingUserID(t *testing.T) {
	uc := newEnsureOrgContextUseCase(newFakeProfileRepo(), newFakeBootstrapRepo())

	_, err := uc.Execute(context.Background(), EnsureOrgContextCommand{})
	assert.Error(t, err)
}
