package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"beacon/internal/domain/identity"
	"beacon/internal/shared/logger"
)

// EnsureOrgContextCommand carries the authenticated principal and the
// optional display metadata from the token.
type EnsureOrgContextCommand struct {
	UserID      string
	DisplayName string
	OrgName     string
}

// OrgContext is the resolved tenant scope for a request.
type OrgContext struct {
	UserID string
	OrgSID string
}

// EnsureOrgContextUseCase resolves the principal's organization, running
// first-time tenant bootstrap when none exists yet. The operation is
// idempotent: repeated calls for the same principal return the same
// organization.
type EnsureOrgContextUseCase struct {
	profileRepo   identity.ProfileRepository
	bootstrapRepo identity.BootstrapRepository
	logger        logger.Interface
}

func NewEnsureOrgContextUseCase(
	profileRepo identity.ProfileRepository,
	bootstrapRepo identity.BootstrapRepository,
	logger logger.Interface,
) *EnsureOrgContextUseCase {
	return &EnsureOrgContextUseCase{
		profileRepo:   profileRepo,
		bootstrapRepo: bootstrapRepo,
		logger:        logger,
	}
}

func (uc *EnsureOrgContextUseCase) Execute(ctx context.Context, cmd EnsureOrgContextCommand) (*OrgContext, error) {
	if cmd.UserID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	profile, err := uc.profileRepo.GetByUserID(ctx, cmd.UserID)
	if err == nil && profile.HasOrganization() {
		return &OrgContext{UserID: cmd.UserID, OrgSID: profile.CurrentOrgSID()}, nil
	}
	if err != nil && !stderrors.Is(err, identity.ErrProfileNotFound) {
		uc.logger.Errorw("failed to load profile", "error", err, "user_id", cmd.UserID)
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile, err = uc.bootstrapRepo.EnsureTenant(ctx, cmd.UserID, cmd.DisplayName, cmd.OrgName)
	if err != nil {
		return nil, fmt.Errorf("failed to bootstrap tenant: %w", err)
	}
	if !profile.HasOrganization() {
		return nil, fmt.Errorf("tenant bootstrap left principal without organization")
	}

	uc.logger.Infow("tenant bootstrapped",
		"user_id", cmd.UserID,
		"org_sid", profile.CurrentOrgSID(),
	)

	return &OrgContext{UserID: cmd.UserID, OrgSID: profile.CurrentOrgSID()}, nil
}
