package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"beacon/internal/domain/identity"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/biztime"
	"beacon/internal/shared/logger"
)

type BootstrapRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewBootstrapRepository(db *gorm.DB, logger logger.Interface) identity.BootstrapRepository {
	return &BootstrapRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// EnsureTenant runs first-time bootstrap for a principal in one transaction.
//
// The profile row is inserted with OnConflict DoNothing, so concurrent calls
// for the same principal converge on a single row. The profile is then read
// FOR UPDATE: under REPEATABLE READ a plain read would come from the
// transaction's snapshot, so a racing bootstrap could miss the winner's
// organization even after blocking on the claim. The locking read serializes
// racing transactions on the profile row, and the loser observes the
// winner's committed current_org_sid instead of creating a second
// organization. The owner membership upsert is idempotent on
// (org_sid, user_id).
func (r *BootstrapRepositoryImpl) EnsureTenant(ctx context.Context, userID, displayName, orgName string) (*identity.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("user ID is required")
	}

	var profile *identity.Profile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := biztime.NowUTC()

		profileModel := &models.ProfileModel{
			UserID:      userID,
			DisplayName: displayName,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).Create(profileModel).Error; err != nil {
			return fmt.Errorf("failed to insert profile: %w", err)
		}

		var current models.ProfileModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&current).Error; err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		if current.CurrentOrgSID == "" {
			org, err := identity.NewOrganization(orgName)
			if err != nil {
				return err
			}

			claim := tx.Model(&models.ProfileModel{}).
				Where("user_id = ? AND (current_org_sid = '' OR current_org_sid IS NULL)", userID).
				Updates(map[string]interface{}{
					"current_org_sid": org.SID(),
					"updated_at":      now,
				})
			if claim.Error != nil {
				return fmt.Errorf("failed to attach organization: %w", claim.Error)
			}

			// We hold the row lock and observed an empty current_org_sid, so
			// the guarded claim must land; anything else means the lock was
			// not honored and the bootstrap cannot proceed safely.
			if claim.RowsAffected != 1 {
				return fmt.Errorf("organization claim lost for locked profile %s", userID)
			}

			orgModel := organizationToModel(org)
			if err := tx.Create(orgModel).Error; err != nil {
				return fmt.Errorf("failed to create organization: %w", err)
			}
			current.CurrentOrgSID = org.SID()
			current.UpdatedAt = now
		}

		if current.CurrentOrgSID == "" {
			return fmt.Errorf("profile %s has no organization after bootstrap", userID)
		}

		membershipModel := &models.MembershipModel{
			OrgSID:    current.CurrentOrgSID,
			UserID:    userID,
			Role:      string(identity.RoleOwner),
			CreatedAt: now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "org_sid"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(membershipModel).Error; err != nil {
			return fmt.Errorf("failed to upsert membership: %w", err)
		}

		entity, err := profileToEntity(&current)
		if err != nil {
			return err
		}
		profile = entity
		return nil
	})
	if err != nil {
		r.logger.Errorw("tenant bootstrap failed", "error", err, "user_id", userID)
		return nil, err
	}

	return profile, nil
}
