package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"beacon/internal/domain/identity"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/logger"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewProfileRepository(db *gorm.DB, logger logger.Interface) identity.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *ProfileRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*identity.Profile, error) {
	var model models.ProfileModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrProfileNotFound
		}
		r.logger.Errorw("failed to get profile", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return profileToEntity(&model)
}

// Upsert inserts the profile or refreshes its mutable columns on conflict.
// The unique index on user_id arbitrates concurrent first-time inserts.
func (r *ProfileRepositoryImpl) Upsert(ctx context.Context, profile *identity.Profile) error {
	model := profileToModel(profile)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "current_org_sid", "updated_at"}),
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert profile", "error", err, "user_id", profile.UserID())
		return fmt.Errorf("failed to upsert profile: %w", err)
	}

	if profile.ID() == 0 && model.ID > 0 {
		if err := profile.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func profileToModel(profile *identity.Profile) *models.ProfileModel {
	return &models.ProfileModel{
		ID:            profile.ID(),
		UserID:        profile.UserID(),
		DisplayName:   profile.DisplayName(),
		CurrentOrgSID: profile.CurrentOrgSID(),
		CreatedAt:     profile.CreatedAt(),
		UpdatedAt:     profile.UpdatedAt(),
	}
}

func profileToEntity(model *models.ProfileModel) (*identity.Profile, error) {
	return identity.ReconstructProfile(
		model.ID,
		model.UserID,
		model.DisplayName,
		model.CurrentOrgSID,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
