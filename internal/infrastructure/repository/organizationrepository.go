package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beacon/internal/domain/identity"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/logger"
)

type OrganizationRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewOrganizationRepository(db *gorm.DB, logger logger.Interface) identity.OrganizationRepository {
	return &OrganizationRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *OrganizationRepositoryImpl) Create(ctx context.Context, org *identity.Organization) error {
	model := organizationToModel(org)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create organization", "error", err, "org_sid", org.SID())
		return fmt.Errorf("failed to create organization: %w", err)
	}

	if org.ID() == 0 && model.ID > 0 {
		if err := org.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *OrganizationRepositoryImpl) GetBySID(ctx context.Context, sid string) (*identity.Organization, error) {
	var model models.OrganizationModel
	err := r.db.WithContext(ctx).Where("sid = ?", sid).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrOrganizationNotFound
		}
		r.logger.Errorw("failed to get organization", "error", err, "org_sid", sid)
		return nil, fmt.Errorf("failed to get organization: %w", err)
	}

	return organizationToEntity(&model)
}

func organizationToModel(org *identity.Organization) *models.OrganizationModel {
	return &models.OrganizationModel{
		ID:        org.ID(),
		SID:       org.SID(),
		Name:      org.Name(),
		CreatedAt: org.CreatedAt(),
		UpdatedAt: org.UpdatedAt(),
	}
}

func organizationToEntity(model *models.OrganizationModel) (*identity.Organization, error) {
	return identity.ReconstructOrganization(
		model.ID,
		model.SID,
		model.Name,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
