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

type MembershipRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewMembershipRepository(db *gorm.DB, logger logger.Interface) identity.MembershipRepository {
	return &MembershipRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

// Upsert inserts the membership; a duplicate (org_sid, user_id) pair is a no-op.
func (r *MembershipRepositoryImpl) Upsert(ctx context.Context, membership *identity.Membership) error {
	model := membershipToModel(membership)

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "org_sid"}, {Name: "user_id"}},
			DoNothing: true,
		}).
		Create(model).Error
	if err != nil {
		r.logger.Errorw("failed to upsert membership",
			"error", err,
			"org_sid", membership.OrgSID(),
			"user_id", membership.UserID(),
		)
		return fmt.Errorf("failed to upsert membership: %w", err)
	}

	return nil
}

func (r *MembershipRepositoryImpl) GetByOrgAndUser(ctx context.Context, orgSID, userID string) (*identity.Membership, error) {
	var model models.MembershipModel
	err := r.db.WithContext(ctx).
		Where("org_sid = ? AND user_id = ?", orgSID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, identity.ErrMembershipNotFound
		}
		r.logger.Errorw("failed to get membership", "error", err, "org_sid", orgSID, "user_id", userID)
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return membershipToEntity(&model)
}

func (r *MembershipRepositoryImpl) ListByOrg(ctx context.Context, orgSID string) ([]*identity.Membership, error) {
	var modelList []models.MembershipModel
	err := r.db.WithContext(ctx).
		Where("org_sid = ?", orgSID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list memberships", "error", err, "org_sid", orgSID)
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	memberships := make([]*identity.Membership, 0, len(modelList))
	for i := range modelList {
		membership, err := membershipToEntity(&modelList[i])
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, membership)
	}

	return memberships, nil
}

func membershipToModel(membership *identity.Membership) *models.MembershipModel {
	return &models.MembershipModel{
		ID:        membership.ID(),
		OrgSID:    membership.OrgSID(),
		UserID:    membership.UserID(),
		Role:      string(membership.Role()),
		CreatedAt: membership.CreatedAt(),
	}
}

func membershipToEntity(model *models.MembershipModel) (*identity.Membership, error) {
	return identity.ReconstructMembership(
		model.ID,
		model.OrgSID,
		model.UserID,
		identity.MemberRole(model.Role),
		model.CreatedAt,
	)
}
