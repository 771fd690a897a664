package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"beacon/internal/domain/billing"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewSubscriptionRepository(db *gorm.DB, logger logger.Interface) billing.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID string) (*billing.Subscription, error) {
	var model models.SubscriptionModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billing.ErrSubscriptionNotFound
		}
		r.logger.Errorw("failed to get subscription", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return subscriptionToEntity(&model)
}

func subscriptionToEntity(model *models.SubscriptionModel) (*billing.Subscription, error) {
	return billing.ReconstructSubscription(
		model.ID,
		model.SID,
		model.UserID,
		billing.PlanTier(model.PlanTier),
		billing.SubscriptionStatus(model.Status),
		model.CurrentPeriodEnd,
		model.CreatedAt,
		model.UpdatedAt,
	)
}
