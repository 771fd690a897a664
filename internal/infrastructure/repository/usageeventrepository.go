package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"beacon/internal/domain/billing"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/logger"
)

type UsageEventRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewUsageEventRepository(db *gorm.DB, logger logger.Interface) billing.UsageEventRepository {
	return &UsageEventRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *UsageEventRepositoryImpl) Create(ctx context.Context, event *billing.UsageEvent) error {
	model := usageEventToModel(event)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create usage event",
			"error", err,
			"org_sid", event.OrgSID(),
			"metric", event.Metric(),
		)
		return fmt.Errorf("failed to create usage event: %w", err)
	}

	if event.ID() == 0 && model.ID > 0 {
		if err := event.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *UsageEventRepositoryImpl) CountInWindow(ctx context.Context, orgSID string, metric billing.Metric, periodStart time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.UsageEventModel{}).
		Where("org_sid = ? AND metric = ? AND recorded_at >= ?", orgSID, string(metric), periodStart).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("failed to count usage events",
			"error", err,
			"org_sid", orgSID,
			"metric", metric,
		)
		return 0, fmt.Errorf("failed to count usage events: %w", err)
	}

	return count, nil
}

func usageEventToModel(event *billing.UsageEvent) *models.UsageEventModel {
	return &models.UsageEventModel{
		ID:         event.ID(),
		SID:        event.SID(),
		OrgSID:     event.OrgSID(),
		Metric:     string(event.Metric()),
		Quantity:   event.Quantity(),
		RecordedAt: event.RecordedAt(),
	}
}
