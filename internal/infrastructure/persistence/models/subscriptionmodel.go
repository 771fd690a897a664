package models

import (
	"time"

	"beacon/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions.
// Rows are written by the billing webhook pipeline; this service reads them.
type SubscriptionModel struct {
	ID               uint   `gorm:"primarykey"`
	SID              string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: sub_xxx"`
	UserID           string `gorm:"uniqueIndex;not null;size:50"`
	PlanTier         string `gorm:"not null;size:20;index:idx_plan_tier"`
	Status           string `gorm:"not null;size:20;index:idx_status"`
	CurrentPeriodEnd time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
