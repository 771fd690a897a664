package models

import (
	"time"

	"beacon/internal/shared/constants"
)

// UsageEventModel represents the database persistence model for usage events.
// Append-only: rows are never updated or deleted after insert.
type UsageEventModel struct {
	ID         uint      `gorm:"primarykey"`
	SID        string    `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: evt_xxx"`
	OrgSID     string    `gorm:"column:org_sid;not null;size:50;index:idx_org_metric_time,priority:1"`
	Metric     string    `gorm:"not null;size:30;index:idx_org_metric_time,priority:2"`
	Quantity   int       `gorm:"not null;default:1"`
	RecordedAt time.Time `gorm:"not null;index:idx_org_metric_time,priority:3"`
}

// TableName specifies the table name for GORM
func (UsageEventModel) TableName() string {
	return constants.TableUsageEvents
}
