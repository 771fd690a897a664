package models

import (
	"time"

	"gorm.io/datatypes"

	"beacon/internal/shared/constants"
)

// CampaignModel represents the database persistence model for campaigns.
// Platforms, niches, and the audience filter are stored as JSON columns.
type CampaignModel struct {
	ID          uint   `gorm:"primarykey"`
	SID         string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: camp_xxx"`
	OrgSID      string `gorm:"column:org_sid;not null;size:50;index:idx_org_campaign"`
	Name        string `gorm:"not null;size:200"`
	Objective   string `gorm:"not null;size:100"`
	Platforms   datatypes.JSON
	Niches      datatypes.JSON
	BudgetCents *uint64
	Currency    string `gorm:"size:3"`
	StartDate   *time.Time
	EndDate     *time.Time
	Audience    datatypes.JSON
	Status      string `gorm:"not null;size:20;index:idx_campaign_status"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (CampaignModel) TableName() string {
	return constants.TableCampaigns
}
