package models

import (
	"time"

	"beacon/internal/shared/constants"
)

// ProfileModel represents the database persistence model for principal profiles.
// The unique index on UserID is load-bearing: it is what guarantees at most
// one organization per first-time principal under concurrent bootstrap.
type ProfileModel struct {
	ID            uint   `gorm:"primarykey"`
	UserID        string `gorm:"uniqueIndex;not null;size:50"`
	DisplayName   string `gorm:"size:120"`
	CurrentOrgSID string `gorm:"column:current_org_sid;size:50;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (ProfileModel) TableName() string {
	return constants.TableProfiles
}
