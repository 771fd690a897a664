package models

import (
	"time"

	"beacon/internal/shared/constants"
)

// MembershipModel represents the database persistence model for memberships.
// (OrgSID, UserID) is unique; duplicate upserts are no-ops.
type MembershipModel struct {
	ID        uint   `gorm:"primarykey"`
	OrgSID    string `gorm:"column:org_sid;not null;size:50;uniqueIndex:idx_org_user,priority:1"`
	UserID    string `gorm:"not null;size:50;uniqueIndex:idx_org_user,priority:2"`
	Role      string `gorm:"not null;size:20"`
	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (MembershipModel) TableName() string {
	return constants.TableMemberships
}
