package models

import (
	"time"

	"beacon/internal/shared/constants"
)

// OrganizationModel represents the database persistence model for organizations
// This is the anti-corruption layer between domain and database
type OrganizationModel struct {
	ID        uint   `gorm:"primarykey"`
	SID       string `gorm:"column:sid;uniqueIndex;not null;size:50;comment:Stripe-style ID: org_xxx"`
	Name      string `gorm:"not null;size:120"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for GORM
func (OrganizationModel) TableName() string {
	return constants.TableOrganizations
}
