package migration

import (
	"beacon/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.OrganizationModel{},
		&models.ProfileModel{},
		&models.MembershipModel{},
		&models.SubscriptionModel{},
		&models.UsageEventModel{},
		&models.CampaignModel{},
		&models.ChatSessionModel{},
		&models.ChatMessageModel{},
	}
}
