package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"beacon/internal/domain/campaign"
	"beacon/internal/infrastructure/persistence/models"
	"beacon/internal/shared/logger"
)

type CampaignRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewCampaignRepository(db *gorm.DB, logger logger.Interface) campaign.Repository {
	return &CampaignRepositoryImpl{
		db:     db,
		logger: logger,
	}
}

func (r *CampaignRepositoryImpl) Create(ctx context.Context, c *campaign.Campaign) error {
	model, err := campaignToModel(c)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create campaign", "error", err, "campaign_sid", c.SID(), "org_sid", c.OrgSID())
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	if c.ID() == 0 && model.ID > 0 {
		if err := c.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

func (r *CampaignRepositoryImpl) GetByOrgAndSID(ctx context.Context, orgSID, sid string) (*campaign.Campaign, error) {
	var model models.CampaignModel
	err := r.db.WithContext(ctx).
		Where("org_sid = ? AND sid = ?", orgSID, sid).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, campaign.ErrCampaignNotFound
		}
		r.logger.Errorw("failed to get campaign", "error", err, "org_sid", orgSID, "campaign_sid", sid)
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}

	return campaignToEntity(&model)
}

func (r *CampaignRepositoryImpl) ListByOrg(ctx context.Context, orgSID string) ([]*campaign.Campaign, error) {
	var modelList []models.CampaignModel
	err := r.db.WithContext(ctx).
		Where("org_sid = ?", orgSID).
		Order("created_at DESC").
		Find(&modelList).Error
	if err != nil {
		r.logger.Errorw("failed to list campaigns", "error", err, "org_sid", orgSID)
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}

	campaigns := make([]*campaign.Campaign, 0, len(modelList))
	for i := range modelList {
		c, err := campaignToEntity(&modelList[i])
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, nil
}

// audienceJSON mirrors campaign.AudienceFilter for the JSON column.
type audienceJSON struct {
	MinFollowers  *int     `json:"min_followers,omitempty"`
	MaxFollowers  *int     `json:"max_followers,omitempty"`
	MinEngagement *float64 `json:"min_engagement,omitempty"`
	Locations     []string `json:"locations,omitempty"`
}

func campaignToModel(c *campaign.Campaign) (*models.CampaignModel, error) {
	platforms, err := json.Marshal(c.Platforms())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal platforms: %w", err)
	}
	niches, err := json.Marshal(c.Niches())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal niches: %w", err)
	}

	aud := c.Audience()
	audience, err := json.Marshal(audienceJSON{
		MinFollowers:  aud.MinFollowers,
		MaxFollowers:  aud.MaxFollowers,
		MinEngagement: aud.MinEngagement,
		Locations:     aud.Locations,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audience filter: %w", err)
	}

	return &models.CampaignModel{
		ID:          c.ID(),
		SID:         c.SID(),
		OrgSID:      c.OrgSID(),
		Name:        c.Name(),
		Objective:   c.Objective(),
		Platforms:   datatypes.JSON(platforms),
		Niches:      datatypes.JSON(niches),
		BudgetCents: c.BudgetCents(),
		Currency:    c.Currency(),
		StartDate:   c.StartDate(),
		EndDate:     c.EndDate(),
		Audience:    datatypes.JSON(audience),
		Status:      string(c.Status()),
		CreatedAt:   c.CreatedAt(),
		UpdatedAt:   c.UpdatedAt(),
	}, nil
}

func campaignToEntity(model *models.CampaignModel) (*campaign.Campaign, error) {
	var platforms, niches []string
	if len(model.Platforms) > 0 {
		if err := json.Unmarshal(model.Platforms, &platforms); err != nil {
			return nil, fmt.Errorf("failed to unmarshal platforms: %w", err)
		}
	}
	if len(model.Niches) > 0 {
		if err := json.Unmarshal(model.Niches, &niches); err != nil {
			return nil, fmt.Errorf("failed to unmarshal niches: %w", err)
		}
	}

	var aud audienceJSON
	if len(model.Audience) > 0 {
		if err := json.Unmarshal(model.Audience, &aud); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audience filter: %w", err)
		}
	}

	return campaign.ReconstructCampaign(
		model.ID,
		model.SID,
		model.OrgSID,
		model.Name,
		model.Objective,
		platforms,
		niches,
		model.BudgetCents,
		model.Currency,
		model.StartDate,
		model.EndDate,
		campaign.AudienceFilter{
			MinFollowers:  aud.MinFollowers,
			MaxFollowers:  aud.MaxFollowers,
			MinEngagement: aud.MinEngagement,
			Locations:     aud.Locations,
		},
		campaign.Status(model.Status),
		model.CreatedAt,
		model.UpdatedAt,
	)
}
