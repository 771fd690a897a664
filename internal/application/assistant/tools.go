package assistant

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	toolCreateCampaign    = "create_campaign"
	toolSearchInfluencers = "search_influencers"
)

// toolCatalog is advertised to the model on every turn.
var toolCatalog = []ToolSchema{
	{
		Name:        toolCreateCampaign,
		Description: "Create a draft outreach campaign once the required brief fields are collected.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"name": {"type": "string", "description": "Campaign name"},
				"objective": {"type": "string", "description": "Campaign objective, e.g. brand_awareness or conversions"},
				"platforms": {"type": "array", "items": {"type": "string"}, "description": "Target platforms"},
				"niches": {"type": "array", "items": {"type": "string"}, "description": "Content niches"},
				"budget_cents": {"type": "integer", "description": "Optional budget in minor currency units"},
				"currency": {"type": "string", "description": "ISO 4217 currency code"},
				"start_date": {"type": "string", "description": "Optional start date, YYYY-MM-DD"},
				"end_date": {"type": "string", "description": "Optional end date, YYYY-MM-DD"},
				"min_followers": {"type": "integer"},
				"max_followers": {"type": "integer"},
				"min_engagement": {"type": "number"},
				"locations": {"type": "array", "items": {"type": "string"}}
			},
			"required": ["name", "objective", "platforms", "niches"]
		}`),
	},
	{
		Name:        toolSearchInfluencers,
		Description: "Search for creators matching a campaign. Call after create_campaign.",
		Parameters: json.RawMessage(`{
			"type": "object",
			"properties": {
				"campaign_id": {"type": "string", "description": "Campaign id; defaults to the campaign created this turn"},
				"query": {"type": "string", "description": "Free-text search query"},
				"filters": {"type": "object", "description": "Optional structured filters passed through to discovery"}
			},
			"required": ["query"]
		}`),
	},
}

// createCampaignArgs are the decoded create_campaign tool arguments.
type createCampaignArgs struct {
	Name          string   `json:"name" validate:"required,max=200"`
	Objective     string   `json:"objective" validate:"required,max=100"`
	Platforms     []string `json:"platforms" validate:"required,min=1,dive,required"`
	Niches        []string `json:"niches" validate:"required,min=1,dive,required"`
	BudgetCents   *uint64  `json:"budget_cents,omitempty"`
	Currency      string   `json:"currency,omitempty" validate:"omitempty,len=3"`
	StartDate     string   `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate       string   `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	MinFollowers  *int     `json:"min_followers,omitempty" validate:"omitempty,min=0"`
	MaxFollowers  *int     `json:"max_followers,omitempty" validate:"omitempty,min=0"`
	MinEngagement *float64 `json:"min_engagement,omitempty" validate:"omitempty,min=0"`
	Locations     []string `json:"locations,omitempty"`
}

func (a *createCampaignArgs) startDate() (*time.Time, error) {
	return parseToolDate(a.StartDate)
}

func (a *createCampaignArgs) endDate() (*time.Time, error) {
	return parseToolDate(a.EndDate)
}

func parseToolDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", value, err)
	}
	t = t.UTC()
	return &t, nil
}

// searchInfluencersArgs are the decoded search_influencers tool arguments.
// CampaignID may be omitted when a campaign was created earlier in the turn.
type searchInfluencersArgs struct {
	CampaignID string          `json:"campaign_id,omitempty"`
	Query      string          `json:"query" validate:"required"`
	Filters    json.RawMessage `json:"filters,omitempty"`
}

func decodeToolArgs(validate *validator.Validate, raw string, out any) error {
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("malformed tool arguments: %w", err)
	}
	if err := validate.Struct(out); err != nil {
		return fmt.Errorf("invalid tool arguments: %w", err)
	}
	return nil
}

// toolResult serializes a tool outcome back to the model.
func toolResult(payload any) string {
	data, err := json.Marshal(payload)
	if err != nil {
		return `{"ok":false,"error":"internal serialization failure"}`
	}
	return string(data)
}
