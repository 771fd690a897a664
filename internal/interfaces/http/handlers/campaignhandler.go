package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"beacon/internal/application/assistant"
	campaignusecases "beacon/internal/application/campaign/usecases"
	"beacon/internal/shared/logger"
	"beacon/internal/shared/utils"
)

// InfluencerSearcher runs a gated discovery search for a campaign.
type InfluencerSearcher interface {
	Execute(ctx context.Context, cmd campaignusecases.SearchInfluencersCommand) (json.RawMessage, error)
}

// SearchResultReader replays the latest cached discovery payload.
type SearchResultReader interface {
	Execute(ctx context.Context, cmd campaignusecases.GetSearchResultsCommand) (*assistant.CachedSearch, error)
}

type CampaignHandler struct {
	orgContext OrgContextResolver
	searchUC   InfluencerSearcher
	resultsUC  SearchResultReader
	logger     logger.Interface
}

func NewCampaignHandler(orgContext OrgContextResolver, searchUC InfluencerSearcher, resultsUC SearchResultReader) *CampaignHandler {
	return &CampaignHandler{
		orgContext: orgContext,
		searchUC:   searchUC,
		resultsUC:  resultsUC,
		logger:     logger.NewLogger(),
	}
}

type SearchRequest struct {
	Query   string          `json:"query" binding:"required"`
	Filters json.RawMessage `json:"filters"`
}

// Search handles POST /api/v1/campaigns/:id/search.
func (h *CampaignHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "query is required")
		return
	}

	orgCtx, ok := resolveOrgContext(c, h.orgContext)
	if !ok {
		return
	}

	results, err := h.searchUC.Execute(c.Request.Context(), campaignusecases.SearchInfluencersCommand{
		UserID:      orgCtx.UserID,
		OrgSID:      orgCtx.OrgSID,
		CampaignSID: c.Param("id"),
		Query:       req.Query,
		Filters:     req.Filters,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"results": results})
}

type SearchResultsResponse struct {
	Query    string          `json:"query"`
	Results  json.RawMessage `json:"results"`
	CachedAt time.Time       `json:"cached_at"`
}

// GetSearchResults handles GET /api/v1/campaigns/:id/search. It replays the
// latest cached payload for the campaign; 404 when none is stored.
func (h *CampaignHandler) GetSearchResults(c *gin.Context) {
	orgCtx, ok := resolveOrgContext(c, h.orgContext)
	if !ok {
		return
	}

	cached, err := h.resultsUC.Execute(c.Request.Context(), campaignusecases.GetSearchResultsCommand{
		UserID:      orgCtx.UserID,
		OrgSID:      orgCtx.OrgSID,
		CampaignSID: c.Param("id"),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", SearchResultsResponse{
		Query:    cached.Query,
		Results:  cached.Results,
		CachedAt: cached.CachedAt,
	})
}
