package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"beacon/internal/application/assistant"
	identityusecases "beacon/internal/application/identity/usecases"
	"beacon/internal/interfaces/http/middleware"
	"beacon/internal/shared/constants"
	"beacon/internal/shared/logger"
	"beacon/internal/shared/utils"
)

// OrgContextResolver resolves the tenant scope for the principal, running
// bootstrap when needed.
type OrgContextResolver interface {
	Execute(ctx context.Context, cmd identityusecases.EnsureOrgContextCommand) (*identityusecases.OrgContext, error)
}

// ChatExecutor runs one metered assistant turn.
type ChatExecutor interface {
	Chat(ctx context.Context, cmd assistant.ChatCommand) (*assistant.Result, error)
}

// ModelStatus reports whether the model credential is configured.
type ModelStatus interface {
	Configured() bool
}

type AssistantHandler struct {
	orgContext  OrgContextResolver
	chatService ChatExecutor
	modelStatus ModelStatus
	logger      logger.Interface
}

func NewAssistantHandler(orgContext OrgContextResolver, chatService ChatExecutor, modelStatus ModelStatus) *AssistantHandler {
	return &AssistantHandler{
		orgContext:  orgContext,
		chatService: chatService,
		modelStatus: modelStatus,
		logger:      logger.NewLogger(),
	}
}

type ChatRequest struct {
	OrgID     string `json:"org_id"`
	SessionID string `json:"session_id"`
	Message   string `json:"message" binding:"required"`
}

type ChatResponse struct {
	SessionID    string          `json:"session_id"`
	Response     string          `json:"response"`
	ResponseHTML string          `json:"response_html,omitempty"`
	CampaignID   *string         `json:"campaign_id,omitempty"`
	Search       json.RawMessage `json:"search,omitempty"`
}

// Chat handles POST /api/v1/assistant/chat.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "message is required")
		return
	}

	if !h.modelStatus.Configured() {
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "assistant is not configured")
		return
	}

	orgCtx, ok := resolveOrgContext(c, h.orgContext)
	if !ok {
		return
	}

	// An explicit org_id must match the principal's organization.
	if req.OrgID != "" && req.OrgID != orgCtx.OrgSID {
		utils.ErrorResponse(c, http.StatusForbidden, "organization mismatch")
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), assistant.ChatCommand{
		UserID:     orgCtx.UserID,
		OrgSID:     orgCtx.OrgSID,
		SessionSID: req.SessionID,
		Message:    req.Message,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ChatResponse{
		SessionID:    result.SessionSID,
		Response:     result.AssistantText,
		ResponseHTML: result.AssistantHTML,
		CampaignID:   result.CampaignSID,
		Search:       result.Search,
	})
}

// resolveOrgContext pulls the principal from the auth middleware and ensures
// the tenant exists. Writes the error response itself on failure.
func resolveOrgContext(c *gin.Context, resolver OrgContextResolver) (*identityusecases.OrgContext, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	if userID == "" {
		utils.ErrorResponse(c, http.StatusUnauthorized, "missing authentication context")
		return nil, false
	}

	orgCtx, err := resolver.Execute(c.Request.Context(), identityusecases.EnsureOrgContextCommand{
		UserID:      userID,
		DisplayName: c.GetString(middleware.ContextKeyDisplayName),
		OrgName:     c.GetString(middleware.ContextKeyOrgName),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return nil, false
	}

	c.Set(constants.ContextKeyOrgID, orgCtx.OrgSID)
	return orgCtx, true
}
