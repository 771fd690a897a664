package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	messagingusecases "beacon/internal/application/messaging/usecases"
	"beacon/internal/shared/logger"
	"beacon/internal/shared/utils"
)

// OutreachDispatcher sends one gated outreach message.
type OutreachDispatcher interface {
	Execute(ctx context.Context, cmd messagingusecases.SendOutreachCommand) error
}

type MessagingHandler struct {
	orgContext OrgContextResolver
	sendUC     OutreachDispatcher
	logger     logger.Interface
}

func NewMessagingHandler(orgContext OrgContextResolver, sendUC OutreachDispatcher) *MessagingHandler {
	return &MessagingHandler{
		orgContext: orgContext,
		sendUC:     sendUC,
		logger:     logger.NewLogger(),
	}
}

type SendMessageRequest struct {
	CampaignID string `json:"campaign_id"`
	CreatorID  string `json:"creator_id" binding:"required"`
	Subject    string `json:"subject"`
	Body       string `json:"body" binding:"required"`
}

// Send handles POST /api/v1/messages.
func (h *MessagingHandler) Send(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "creator_id and body are required")
		return
	}

	orgCtx, ok := resolveOrgContext(c, h.orgContext)
	if !ok {
		return
	}

	err := h.sendUC.Execute(c.Request.Context(), messagingusecases.SendOutreachCommand{
		UserID:      orgCtx.UserID,
		OrgSID:      orgCtx.OrgSID,
		CampaignSID: req.CampaignID,
		CreatorID:   req.CreatorID,
		Subject:     req.Subject,
		Body:        req.Body,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusAccepted, "message dispatched", nil)
}
