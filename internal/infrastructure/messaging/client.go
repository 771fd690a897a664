// Package messaging implements the outbound messaging collaborator client.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appmessaging "beacon/internal/application/messaging"
	"beacon/internal/shared/config"
	"beacon/internal/shared/logger"
)

const (
	defaultTimeout  = 15 * time.Second
	maxResponseSize = 64 << 10
)

type Client struct {
	httpClient   *http.Client
	baseURL      string
	serviceToken string
	logger       logger.Interface
}

func NewClient(cfg *config.MessagingConfig, logger logger.Interface) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		baseURL:      cfg.BaseURL,
		serviceToken: cfg.ServiceToken,
		logger:       logger,
	}
}

// Ensure Client implements the application port
var _ appmessaging.Sender = (*Client)(nil)

type sendRequest struct {
	OrgSID      string `json:"orgId"`
	CampaignSID string `json:"campaignId"`
	CreatorID   string `json:"creatorId"`
	Subject     string `json:"subject,omitempty"`
	Body        string `json:"body"`
}

func (c *Client) Send(ctx context.Context, msg appmessaging.OutreachMessage) error {
	payload, err := json.Marshal(sendRequest{
		OrgSID:      msg.OrgSID,
		CampaignSID: msg.CampaignSID,
		CreatorID:   msg.CreatorID,
		Subject:     msg.Subject,
		Body:        msg.Body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal send request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.serviceToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call messaging service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		c.logger.Errorw("messaging service returned error",
			"status", resp.StatusCode,
			"body", string(body),
			"org_sid", msg.OrgSID,
		)
		return fmt.Errorf("messaging service returned status %d", resp.StatusCode)
	}

	return nil
}
