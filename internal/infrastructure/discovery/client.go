// Package discovery implements the creator discovery collaborator client.
package discovery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"beacon/internal/application/assistant"
	"beacon/internal/shared/config"
	"beacon/internal/shared/logger"
)

const (
	defaultTimeout = 15 * time.Second
	// Maximum response body size for search results (2MB)
	maxResponseSize = 2 << 20
)

type Client struct {
	httpClient   *http.Client
	baseURL      string
	serviceToken string
	logger       logger.Interface
}

func NewClient(cfg *config.DiscoveryConfig, logger logger.Interface) *Client {
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

// Ensure Client implements the orchestrator port
var _ assistant.DiscoveryClient = (*Client)(nil)

// Search forwards the query to the discovery service. The raw JSON payload
// is passed through untouched; ranking and shaping live in the collaborator.
func (c *Client) Search(ctx context.Context, req assistant.SearchRequest) (json.RawMessage, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/influencers/search", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.serviceToken)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call discovery service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Full detail stays server-side; callers surface a generic error.
		c.logger.Errorw("discovery service returned error",
			"status", resp.StatusCode,
			"body", string(respBody),
			"org_sid", req.OrgSID,
			"campaign_sid", req.CampaignSID,
		)
		return nil, fmt.Errorf("discovery service returned status %d", resp.StatusCode)
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("discovery service returned invalid JSON")
	}

	return json.RawMessage(respBody), nil
}
