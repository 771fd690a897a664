// Package llm implements the chat-completion model client against an
// OpenAI-compatible HTTP endpoint.
package llm

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
	defaultTimeout = 60 * time.Second
	// Maximum response body size for the completion API (4MB)
	maxResponseSize = 4 << 20
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     logger.Interface
}

func NewClient(cfg *config.LLMConfig, logger logger.Interface) *Client {
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger,
	}
}

// Ensure Client implements the orchestrator port
var _ assistant.ModelClient = (*Client)(nil)

// Configured reports whether a model credential is present. Callers turn an
// unconfigured client into a 503 before entering the metered flow.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Wire types for the chat-completions API.

type wireFunction struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

type wireTool struct {
	Type     string       `json:"type"`
	Function wireFunction `json:"function"`
}

type wireFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type wireToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function wireFunctionCall `json:"function"`
}

type wireMessage struct {
	Role       string         `json:"role"`
	Content    string         `json:"content"`
	ToolCalls  []wireToolCall `json:"tool_calls,omitempty"`
	ToolCallID string         `json:"tool_call_id,omitempty"`
}

type completionRequest struct {
	Model    string        `json:"model"`
	Messages []wireMessage `json:"messages"`
	Tools    []wireTool    `json:"tools,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message wireMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete runs one model turn.
func (c *Client) Complete(ctx context.Context, req assistant.CompletionRequest) (*assistant.CompletionResponse, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("model client is not configured")
	}

	body := completionRequest{
		Model:    c.model,
		Messages: make([]wireMessage, 0, len(req.Messages)),
		Tools:    make([]wireTool, 0, len(req.Tools)),
	}
	for _, m := range req.Messages {
		wm := wireMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			wm.ToolCalls = append(wm.ToolCalls, wireToolCall{
				ID:   tc.ID,
				Type: "function",
				Function: wireFunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		body.Messages = append(body.Messages, wm)
	}
	for _, tool := range req.Tools {
		body.Tools = append(body.Tools, wireTool{
			Type: "function",
			Function: wireFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call model endpoint: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Errorw("model endpoint returned error",
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return nil, fmt.Errorf("model endpoint returned status %d", resp.StatusCode)
	}

	var data completionResponse
	if err := json.Unmarshal(respBody, &data); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if data.Error != nil {
		return nil, fmt.Errorf("model endpoint error: %s", data.Error.Message)
	}
	if len(data.Choices) == 0 {
		return nil, fmt.Errorf("model returned no choices")
	}

	msg := data.Choices[0].Message
	out := assistant.CompletionResponse{
		Message: assistant.ModelMessage{
			Role:    msg.Role,
			Content: msg.Content,
		},
	}
	for _, tc := range msg.ToolCalls {
		out.Message.ToolCalls = append(out.Message.ToolCalls, assistant.ModelToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}

	return &out, nil
}
