package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ModelMessage is one chat-completion wire message. Tool results reference
// the call they answer via ToolCallID.
type ModelMessage struct {
	Role       string          `json:"role"`
	Content    string          `json:"content"`
	ToolCalls  []ModelToolCall `json:"tool_calls,omitempty"`
	ToolCallID string          `json:"tool_call_id,omitempty"`
}

// ModelToolCall is one function invocation requested by the model.
type ModelToolCall struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

// ToolSchema describes one callable tool advertised to the model.
type ToolSchema struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// CompletionRequest is one model turn: the transcript so far plus the tool
// catalog.
type CompletionRequest struct {
	Messages []ModelMessage
	Tools    []ToolSchema
}

// CompletionResponse is the model's reply. A reply with no tool calls is
// terminal.
type CompletionResponse struct {
	Message ModelMessage
}

// ModelClient talks to the chat-completion endpoint.
type ModelClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// SearchRequest is forwarded to the creator discovery collaborator.
type SearchRequest struct {
	OrgSID      string          `json:"orgId"`
	CampaignSID string          `json:"campaignId"`
	Query       string          `json:"query"`
	Filters     json.RawMessage `json:"filters,omitempty"`
}

// DiscoveryClient talks to the creator discovery collaborator.
type DiscoveryClient interface {
	Search(ctx context.Context, req SearchRequest) (json.RawMessage, error)
}

// ErrNoCachedSearch is returned by SearchResultCache.Get when no payload is
// stored for the campaign or its TTL elapsed.
var ErrNoCachedSearch = errors.New("no cached search result")

// CachedSearch is one stored discovery payload with its provenance.
type CachedSearch struct {
	CampaignSID string
	Query       string
	Results     json.RawMessage
	CachedAt    time.Time
}

// SearchResultCache stores the latest search payload per campaign with TTL
// so it can be replayed without re-querying discovery.
type SearchResultCache interface {
	Set(ctx context.Context, orgSID, campaignSID, query string, results json.RawMessage) error

	// Get returns the latest stored payload, or ErrNoCachedSearch.
	Get(ctx context.Context, orgSID, campaignSID string) (*CachedSearch, error)
}
