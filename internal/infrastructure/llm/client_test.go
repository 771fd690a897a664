package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beacon/internal/application/assistant"
	"beacon/internal/shared/config"
	"beacon/internal/shared/logger"
)

func newTestClient(baseURL, apiKey string) *Client {
	return NewClient(&config.LLMConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   "gpt-4o-mini",
	}, logger.NewLogger())
}

func TestClient_Configured(t *testing.T) {
	assert.True(t, newTestClient("http://localhost", "sk-test").Configured())
	assert.False(t, newTestClient("http://localhost", "").Configured())
}

func TestClient_Complete_TextReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req["model"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello there"}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk-test")
	resp, err := client.Complete(context.Background(), assistant.CompletionRequest{
		Messages: []assistant.ModelMessage{{Role: "user", Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", resp.Message.Content)
	assert.Empty(t, resp.Message.ToolCalls)
}

func TestClient_Complete_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"","tool_calls":[
			{"id":"call_1","type":"function","function":{"name":"create_campaign","arguments":"{\"name\":\"X\"}"}}
		]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk-test")
	resp, err := client.Complete(context.Background(), assistant.CompletionRequest{
		Messages: []assistant.ModelMessage{{Role: "user", Content: "go"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Message.ToolCalls, 1)
	assert.Equal(t, "call_1", resp.Message.ToolCalls[0].ID)
	assert.Equal(t, "create_campaign", resp.Message.ToolCalls[0].Name)
	assert.JSONEq(t, `{"name":"X"}`, resp.Message.ToolCalls[0].Arguments)
}

func TestClient_Complete_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "sk-test")
	_, err := client.Complete(context.Background(), assistant.CompletionRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestClient_Complete_Unconfigured(t *testing.T) {
	client := newTestClient("http://localhost", "")
	_, err := client.Complete(context.Background(), assistant.CompletionRequest{})
	assert.Error(t, err)
}
