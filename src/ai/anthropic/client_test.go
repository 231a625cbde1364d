package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplete_SystemMovedToTopLevel(t *testing.T) {
	var got anthropicRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ck", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"Hello "},{"type":"tool_use"},{"type":"text","text":"there"}]}`))
	}))
	defer srv.Close()

	c, err := newClient(core.FactoryConfig{ClaudeKey: "ck", BaseURL: srv.URL + "/v1"})
	require.NoError(t, err)

	out, err := c.Complete(context.Background(), []core.Message{
		{Role: core.RoleSystem, Content: "be an expert"},
		{Role: core.RoleUser, Content: "question"},
	}, core.Options{})
	require.NoError(t, err)
	assert.Equal(t, "Hello there", out)

	assert.Equal(t, "be an expert", got.System)
	assert.Equal(t, "claude-3-haiku-20240307", got.Model)
	assert.Equal(t, defaultMaxTokens, got.MaxTokens)
	assert.InDelta(t, core.DefaultTemperature, got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "question", got.Messages[0].Content[0].Text)
}

func TestComplete_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	c, err := newClient(core.FactoryConfig{ClaudeKey: "bad", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = c.Complete(context.Background(), []core.Message{{Role: core.RoleUser, Content: "q"}}, core.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 401")
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestNewClient_MissingKey(t *testing.T) {
	_, err := newClient(core.FactoryConfig{})
	assert.Error(t, err)
}
