package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"

	aicore "github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/persona"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClient struct{}

func (fixedClient) Complete(ctx context.Context, messages []aicore.Message, opts aicore.Options) (string, error) {
	return "ok", nil
}

func TestModule_ServesHealth(t *testing.T) {
	svc, err := consult.NewService(persona.New(), fixedClient{})
	require.NoError(t, err)

	mod, err := NewModule(config.WebConfig{Port: "0", GinMode: "test"}, svc, nil)
	require.NoError(t, err)
	assert.Equal(t, "web", mod.Name())

	ctx := context.Background()
	require.NoError(t, mod.Start(ctx))
	defer mod.Stop(ctx)

	_, port, err := net.SplitHostPort(mod.Addr())
	require.NoError(t, err)
	resp, err := http.Get("http://127.0.0.1:" + port + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"status":"ok"`)
}

func TestNewModule_NilService(t *testing.T) {
	_, err := NewModule(config.WebConfig{}, nil, nil)
	assert.Error(t, err)
}
