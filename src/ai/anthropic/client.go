package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/webclient"
)

const (
	anthropicEndpoint = "https://api.anthropic.com/v1/messages"
	anthropicVersion  = "2023-06-01"
	defaultMaxTokens  = 1024
)

func init() {
	core.RegisterProvider("anthropic", newClient, "claude")
}

type client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	defaults   core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if strings.TrimSpace(cfg.ClaudeKey) == "" {
		return nil, fmt.Errorf("anthropic: API key not configured")
	}

	endpoint := anthropicEndpoint
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		endpoint = base + "/messages"
	}

	return &client{
		apiKey:     cfg.ClaudeKey,
		endpoint:   endpoint,
		httpClient: webclient.NewDefault(cfg.HTTPTimeout),
		defaults: core.Options{
			Model:       core.ResolveModelName("anthropic", cfg.Model),
			Temperature: orFloat(cfg.Temperature, core.DefaultTemperature),
			MaxTokens:   orInt(cfg.MaxTokens, defaultMaxTokens),
		},
	}, nil
}

func (c *client) Complete(ctx context.Context, messages []core.Message, opts core.Options) (string, error) {
	merged := c.merge(opts)

	turns := make([]anthropicMessage, 0, len(messages))
	for _, m := range messages {
		if m.Role == core.RoleSystem {
			continue
		}
		turns = append(turns, anthropicMessage{
			Role:    m.Role,
			Content: []anthropicContent{{Type: "text", Text: m.Content}},
		})
	}

	body := anthropicRequest{
		Model:       merged.Model,
		System:      core.SystemPrompt(messages),
		MaxTokens:   merged.MaxTokens,
		Temperature: merged.Temperature,
		Messages:    turns,
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		return "", err
	}

	text := extractText(resp.Content)
	if text == "" {
		return "", fmt.Errorf("anthropic: empty response")
	}
	return text, nil
}

func (c *client) post(ctx context.Context, payload anthropicRequest) (*anthropicResponse, error) {
	bodyBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("anthropic: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anthropic API error: %w", err)
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("anthropic: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("anthropic API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var result anthropicResponse
	if err := json.Unmarshal(b, &result); err != nil {
		return nil, fmt.Errorf("anthropic: decode response: %w", err)
	}
	return &result, nil
}

func (c *client) merge(opts core.Options) core.Options {
	out := c.defaults
	if opts.Model != "" {
		out.Model = opts.Model
	}
	if opts.Temperature != 0 {
		out.Temperature = opts.Temperature
	}
	if opts.MaxTokens != 0 {
		out.MaxTokens = opts.MaxTokens
	}
	return out
}

// extractText joins the text blocks without trimming so replies stay verbatim.
func extractText(chunks []anthropicContent) string {
	var b strings.Builder
	for _, chunk := range chunks {
		if chunk.Type != "" && chunk.Type != "text" {
			continue
		}
		b.WriteString(chunk.Text)
	}
	return b.String()
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	System      string             `json:"system,omitempty"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicResponse struct {
	Content []anthropicContent `json:"content"`
}

func orInt(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func orFloat(v, def float64) float64 {
	if v != 0 {
		return v
	}
	return def
}
