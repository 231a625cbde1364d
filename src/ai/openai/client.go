package openai

import (
	"context"
	"fmt"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stake-plus/expertdesk/src/ai/core"
	"github.com/stake-plus/expertdesk/src/webclient"
)

func init() {
	core.RegisterProvider("openai", newClient, "gpt", "chatgpt")
}

type client struct {
	api      *goopenai.Client
	defaults core.Options
}

func newClient(cfg core.FactoryConfig) (core.Client, error) {
	if strings.TrimSpace(cfg.OpenAIKey) == "" {
		return nil, fmt.Errorf("openai: API key not configured")
	}

	apiCfg := goopenai.DefaultConfig(cfg.OpenAIKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		apiCfg.BaseURL = strings.TrimRight(base, "/")
	}
	apiCfg.HTTPClient = webclient.NewDefault(cfg.HTTPTimeout)

	return &client{
		api: goopenai.NewClientWithConfig(apiCfg),
		defaults: core.Options{
			Model:       core.ResolveModelName("openai", cfg.Model),
			Temperature: orFloat(cfg.Temperature, core.DefaultTemperature),
			MaxTokens:   cfg.MaxTokens,
		},
	}, nil
}

func (c *client) Complete(ctx context.Context, messages []core.Message, opts core.Options) (string, error) {
	merged := c.merge(opts)

	req := goopenai.ChatCompletionRequest{
		Model:       merged.Model,
		Temperature: float32(merged.Temperature),
		Messages:    toChatMessages(messages),
	}
	if merged.MaxTokens > 0 {
		req.MaxTokens = merged.MaxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: empty response")
	}
	return resp.Choices[0].Message.Content, nil
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

func toChatMessages(messages []core.Message) []goopenai.ChatCompletionMessage {
	out := make([]goopenai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := goopenai.ChatMessageRoleUser
		switch m.Role {
		case core.RoleSystem:
			role = goopenai.ChatMessageRoleSystem
		case core.RoleAssistant:
			role = goopenai.ChatMessageRoleAssistant
		}
		out = append(out, goopenai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}

func orFloat(v, d float64) float64 {
	if v != 0 {
		return v
	}
	return d
}
