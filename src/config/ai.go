package config

import (
	"time"

	aicore "github.com/stake-plus/expertdesk/src/ai/core"
)

// AIConfig holds AI-related configuration
type AIConfig struct {
	Provider    string
	OpenAIKey   string
	ClaudeKey   string
	BaseURL     string
	Model       string
	Temperature float64
	HTTPTimeout time.Duration
}

// LoadAIConfig loads AI configuration
func LoadAIConfig() AIConfig {
	provider := GetSetting("ai_provider", "AI_PROVIDER", "openai")
	return AIConfig{
		Provider:    provider,
		OpenAIKey:   GetSetting("openai_api_key", "OPENAI_API_KEY", ""),
		ClaudeKey:   GetSetting("claude_api_key", "CLAUDE_API_KEY", ""),
		BaseURL:     GetSetting("openai_base_url", "OPENAI_BASE_URL", ""),
		Model:       aicore.ResolveModelName(provider, GetSetting("ai_model", "AI_MODEL", "")),
		Temperature: getFloatSetting("ai_temperature", "AI_TEMPERATURE", aicore.DefaultTemperature),
		HTTPTimeout: getSecondsSetting("ai_http_timeout_seconds", "AI_HTTP_TIMEOUT_SECONDS", 0),
	}
}

// FactoryConfig maps the loaded settings onto the provider factory inputs.
func (c AIConfig) FactoryConfig() aicore.FactoryConfig {
	return aicore.FactoryConfig{
		Provider:    c.Provider,
		Model:       c.Model,
		Temperature: c.Temperature,
		OpenAIKey:   c.OpenAIKey,
		ClaudeKey:   c.ClaudeKey,
		BaseURL:     c.BaseURL,
		HTTPTimeout: c.HTTPTimeout,
	}
}
