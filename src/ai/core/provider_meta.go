package core

import (
	"strings"
)

// DefaultTemperature is the sampling temperature used for consultations.
const DefaultTemperature = 0.7

var providerDefaultModels = map[string]string{
	"openai":    "gpt-3.5-turbo",
	"anthropic": "claude-3-haiku-20240307",
	"claude":    "claude-3-haiku-20240307",
}

// DefaultModelForProvider returns the baked-in default model for a provider key.
func DefaultModelForProvider(provider string) string {
	key := strings.ToLower(strings.TrimSpace(provider))
	if key == "" {
		key = defaultKey
	}
	if val, ok := providerDefaultModels[key]; ok {
		return val
	}
	return ""
}

// ResolveModelName picks the configured model if provided, otherwise the provider's default.
func ResolveModelName(provider, configuredModel string) string {
	model := strings.TrimSpace(configuredModel)
	if model != "" {
		return model
	}
	if def := DefaultModelForProvider(provider); def != "" {
		return def
	}
	return "unknown"
}
