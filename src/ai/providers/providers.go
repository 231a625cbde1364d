package providers

import (
	_ "github.com/stake-plus/expertdesk/src/ai/anthropic"
	_ "github.com/stake-plus/expertdesk/src/ai/openai"
)
