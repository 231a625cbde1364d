package logging

import (
	"context"
	"errors"
	"net"
	"strings"
)

// IsRateLimit reports whether err looks like a provider quota or rate-limit rejection.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate_limit") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "429") ||
		strings.Contains(msg, "insufficient_quota")
}

// IsAuth reports whether err looks like a rejected or missing credential.
func IsAuth(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "401") ||
		strings.Contains(msg, "invalid_api_key") ||
		strings.Contains(msg, "api key")
}

// Classify labels an error for log lines. It never drives control flow.
func Classify(err error) string {
	switch {
	case err == nil:
		return "none"
	case IsRateLimit(err):
		return "rate_limit"
	case IsAuth(err):
		return "auth"
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "network"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "network"
	}
	return "other"
}
