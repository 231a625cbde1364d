package logging

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "none"},
		{"rate limit text", errors.New("openai API error: rate limit reached"), "rate_limit"},
		{"status 429", errors.New("status 429"), "rate_limit"},
		{"quota", errors.New("insufficient_quota"), "rate_limit"},
		{"auth", errors.New("anthropic API error: status 401: nope"), "auth"},
		{"missing key", errors.New("openai: API key not configured"), "auth"},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), "network"},
		{"dial", &net.OpError{Op: "dial", Err: errors.New("connection refused")}, "network"},
		{"other", errors.New("openai: empty response"), "other"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}
