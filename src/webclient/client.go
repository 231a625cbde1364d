package webclient

import (
	"net/http"
	"time"
)

// NewDefault returns an HTTP client for provider calls. A zero timeout leaves
// the client without a deadline so the caller's context is the only bound.
func NewDefault(timeout time.Duration) *http.Client {
	if timeout < 0 {
		timeout = 0
	}
	return &http.Client{Timeout: timeout}
}
