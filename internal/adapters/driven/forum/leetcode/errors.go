package leetcode

import (
	"errors"
	"fmt"
	"net"
	"time"
)

// RateLimitError indicates the upstream asked us to back off.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("leetcode: rate limited, retry after %s", e.RetryAfter)
}

// APIError represents a non-2xx response from the forum API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("leetcode: API error %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsRateLimited checks if the error indicates rate limiting.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// IsTransient reports whether a failed request is worth retrying: network
// timeouts, rate limiting and server-side errors. Client errors (4xx other
// than 429) mean the request itself is wrong and retrying cannot help.
func IsTransient(err error) bool {
	if IsRateLimited(err) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
