package leetcode

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRateLimited(t *testing.T) {
	err := &RateLimitError{RetryAfter: 5 * time.Second}
	assert.True(t, IsRateLimited(err))
	assert.True(t, IsRateLimited(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsRateLimited(errors.New("plain")))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", &RateLimitError{RetryAfter: time.Second}, true},
		{"server error", &APIError{StatusCode: 502}, true},
		{"wrapped server error", fmt.Errorf("send: %w", &APIError{StatusCode: 500}), true},
		{"client error", &APIError{StatusCode: 404}, false},
		{"bad request", &APIError{StatusCode: 400}, false},
		{"plain error", errors.New("boom"), false},
		{"nil", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestErrorMessages(t *testing.T) {
	rlErr := &RateLimitError{RetryAfter: 5 * time.Second}
	assert.Contains(t, rlErr.Error(), "5s")

	apiErr := &APIError{StatusCode: 503, Message: "upstream down", URL: "https://leetcode.com/graphql"}
	assert.Contains(t, apiErr.Error(), "503")
	assert.Contains(t, apiErr.Error(), "upstream down")
}
