// Package leetcode implements the forum client against the leetcode.com
// GraphQL API.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ForumClient = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://leetcode.com/graphql"
	DefaultTimeout = 30 * time.Second

	// DefaultRate is the proactive throttle rate in requests per second.
	// The forum API is unauthenticated; staying polite keeps us unblocked.
	DefaultRate = 1.2

	// RetryDelay is the initial delay between retries; it doubles per
	// attempt.
	RetryDelay = time.Second
)

// Config holds configuration for the forum client.
type Config struct {
	// BaseURL is the GraphQL endpoint (default: https://leetcode.com/graphql).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RequestsPerSec is the proactive throttle rate (default: 1.2).
	RequestsPerSec float64

	// MaxRetries is the retry budget for transient failures (default: 3).
	MaxRetries int
}

// Client talks to the forum GraphQL API with proactive throttling and
// bounded retry for transient failures.
type Client struct {
	client     *http.Client
	baseURL    string
	limiter    *rate.Limiter
	maxRetries int
}

// NewClient creates a forum client.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RequestsPerSec <= 0 {
		cfg.RequestsPerSec = DefaultRate
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	return &Client{
		client:     &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), 1),
		maxRetries: cfg.MaxRetries,
	}
}

// ListPosts fetches one page of the compensation listing, newest first.
func (c *Client) ListPosts(ctx context.Context, skip, first int) ([]domain.PostSummary, error) {
	req := graphqlRequest{
		Query: listQuery,
		Variables: map[string]any{
			"orderBy":  "MOST_RECENT",
			"keywords": []string{},
			"tagSlugs": []string{"compensation"},
			"skip":     skip,
			"first":    first,
		},
	}

	var resp listResponse
	if err := c.post(ctx, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("leetcode: graphql error: %s", resp.Errors[0].Message)
	}

	summaries := make([]domain.PostSummary, 0, len(resp.Data.Articles.Edges))
	for _, edge := range resp.Data.Articles.Edges {
		createdAt, err := parseTimestamp(edge.Node.CreatedAt)
		if err != nil {
			logger.Warn("leetcode: skipping listing entry %d: %v", edge.Node.TopicID, err)
			continue
		}
		summaries = append(summaries, domain.PostSummary{
			ID:        strconv.FormatInt(edge.Node.TopicID, 10),
			CreatedAt: createdAt,
		})
	}
	return summaries, nil
}

// GetPost fetches the full post for a listing entry.
func (c *Client) GetPost(ctx context.Context, id string) (*domain.RawPost, error) {
	req := graphqlRequest{
		Query:     detailQuery,
		Variables: map[string]any{"topicId": id},
	}

	var resp detailResponse
	if err := c.post(ctx, req, &resp); err != nil {
		return nil, err
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("leetcode: graphql error: %s", resp.Errors[0].Message)
	}
	node := resp.Data.Article
	if node == nil {
		return nil, fmt.Errorf("leetcode: post %s: %w", id, domain.ErrNotFound)
	}

	createdAt, err := parseTimestamp(node.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("leetcode: post %s: %w", id, err)
	}

	return &domain.RawPost{
		ID:           strconv.FormatInt(node.TopicID, 10),
		Title:        node.Title,
		Body:         node.Content,
		VoteCount:    node.voteCount(),
		CommentCount: node.Topic.CommentCount,
		ViewCount:    node.HitCount,
		CreatedAt:    createdAt,
	}, nil
}

// post sends one GraphQL request with throttling and bounded retry.
// Transient failures back off exponentially; anything else fails fast.
func (c *Client) post(ctx context.Context, req graphqlRequest, out any) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			delay := retryDelay(attempt, lastErr)
			logger.Debug("leetcode: retry %d/%d after %s: %v", attempt, c.maxRetries-1, delay, lastErr)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		lastErr = c.doOnce(ctx, body, out)
		if lastErr == nil {
			return nil
		}
		if !IsTransient(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("leetcode: retries exhausted: %w", lastErr)
}

func (c *Client) doOnce(ctx context.Context, body []byte, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := 5 * time.Second
		if header := resp.Header.Get("Retry-After"); header != "" {
			if seconds, err := strconv.Atoi(header); err == nil {
				retryAfter = time.Duration(seconds) * time.Second
			}
		}
		return &RateLimitError{RetryAfter: retryAfter}
	}
	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(payload),
			URL:        c.baseURL,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryDelay picks the wait before retry attempt. The exponential backoff is
// the floor; a server-supplied Retry-After wins when it asks for longer.
func retryDelay(attempt int, lastErr error) time.Duration {
	delay := RetryDelay << (attempt - 1)
	var rlErr *RateLimitError
	if errors.As(lastErr, &rlErr) && rlErr.RetryAfter > delay {
		delay = rlErr.RetryAfter
	}
	return delay
}

// parseTimestamp handles the two timestamp shapes the API has been seen to
// return: RFC 3339 strings and Unix epoch seconds.
func parseTimestamp(raw string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts, nil
	}
	if secs, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.Unix(secs, 0).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
