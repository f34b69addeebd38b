package domain

import "time"

// RawPost is a forum post exactly as fetched from the upstream listing.
// Raw posts are immutable once written to the intake store: the pipeline
// only ever appends new posts or deletes old ones, never rewrites a post.
type RawPost struct {
	// ID is the stable upstream identifier (the discussion topic id).
	ID string `json:"id"`

	// Title is the post title. Compensation posts follow a
	// "Company | Role | YoE" title convention upstream.
	Title string `json:"title"`

	// Body is the full post content.
	Body string `json:"body"`

	// VoteCount is upvotes minus downvotes at fetch time. Signed.
	VoteCount int `json:"vote_count"`

	// CommentCount is the number of top-level comments.
	CommentCount int `json:"comment_count"`

	// ViewCount is the upstream hit counter.
	ViewCount int `json:"view_count"`

	// CreatedAt is the upstream creation timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// AgeDays returns the whole number of days elapsed since the post was
// created. Used for the lag-window eligibility check.
func (p *RawPost) AgeDays(now time.Time) int {
	return int(now.Sub(p.CreatedAt).Hours() / 24)
}

// PostSummary is the listing-page view of a post: enough to decide whether
// the full post is worth fetching, nothing more.
type PostSummary struct {
	ID        string
	CreatedAt time.Time
}
