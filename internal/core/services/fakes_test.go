package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
)

// fakeForum serves a fixed sequence of listing pages and post bodies.
type fakeForum struct {
	mu       sync.Mutex
	pages    [][]domain.PostSummary
	posts    map[string]domain.RawPost
	listErr  error
	getErr   error
	getCalls int
}

var _ driven.ForumClient = (*fakeForum)(nil)

func (f *fakeForum) ListPosts(_ context.Context, skip, first int) ([]domain.PostSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	idx := skip / first
	if idx >= len(f.pages) {
		return nil, nil
	}
	return f.pages[idx], nil
}

func (f *fakeForum) GetPost(_ context.Context, id string) (*domain.RawPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	post, ok := f.posts[id]
	if !ok {
		return nil, fmt.Errorf("post %s: %w", id, domain.ErrNotFound)
	}
	return &post, nil
}

// fakeLLM answers chat requests through a scripted function.
type fakeLLM struct {
	mu      sync.Mutex
	respond func(messages []driven.ChatMessage) (string, error)
	calls   [][]driven.ChatMessage
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (f *fakeLLM) Chat(_ context.Context, messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, messages)
	return f.respond(messages)
}

func (f *fakeLLM) ModelName() string { return "fake-model" }

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// validReply builds a well-formed extraction reply.
func validReply(company, role string, yoe, base, total float64) string {
	return fmt.Sprintf(`{"company": %q, "role": %q, "location": "Bangalore",
		"years_experience": %v, "base_offer": %v, "total_offer": %v,
		"currency": "INR", "interview_exp": ""}`, company, role, yoe, base, total)
}
