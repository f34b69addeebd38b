package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// systemPrompt is the fixed schema contract sent with every extraction
// request.
const systemPrompt = `You are an assistant that extracts compensation information from forum posts.
Reply with a single JSON object and nothing else, using exactly these fields:
  "company" (string), "role" (string), "location" (string, "" if not mentioned),
  "years_experience" (number), "base_offer" (number, lakhs per annum),
  "total_offer" (number, lakhs per annum), "currency" (ISO code string, "" if unclear),
  "interview_exp" (string, a leetcode.com/discuss link if the post references one, else "").
If a company or role is not mentioned, use an empty string, never "n/a".`

// correctivePrompt is the single follow-up allowed when a reply does not
// parse into the expected shape.
const correctivePrompt = `Your previous reply was not a valid JSON object with the required fields.
Reply again with ONLY the JSON object described earlier. No prose, no markdown fences.`

// Extractor converts raw posts into candidate records through the external
// extraction capability. Individual extractions are independent and run on a
// bounded worker pool; each worker goes through the shared client, so the
// per-request retry and rate-limit policy is respected rather than
// multiplied.
type Extractor struct {
	llm     driven.LLMService
	bounds  domain.OfferBounds
	workers int
}

// NewExtractor creates an extractor with the given worker pool size.
func NewExtractor(llm driven.LLMService, bounds domain.OfferBounds, workers int) *Extractor {
	if workers < 1 {
		workers = 1
	}
	return &Extractor{llm: llm, bounds: bounds, workers: workers}
}

// Extract runs every post through the extraction capability and returns one
// candidate record per completed post. Parse and content failures are
// per-post outcomes carried in the record status. A transport failure
// (retry budget exhausted) cancels the remaining work and is returned as an
// error alongside the candidates that did complete.
func (e *Extractor) Extract(ctx context.Context, posts []domain.RawPost) ([]domain.CandidateRecord, error) {
	if len(posts) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		record domain.CandidateRecord
		err    error
	}

	jobs := make(chan domain.RawPost)
	results := make(chan outcome)

	var wg sync.WaitGroup
	for i := 0; i < e.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				record, err := e.extractOne(ctx, post)
				select {
				case results <- outcome{record: record, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, post := range posts {
			select {
			case jobs <- post:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var records []domain.CandidateRecord
	var firstErr error
	for out := range results {
		if out.err != nil {
			if firstErr == nil {
				firstErr = out.err
				cancel()
			}
			continue
		}
		records = append(records, out.record)
	}

	return records, firstErr
}

// extractOne performs the extraction conversation for a single post. The
// attempt tracker is explicit: one first attempt, at most one corrective
// final attempt, never more.
func (e *Extractor) extractOne(ctx context.Context, post domain.RawPost) (domain.CandidateRecord, error) {
	const (
		attemptFirst = iota
		attemptFinal
	)

	input := post.Title + "\n---\n" + post.Body
	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: input},
	}
	opts := driven.ChatOptions{MaxTokens: 8192, Temperature: 0.1}

	for attempt := attemptFirst; ; attempt++ {
		reply, err := e.llm.Chat(ctx, messages, opts)
		if err != nil {
			return domain.CandidateRecord{}, fmt.Errorf("%w: post %s: %w", domain.ErrExtractionFailed, post.ID, err)
		}

		payload, perr := parseOfferPayload(reply)
		if perr == nil {
			return e.validate(post, payload), nil
		}

		if attempt == attemptFirst {
			logger.Debug("post %s: malformed extraction reply (%v), sending corrective prompt", post.ID, perr)
			messages = append(messages,
				driven.ChatMessage{Role: "assistant", Content: reply},
				driven.ChatMessage{Role: "user", Content: correctivePrompt},
			)
			continue
		}

		logger.Warn("post %s: unparsable after corrective attempt: %v", post.ID, perr)
		return domain.CandidateRecord{
			PostID: post.ID,
			Status: domain.ExtractionUnparsable,
			Reason: perr.Error(),
		}, nil
	}
}

// offerPayload mirrors the schema contract. Pointer fields distinguish
// "absent" from zero values.
type offerPayload struct {
	Company         *string  `json:"company"`
	Role            *string  `json:"role"`
	Location        *string  `json:"location"`
	YearsExperience *float64 `json:"years_experience"`
	BaseOffer       *float64 `json:"base_offer"`
	TotalOffer      *float64 `json:"total_offer"`
	Currency        *string  `json:"currency"`
	InterviewExp    *string  `json:"interview_exp"`
}

// parseOfferPayload decodes a model reply into the expected shape. Fenced
// code blocks are tolerated; anything else non-JSON is a parse failure.
func parseOfferPayload(reply string) (*offerPayload, error) {
	text := strings.TrimSpace(reply)
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	var payload offerPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	switch {
	case payload.Company == nil:
		return nil, fmt.Errorf("missing required field company")
	case payload.Role == nil:
		return nil, fmt.Errorf("missing required field role")
	case payload.YearsExperience == nil:
		return nil, fmt.Errorf("missing required field years_experience")
	case payload.BaseOffer == nil:
		return nil, fmt.Errorf("missing required field base_offer")
	case payload.TotalOffer == nil:
		return nil, fmt.Errorf("missing required field total_offer")
	}

	return &payload, nil
}

// validate applies the content checks to a well-formed payload. A content
// problem is confident-but-implausible: rejected, never retried.
func (e *Extractor) validate(post domain.RawPost, p *offerPayload) domain.CandidateRecord {
	record := domain.CandidateRecord{
		PostID:          post.ID,
		Company:         strings.TrimSpace(*p.Company),
		Role:            strings.TrimSpace(*p.Role),
		YearsExperience: *p.YearsExperience,
		BaseOffer:       *p.BaseOffer,
		TotalOffer:      *p.TotalOffer,
	}
	if p.Location != nil {
		record.Location = strings.TrimSpace(*p.Location)
	}
	if record.Location == "" {
		record.Location = "n/a"
	}
	if p.Currency != nil {
		record.Currency = strings.TrimSpace(*p.Currency)
	}
	if record.Currency == "" {
		record.Currency = "INR"
	}
	if p.InterviewExp != nil {
		record.InterviewExp = strings.TrimSpace(*p.InterviewExp)
	}

	reject := func(reason string) domain.CandidateRecord {
		record.Status = domain.ExtractionSchemaInvalid
		record.Reason = reason
		logger.Debug("post %s: schema invalid: %s", post.ID, reason)
		return record
	}

	if record.Company == "" {
		return reject("empty company")
	}
	if record.Role == "" {
		return reject("empty role")
	}
	if domain.IsInternRole(record.Role) {
		return reject("intern role")
	}
	if record.YearsExperience < 0 || record.YearsExperience > 50 {
		return reject(fmt.Sprintf("years_experience %.1f out of range [0, 50]", record.YearsExperience))
	}

	base, ok := domain.FitOffer(record.BaseOffer, e.bounds.MinBase, e.bounds.MaxBase)
	if !ok {
		return reject(fmt.Sprintf("base_offer %.2f out of range [%.2f, %.2f]",
			record.BaseOffer, e.bounds.MinBase, e.bounds.MaxBase))
	}
	total, ok := domain.FitOffer(record.TotalOffer, e.bounds.MinTotal, e.bounds.MaxTotal)
	if !ok {
		return reject(fmt.Sprintf("total_offer %.2f out of range [%.2f, %.2f]",
			record.TotalOffer, e.bounds.MinTotal, e.bounds.MaxTotal))
	}

	record.BaseOffer = base
	record.TotalOffer = total
	record.Status = domain.ExtractionValid
	return record
}
