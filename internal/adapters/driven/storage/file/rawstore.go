package file

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/compwatch-labs/compwatch-cli/internal/core/domain"
	"github.com/compwatch-labs/compwatch-cli/internal/core/ports/driven"
	"github.com/compwatch-labs/compwatch-cli/internal/logger"
)

// Ensure RawPostStore implements the interface.
var _ driven.RawPostStore = (*RawPostStore)(nil)

// maxLineBytes bounds a single stored post. Forum bodies run long but never
// this long; anything bigger is a corrupt line.
const maxLineBytes = 4 * 1024 * 1024

// RawPostStore keeps raw posts as one JSON object per line. Appends go to
// the end of the file; removal rewrites the surviving lines through an
// atomic replace.
type RawPostStore struct {
	mu   sync.Mutex
	path string
}

// NewRawPostStore creates a raw post store backed by the file at path.
func NewRawPostStore(path string) *RawPostStore {
	return &RawPostStore{path: path}
}

// Append adds posts to the end of the store.
func (s *RawPostStore) Append(ctx context.Context, posts []domain.RawPost) error {
	if len(posts) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var buf bytes.Buffer
	for _, post := range posts {
		line, err := json.Marshal(post)
		if err != nil {
			return fmt.Errorf("marshal post %s: %w", post.ID, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open raw store: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("append raw store: %w", err)
	}
	return f.Sync()
}

// List returns all posts in store order. Malformed lines are logged and
// skipped so one bad line does not poison the whole store.
func (s *RawPostStore) List(ctx context.Context) ([]domain.RawPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open raw store: %w", err)
	}
	defer f.Close()

	var posts []domain.RawPost
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		var post domain.RawPost
		if err := json.Unmarshal(line, &post); err != nil {
			logger.Warn("raw store: skipping malformed line %d: %v", lineNo, err)
			continue
		}
		posts = append(posts, post)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan raw store: %w", err)
	}
	return posts, nil
}

// IDs returns the set of post ids currently in the store.
func (s *RawPostStore) IDs(ctx context.Context) (map[string]struct{}, error) {
	posts, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make(map[string]struct{}, len(posts))
	for _, post := range posts {
		ids[post.ID] = struct{}{}
	}
	return ids, nil
}

// Remove deletes exactly the posts whose ids are in the set. The surviving
// lines keep their original order and bytes; the store image is replaced
// atomically.
func (s *RawPostStore) Remove(ctx context.Context, ids map[string]struct{}) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("open raw store: %w", err)
	}

	var kept bytes.Buffer
	removed := 0
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)
	for scanner.Scan() {
		line := scanner.Bytes()
		trimmed := bytes.TrimSpace(line)
		if len(trimmed) == 0 {
			continue
		}
		var probe struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(trimmed, &probe); err == nil {
			if _, drop := ids[probe.ID]; drop {
				removed++
				continue
			}
		}
		kept.Write(line)
		kept.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		f.Close()
		return 0, fmt.Errorf("scan raw store: %w", err)
	}
	f.Close()

	if removed == 0 {
		return 0, nil
	}
	if err := writeFileAtomic(s.path, kept.Bytes()); err != nil {
		return 0, err
	}
	return removed, nil
}
