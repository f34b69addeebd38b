package domain

import (
	"fmt"
	"time"
)

// Settings is the full pipeline configuration, loaded once at process start
// and passed explicitly into every component. Components never reach for
// ambient configuration.
type Settings struct {
	App     AppSettings     `toml:"app"`
	Parsing ParsingSettings `toml:"parsing"`
	Forum   ForumSettings   `toml:"forum"`
	LLM     LLMSettings     `toml:"llm"`
}

// AppSettings holds pipeline-wide knobs.
type AppSettings struct {
	// DataDir is where all stores live (raw posts, dataset, alias maps,
	// state ledger).
	DataDir string `toml:"data_dir"`

	// LagDays is the minimum post age before its votes are trusted enough
	// to decide inclusion or exclusion.
	LagDays int `toml:"lag_days"`

	// MaxFetchRecs is the per-run fetch ceiling.
	MaxFetchRecs int `toml:"max_fetch_recs"`

	// MaxRecs bounds the raw intake store after pruning.
	MaxRecs int `toml:"max_recs"`

	// NAPIRetries is the retry budget for transient upstream and
	// extraction failures.
	NAPIRetries int `toml:"n_api_retries"`

	// NWorkers bounds the extraction worker pool.
	NWorkers int `toml:"n_workers"`
}

// ParsingSettings holds the plausible-range bounds for extracted offers.
// Amounts are in lakhs per annum.
type ParsingSettings struct {
	MinBaseOffer  float64 `toml:"min_base_offer"`
	MaxBaseOffer  float64 `toml:"max_base_offer"`
	MinTotalOffer float64 `toml:"min_total_offer"`
	MaxTotalOffer float64 `toml:"max_total_offer"`
}

// ForumSettings configures the upstream forum API client.
type ForumSettings struct {
	BaseURL        string  `toml:"base_url"`
	PageSize       int     `toml:"page_size"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	RequestsPerSec float64 `toml:"requests_per_sec"`
}

// LLMSettings configures the extraction service client. The access token is
// deliberately not part of the file; it comes from the environment.
type LLMSettings struct {
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// DefaultSettings returns the settings used when the config file omits a
// value.
func DefaultSettings() Settings {
	return Settings{
		App: AppSettings{
			DataDir:      "data",
			LagDays:      5,
			MaxFetchRecs: 100,
			MaxRecs:      2000,
			NAPIRetries:  3,
			NWorkers:     4,
		},
		Parsing: ParsingSettings{
			MinBaseOffer:  2,
			MaxBaseOffer:  200,
			MinTotalOffer: 3,
			MaxTotalOffer: 500,
		},
		Forum: ForumSettings{
			BaseURL:        "https://leetcode.com/graphql",
			PageSize:       50,
			TimeoutSeconds: 30,
			RequestsPerSec: 1.2,
		},
		LLM: LLMSettings{
			BaseURL:        "https://models.github.ai/inference",
			Model:          "openai/gpt-4o-mini",
			TimeoutSeconds: 120,
		},
	}
}

// Validate checks settings for values the pipeline cannot run with.
func (s *Settings) Validate() error {
	if s.App.LagDays < 0 {
		return fmt.Errorf("%w: lag_days must be >= 0", ErrInvalidConfig)
	}
	if s.App.MaxFetchRecs <= 0 {
		return fmt.Errorf("%w: max_fetch_recs must be > 0", ErrInvalidConfig)
	}
	if s.App.MaxRecs <= 0 {
		return fmt.Errorf("%w: max_recs must be > 0", ErrInvalidConfig)
	}
	if s.App.NAPIRetries < 1 {
		return fmt.Errorf("%w: n_api_retries must be >= 1", ErrInvalidConfig)
	}
	if s.App.NWorkers < 1 {
		return fmt.Errorf("%w: n_workers must be >= 1", ErrInvalidConfig)
	}
	if s.Parsing.MinBaseOffer > s.Parsing.MaxBaseOffer {
		return fmt.Errorf("%w: base offer bounds inverted", ErrInvalidConfig)
	}
	if s.Parsing.MinTotalOffer > s.Parsing.MaxTotalOffer {
		return fmt.Errorf("%w: total offer bounds inverted", ErrInvalidConfig)
	}
	if s.Forum.PageSize <= 0 {
		return fmt.Errorf("%w: forum page_size must be > 0", ErrInvalidConfig)
	}
	return nil
}

// OfferBounds returns the parsing bounds in the form the extractor consumes.
func (s *Settings) OfferBounds() OfferBounds {
	return OfferBounds{
		MinBase:  s.Parsing.MinBaseOffer,
		MaxBase:  s.Parsing.MaxBaseOffer,
		MinTotal: s.Parsing.MinTotalOffer,
		MaxTotal: s.Parsing.MaxTotalOffer,
	}
}

// ForumTimeout returns the forum request timeout as a duration.
func (s *Settings) ForumTimeout() time.Duration {
	return time.Duration(s.Forum.TimeoutSeconds) * time.Second
}

// LLMTimeout returns the extraction request timeout as a duration.
func (s *Settings) LLMTimeout() time.Duration {
	return time.Duration(s.LLM.TimeoutSeconds) * time.Second
}
