package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// IndexConfig holds settings for index construction.
type IndexConfig struct {
	// MentionThreshold is the minimum manuscript-wide occurrence count for
	// a capitalized token to be treated as a character name (default 3).
	MentionThreshold int `json:"mention_threshold" yaml:"mention_threshold" validate:"gte=1"`

	// ExtraStopWords extends the built-in stop-word list.
	ExtraStopWords []string `json:"extra_stop_words,omitempty" yaml:"extra_stop_words,omitempty"`
}

// CacheConfig holds settings for the chapter context cache.
type CacheConfig struct {
	// Capacity is the maximum number of memoized chapter contexts
	// (default 10). Eviction is FIFO, not LRU.
	Capacity int `json:"capacity" yaml:"capacity" validate:"gte=1"`

	// Window is the chapter distance considered "nearby" when collecting
	// active characters (default 2, meaning ±2 chapters).
	Window int `json:"window" yaml:"window" validate:"gte=0"`
}

// SearchConfig holds settings for structured search.
type SearchConfig struct {
	// MaxResults is the default maximum number of results (default 10).
	MaxResults int `json:"max_results" yaml:"max_results" validate:"gte=1"`

	// MaxChunks is the default context-chunk count for free-text queries
	// (default 5).
	MaxChunks int `json:"max_chunks" yaml:"max_chunks" validate:"gte=1"`
}

// AnalysisConfig holds settings for book structure analysis.
type AnalysisConfig struct {
	// TopCharacters is how many characters receive arc analysis (default 5).
	TopCharacters int `json:"top_characters" yaml:"top_characters" validate:"gte=1"`

	// SubplotThreshold is the minimum chapter-appearance count for a
	// character to get its own subplot thread (default 3).
	SubplotThreshold int `json:"subplot_threshold" yaml:"subplot_threshold" validate:"gte=1"`
}

// StoreConfig holds settings for the index snapshot store.
type StoreConfig struct {
	// IndexDir is the directory holding the SQLite snapshot database.
	IndexDir string `json:"index_dir" yaml:"index_dir" validate:"required"`
}

// EngineConfig groups all component configurations.
type EngineConfig struct {
	Index    IndexConfig    `json:"index" yaml:"index"`
	Cache    CacheConfig    `json:"cache" yaml:"cache"`
	Search   SearchConfig   `json:"search" yaml:"search"`
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis"`
	Store    StoreConfig    `json:"store" yaml:"store"`
}

// DefaultEngineConfig returns the configuration used when no config file
// overrides are present.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		Index:    IndexConfig{MentionThreshold: 3},
		Cache:    CacheConfig{Capacity: 10, Window: 2},
		Search:   SearchConfig{MaxResults: 10, MaxChunks: 5},
		Analysis: AnalysisConfig{TopCharacters: 5, SubplotThreshold: 3},
		Store:    StoreConfig{IndexDir: "index"},
	}
}

// Validate checks the configuration against its struct tags.
func (c EngineConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
