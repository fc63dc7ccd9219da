// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chapctx builds and memoizes chapter neighborhood contexts:
// adjacent chapters, characters active nearby, and plot-continuity hints.
package chapctx

import (
	"sync"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Cache memoizes ChapterContext values by chapter number. Eviction is
// FIFO, not LRU: when full, the oldest inserted key is dropped regardless
// of access order. Callers must ClearCache after any manuscript edit;
// there is no per-chapter invalidation, because an edit can shift the byte
// offsets of every subsequent chapter.
type Cache struct {
	mu       sync.Mutex
	capacity int
	window   int
	order    []int
	entries  map[int]*types.ChapterContext
}

// NewCache returns a cache with the configured capacity and context
// window. Zero config fields fall back to defaults (capacity 10, ±2).
func NewCache(cfg types.CacheConfig) *Cache {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 10
	}
	window := cfg.Window
	if window <= 0 {
		window = 2
	}
	return &Cache{
		capacity: capacity,
		window:   window,
		entries:  make(map[int]*types.ChapterContext),
	}
}

// LoadContext returns the memoized context for the chapter, building it on
// a miss. It fails with *types.ChapterNotFoundError when the chapter has
// no boundary in the index.
func (c *Cache) LoadContext(manuscript string, chapter int, idx *types.ManuscriptIndex) (*types.ChapterContext, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx, ok := c.entries[chapter]; ok {
		return ctx, nil
	}

	ctx, err := buildContext(manuscript, chapter, idx, c.window)
	if err != nil {
		return nil, err
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.order = append(c.order, chapter)
	c.entries[chapter] = ctx

	return ctx, nil
}

// ClearCache drops every entry. Call after any manuscript-mutating
// operation, before the next read.
func (c *Cache) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = c.order[:0]
	c.entries = make(map[int]*types.ChapterContext)
}

// Len returns the number of cached contexts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// buildContext assembles the neighborhood view for one chapter.
func buildContext(manuscript string, chapter int, idx *types.ManuscriptIndex, window int) (*types.ChapterContext, error) {
	target := idx.Chapter(chapter)
	if target == nil {
		return nil, &types.ChapterNotFoundError{Chapter: chapter}
	}

	ctx := &types.ChapterContext{
		TargetChapter:   *target,
		PreviousChapter: idx.Chapter(chapter - 1),
		NextChapter:     idx.Chapter(chapter + 1),
	}

	for _, appearance := range idx.Characters {
		if !appearsInWindow(appearance.Chapters, chapter, window) {
			continue
		}
		ctx.ActiveCharacters = append(ctx.ActiveCharacters,
			buildProfile(manuscript, idx, appearance, chapter, window))
	}

	ctx.PlotContinuity = buildContinuity(manuscript, target, ctx.PreviousChapter, ctx.NextChapter)

	return ctx, nil
}

// appearsInWindow reports whether any membership falls within ±window of
// the target chapter.
func appearsInWindow(chapters []int, target, window int) bool {
	for _, ch := range chapters {
		if ch >= target-window && ch <= target+window {
			return true
		}
	}
	return false
}
