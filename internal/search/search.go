// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search routes typed queries over a manuscript index to
// specialized matchers and returns ranked, deduplicated excerpts.
package search

import (
	"sort"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// Search dispatches the query to its matcher, ranks results by relevance
// descending, deduplicates by (chapter, position), and truncates to
// maxResults. It is total: unmatched queries yield an empty slice, never
// an error. Scores are only comparable within a single query type.
func Search(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery, maxResults int) []types.SearchResult {
	if strings.TrimSpace(query.Target) == "" || idx == nil {
		return nil
	}

	var results []types.SearchResult
	switch query.Type {
	case types.QueryCharacter:
		results = matchCharacter(manuscript, idx, query)
	case types.QueryTheme:
		results = matchTheme(manuscript, idx, query)
	case types.QueryPlot:
		results = matchPlot(manuscript, idx, query)
	case types.QueryDialogue:
		results = matchDialogue(manuscript, idx, query)
	case types.QueryScene:
		results = matchScene(manuscript, idx, query)
	case types.QueryEmotion:
		results = matchEmotion(manuscript, idx, query)
	default:
		results = matchGeneral(manuscript, idx, query)
	}

	results = rankAndDeduplicate(results)
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

// rankAndDeduplicate sorts by score descending and then drops duplicate
// (chapter, position) pairs. Sorting first means the kept duplicate is
// always the highest-scored one. Ties break on chapter then position so
// the ordering is stable across runs.
func rankAndDeduplicate(results []types.SearchResult) []types.SearchResult {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].RelevanceScore != results[j].RelevanceScore {
			return results[i].RelevanceScore > results[j].RelevanceScore
		}
		if results[i].Chapter != results[j].Chapter {
			return results[i].Chapter < results[j].Chapter
		}
		return results[i].Position < results[j].Position
	})

	type key struct {
		chapter  int
		position int
	}
	seen := make(map[key]struct{}, len(results))
	deduped := make([]types.SearchResult, 0, len(results))
	for _, r := range results {
		k := key{r.Chapter, r.Position}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		deduped = append(deduped, r)
	}
	return deduped
}

// chaptersInScope returns the chapters a query may scan, honoring the
// optional chapter restriction in the query context.
func chaptersInScope(idx *types.ManuscriptIndex, query types.SearchQuery) []types.ChapterBoundary {
	if query.Context == nil || len(query.Context.Chapters) == 0 {
		return idx.Chapters
	}

	allowed := make(map[int]struct{}, len(query.Context.Chapters))
	for _, n := range query.Context.Chapters {
		allowed[n] = struct{}{}
	}

	var scoped []types.ChapterBoundary
	for _, boundary := range idx.Chapters {
		if _, ok := allowed[boundary.ChapterNumber]; ok {
			scoped = append(scoped, boundary)
		}
	}
	return scoped
}
