// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/structure"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// resultsPerQuery caps how many results each derived query contributes
// before the merged set is re-ranked.
const resultsPerQuery = 3

var (
	capitalizedToken = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
	alphaToken       = regexp.MustCompile(`[A-Za-z]+`)
)

// triggerWords are query-phrasing words that never make sense as search
// targets of their own.
var triggerWords = map[string]struct{}{
	"who": {}, "what": {}, "where": {}, "when": {}, "why": {}, "how": {},
	"the": {}, "does": {}, "did": {}, "about": {}, "tell": {}, "happens": {},
	"character": {}, "characters": {}, "chapter": {}, "chapters": {},
	"plot": {}, "climax": {}, "said": {}, "say": {}, "dialogue": {}, "quote": {},
}

// ContextForQuery translates a free-text request into typed queries, runs
// them, and returns the top maxChunks excerpt strings. It is the bridge a
// conversational collaborator uses to assemble prompt context, so it must
// be deterministic for the same (manuscript, index, freeText) triple.
func ContextForQuery(manuscript string, idx *types.ManuscriptIndex, freeText string, maxChunks int) []string {
	var merged []types.SearchResult
	for _, q := range deriveQueries(freeText) {
		merged = append(merged, Search(manuscript, idx, q, resultsPerQuery)...)
	}

	merged = rankAndDeduplicate(merged)
	if maxChunks > 0 && len(merged) > maxChunks {
		merged = merged[:maxChunks]
	}

	contents := make([]string, 0, len(merged))
	for _, r := range merged {
		contents = append(contents, r.Content)
	}
	return contents
}

// deriveQueries maps trigger phrases in the free text onto typed queries.
// With no trigger present, every alphabetic token of three or more
// characters becomes a character query.
func deriveQueries(freeText string) []types.SearchQuery {
	lower := strings.ToLower(freeText)
	var queries []types.SearchQuery

	if strings.Contains(lower, "who is") || strings.Contains(lower, "character") {
		for _, token := range capitalizedToken.FindAllString(freeText, -1) {
			if _, skip := triggerWords[strings.ToLower(token)]; skip {
				continue
			}
			queries = append(queries, types.SearchQuery{Type: types.QueryCharacter, Target: token})
		}
	}

	for _, theme := range structure.DefaultLexicon().Themes {
		if containsWord(lower, theme.Name) {
			queries = append(queries, types.SearchQuery{Type: types.QueryTheme, Target: theme.Name})
		}
	}

	if strings.Contains(lower, "what happens") || containsWord(lower, "plot") || containsWord(lower, "climax") {
		queries = append(queries, types.SearchQuery{Type: types.QueryPlot, Target: freeText})
	}

	if containsWord(lower, "said") || containsWord(lower, "dialogue") || containsWord(lower, "quote") {
		for _, token := range contentTokens(freeText) {
			queries = append(queries, types.SearchQuery{Type: types.QueryDialogue, Target: token})
		}
	}

	if len(queries) == 0 {
		for _, token := range contentTokens(freeText) {
			queries = append(queries, types.SearchQuery{Type: types.QueryCharacter, Target: token})
		}
	}

	return queries
}

// contentTokens returns the alphabetic tokens of three or more characters
// that are not query-phrasing words, in order of appearance.
func contentTokens(freeText string) []string {
	var tokens []string
	for _, token := range alphaToken.FindAllString(freeText, -1) {
		if len(token) < 3 {
			continue
		}
		if _, skip := triggerWords[strings.ToLower(token)]; skip {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}
