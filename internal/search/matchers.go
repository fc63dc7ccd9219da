// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/structure"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// longContext is the window length, in bytes, above which matchers grant
// their length bonus.
const longContext = 100

// internalStateVerbs signal interiority in a character match.
var internalStateVerbs = []string{
	"thought", "felt", "wondered", "realized", "knew",
	"believed", "remembered", "feared", "hoped",
}

// attributionVerbs are the dialogue-attribution verbs recognized around a
// quotation.
const attributionVerbs = `said|asked|replied|whispered|shouted|murmured|called|answered`

var (
	quotePattern       = regexp.MustCompile(`"[^"]*"`)
	speakerAfterQuote  = regexp.MustCompile(`^[\s,]*([A-Z][a-z]+)\s+(?:` + attributionVerbs + `)\b`)
	speakerBeforeQuote = regexp.MustCompile(`([A-Z][a-z]+)\s+(?:` + attributionVerbs + `)[,:]?\s*$`)
)

// window is a sentence-level span around a keyword hit, with its offset
// inside the chapter text.
type window struct {
	start int
	text  string
}

// sentenceWindows finds sentence-level spans containing the keyword,
// case-insensitively.
func sentenceWindows(text, keyword string) []window {
	if keyword == "" {
		return nil
	}
	pattern, err := regexp.Compile(`(?i)[^.!?]*` + regexp.QuoteMeta(keyword) + `[^.!?]*[.!?]`)
	if err != nil {
		return nil
	}

	var windows []window
	for _, span := range pattern.FindAllStringIndex(text, -1) {
		windows = append(windows, window{start: span[0], text: text[span[0]:span[1]]})
	}
	return windows
}

// matchCharacter scores sentences mentioning the character. Dialogue and
// internal-state verbs raise the score; other indexed characters in the
// same sentence become related elements.
func matchCharacter(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	var results []types.SearchResult
	for _, boundary := range chaptersInScope(idx, query) {
		text := manuscript[boundary.StartPosition:boundary.EndPosition]
		for _, win := range sentenceWindows(text, query.Target) {
			score := 0.4
			if strings.Contains(win.text, `"`) {
				score += 0.3
			}
			if containsAnyWord(win.text, internalStateVerbs) {
				score += 0.2
			}
			if len(win.text) > longContext {
				score += 0.1
			}

			results = append(results, types.SearchResult{
				Chapter:         boundary.ChapterNumber,
				Position:        boundary.StartPosition + win.start,
				Content:         strings.TrimSpace(win.text),
				RelevanceScore:  score,
				ContextType:     types.QueryCharacter,
				RelatedElements: coCharacters(win.text, idx, query.Target),
			})
		}
	}
	return results
}

// matchTheme scores sentences hitting the target theme's keywords. When
// the target names a known theme, every keyword in its set is scanned and
// co-occurring keywords raise the score; otherwise the target itself is
// the only keyword.
func matchTheme(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	keywords := themeKeywordSet(query.Target)

	var results []types.SearchResult
	for _, boundary := range chaptersInScope(idx, query) {
		text := manuscript[boundary.StartPosition:boundary.EndPosition]
		for _, kw := range keywords {
			for _, win := range sentenceWindows(text, kw) {
				score := 0.4
				if len(win.text) > longContext {
					score += 0.2
				}
				related := coKeywords(win.text, keywords, kw)
				if len(related) > 0 {
					score += 0.3
				}

				results = append(results, types.SearchResult{
					Chapter:         boundary.ChapterNumber,
					Position:        boundary.StartPosition + win.start,
					Content:         strings.TrimSpace(win.text),
					RelevanceScore:  score,
					ContextType:     types.QueryTheme,
					RelatedElements: related,
				})
			}
		}
	}
	return results
}

// matchPlot scores sentences containing the target phrase.
func matchPlot(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	return fixedScoreMatch(manuscript, idx, query, types.QueryPlot, func(win window) float64 {
		if len(win.text) > longContext {
			return 0.8
		}
		return 0.6
	})
}

// matchDialogue scans quoted spans for the target substring. The speaker,
// when an attribution pattern surrounds the quote, becomes a related
// element.
func matchDialogue(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	target := strings.ToLower(query.Target)

	var results []types.SearchResult
	for _, boundary := range chaptersInScope(idx, query) {
		text := manuscript[boundary.StartPosition:boundary.EndPosition]
		for _, span := range quotePattern.FindAllStringIndex(text, -1) {
			quote := text[span[0]:span[1]]
			if !strings.Contains(strings.ToLower(quote), target) {
				continue
			}

			score := 0.7
			if len(quote) > 50 {
				score += 0.2
			}

			var related []string
			if speaker := attributedSpeaker(text, span[0], span[1]); speaker != "" {
				related = []string{speaker}
			}

			results = append(results, types.SearchResult{
				Chapter:         boundary.ChapterNumber,
				Position:        boundary.StartPosition + span[0],
				Content:         strings.TrimSpace(quoteSentence(text, span[0], span[1])),
				RelevanceScore:  score,
				ContextType:     types.QueryDialogue,
				RelatedElements: related,
			})
		}
	}
	return results
}

// matchScene returns sentence windows around the target at a fixed score.
func matchScene(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	return fixedScoreMatch(manuscript, idx, query, types.QueryScene, func(window) float64 { return 0.6 })
}

// matchEmotion returns sentence windows around the target at a fixed score.
func matchEmotion(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	return fixedScoreMatch(manuscript, idx, query, types.QueryEmotion, func(window) float64 { return 0.5 })
}

// matchGeneral is the fallback substring scan.
func matchGeneral(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery) []types.SearchResult {
	return fixedScoreMatch(manuscript, idx, query, types.QueryGeneral, func(window) float64 { return 0.4 })
}

// fixedScoreMatch is the shared body of the simpler matchers.
func fixedScoreMatch(manuscript string, idx *types.ManuscriptIndex, query types.SearchQuery, contextType types.QueryType, score func(window) float64) []types.SearchResult {
	var results []types.SearchResult
	for _, boundary := range chaptersInScope(idx, query) {
		text := manuscript[boundary.StartPosition:boundary.EndPosition]
		for _, win := range sentenceWindows(text, query.Target) {
			results = append(results, types.SearchResult{
				Chapter:        boundary.ChapterNumber,
				Position:       boundary.StartPosition + win.start,
				Content:        strings.TrimSpace(win.text),
				RelevanceScore: score(win),
				ContextType:    contextType,
			})
		}
	}
	return results
}

// attributedSpeaker extracts the speaker name from an attribution pattern
// directly after or before the quote span, or "".
func attributedSpeaker(text string, quoteStart, quoteEnd int) string {
	if m := speakerAfterQuote.FindStringSubmatch(text[quoteEnd:]); m != nil {
		return m[1]
	}
	if m := speakerBeforeQuote.FindStringSubmatch(text[:quoteStart]); m != nil {
		return m[1]
	}
	return ""
}

// quoteSentence extends a quote span forward to the end of its sentence
// so trailing attributions stay attached.
func quoteSentence(text string, start, end int) string {
	for end < len(text) {
		c := text[end]
		end++
		if c == '.' || c == '!' || c == '?' {
			break
		}
	}
	return text[start:end]
}

// themeKeywordSet resolves a theme name to its keyword set, falling back
// to the target itself for unknown themes.
func themeKeywordSet(target string) []string {
	lower := strings.ToLower(target)
	for _, theme := range structure.DefaultLexicon().Themes {
		if theme.Name == lower {
			return theme.Keywords
		}
	}
	return []string{target}
}

// coCharacters lists indexed character names other than the target that
// appear in the window.
func coCharacters(text string, idx *types.ManuscriptIndex, target string) []string {
	var related []string
	for _, c := range idx.Characters {
		if strings.EqualFold(c.Name, target) {
			continue
		}
		if containsWord(text, c.Name) {
			related = append(related, c.Name)
		}
	}
	return related
}

// coKeywords lists set keywords other than matched that appear in the
// window.
func coKeywords(text string, keywords []string, matched string) []string {
	var related []string
	for _, kw := range keywords {
		if kw == matched {
			continue
		}
		if containsWord(text, kw) {
			related = append(related, kw)
		}
	}
	return related
}

// containsAnyWord reports whether any of the words occurs in text as a
// whole word, case-insensitively.
func containsAnyWord(text string, words []string) bool {
	for _, w := range words {
		if containsWord(text, w) {
			return true
		}
	}
	return false
}

// containsWord reports whether word occurs in text as a whole word,
// case-insensitively.
func containsWord(text, word string) bool {
	lower := strings.ToLower(text)
	word = strings.ToLower(word)
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return false
		}
		i += idx
		before := i == 0 || !isWordByte(lower[i-1])
		after := i+len(word) >= len(lower) || !isWordByte(lower[i+len(word)])
		if before && after {
			return true
		}
		idx = i + len(word)
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '\''
}
