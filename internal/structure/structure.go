// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package structure derives higher-level book structures from a manuscript
// index: plot threads, character arcs, pacing, and thematic elements.
package structure

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// sentencePattern extracts sentence-level spans.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]?`)

// Analyze derives the book structure using the default lexicon. It is a
// pure function of (manuscript, index) and must be re-run whenever the
// index changes.
func Analyze(manuscript string, idx *types.ManuscriptIndex, cfg types.AnalysisConfig) *types.BookStructure {
	return AnalyzeWithLexicon(manuscript, idx, cfg, DefaultLexicon())
}

// AnalyzeWithLexicon derives the book structure with a caller-supplied
// keyword lexicon.
func AnalyzeWithLexicon(manuscript string, idx *types.ManuscriptIndex, cfg types.AnalysisConfig, lex Lexicon) *types.BookStructure {
	if cfg.TopCharacters <= 0 {
		cfg.TopCharacters = 5
	}
	if cfg.SubplotThreshold <= 0 {
		cfg.SubplotThreshold = 3
	}

	return &types.BookStructure{
		PlotThreads:   plotThreads(manuscript, idx, cfg, lex),
		CharacterArcs: characterArcs(manuscript, idx, cfg, lex),
		Pacing:        pacingAnalysis(manuscript, idx, lex),
		Themes:        thematicElements(manuscript, idx, lex),
	}
}

// chapterText returns the chapter's slice of the manuscript.
func chapterText(manuscript string, boundary types.ChapterBoundary) string {
	return manuscript[boundary.StartPosition:boundary.EndPosition]
}

// countWordMatches counts whole-word, case-insensitive occurrences of any
// keyword in text.
func countWordMatches(text string, keywords []string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, kw := range keywords {
		count += countWord(lower, kw)
	}
	return count
}

// countWord counts whole-word occurrences of a lowercase word.
func countWord(lower, word string) int {
	count := 0
	idx := 0
	for {
		i := strings.Index(lower[idx:], word)
		if i < 0 {
			return count
		}
		i += idx
		before := i == 0 || !isWordByte(lower[i-1])
		after := i+len(word) >= len(lower) || !isWordByte(lower[i+len(word)])
		if before && after {
			count++
		}
		idx = i + len(word)
	}
}

func isWordByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b == '\''
}

// firstSentenceWith returns the first sentence in text containing any of
// the keywords (whole-word, case-insensitive), trimmed, or "".
func firstSentenceWith(text string, keywords []string) string {
	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if countWord(lower, kw) > 0 {
				return strings.TrimSpace(sentence)
			}
		}
	}
	return ""
}
