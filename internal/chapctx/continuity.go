// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chapctx

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// buildContinuity collects plot-continuity hints for the target chapter:
// the previous chapter's trailing sentences, unresolved tension carried in
// from the previous chapter, theme keywords shared between previous and
// target, and foreshadowing in the next chapter.
func buildContinuity(manuscript string, target, previous, next *types.ChapterBoundary) []string {
	var hints []string

	targetText := manuscript[target.StartPosition:target.EndPosition]

	if previous != nil {
		prevText := manuscript[previous.StartPosition:previous.EndPosition]

		if anchors := trailingSentences(prevText, 2); anchors != "" {
			hints = append(hints, fmt.Sprintf("Previous chapter ends: %s", anchors))
		}

		prevLower := strings.ToLower(prevText)
		for _, word := range tensionWords {
			if containsWord(prevLower, word) {
				hints = append(hints, fmt.Sprintf("Unresolved tension from previous chapter: %q", word))
			}
		}

		targetLower := strings.ToLower(targetText)
		for _, word := range themeWords {
			if containsWord(prevLower, word) && containsWord(targetLower, word) {
				hints = append(hints, fmt.Sprintf("Theme carried over from previous chapter: %q", word))
			}
		}
	}

	if next != nil {
		nextLower := strings.ToLower(manuscript[next.StartPosition:next.EndPosition])
		for _, word := range foreshadowWords {
			if strings.Contains(nextLower, word) {
				hints = append(hints, fmt.Sprintf("Next chapter foreshadows: %q", word))
			}
		}
	}

	return hints
}

// trailingSentences returns the last n sentences of text, joined.
func trailingSentences(text string, n int) string {
	sentences := sentencePattern.FindAllString(text, -1)

	var kept []string
	for _, s := range sentences {
		if strings.TrimSpace(s) != "" {
			kept = append(kept, strings.TrimSpace(s))
		}
	}
	if len(kept) == 0 {
		return ""
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, " ")
}
