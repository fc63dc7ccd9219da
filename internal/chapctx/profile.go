// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chapctx

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// buildProfile derives a contextual character profile by re-scanning the
// character's text within the context window. Profiles are recomputed on
// every context build and never persisted beyond the owning context.
func buildProfile(manuscript string, idx *types.ManuscriptIndex, appearance types.CharacterAppearance, target, window int) types.CharacterProfile {
	profile := types.CharacterProfile{
		Name:                  appearance.Name,
		LastChapterAppearance: lastAppearanceAtOrBefore(appearance.Chapters, target),
	}

	windowText := windowText(manuscript, idx, appearance.Chapters, target, window)
	sentences := sentencePattern.FindAllString(windowText, -1)
	namePattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(appearance.Name) + `\b`)

	for _, sentence := range sentences {
		if !namePattern.MatchString(sentence) {
			continue
		}
		lower := strings.ToLower(sentence)

		for _, adj := range traitAdjectives {
			if containsWord(lower, adj) && !containsString(profile.Traits, adj) {
				profile.Traits = append(profile.Traits, adj)
			}
		}
		for _, adv := range behaviorAdverbs {
			if containsWord(lower, adv) {
				rule := strings.TrimSpace(sentence)
				if !containsString(profile.BehaviorRules, rule) {
					profile.BehaviorRules = append(profile.BehaviorRules, rule)
				}
				break
			}
		}
		// The last matched emotion word in scan order wins, so the state
		// tracks the most recent mention in the window.
		for _, word := range emotionWordOrder {
			if containsWord(lower, word) {
				profile.EmotionalState = emotionStates[word]
			}
		}
	}

	profile.SpeechPatterns = speechPatterns(windowText, appearance.Name)
	profile.KnowledgeState = knowledgeState(manuscript, idx, appearance, target, window, namePattern)

	return profile
}

// windowText concatenates the text of the window chapters the character
// appears in.
func windowText(manuscript string, idx *types.ManuscriptIndex, memberships []int, target, window int) string {
	var b strings.Builder
	for _, ch := range memberships {
		if ch < target-window || ch > target+window {
			continue
		}
		if boundary := idx.Chapter(ch); boundary != nil {
			b.WriteString(manuscript[boundary.StartPosition:boundary.EndPosition])
			b.WriteString("\n")
		}
	}
	return b.String()
}

// speechPatterns collects up to three quoted lines attributed to the
// character, in either "…" Name said or "…" said Name form.
func speechPatterns(text, name string) []string {
	quoted := regexp.QuoteMeta(name)
	attribution := regexp.MustCompile(
		`"([^"]+)"\s*,?\s*(?:` + quoted + `\s+(?:` + attributionVerbs + `)|(?:` + attributionVerbs + `)\s+` + quoted + `)`)

	var patterns []string
	for _, m := range attribution.FindAllStringSubmatch(text, -1) {
		patterns = append(patterns, m[1])
		if len(patterns) == 3 {
			break
		}
	}
	return patterns
}

// knowledgeState collects sentences where a knowledge verb appears near
// the name, restricted to chapters at or before the target: what the
// character knows cannot come from chapters the reader has not reached.
func knowledgeState(manuscript string, idx *types.ManuscriptIndex, appearance types.CharacterAppearance, target, window int, namePattern *regexp.Regexp) []string {
	var state []string
	for _, ch := range appearance.Chapters {
		if ch > target || ch < target-window {
			continue
		}
		boundary := idx.Chapter(ch)
		if boundary == nil {
			continue
		}
		slice := manuscript[boundary.StartPosition:boundary.EndPosition]
		for _, sentence := range sentencePattern.FindAllString(slice, -1) {
			if !namePattern.MatchString(sentence) {
				continue
			}
			lower := strings.ToLower(sentence)
			for _, verb := range knowledgeVerbs {
				if containsWord(lower, verb) {
					state = append(state, strings.TrimSpace(sentence))
					break
				}
			}
		}
	}
	return state
}

// lastAppearanceAtOrBefore returns the greatest membership not after the
// target chapter, or 0 when the character first appears later.
func lastAppearanceAtOrBefore(chapters []int, target int) int {
	last := 0
	for _, ch := range chapters {
		if ch <= target && ch > last {
			last = ch
		}
	}
	return last
}

// containsWord reports a whole-word, lowercase match.
func containsWord(lower, word string) bool {
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

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
