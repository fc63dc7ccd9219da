// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sequence flags continuity issues between a chapter and its
// cached neighborhood: characters reappearing after long absences and
// conflicting time indicators across the chapter break.
package sequence

import (
	"fmt"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/chapctx"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// reappearanceGap is how many chapters a character may be absent before a
// reappearance is flagged.
const reappearanceGap = 2

// Validate checks the chapter against its neighborhood context and
// returns the collected continuity issues. It fails with
// *types.ChapterNotFoundError when the chapter is not in the index.
func Validate(manuscript string, chapter int, idx *types.ManuscriptIndex, cache *chapctx.Cache) (*types.SequenceValidationResult, error) {
	ctx, err := cache.LoadContext(manuscript, chapter, idx)
	if err != nil {
		return nil, fmt.Errorf("loading chapter context: %w", err)
	}

	result := &types.SequenceValidationResult{Chapter: chapter}

	checkCharacters(ctx, chapter, result)
	checkTimeline(manuscript, ctx, result)
	checkEmotions(ctx, result)
	checkKnowledge(ctx, result)

	result.Valid = len(result.Issues) == 0
	return result, nil
}

// checkCharacters flags active characters whose last appearance is more
// than reappearanceGap chapters before the target.
func checkCharacters(ctx *types.ChapterContext, chapter int, result *types.SequenceValidationResult) {
	for _, profile := range ctx.ActiveCharacters {
		if profile.LastChapterAppearance == 0 {
			continue
		}
		if chapter-profile.LastChapterAppearance > reappearanceGap {
			issue := fmt.Sprintf("%s reappears in chapter %d without recent presence (last seen in chapter %d)",
				profile.Name, chapter, profile.LastChapterAppearance)
			result.Issues = append(result.Issues, issue)
			result.CharacterIssues = append(result.CharacterIssues, issue)
		}
	}
}

// checkTimeline scans the previous and target chapter for the one
// conflicting indicator pair handled today: the previous chapter pointing
// forward with "tomorrow" while the target points backward with
// "yesterday". This is a narrow heuristic, not temporal reasoning.
func checkTimeline(manuscript string, ctx *types.ChapterContext, result *types.SequenceValidationResult) {
	if ctx.PreviousChapter == nil {
		return
	}

	previous := manuscript[ctx.PreviousChapter.StartPosition:ctx.PreviousChapter.EndPosition]
	target := manuscript[ctx.TargetChapter.StartPosition:ctx.TargetChapter.EndPosition]

	if containsWord(previous, "tomorrow") && containsWord(target, "yesterday") {
		issue := fmt.Sprintf("chapter %d looks back to yesterday while chapter %d pointed to tomorrow",
			ctx.TargetChapter.ChapterNumber, ctx.PreviousChapter.ChapterNumber)
		result.Issues = append(result.Issues, issue)
		result.TimelineIssues = append(result.TimelineIssues, issue)
	}
}

// checkEmotions is a deterministic stub: no emotional-continuity rule is
// implemented yet, so it reports no findings.
// TODO: drive this from an emotion-transition table keyed on the
// profiles' EmotionalState across adjacent chapters.
func checkEmotions(*types.ChapterContext, *types.SequenceValidationResult) {}

// checkKnowledge is a deterministic stub: no knowledge-continuity rule is
// implemented yet, so it reports no findings.
func checkKnowledge(*types.ChapterContext, *types.SequenceValidationResult) {}

// containsWord reports whether word occurs in text as a whole word,
// case-insensitively.
func containsWord(text, word string) bool {
	lower := strings.ToLower(text)
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
