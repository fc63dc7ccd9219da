// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// paceValue maps pace classes onto a scale for mean/variance analysis.
var paceValue = map[types.Pace]float64{
	types.PaceSlow:     0,
	types.PaceModerate: 1,
	types.PaceFast:     2,
}

// pacingAnalysis classifies each chapter's pace and builds the tension
// curve. Overall is uneven when pace variance exceeds 0.5, otherwise it
// follows the mean pace value.
func pacingAnalysis(manuscript string, idx *types.ManuscriptIndex, lex Lexicon) types.PacingAnalysis {
	analysis := types.PacingAnalysis{
		ActionToDialogueRatio: actionToDialogueRatio(manuscript, lex),
	}

	var values []float64
	for _, boundary := range idx.Chapters {
		text := chapterText(manuscript, boundary)
		pace := classifyPace(text, boundary.WordCount, lex)

		analysis.ChapterPacing = append(analysis.ChapterPacing, types.ChapterPacing{
			Chapter: boundary.ChapterNumber,
			Pace:    pace,
		})
		analysis.TensionCurve = append(analysis.TensionCurve, tensionScore(text, boundary.WordCount, lex))
		values = append(values, paceValue[pace])
	}

	analysis.Overall = overallPace(values)
	return analysis
}

// classifyPace marks a chapter fast on action-keyword density above 1 per
// 100 words, moderate on dialogue density above 0.3, else slow.
func classifyPace(text string, words int, lex Lexicon) types.Pace {
	if words > 0 {
		density := float64(countWordMatches(text, lex.ActionKeywords)) / float64(words)
		if density > 0.01 {
			return types.PaceFast
		}
	}
	if dialogueDensity(text) > 0.3 {
		return types.PaceModerate
	}
	return types.PaceSlow
}

// tensionScore normalizes tension-keyword hits per 100 words, capped at 1.0.
func tensionScore(text string, words int, lex Lexicon) float64 {
	if words == 0 {
		return 0
	}
	score := float64(countWordMatches(text, lex.TensionKeywords)) * 100.0 / float64(words)
	if score > 1.0 {
		return 1.0
	}
	return score
}

// dialogueDensity is the fraction of the text inside double quotes.
func dialogueDensity(text string) float64 {
	if len(text) == 0 {
		return 0
	}
	inQuote := false
	quoted := 0
	for _, b := range []byte(text) {
		if b == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			quoted++
		}
	}
	return float64(quoted) / float64(len(text))
}

// actionToDialogueRatio estimates the manuscript-wide balance of action
// keywords to dialogue segments. Segment count is approximated from quote
// character density.
func actionToDialogueRatio(manuscript string, lex Lexicon) float64 {
	actions := countWordMatches(manuscript, lex.ActionKeywords)
	segments := strings.Count(manuscript, `"`) / 2
	if segments < 1 {
		segments = 1
	}
	return float64(actions) / float64(segments)
}

// overallPace derives the manuscript-wide pace from per-chapter values.
func overallPace(values []float64) types.Pace {
	if len(values) == 0 {
		return types.PaceModerate
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	if variance > 0.5 {
		return types.PaceUneven
	}
	switch {
	case mean < 0.7:
		return types.PaceSlow
	case mean > 1.3:
		return types.PaceFast
	default:
		return types.PaceModerate
	}
}
