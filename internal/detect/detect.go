// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect finds chapter boundaries in raw manuscript text.
package detect

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// boundaryPatterns is the ordered priority list of chapter markers. The
// first matching pattern per line wins; no multi-match stacking.
var boundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^chapter\s+\d+`),
	regexp.MustCompile(`^\d+\.`),
	regexp.MustCompile(`(?i)^part\s+\d+`),
	regexp.MustCompile(`^\*\s*\*\s*\*`),
	regexp.MustCompile(`^-{3,}`),
	regexp.MustCompile(`^#{1,3}\s`),
}

// explicitChapterPattern marks the strongest boundary form for confidence
// scoring.
var explicitChapterPattern = regexp.MustCompile(`^(?:Chapter|CHAPTER)\s+\d+`)

var (
	markerPrefixPattern  = regexp.MustCompile(`(?i)^(?:chapter|part)\s*\d*:?\s*`)
	numberPrefixPattern  = regexp.MustCompile(`^\d+\.?\s*`)
	symbolPrefixPattern  = regexp.MustCompile(`^[*\-]+\s*`)
	headingPrefixPattern = regexp.MustCompile(`^#+\s*`)
)

// Detect scans the manuscript line by line and returns contiguous,
// non-overlapping chapter boundaries covering [0, len(manuscript)) exactly.
// It never fails: a manuscript with no markers (or no text at all) yields a
// single boundary spanning the whole input with confidence 1.0.
func Detect(manuscript string) []types.ChapterBoundary {
	lines := strings.Split(manuscript, "\n")

	var chapters []types.ChapterBoundary
	offset := 0

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)

		for _, pattern := range boundaryPatterns {
			if !pattern.MatchString(trimmed) {
				continue
			}

			if len(chapters) > 0 {
				chapters[len(chapters)-1].EndPosition = offset
			}

			chapters = append(chapters, types.ChapterBoundary{
				ChapterNumber: len(chapters) + 1,
				StartPosition: offset,
				EndPosition:   len(manuscript),
				Title:         extractTitle(trimmed),
				Confidence:    confidence(trimmed, i, lines),
			})
			break
		}

		offset += len(line) + 1
	}

	if len(chapters) == 0 {
		chapters = append(chapters, types.ChapterBoundary{
			ChapterNumber: 1,
			StartPosition: 0,
			EndPosition:   len(manuscript),
			Confidence:    1.0,
		})
	}

	// Text before the first marker belongs to the first chapter, so spans
	// always cover the whole manuscript.
	chapters[0].StartPosition = 0

	for i := range chapters {
		slice := manuscript[chapters[i].StartPosition:chapters[i].EndPosition]
		chapters[i].WordCount = len(strings.Fields(slice))
	}

	return chapters
}

// extractTitle strips the matched marker prefix from a heading line.
// Returns "" when nothing but the marker remains.
func extractTitle(line string) string {
	title := markerPrefixPattern.ReplaceAllString(line, "")
	title = numberPrefixPattern.ReplaceAllString(title, "")
	title = symbolPrefixPattern.ReplaceAllString(title, "")
	title = headingPrefixPattern.ReplaceAllString(title, "")
	return strings.TrimSpace(title)
}

// confidence scores a boundary line: base 0.5, +0.4 for an explicit
// "Chapter N" form, +0.1 for a preceding blank line, +0.1 for a following
// blank line, capped at 1.0.
func confidence(line string, lineIndex int, lines []string) float64 {
	score := 0.5

	if explicitChapterPattern.MatchString(line) {
		score += 0.4
	}
	if lineIndex > 0 && strings.TrimSpace(lines[lineIndex-1]) == "" {
		score += 0.1
	}
	if lineIndex < len(lines)-1 && strings.TrimSpace(lines[lineIndex+1]) == "" {
		score += 0.1
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}
