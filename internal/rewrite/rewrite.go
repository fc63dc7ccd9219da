// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rewrite improves a chapter's prose with deterministic,
// heuristic transformations and guarantees the result never scores worse
// than the original on any quality axis.
package rewrite

import (
	"fmt"

	"github.com/pdiddy/manuscript-engine/internal/detect"
	"github.com/pdiddy/manuscript-engine/internal/quality"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// defaultMaxIterations bounds the rewrite loop.
const defaultMaxIterations = 5

// Options selects the chapter, intensity, and preservation constraints
// for a rewrite run.
type Options struct {
	// Chapter picks the chapter to rewrite. Zero auto-selects the chapter
	// with the lowest overall quality score.
	Chapter int

	// Intensity defaults to moderate.
	Intensity types.RewriteIntensity

	// Preserve names elements the rewrite must keep intact.
	Preserve *types.PreservationControls

	// MaxIterations bounds the improve-assess loop (default 5).
	MaxIterations int
}

// Rewrite rewrites one chapter of the manuscript and reports what
// changed. The returned text is the rewritten chapter only, not the full
// manuscript. The transformations are deterministic: the same manuscript
// and options always produce the same output.
func Rewrite(manuscript string, opts Options) (string, *types.RewriteReport, error) {
	chapters := detect.Detect(manuscript)
	if len(chapters) == 0 {
		return "", nil, fmt.Errorf("no chapters detected in manuscript")
	}

	target, err := selectChapter(manuscript, chapters, opts.Chapter)
	if err != nil {
		return "", nil, err
	}

	original := manuscript[target.StartPosition:target.EndPosition]
	originalMetrics := quality.Assess(original)
	problems := quality.Analyze(original)

	intensity := opts.Intensity
	if intensity == "" {
		intensity = types.RewriteModerate
	}
	maxIterations := opts.MaxIterations
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}

	current := original
	iterations := 0
	for iterations < maxIterations {
		iterations++

		candidate := generate(current, problems, intensity, original, opts.Preserve)
		metrics := quality.Assess(candidate)

		if !metrics.IsBetterThan(originalMetrics) {
			// The transforms are deterministic, so another pass over the
			// same text cannot do better.
			break
		}

		current = candidate
		if metrics.Overall > 0.9 {
			break
		}
		problems = quality.Analyze(current)
		if problems.Severity < 0.2 {
			break
		}
	}

	finalMetrics := quality.Assess(current)
	report := &types.RewriteReport{
		OriginalMetrics:    originalMetrics,
		FinalMetrics:       finalMetrics,
		ChangesMade:        changesMade(original, current, problems),
		Improvements:       improvementDeltas(originalMetrics, finalMetrics),
		IterationsRequired: iterations,
		PreservedElements:  preservedElements(original, current, opts.Preserve),
	}

	return current, report, nil
}

// selectChapter resolves the target boundary: an explicit chapter number,
// or the lowest-scoring chapter when none is given.
func selectChapter(manuscript string, chapters []types.ChapterBoundary, number int) (types.ChapterBoundary, error) {
	if number > 0 {
		for _, c := range chapters {
			if c.ChapterNumber == number {
				return c, nil
			}
		}
		return types.ChapterBoundary{}, &types.ChapterNotFoundError{Chapter: number}
	}

	worst := chapters[0]
	worstScore := quality.Assess(manuscript[worst.StartPosition:worst.EndPosition]).Overall
	for _, c := range chapters[1:] {
		score := quality.Assess(manuscript[c.StartPosition:c.EndPosition]).Overall
		if score < worstScore {
			worst, worstScore = c, score
		}
	}
	return worst, nil
}

// generate applies the intensity's transformations and then re-applies
// any preservation constraints against the original text.
func generate(text string, problems types.ProblemAnalysis, intensity types.RewriteIntensity, original string, controls *types.PreservationControls) string {
	var rewritten string
	switch intensity {
	case types.RewriteLight:
		rewritten = lightRewrite(text, problems)
	case types.RewriteComprehensive:
		rewritten = comprehensiveRewrite(text, problems)
	default:
		rewritten = moderateRewrite(text, problems)
	}

	if controls != nil {
		rewritten = applyPreservation(rewritten, original, controls)
	}
	return rewritten
}
