// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var (
	adverbPattern     = regexp.MustCompile(`\b\w+ly\b`)
	spaceRuns         = regexp.MustCompile(`[ \t]{2,}`)
	sentenceDelims    = regexp.MustCompile(`[.!?]+`)
	attributedPattern = regexp.MustCompile(`"[^"]*"\s*[^"]*?said[^.!?]*[.!?]`)
)

// saidAlternatives replace successive " said" occurrences when tags lack
// variety.
var saidAlternatives = []string{"replied", "asked", "whispered", "murmured", "stated"}

// dialogueEmotions are rotated through, in order, when a comprehensive
// rewrite enriches bare attributions. Rotation replaces the obvious
// random choice so runs are reproducible.
var dialogueEmotions = []string{"with a smile", "nervously", "with confidence", "quietly"}

// lightRewrite polishes prose: trims heavy adverbs and varies dialogue
// tags, driven by the detected problems.
func lightRewrite(text string, problems types.ProblemAnalysis) string {
	rewritten := text

	if hasIssue(problems.ProseIssues, "Excessive use of adverbs") {
		rewritten = adverbPattern.ReplaceAllStringFunc(rewritten, func(m string) string {
			if len(m) > 6 {
				return ""
			}
			return m
		})
		rewritten = spaceRuns.ReplaceAllString(rewritten, " ")
	}

	if hasIssue(problems.DialogueIssues, "Overuse of 'said'") {
		for _, alt := range saidAlternatives {
			rewritten = strings.Replace(rewritten, " said", " "+alt, 1)
		}
	}

	return rewritten
}

// moderateRewrite additionally splits overlong sentences and paragraphs.
func moderateRewrite(text string, problems types.ProblemAnalysis) string {
	rewritten := lightRewrite(text, problems)

	if hasIssue(problems.PacingIssues, "sentence length variety") {
		rewritten = splitLongSentences(rewritten)
	}

	if hasIssue(problems.StructuralIssues, "overly long paragraphs") {
		rewritten = splitLongParagraphs(rewritten)
	}

	return rewritten
}

// comprehensiveRewrite additionally enriches bare dialogue attributions
// with an emotion tag.
func comprehensiveRewrite(text string, problems types.ProblemAnalysis) string {
	rewritten := moderateRewrite(text, problems)

	matchIndex := 0
	rewritten = attributedPattern.ReplaceAllStringFunc(rewritten, func(m string) string {
		closing := strings.LastIndexByte(m, '"')
		attribution := m[closing+1:]
		if !strings.Contains(attribution, "said") || len(strings.Fields(attribution)) >= 5 {
			return m
		}
		emotion := dialogueEmotions[matchIndex%len(dialogueEmotions)]
		matchIndex++
		return m[:closing+1] + strings.Replace(attribution, "said", "said "+emotion, 1)
	})

	return rewritten
}

// splitLongSentences breaks sentences over 20 words at their midpoint.
func splitLongSentences(text string) string {
	var b strings.Builder
	last := 0
	for _, span := range sentenceDelims.FindAllStringIndex(text, -1) {
		b.WriteString(splitAtMidpoint(text[last:span[0]]))
		b.WriteString(text[span[0]:span[1]])
		last = span[1]
	}
	b.WriteString(splitAtMidpoint(text[last:]))
	return b.String()
}

// splitAtMidpoint inserts a sentence break in the middle of a fragment
// longer than 20 words, keeping short fragments untouched.
func splitAtMidpoint(fragment string) string {
	words := strings.Fields(fragment)
	if len(words) <= 20 {
		return fragment
	}
	mid := len(words) / 2
	return strings.Join(words[:mid], " ") + ". " + strings.Join(words[mid:], " ")
}

// splitLongParagraphs halves paragraphs over 150 words at a sentence
// boundary near the middle.
func splitLongParagraphs(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	var out []string
	for _, para := range paragraphs {
		if len(strings.Fields(para)) <= 150 {
			out = append(out, para)
			continue
		}

		spans := sentenceDelims.FindAllStringIndex(para, -1)
		if len(spans) < 2 {
			out = append(out, para)
			continue
		}
		cut := spans[len(spans)/2-1][1]
		out = append(out, strings.TrimSpace(para[:cut]), strings.TrimSpace(para[cut:]))
	}
	return strings.Join(out, "\n\n")
}

// hasIssue reports whether any issue in the list contains the marker.
func hasIssue(issues []string, marker string) bool {
	for _, issue := range issues {
		if strings.Contains(issue, marker) {
			return true
		}
	}
	return false
}
