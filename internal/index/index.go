// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index builds the structural manuscript snapshot: chapter
// boundaries, character appearances, and word-count totals.
package index

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/manuscript-engine/internal/detect"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// candidatePattern matches capitalized single tokens that may be names.
var candidatePattern = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// stopWords are capitalized tokens that are never character names:
// determiners, pronouns, titles, and structural markers.
var stopWords = map[string]bool{
	"The": true, "This": true, "That": true, "Then": true, "There": true,
	"These": true, "Those": true, "When": true, "Where": true, "What": true,
	"Who": true, "Why": true, "How": true, "But": true, "And": true,
	"She": true, "He": true, "They": true, "His": true, "Her": true,
	"Their": true, "Its": true, "You": true, "Your": true, "We": true,
	"Our": true, "It": true, "If": true, "As": true, "At": true,
	"In": true, "On": true, "Of": true, "For": true, "With": true,
	"From": true, "After": true, "Before": true, "While": true,
	"Suddenly": true, "Meanwhile": true, "Later": true, "Finally": true,
	"However": true, "Although": true, "Because": true, "Perhaps": true,
	"Yes": true, "No": true, "Not": true, "Now": true, "Well": true,
	"Mr": true, "Mrs": true, "Ms": true, "Dr": true, "Sir": true,
	"Lady": true, "Lord": true, "Miss": true,
	"Chapter": true, "Part": true, "Prologue": true, "Epilogue": true,
}

// Build constructs a ManuscriptIndex from the manuscript text. It is a
// pure function of its input: identical text always yields structurally
// identical output. A manuscript with no qualifying names yields an empty
// character list, not an error.
func Build(manuscript string, cfg types.IndexConfig) *types.ManuscriptIndex {
	threshold := cfg.MentionThreshold
	if threshold <= 0 {
		threshold = 3
	}

	extra := make(map[string]bool, len(cfg.ExtraStopWords))
	for _, w := range cfg.ExtraStopWords {
		extra[w] = true
	}

	chapters := detect.Detect(manuscript)

	totals := make(map[string]int)
	for _, token := range candidatePattern.FindAllString(manuscript, -1) {
		if stopWords[token] || extra[token] {
			continue
		}
		totals[token]++
	}

	var characters []types.CharacterAppearance
	for name, count := range totals {
		if count < threshold {
			continue
		}

		namePattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
		var memberChapters []int
		for _, ch := range chapters {
			slice := manuscript[ch.StartPosition:ch.EndPosition]
			if namePattern.MatchString(slice) {
				memberChapters = append(memberChapters, ch.ChapterNumber)
			}
		}
		if len(memberChapters) == 0 {
			continue
		}

		characters = append(characters, types.CharacterAppearance{
			Name:          name,
			Chapters:      memberChapters,
			FirstMention:  memberChapters[0],
			TotalMentions: count,
		})
	}

	sort.Slice(characters, func(i, j int) bool {
		if characters[i].TotalMentions == characters[j].TotalMentions {
			return characters[i].Name < characters[j].Name
		}
		return characters[i].TotalMentions > characters[j].TotalMentions
	})

	totalWords := len(strings.Fields(manuscript))
	average := 0
	if len(chapters) > 0 {
		average = int(math.Round(float64(totalWords) / float64(len(chapters))))
	}

	return &types.ManuscriptIndex{
		Chapters:             chapters,
		Characters:           characters,
		TotalWordCount:       totalWords,
		AverageChapterLength: average,
	}
}
