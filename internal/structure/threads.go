// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// plotThreads builds the main thread plus one subplot per character with
// enough chapter appearances. The main thread always exists, even for an
// empty manuscript.
func plotThreads(manuscript string, idx *types.ManuscriptIndex, cfg types.AnalysisConfig, lex Lexicon) []types.PlotThread {
	last := idx.LastChapter()

	main := types.PlotThread{
		ID:           "main",
		Name:         "Main plot",
		StartChapter: 1,
		EndChapter:   last,
		Status:       types.ThreadResolved,
	}
	if last == 0 {
		main.StartChapter = 0
	}
	for _, c := range idx.Characters {
		main.Characters = append(main.Characters, c.Name)
	}
	for _, boundary := range idx.Chapters {
		text := chapterText(manuscript, boundary)
		sentence := firstSentenceWith(text, lex.PlotKeywords)
		if sentence == "" {
			continue
		}
		main.KeyEvents = append(main.KeyEvents, types.PlotEvent{
			Chapter:     boundary.ChapterNumber,
			Description: clip(sentence, 160),
			Type:        eventType(boundary.ChapterNumber, last),
		})
	}

	threads := []types.PlotThread{main}

	for _, c := range idx.Characters {
		if len(c.Chapters) < cfg.SubplotThreshold {
			continue
		}

		start := c.Chapters[0]
		end := c.Chapters[len(c.Chapters)-1]
		status := types.ThreadActive
		if end == last {
			status = types.ThreadResolved
		}

		sub := types.PlotThread{
			ID:           "subplot-" + strings.ToLower(c.Name),
			Name:         fmt.Sprintf("%s subplot", c.Name),
			StartChapter: start,
			EndChapter:   end,
			Characters:   []string{c.Name},
			Status:       status,
		}

		namePattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(c.Name) + `\b`)
		for _, ch := range c.Chapters {
			boundary := idx.Chapter(ch)
			if boundary == nil {
				continue
			}
			sentence := characterEventSentence(chapterText(manuscript, *boundary), namePattern, lex.PlotKeywords)
			if sentence == "" {
				continue
			}
			sub.KeyEvents = append(sub.KeyEvents, types.PlotEvent{
				Chapter:     ch,
				Description: clip(sentence, 160),
				Type:        eventType(ch, last),
			})
		}

		threads = append(threads, sub)
	}

	return threads
}

// eventType classifies an event by chapter position: setup in the first
// two chapters, payoff in the last two, major otherwise.
func eventType(chapter, last int) types.PlotEventType {
	switch {
	case chapter <= 2:
		return types.EventSetup
	case chapter >= last-1:
		return types.EventPayoff
	default:
		return types.EventMajor
	}
}

// characterEventSentence returns the first sentence mentioning the
// character alongside a plot keyword.
func characterEventSentence(text string, namePattern *regexp.Regexp, keywords []string) string {
	for _, sentence := range sentencePattern.FindAllString(text, -1) {
		if !namePattern.MatchString(sentence) {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, kw := range keywords {
			if countWord(lower, kw) > 0 {
				return strings.TrimSpace(sentence)
			}
		}
	}
	return ""
}

// clip truncates s to max bytes on a rune boundary.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	clipped := s[:max]
	for len(clipped) > 0 && clipped[len(clipped)-1]&0xC0 == 0x80 {
		clipped = clipped[:len(clipped)-1]
	}
	return clipped + "..."
}
