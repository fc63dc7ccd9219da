// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"regexp"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// characterArcs derives development arcs for the top characters by
// mention count. Milestones come from growth-keyword sentences near the
// character's name; consistency grows with milestone count, capped at 1.0.
func characterArcs(manuscript string, idx *types.ManuscriptIndex, cfg types.AnalysisConfig, lex Lexicon) []types.CharacterArc {
	limit := cfg.TopCharacters
	if limit > len(idx.Characters) {
		limit = len(idx.Characters)
	}

	var arcs []types.CharacterArc
	for _, c := range idx.Characters[:limit] {
		namePattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(c.Name) + `\b`)

		arc := types.CharacterArc{
			Character:  c.Name,
			StartState: "unknown",
			EndState:   "evolved",
		}

		for _, ch := range c.Chapters {
			boundary := idx.Chapter(ch)
			if boundary == nil {
				continue
			}
			text := chapterText(manuscript, *boundary)
			for _, sentence := range sentencePattern.FindAllString(text, -1) {
				if !namePattern.MatchString(sentence) {
					continue
				}
				lower := strings.ToLower(sentence)
				for _, kw := range lex.GrowthKeywords {
					if countWord(lower, kw) > 0 {
						arc.Milestones = append(arc.Milestones, types.ArcMilestone{
							Chapter:     ch,
							Description: clip(strings.TrimSpace(sentence), 160),
						})
						break
					}
				}
			}
		}

		if first := idx.Chapter(c.Chapters[0]); first != nil {
			if state := matchState(chapterText(manuscript, *first), lex.StartStates); state != "" {
				arc.StartState = state
			}
		}
		if last := idx.Chapter(c.Chapters[len(c.Chapters)-1]); last != nil {
			if state := matchState(chapterText(manuscript, *last), lex.EndStates); state != "" {
				arc.EndState = state
			}
		}

		arc.Consistency = float64(len(arc.Milestones)) / 5.0
		if arc.Consistency > 1.0 {
			arc.Consistency = 1.0
		}

		arcs = append(arcs, arc)
	}

	return arcs
}

// matchState returns the state of the first rule whose keyword occurs in
// the text, or "".
func matchState(text string, rules []StateRule) string {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		if countWord(lower, rule.Keyword) > 0 {
			return rule.State
		}
	}
	return ""
}
