// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"fmt"
	"sort"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

// thematicElements scores each lexicon theme by keyword density per
// chapter. Themes with no matching chapters are omitted; the rest are
// sorted by strength descending.
func thematicElements(manuscript string, idx *types.ManuscriptIndex, lex Lexicon) []types.ThematicElement {
	var themes []types.ThematicElement

	for _, theme := range lex.Themes {
		var (
			chapters    []int
			total       float64
			peak        float64
			peakChapter int
		)

		for _, boundary := range idx.Chapters {
			hits := countWordMatches(chapterText(manuscript, boundary), theme.Keywords)
			if hits == 0 || boundary.WordCount == 0 {
				continue
			}
			density := float64(hits) * 100.0 / float64(boundary.WordCount)
			if density > 1.0 {
				density = 1.0
			}
			chapters = append(chapters, boundary.ChapterNumber)
			total += density
			if density > peak {
				peak = density
				peakChapter = boundary.ChapterNumber
			}
		}

		if len(chapters) == 0 {
			continue
		}

		themes = append(themes, types.ThematicElement{
			Theme:     theme.Name,
			Chapters:  chapters,
			Strength:  total / float64(len(chapters)),
			Evolution: themeEvolution(theme.Name, chapters, peakChapter),
		})
	}

	sort.SliceStable(themes, func(i, j int) bool {
		if themes[i].Strength == themes[j].Strength {
			return themes[i].Theme < themes[j].Theme
		}
		return themes[i].Strength > themes[j].Strength
	})

	return themes
}

// themeEvolution describes where a theme enters, peaks, and leaves.
func themeEvolution(name string, chapters []int, peak int) []string {
	evolution := []string{
		fmt.Sprintf("%s emerges in chapter %d", name, chapters[0]),
	}
	if peak != chapters[0] {
		evolution = append(evolution, fmt.Sprintf("%s peaks in chapter %d", name, peak))
	}
	if last := chapters[len(chapters)-1]; last != chapters[0] {
		evolution = append(evolution, fmt.Sprintf("%s runs through chapter %d", name, last))
	}
	return evolution
}
