// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var quotedSpan = regexp.MustCompile(`"[^"]*"`)

// plotKeywords mark key developments that should survive a rewrite.
var plotKeywords = []string{"discovered", "revealed", "decided", "realized", "remembered"}

// improvementDeltas returns the per-axis score change.
func improvementDeltas(original, final types.QualityMetrics) map[string]float64 {
	return map[string]float64{
		"readability":            final.Readability - original.Readability,
		"story_structure":        final.StoryStructure - original.StoryStructure,
		"character_consistency":  final.CharacterConsistency - original.CharacterConsistency,
		"pacing":                 final.Pacing - original.Pacing,
		"dialogue_effectiveness": final.DialogueEffectiveness - original.DialogueEffectiveness,
		"narrative_flow":         final.NarrativeFlow - original.NarrativeFlow,
		"tension":                final.Tension - original.Tension,
		"prose_quality":          final.ProseQuality - original.ProseQuality,
		"overall":                final.Overall - original.Overall,
	}
}

// changesMade describes the visible differences between the original and
// rewritten text, plus changes implied by the problems that drove the
// rewrite.
func changesMade(original, rewritten string, problems types.ProblemAnalysis) []string {
	var changes []string

	originalWords := len(strings.Fields(original))
	rewrittenWords := len(strings.Fields(rewritten))
	if diff := rewrittenWords - originalWords; abs(diff) > originalWords/10 {
		if diff > 0 {
			changes = append(changes, fmt.Sprintf("Expanded content (+%d words)", diff))
		} else {
			changes = append(changes, fmt.Sprintf("Condensed content (-%d words)", -diff))
		}
	}

	originalParagraphs := len(strings.Split(original, "\n\n"))
	rewrittenParagraphs := len(strings.Split(rewritten, "\n\n"))
	if rewrittenParagraphs != originalParagraphs {
		changes = append(changes, fmt.Sprintf("Restructured paragraphs (%d -> %d)", originalParagraphs, rewrittenParagraphs))
	}

	originalDialogue := len(quotedSpan.FindAllString(original, -1))
	rewrittenDialogue := len(quotedSpan.FindAllString(rewritten, -1))
	if rewrittenDialogue != originalDialogue {
		changes = append(changes, fmt.Sprintf("Modified dialogue (%d -> %d segments)", originalDialogue, rewrittenDialogue))
	}

	for _, issue := range problems.ProseIssues {
		if strings.Contains(issue, "adverbs") {
			changes = append(changes, "Reduced adverb usage for stronger prose")
		}
		if strings.Contains(issue, "weak verbs") {
			changes = append(changes, "Replaced weak verbs with stronger alternatives")
		}
	}
	for _, issue := range problems.PacingIssues {
		if strings.Contains(issue, "sentence length") {
			changes = append(changes, "Improved sentence length variety for better pacing")
		}
	}
	for _, issue := range problems.DialogueIssues {
		if strings.Contains(issue, "said") {
			changes = append(changes, "Varied dialogue tags for more engaging conversations")
		}
	}

	return changes
}

// preservedElements lists what survived the rewrite: preserved names,
// required dialogue segments, and key plot developments.
func preservedElements(original, rewritten string, controls *types.PreservationControls) []string {
	var preserved []string

	if controls != nil {
		if controls.PreserveCharacterNames {
			rewrittenNames := nameSet(rewritten)
			var kept []string
			for name := range nameSet(original) {
				if _, ok := rewrittenNames[name]; ok {
					kept = append(kept, name)
				}
			}
			if len(kept) > 0 {
				sort.Strings(kept)
				if len(kept) > 5 {
					kept = kept[:5]
				}
				preserved = append(preserved, "Character names: "+strings.Join(kept, ", "))
			}
		}

		keptDialogue := 0
		for _, dialogue := range controls.PreserveDialogue {
			if strings.Contains(rewritten, dialogue) {
				keptDialogue++
			}
		}
		if keptDialogue > 0 {
			preserved = append(preserved, fmt.Sprintf("%d specific dialogue segments", keptDialogue))
		}
	}

	for _, word := range plotKeywords {
		if strings.Contains(original, word) && strings.Contains(rewritten, word) {
			preserved = append(preserved, "Key plot developments")
			break
		}
	}

	return preserved
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
