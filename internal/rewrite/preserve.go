// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rewrite

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

var capitalizedName = regexp.MustCompile(`\b[A-Z][a-z]+\b`)

// commonCapitalized are capitalized tokens never treated as character
// names during preservation.
var commonCapitalized = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "Then": {}, "When": {}, "Where": {},
}

// applyPreservation restores preserved dialogue and character names the
// rewrite dropped. Missing dialogue is re-appended; a missing name
// replaces the first bare pronoun. Names are restored in sorted order so
// the result is reproducible.
func applyPreservation(rewritten, original string, controls *types.PreservationControls) string {
	for _, dialogue := range controls.PreserveDialogue {
		if strings.Contains(original, dialogue) && !strings.Contains(rewritten, dialogue) {
			rewritten = rewritten + "\n\n" + dialogue
		}
	}

	if controls.PreserveCharacterNames {
		for _, name := range missingNames(original, rewritten) {
			if strings.Contains(original, " "+name+" ") && !strings.Contains(rewritten, " "+name+" ") {
				rewritten = strings.Replace(rewritten, " he ", " "+name+" ", 1)
			}
		}
	}

	return rewritten
}

// missingNames returns the character names present in the original but
// absent from the rewrite, sorted.
func missingNames(original, rewritten string) []string {
	rewrittenNames := nameSet(rewritten)

	var missing []string
	for name := range nameSet(original) {
		if _, ok := rewrittenNames[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

func nameSet(text string) map[string]struct{} {
	names := make(map[string]struct{})
	for _, token := range capitalizedName.FindAllString(text, -1) {
		if _, common := commonCapitalized[token]; common {
			continue
		}
		names[token] = struct{}{}
	}
	return names
}
