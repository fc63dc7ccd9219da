// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package chapctx

import "regexp"

// sentencePattern extracts sentence-level spans.
var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]?`)

// traitAdjectives are adjectives that, appearing in the same sentence as a
// character's name, are read as trait descriptions.
var traitAdjectives = []string{
	"brave", "kind", "clever", "cruel", "gentle", "stubborn", "quiet",
	"loud", "nervous", "confident", "curious", "honest", "proud", "shy",
	"fierce", "wise", "foolish", "patient", "reckless", "loyal", "cold",
	"warm", "bitter", "cheerful", "grim", "young", "old",
}

// behaviorAdverbs mark habit sentences that become behavior rules.
var behaviorAdverbs = []string{"always", "never", "usually", "rarely", "often"}

// emotionStates maps emotion words to a canonical emotional state. The
// most recent match near the name within the window wins.
var emotionStates = map[string]string{
	"happy": "joyful", "joy": "joyful", "smiled": "joyful", "laughed": "joyful",
	"delighted": "joyful", "glad": "joyful",
	"sad": "sorrowful", "wept": "sorrowful", "cried": "sorrowful",
	"mourned": "sorrowful", "grief": "sorrowful",
	"angry": "angry", "furious": "angry", "rage": "angry", "snapped": "angry",
	"afraid": "fearful", "fear": "fearful", "terrified": "fearful",
	"trembled": "fearful", "dread": "fearful",
	"worried": "anxious", "anxious": "anxious", "nervous": "anxious",
	"uneasy": "anxious",
	"calm": "calm", "peaceful": "calm", "relieved": "calm", "content": "calm",
}

// emotionWordOrder fixes the scan order over emotionStates so that the
// trajectory heuristic is deterministic.
var emotionWordOrder = []string{
	"happy", "joy", "smiled", "laughed", "delighted", "glad",
	"sad", "wept", "cried", "mourned", "grief",
	"angry", "furious", "rage", "snapped",
	"afraid", "fear", "terrified", "trembled", "dread",
	"worried", "anxious", "nervous", "uneasy",
	"calm", "peaceful", "relieved", "content",
}

// knowledgeVerbs mark sentences recording what a character has learned.
var knowledgeVerbs = []string{
	"knew", "learned", "discovered", "realized", "understood", "remembered",
}

// tensionWords signal unresolved tension carried between chapters.
var tensionWords = []string{
	"danger", "threat", "secret", "fear", "panic", "crisis", "urgent",
	"warning", "trap", "enemy", "suspicion", "conflict",
}

// themeWords are shared-theme markers for continuity hints.
var themeWords = []string{
	"love", "betrayal", "power", "revenge", "justice", "freedom", "family",
	"loyalty", "sacrifice", "truth",
}

// foreshadowWords hint at upcoming developments in the next chapter.
var foreshadowWords = []string{
	"soon", "would", "someday", "eventually", "promise", "promised",
	"warned", "little did",
}

// attributionVerbs are speech verbs used for dialogue attribution.
const attributionVerbs = `said|asked|replied|whispered|shouted|murmured|called|answered`
