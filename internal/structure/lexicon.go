// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

// ThemeKeywords names a theme and the keywords that evidence it. Themes
// are held in a slice so analysis order is deterministic.
type ThemeKeywords struct {
	Name     string
	Keywords []string
}

// StateRule maps a keyword found in a character's first or last chapter
// to a coarse arc state.
type StateRule struct {
	Keyword string
	State   string
}

// Lexicon holds the keyword tables the analyzer classifies with. Tests
// substitute fixture lexicons; production code uses DefaultLexicon.
type Lexicon struct {
	PlotKeywords    []string
	GrowthKeywords  []string
	ActionKeywords  []string
	TensionKeywords []string
	Themes          []ThemeKeywords
	StartStates     []StateRule
	EndStates       []StateRule
}

// DefaultLexicon returns the built-in keyword tables.
func DefaultLexicon() Lexicon {
	return Lexicon{
		PlotKeywords: []string{
			"discovered", "revealed", "decided", "confronted", "realized",
			"defeated", "rescued", "escaped",
		},
		GrowthKeywords: []string{
			"learned", "changed", "realized", "understood", "became", "grew",
		},
		ActionKeywords: []string{
			"ran", "fought", "chased", "grabbed", "jumped", "crashed",
			"raced", "attacked", "struck", "fled", "leapt", "slammed",
		},
		TensionKeywords: []string{
			"suddenly", "danger", "fear", "panic", "urgent", "threat",
			"crisis", "emergency", "worried", "anxious", "scream", "terror",
		},
		Themes: []ThemeKeywords{
			{Name: "love", Keywords: []string{"love", "heart", "kiss", "embrace", "tender", "passion"}},
			{Name: "betrayal", Keywords: []string{"betrayed", "betrayal", "deceived", "lied", "treachery", "backstabbed"}},
			{Name: "power", Keywords: []string{"power", "control", "command", "throne", "rule", "authority"}},
			{Name: "growth", Keywords: []string{"grew", "learned", "changed", "matured", "transformed", "developed"}},
			{Name: "justice", Keywords: []string{"justice", "law", "judge", "crime", "punishment", "guilt"}},
		},
		StartStates: []StateRule{
			{Keyword: "young", State: "naive"},
			{Keyword: "innocent", State: "naive"},
			{Keyword: "angry", State: "troubled"},
			{Keyword: "afraid", State: "fearful"},
			{Keyword: "poor", State: "striving"},
		},
		EndStates: []StateRule{
			{Keyword: "wise", State: "mature"},
			{Keyword: "changed", State: "transformed"},
			{Keyword: "happy", State: "fulfilled"},
			{Keyword: "strong", State: "hardened"},
			{Keyword: "peace", State: "at peace"},
		},
	}
}
