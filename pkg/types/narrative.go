// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// CharacterProfile is the contextual view of a character near a target
// chapter. It is recomputed from raw text scans each time a ChapterContext
// is built and is not persisted beyond the owning context.
type CharacterProfile struct {
	Name                  string   `json:"name" yaml:"name"`
	Traits                []string `json:"traits,omitempty" yaml:"traits,omitempty"`
	SpeechPatterns        []string `json:"speech_patterns,omitempty" yaml:"speech_patterns,omitempty"`
	BehaviorRules         []string `json:"behavior_rules,omitempty" yaml:"behavior_rules,omitempty"`
	EmotionalState        string   `json:"emotional_state,omitempty" yaml:"emotional_state,omitempty"`
	KnowledgeState        []string `json:"knowledge_state,omitempty" yaml:"knowledge_state,omitempty"`
	LastChapterAppearance int      `json:"last_chapter_appearance" yaml:"last_chapter_appearance"`
}

// ChapterContext is the neighborhood view around a target chapter:
// adjacent boundaries, characters active within the context window, and
// plot-continuity hints. Owned and memoized by the context cache.
type ChapterContext struct {
	TargetChapter    ChapterBoundary    `json:"target_chapter" yaml:"target_chapter"`
	PreviousChapter  *ChapterBoundary   `json:"previous_chapter,omitempty" yaml:"previous_chapter,omitempty"`
	NextChapter      *ChapterBoundary   `json:"next_chapter,omitempty" yaml:"next_chapter,omitempty"`
	ActiveCharacters []CharacterProfile `json:"active_characters" yaml:"active_characters"`
	PlotContinuity   []string           `json:"plot_continuity,omitempty" yaml:"plot_continuity,omitempty"`
}

// SequenceValidationResult reports continuity issues between a chapter and
// its neighborhood. Valid is true iff Issues is empty.
type SequenceValidationResult struct {
	Chapter         int      `json:"chapter" yaml:"chapter"`
	Valid           bool     `json:"valid" yaml:"valid"`
	Issues          []string `json:"issues,omitempty" yaml:"issues,omitempty"`
	CharacterIssues []string `json:"character_issues,omitempty" yaml:"character_issues,omitempty"`
	TimelineIssues  []string `json:"timeline_issues,omitempty" yaml:"timeline_issues,omitempty"`
	EmotionalIssues []string `json:"emotional_issues,omitempty" yaml:"emotional_issues,omitempty"`
	KnowledgeIssues []string `json:"knowledge_issues,omitempty" yaml:"knowledge_issues,omitempty"`
}
