// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the manuscript-engine
// pipeline: the structural index, derived book structure, search queries
// and results, and chapter-context records.
package types

// ChapterBoundary is one contiguous chapter span in the manuscript.
// Boundaries are contiguous and non-overlapping: EndPosition of chapter n
// equals StartPosition of chapter n+1, the first boundary starts at 0, and
// the last ends at len(manuscript). A new list is produced on every
// manuscript change; boundaries are never patched in place.
type ChapterBoundary struct {
	// ChapterNumber is the 1-based sequential chapter number.
	ChapterNumber int `json:"chapter_number" yaml:"chapter_number"`

	// StartPosition is the byte offset of the chapter's first character.
	StartPosition int `json:"start_position" yaml:"start_position"`

	// EndPosition is the byte offset one past the chapter's last character.
	EndPosition int `json:"end_position" yaml:"end_position"`

	// Title is the heading text with the chapter marker stripped.
	// Empty when the heading carries no title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Confidence scores the boundary marker strength, between 0.0 and 1.0.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	// WordCount is the whitespace-split word count of the chapter's text.
	WordCount int `json:"word_count" yaml:"word_count"`
}

// CharacterAppearance records where a probable character name occurs.
// A name qualifies once it passes the mention-frequency threshold and is
// not a stop word. FirstMention always equals the smallest entry in Chapters.
type CharacterAppearance struct {
	// Name is the capitalized token treated as a character name.
	Name string `json:"name" yaml:"name"`

	// Chapters lists the chapter numbers the name appears in, ascending.
	Chapters []int `json:"chapters" yaml:"chapters"`

	// FirstMention is the first chapter the name appears in.
	FirstMention int `json:"first_mention" yaml:"first_mention"`

	// TotalMentions is the manuscript-wide occurrence count.
	TotalMentions int `json:"total_mentions" yaml:"total_mentions"`
}

// ManuscriptIndex is the structural snapshot of a manuscript: chapter
// boundaries, character appearances, and word-count totals. It is a value
// snapshot: any edit to the manuscript text invalidates it and callers
// must rebuild rather than patch.
type ManuscriptIndex struct {
	// Chapters holds the detected boundaries, ordered by chapter number.
	Chapters []ChapterBoundary `json:"chapters" yaml:"chapters"`

	// Characters holds detected characters, sorted by TotalMentions descending.
	Characters []CharacterAppearance `json:"characters" yaml:"characters"`

	// TotalWordCount is the whitespace-split word count of the whole manuscript.
	TotalWordCount int `json:"total_word_count" yaml:"total_word_count"`

	// AverageChapterLength is TotalWordCount / len(Chapters), rounded.
	AverageChapterLength int `json:"average_chapter_length" yaml:"average_chapter_length"`
}

// Chapter returns the boundary for the given chapter number, or nil.
func (idx *ManuscriptIndex) Chapter(number int) *ChapterBoundary {
	for i := range idx.Chapters {
		if idx.Chapters[i].ChapterNumber == number {
			return &idx.Chapters[i]
		}
	}
	return nil
}

// Character returns the appearance record for the given name, or nil.
func (idx *ManuscriptIndex) Character(name string) *CharacterAppearance {
	for i := range idx.Characters {
		if idx.Characters[i].Name == name {
			return &idx.Characters[i]
		}
	}
	return nil
}

// LastChapter returns the highest chapter number in the index, or 0 for an
// index with no chapters.
func (idx *ManuscriptIndex) LastChapter() int {
	if len(idx.Chapters) == 0 {
		return 0
	}
	return idx.Chapters[len(idx.Chapters)-1].ChapterNumber
}
