// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"strings"
	"testing"
)

func TestDetectExplicitChapters(t *testing.T) {
	text := "Chapter 1\n\nAlice ran.\n\nChapter 2\n\nBob walked.\n"
	chapters := Detect(text)

	if len(chapters) != 2 {
		t.Fatalf("len(chapters) = %d, want 2", len(chapters))
	}
	if chapters[0].ChapterNumber != 1 || chapters[1].ChapterNumber != 2 {
		t.Errorf("chapter numbers = %d, %d, want 1, 2",
			chapters[0].ChapterNumber, chapters[1].ChapterNumber)
	}
	if chapters[0].StartPosition != 0 {
		t.Errorf("first StartPosition = %d, want 0", chapters[0].StartPosition)
	}
	if chapters[0].EndPosition != chapters[1].StartPosition {
		t.Errorf("chapters not contiguous: end=%d, next start=%d",
			chapters[0].EndPosition, chapters[1].StartPosition)
	}
	if chapters[1].EndPosition != len(text) {
		t.Errorf("last EndPosition = %d, want %d", chapters[1].EndPosition, len(text))
	}
	if chapters[0].Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0 (explicit marker with blank neighbors)", chapters[0].Confidence)
	}
}

func TestDetectNoMarkers(t *testing.T) {
	text := "Just some prose with no headings at all. It keeps going."
	chapters := Detect(text)

	if len(chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(chapters))
	}
	c := chapters[0]
	if c.StartPosition != 0 || c.EndPosition != len(text) {
		t.Errorf("span = [%d, %d), want [0, %d)", c.StartPosition, c.EndPosition, len(text))
	}
	if c.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0 for synthesized boundary", c.Confidence)
	}
	if c.WordCount != len(strings.Fields(text)) {
		t.Errorf("WordCount = %d, want %d", c.WordCount, len(strings.Fields(text)))
	}
}

func TestDetectEmptyManuscript(t *testing.T) {
	chapters := Detect("")
	if len(chapters) != 1 {
		t.Fatalf("len(chapters) = %d, want 1", len(chapters))
	}
	c := chapters[0]
	if c.StartPosition != 0 || c.EndPosition != 0 {
		t.Errorf("span = [%d, %d), want [0, 0)", c.StartPosition, c.EndPosition)
	}
	if c.WordCount != 0 {
		t.Errorf("WordCount = %d, want 0", c.WordCount)
	}
}

func TestDetectMarkerVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"uppercase chapter", "CHAPTER 1\nText here.\nCHAPTER 2\nMore text.", 2},
		{"numeric list", "1. Opening\nText.\n2. Closing\nText.", 2},
		{"part markers", "Part 1\nText.\nPart 2\nText.", 2},
		{"scene breaks", "Opening scene.\n***\nSecond scene.\n***\nThird scene.", 2},
		{"horizontal rule", "Opening.\n---\nClosing.", 1},
		{"markdown headers", "# One\nText.\n## Two\nText.\n### Three\nText.", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.text)
			if len(got) != tt.want {
				t.Errorf("len(chapters) = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestDetectBoundaryCoverage(t *testing.T) {
	text := "Preamble before any marker.\n\nChapter 1\nFirst.\n\nChapter 2: The Middle\nSecond.\n\n***\nCoda."
	chapters := Detect(text)

	if chapters[0].StartPosition != 0 {
		t.Errorf("first StartPosition = %d, want 0 (preamble folds into chapter 1)", chapters[0].StartPosition)
	}
	for i := 1; i < len(chapters); i++ {
		if chapters[i].StartPosition != chapters[i-1].EndPosition {
			t.Errorf("gap between chapter %d and %d: %d != %d",
				i, i+1, chapters[i-1].EndPosition, chapters[i].StartPosition)
		}
		if chapters[i].ChapterNumber != chapters[i-1].ChapterNumber+1 {
			t.Errorf("chapter numbers not sequential at index %d", i)
		}
	}
	if last := chapters[len(chapters)-1]; last.EndPosition != len(text) {
		t.Errorf("last EndPosition = %d, want %d", last.EndPosition, len(text))
	}
}

func TestDetectWordCountAdditivity(t *testing.T) {
	text := "Chapter 1\nAlice ran far.\n\nChapter 2\nBob walked home slowly tonight."
	chapters := Detect(text)

	sum := 0
	for _, c := range chapters {
		sum += c.WordCount
	}
	if total := len(strings.Fields(text)); sum != total {
		t.Errorf("sum of chapter word counts = %d, want %d", sum, total)
	}
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"Chapter 3: The Storm", "The Storm"},
		{"Chapter 7", ""},
		{"CHAPTER 2 Homecoming", "Homecoming"},
		{"Part 1: Beginnings", "Beginnings"},
		{"12. The Return", "The Return"},
		{"## The End", "The End"},
		{"***", ""},
		{"---", ""},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			if got := extractTitle(tt.line); got != tt.want {
				t.Errorf("extractTitle(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestConfidenceScoring(t *testing.T) {
	lines := []string{"prose", "Chapter 1", "more prose", "", "***", ""}

	// Explicit marker without blank neighbors: 0.5 + 0.4.
	if got := confidence("Chapter 1", 1, lines); got != 0.9 {
		t.Errorf("confidence = %f, want 0.9", got)
	}
	// Weak marker with blank lines on both sides: 0.5 + 0.1 + 0.1.
	if got := confidence("***", 4, lines); got != 0.7 {
		t.Errorf("confidence = %f, want 0.7", got)
	}
}
