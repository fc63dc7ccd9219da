// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const twoChapterText = `Chapter 1

Alice ran through the garden. Bob said hi to Alice. Alice smiled back at him.
The afternoon sun was warm.

Chapter 2

Bob returned the next day. Bob and Alice walked to the river together.
Bob whistled the whole way.
`

func TestBuildSingleChapter(t *testing.T) {
	text := "Chapter 1\n\nAlice ran. Bob said hi. Alice ran again. Alice smiled."
	idx := Build(text, types.IndexConfig{})

	if len(idx.Chapters) != 1 {
		t.Fatalf("len(Chapters) = %d, want 1", len(idx.Chapters))
	}

	alice := idx.Character("Alice")
	if alice == nil {
		t.Fatal("Alice should be indexed")
	}
	if alice.TotalMentions < 3 {
		t.Errorf("Alice TotalMentions = %d, want >= 3", alice.TotalMentions)
	}
	if !reflect.DeepEqual(alice.Chapters, []int{1}) {
		t.Errorf("Alice Chapters = %v, want [1]", alice.Chapters)
	}

	// Bob appears twice, below the threshold.
	if idx.Character("Bob") != nil {
		t.Error("Bob has fewer than 3 mentions and should not be indexed")
	}
}

func TestBuildCharacterInvariants(t *testing.T) {
	idx := Build(twoChapterText, types.IndexConfig{})

	if len(idx.Characters) == 0 {
		t.Fatal("expected at least one character")
	}
	for _, c := range idx.Characters {
		if c.TotalMentions < 3 {
			t.Errorf("%s TotalMentions = %d, want >= 3", c.Name, c.TotalMentions)
		}
		if len(c.Chapters) == 0 {
			t.Errorf("%s has no chapter memberships", c.Name)
		}
		if c.FirstMention != c.Chapters[0] {
			t.Errorf("%s FirstMention = %d, want min(Chapters) = %d",
				c.Name, c.FirstMention, c.Chapters[0])
		}
	}

	// Sorted by mentions descending.
	for i := 1; i < len(idx.Characters); i++ {
		if idx.Characters[i].TotalMentions > idx.Characters[i-1].TotalMentions {
			t.Errorf("characters not sorted by TotalMentions at index %d", i)
		}
	}
}

func TestBuildChapterMembership(t *testing.T) {
	idx := Build(twoChapterText, types.IndexConfig{})

	bob := idx.Character("Bob")
	if bob == nil {
		t.Fatal("Bob should be indexed")
	}
	if !reflect.DeepEqual(bob.Chapters, []int{1, 2}) {
		t.Errorf("Bob Chapters = %v, want [1 2]", bob.Chapters)
	}
	if bob.FirstMention != 1 {
		t.Errorf("Bob FirstMention = %d, want 1", bob.FirstMention)
	}
}

func TestBuildStopWordsExcluded(t *testing.T) {
	text := "The cat sat. The dog ran. The bird flew. Suddenly it rained. Suddenly again. Suddenly once more."
	idx := Build(text, types.IndexConfig{})

	if len(idx.Characters) != 0 {
		t.Errorf("stop words should not become characters, got %v", idx.Characters)
	}
}

func TestBuildExtraStopWords(t *testing.T) {
	text := "Raven flew. Raven called. Raven landed."
	cfg := types.IndexConfig{ExtraStopWords: []string{"Raven"}}

	if idx := Build(text, cfg); idx.Character("Raven") != nil {
		t.Error("extra stop word should exclude Raven")
	}
	if idx := Build(text, types.IndexConfig{}); idx.Character("Raven") == nil {
		t.Error("Raven should be indexed without the extra stop word")
	}
}

func TestBuildWordCounts(t *testing.T) {
	idx := Build(twoChapterText, types.IndexConfig{})

	if want := len(strings.Fields(twoChapterText)); idx.TotalWordCount != want {
		t.Errorf("TotalWordCount = %d, want %d", idx.TotalWordCount, want)
	}

	sum := 0
	for _, ch := range idx.Chapters {
		sum += ch.WordCount
	}
	if sum != idx.TotalWordCount {
		t.Errorf("sum of chapter word counts = %d, want %d", sum, idx.TotalWordCount)
	}
}

func TestBuildWhitespaceOnly(t *testing.T) {
	idx := Build("   \n\t  \n  ", types.IndexConfig{})

	if len(idx.Chapters) != 1 {
		t.Fatalf("len(Chapters) = %d, want 1", len(idx.Chapters))
	}
	if idx.Chapters[0].WordCount != 0 {
		t.Errorf("WordCount = %d, want 0 for whitespace-only text", idx.Chapters[0].WordCount)
	}
	if idx.TotalWordCount != 0 {
		t.Errorf("TotalWordCount = %d, want 0", idx.TotalWordCount)
	}
}

func TestBuildIdempotent(t *testing.T) {
	a := Build(twoChapterText, types.IndexConfig{})
	b := Build(twoChapterText, types.IndexConfig{})

	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic for identical input")
	}
}

func TestBuildAverageChapterLength(t *testing.T) {
	idx := Build(twoChapterText, types.IndexConfig{})

	if len(idx.Chapters) != 2 {
		t.Fatalf("len(Chapters) = %d, want 2", len(idx.Chapters))
	}
	want := (idx.TotalWordCount + 1) / 2 // rounded
	got := idx.AverageChapterLength
	if got != want && got != idx.TotalWordCount/2 {
		t.Errorf("AverageChapterLength = %d, want ~%d", got, idx.TotalWordCount/2)
	}
}
