// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"strings"
	"testing"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const searchManuscript = `Chapter 1

Alice walked into the garden. "Hello," Bob said. Alice thought about the letter.
Bob found Alice near the roses. Bob waited by the gate.

Chapter 2

"I will not forgive this betrayal," Alice shouted. The throne gave him power and control over everyone.
Alice felt fear rising. Alice decided to leave the city before dawn.
`

func buildSearchFixture(t *testing.T) *types.ManuscriptIndex {
	t.Helper()
	return index.Build(searchManuscript, types.IndexConfig{})
}

func TestDialogueQuery(t *testing.T) {
	idx := buildSearchFixture(t)

	results := Search(searchManuscript, idx, types.SearchQuery{
		Type:   types.QueryDialogue,
		Target: "hello",
	}, 10)

	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ContextType != types.QueryDialogue {
		t.Errorf("ContextType = %q, want dialogue", r.ContextType)
	}
	if r.Chapter != 1 {
		t.Errorf("Chapter = %d, want 1", r.Chapter)
	}
	if want := `"Hello," Bob said.`; r.Content != want {
		t.Errorf("Content = %q, want %q", r.Content, want)
	}
	if len(r.RelatedElements) != 1 || r.RelatedElements[0] != "Bob" {
		t.Errorf("RelatedElements = %v, want [Bob]", r.RelatedElements)
	}
	if r.RelevanceScore != 0.7 {
		t.Errorf("RelevanceScore = %f, want 0.7", r.RelevanceScore)
	}
}

func TestCharacterQueryScoring(t *testing.T) {
	idx := buildSearchFixture(t)

	results := Search(searchManuscript, idx, types.SearchQuery{
		Type:   types.QueryCharacter,
		Target: "Alice",
	}, 20)
	if len(results) == 0 {
		t.Fatal("expected character results for Alice")
	}

	var sawInternal, sawRelated bool
	for _, r := range results {
		if r.ContextType != types.QueryCharacter {
			t.Errorf("ContextType = %q, want character", r.ContextType)
		}
		if !strings.Contains(r.Content, "Alice") {
			t.Errorf("Content %q does not mention Alice", r.Content)
		}
		if strings.Contains(r.Content, "thought") {
			sawInternal = true
			if r.RelevanceScore < 0.6 {
				t.Errorf("internal-state sentence scored %f, want >= 0.6", r.RelevanceScore)
			}
		}
		for _, name := range r.RelatedElements {
			if name == "Bob" {
				sawRelated = true
			}
		}
	}
	if !sawInternal {
		t.Error("no result covered the internal-state sentence")
	}
	if !sawRelated {
		t.Error("no result related Bob to Alice")
	}
}

func TestThemeQueryCoOccurrence(t *testing.T) {
	idx := buildSearchFixture(t)

	results := Search(searchManuscript, idx, types.SearchQuery{
		Type:   types.QueryTheme,
		Target: "power",
	}, 10)
	if len(results) == 0 {
		t.Fatal("expected theme results for power")
	}

	top := results[0]
	if top.RelevanceScore != 0.7 {
		t.Errorf("top score = %f, want 0.7 (base 0.4 + co-occurrence 0.3)", top.RelevanceScore)
	}
	if len(top.RelatedElements) == 0 {
		t.Error("co-occurring keywords should be related elements")
	}
}

func TestRankingAndDeduplication(t *testing.T) {
	in := []types.SearchResult{
		{Chapter: 1, Position: 10, RelevanceScore: 0.4, Content: "low"},
		{Chapter: 2, Position: 5, RelevanceScore: 0.9, Content: "high"},
		{Chapter: 1, Position: 10, RelevanceScore: 0.7, Content: "duplicate, higher"},
	}

	out := rankAndDeduplicate(in)

	if len(out) != 2 {
		t.Fatalf("got %d results, want 2 after dedup", len(out))
	}
	for i := 1; i < len(out); i++ {
		if out[i].RelevanceScore > out[i-1].RelevanceScore {
			t.Error("results not sorted by score descending")
		}
	}
	for _, r := range out {
		if r.Chapter == 1 && r.Position == 10 && r.RelevanceScore != 0.7 {
			t.Errorf("dedup kept score %f, want the higher 0.7", r.RelevanceScore)
		}
	}
}

func TestSearchProperties(t *testing.T) {
	idx := buildSearchFixture(t)

	results := Search(searchManuscript, idx, types.SearchQuery{
		Type:   types.QueryCharacter,
		Target: "Alice",
	}, 50)

	type key struct{ chapter, position int }
	seen := make(map[key]struct{})
	for i, r := range results {
		if i > 0 && r.RelevanceScore > results[i-1].RelevanceScore {
			t.Error("results not sorted by score descending")
		}
		k := key{r.Chapter, r.Position}
		if _, dup := seen[k]; dup {
			t.Errorf("duplicate (chapter, position) pair: %v", k)
		}
		seen[k] = struct{}{}
	}
}

func TestChapterScopeRestriction(t *testing.T) {
	idx := buildSearchFixture(t)

	results := Search(searchManuscript, idx, types.SearchQuery{
		Type:    types.QueryCharacter,
		Target:  "Alice",
		Context: &types.QueryContext{Chapters: []int{2}},
	}, 20)
	if len(results) == 0 {
		t.Fatal("Alice appears in chapter 2; expected results")
	}
	for _, r := range results {
		if r.Chapter != 2 {
			t.Errorf("result from chapter %d leaked past the chapter restriction", r.Chapter)
		}
	}
}

func TestMaxResultsTruncation(t *testing.T) {
	idx := buildSearchFixture(t)

	results := Search(searchManuscript, idx, types.SearchQuery{
		Type:   types.QueryCharacter,
		Target: "Alice",
	}, 2)
	if len(results) > 2 {
		t.Errorf("got %d results, want at most 2", len(results))
	}
}

func TestSearchTotality(t *testing.T) {
	idx := buildSearchFixture(t)

	if got := Search(searchManuscript, idx, types.SearchQuery{Type: types.QueryCharacter, Target: ""}, 10); got != nil {
		t.Errorf("empty target: got %v, want nil", got)
	}
	if got := Search(searchManuscript, idx, types.SearchQuery{Type: types.QueryCharacter, Target: "Zelda"}, 10); len(got) != 0 {
		t.Errorf("unmatched target: got %d results, want 0", len(got))
	}

	// Unknown types fall through to the general scan.
	results := Search(searchManuscript, idx, types.SearchQuery{Type: "unknown", Target: "roses"}, 10)
	if len(results) != 1 {
		t.Fatalf("general fallback: got %d results, want 1", len(results))
	}
	if results[0].RelevanceScore != 0.4 {
		t.Errorf("general score = %f, want 0.4", results[0].RelevanceScore)
	}
}
