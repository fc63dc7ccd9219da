// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"strings"
	"testing"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const structureManuscript = `Chapter 1

Alice was young and restless. Alice discovered a sealed letter in the attic.
Bob met Alice at the gate. The morning passed quietly.

Chapter 2

Alice learned the letter was her mother's. Bob walked with Alice to town.
Bob whistled as they went.

Chapter 3

Bob revealed what he knew about the letter. Alice changed after that day.
A long silence followed.

Chapter 4

Alice confronted the truth at last and grew calm. Alice felt at peace.
The house settled into evening.
`

func analyzeFixture(t *testing.T) (*types.ManuscriptIndex, *types.BookStructure) {
	t.Helper()
	idx := index.Build(structureManuscript, types.IndexConfig{})
	return idx, Analyze(structureManuscript, idx, types.AnalysisConfig{})
}

func TestPlotThreadsMain(t *testing.T) {
	idx, s := analyzeFixture(t)

	if len(s.PlotThreads) == 0 {
		t.Fatal("expected at least the main thread")
	}
	main := s.PlotThreads[0]
	if main.ID != "main" {
		t.Fatalf("first thread ID = %q, want main", main.ID)
	}
	if main.StartChapter != 1 || main.EndChapter != idx.LastChapter() {
		t.Errorf("main span = %d..%d, want 1..%d", main.StartChapter, main.EndChapter, idx.LastChapter())
	}
	if main.Status != types.ThreadResolved {
		t.Errorf("main Status = %q, want resolved", main.Status)
	}
	if len(main.KeyEvents) == 0 {
		t.Fatal("main thread should have key events")
	}

	for _, e := range main.KeyEvents {
		want := types.EventMajor
		switch {
		case e.Chapter <= 2:
			want = types.EventSetup
		case e.Chapter >= idx.LastChapter()-1:
			want = types.EventPayoff
		}
		if e.Type != want {
			t.Errorf("chapter %d event Type = %q, want %q", e.Chapter, e.Type, want)
		}
	}
}

func TestPlotThreadsSubplots(t *testing.T) {
	_, s := analyzeFixture(t)

	byID := make(map[string]types.PlotThread)
	for _, th := range s.PlotThreads {
		byID[th.ID] = th
	}

	alice, ok := byID["subplot-alice"]
	if !ok {
		t.Fatal("Alice appears in 4 chapters and should have a subplot")
	}
	if alice.Status != types.ThreadResolved {
		t.Errorf("Alice subplot Status = %q, want resolved (ends on last chapter)", alice.Status)
	}

	bob, ok := byID["subplot-bob"]
	if !ok {
		t.Fatal("Bob appears in 3 chapters and should have a subplot")
	}
	if bob.Status != types.ThreadActive {
		t.Errorf("Bob subplot Status = %q, want active (ends before last chapter)", bob.Status)
	}
	if bob.StartChapter != 1 || bob.EndChapter != 3 {
		t.Errorf("Bob subplot span = %d..%d, want 1..3", bob.StartChapter, bob.EndChapter)
	}
}

func TestCharacterArcs(t *testing.T) {
	_, s := analyzeFixture(t)

	var alice *types.CharacterArc
	for i := range s.CharacterArcs {
		if s.CharacterArcs[i].Character == "Alice" {
			alice = &s.CharacterArcs[i]
		}
	}
	if alice == nil {
		t.Fatal("Alice should have an arc")
	}

	// "young" in her first chapter, "peace" in her last.
	if alice.StartState != "naive" {
		t.Errorf("StartState = %q, want naive", alice.StartState)
	}
	if alice.EndState != "at peace" {
		t.Errorf("EndState = %q, want at peace", alice.EndState)
	}
	if len(alice.Milestones) == 0 {
		t.Fatal("Alice has growth sentences and should have milestones")
	}
	want := float64(len(alice.Milestones)) / 5.0
	if want > 1.0 {
		want = 1.0
	}
	if alice.Consistency != want {
		t.Errorf("Consistency = %f, want %f", alice.Consistency, want)
	}
}

func TestArcConsistencyBounded(t *testing.T) {
	var text strings.Builder
	text.WriteString("Chapter 1\n\n")
	for i := 0; i < 8; i++ {
		text.WriteString("Carol learned something new. ")
	}
	idx := index.Build(text.String(), types.IndexConfig{})
	s := Analyze(text.String(), idx, types.AnalysisConfig{})

	if len(s.CharacterArcs) == 0 {
		t.Fatal("Carol should have an arc")
	}
	if c := s.CharacterArcs[0].Consistency; c != 1.0 {
		t.Errorf("Consistency = %f, want capped at 1.0", c)
	}
}

func TestThemes(t *testing.T) {
	text := `Chapter 1

Love filled the old house. Her heart raced whenever the letters arrived.
A tender silence held the room.

Chapter 2

The court weighed the crime. Justice would not wait for anyone.
`
	idx := index.Build(text, types.IndexConfig{})
	s := Analyze(text, idx, types.AnalysisConfig{})

	names := make(map[string]types.ThematicElement)
	for _, th := range s.Themes {
		names[th.Theme] = th
	}

	love, ok := names["love"]
	if !ok {
		t.Fatal("love theme should be detected")
	}
	if len(love.Chapters) != 1 || love.Chapters[0] != 1 {
		t.Errorf("love Chapters = %v, want [1]", love.Chapters)
	}
	if love.Strength <= 0 || love.Strength > 1.0 {
		t.Errorf("love Strength = %f, want in (0, 1]", love.Strength)
	}
	if _, ok := names["justice"]; !ok {
		t.Error("justice theme should be detected")
	}
	if _, ok := names["betrayal"]; ok {
		t.Error("betrayal has no keyword hits and should be omitted")
	}

	for i := 1; i < len(s.Themes); i++ {
		if s.Themes[i].Strength > s.Themes[i-1].Strength {
			t.Error("themes not sorted by strength descending")
		}
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	idx := index.Build(structureManuscript, types.IndexConfig{})
	a := Analyze(structureManuscript, idx, types.AnalysisConfig{})
	b := Analyze(structureManuscript, idx, types.AnalysisConfig{})

	if len(a.PlotThreads) != len(b.PlotThreads) || len(a.Themes) != len(b.Themes) {
		t.Error("Analyze is not deterministic")
	}
	for i := range a.Themes {
		if a.Themes[i].Theme != b.Themes[i].Theme {
			t.Error("theme order differs between runs")
		}
	}
}
