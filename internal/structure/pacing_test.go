// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package structure

import (
	"testing"

	"github.com/pdiddy/manuscript-engine/internal/index"
	"github.com/pdiddy/manuscript-engine/pkg/types"
)

func TestClassifyPace(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name string
		text string
		want types.Pace
	}{
		{
			name: "action dense",
			text: "He ran down the alley and fought his way through the crowd before he leapt over the wall.",
			want: types.PaceFast,
		},
		{
			name: "dialogue heavy",
			text: `"Where were you all this time, and why did nobody tell me anything about it?" she said.`,
			want: types.PaceModerate,
		},
		{
			name: "plain prose",
			text: "The valley stretched out below them in the afternoon light. Nothing moved for a long while.",
			want: types.PaceSlow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words := len([]rune(tt.text)) / 5 // rough, classifyPace only needs order of magnitude
			if got := classifyPace(tt.text, words, lex); got != tt.want {
				t.Errorf("classifyPace = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTensionScore(t *testing.T) {
	lex := DefaultLexicon()

	if got := tensionScore("The afternoon was calm.", 4, lex); got != 0 {
		t.Errorf("no tension words: score = %f, want 0", got)
	}

	// 1 hit in 200 words is 0.5 per 100 words.
	text := "Suddenly the door opened."
	if got := tensionScore(text, 200, lex); got != 0.5 {
		t.Errorf("score = %f, want 0.5", got)
	}

	// 3 hits in 100 words would be 3.0, capped.
	text = "Suddenly there was danger and panic everywhere."
	if got := tensionScore(text, 100, lex); got != 1.0 {
		t.Errorf("score = %f, want capped at 1.0", got)
	}

	if got := tensionScore("", 0, lex); got != 0 {
		t.Errorf("empty chapter: score = %f, want 0", got)
	}
}

func TestDialogueDensity(t *testing.T) {
	if got := dialogueDensity(""); got != 0 {
		t.Errorf("empty text: density = %f, want 0", got)
	}
	if got := dialogueDensity("No quotes here at all."); got != 0 {
		t.Errorf("no quotes: density = %f, want 0", got)
	}

	text := `ab"cdef"gh`
	want := 4.0 / 10.0
	if got := dialogueDensity(text); got != want {
		t.Errorf("density = %f, want %f", got, want)
	}
}

func TestOverallPace(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   types.Pace
	}{
		{"empty", nil, types.PaceModerate},
		{"all slow", []float64{0, 0, 0}, types.PaceSlow},
		{"all fast", []float64{2, 2, 2}, types.PaceFast},
		{"all moderate", []float64{1, 1, 1}, types.PaceModerate},
		{"alternating extremes", []float64{2, 0, 2, 0}, types.PaceUneven},
		{"mild mix", []float64{1, 1, 0, 1}, types.PaceModerate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := overallPace(tt.values); got != tt.want {
				t.Errorf("overallPace(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func TestPacingAnalysisShape(t *testing.T) {
	text := `Chapter 1

He ran and fought and leapt and crashed through the window while the guards chased him.

Chapter 2

The garden was quiet in the early morning. Dew clung to every leaf and nothing stirred.
`
	idx := index.Build(text, types.IndexConfig{})
	s := Analyze(text, idx, types.AnalysisConfig{})

	if len(s.Pacing.ChapterPacing) != 2 {
		t.Fatalf("ChapterPacing entries = %d, want 2", len(s.Pacing.ChapterPacing))
	}
	if len(s.Pacing.TensionCurve) != 2 {
		t.Fatalf("TensionCurve entries = %d, want 2", len(s.Pacing.TensionCurve))
	}
	if got := s.Pacing.ChapterPacing[0].Pace; got != types.PaceFast {
		t.Errorf("chapter 1 pace = %q, want fast", got)
	}
	if got := s.Pacing.ChapterPacing[1].Pace; got != types.PaceSlow {
		t.Errorf("chapter 2 pace = %q, want slow", got)
	}
	if got := s.Pacing.Overall; got != types.PaceUneven {
		t.Errorf("Overall = %q, want uneven (variance between fast and slow)", got)
	}
	for i, v := range s.Pacing.TensionCurve {
		if v < 0 || v > 1 {
			t.Errorf("TensionCurve[%d] = %f, want within [0, 1]", i, v)
		}
	}
}
